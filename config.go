package main

import (
	"flag"
	"os"

	"github.com/pktai/pktfilter/publisher"
)

type config struct {
	LogLevel    string
	CaptureFile string
	Filter      string
	Request     string
	MetricsAddr string
	MQTT        publisher.MQTTOptions
}

func defEnvStr(k, dval string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return dval
}

func (c *config) Load(args []string) error {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&c.LogLevel, "log-level", defEnvStr("LOG_LEVEL", "info"), "logging level (debug, info, error)")
	fs.StringVar(&c.CaptureFile, "capture-file", defEnvStr("CAPTURE_FILE", ""), "pcap or pcapng capture file to decode")
	fs.StringVar(&c.Filter, "filter", defEnvStr("FILTER", ""), "display filter expression to apply")
	fs.StringVar(&c.Request, "request", defEnvStr("REQUEST", ""), "natural-language request, translated into a display filter")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", defEnvStr("METRICS_ADDR", ""), "IP:Port to bind for /metrics endpoint")

	fs.StringVar(&c.MQTT.Broker, "broker", defEnvStr("BROKER", ""), "MQTT broker; empty prints matches to stdout instead")
	fs.StringVar(&c.MQTT.ClientID, "client-id", defEnvStr("CLIENT_ID", ""), "MQTT Client ID")
	fs.StringVar(&c.MQTT.Topic, "topic", defEnvStr("TOPIC", ""), "MQTT publishing topic for matching packets")
	fs.StringVar(&c.MQTT.TLSKeyFile, "key-file", defEnvStr("KEY_FILE", ""), "MQTT TLS key file (pem)")
	fs.StringVar(&c.MQTT.TLSCertFile, "cert-file", defEnvStr("CERT_FILE", ""), "MQTT TLS cert file (pem)")

	return fs.Parse(args[1:])
}
