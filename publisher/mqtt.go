// Package publisher delivers filtered packet envelopes to an MQTT broker.
package publisher

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/pktai/pktfilter/collect"
)

const (
	// qosAtLeastOnce is the MQTT QoS level used for all publishes.
	qosAtLeastOnce = byte(1)

	// defaultResponseTimeout is how long to wait for the broker to answer
	// a single MQTT operation when the context carries no deadline.
	defaultResponseTimeout = time.Second * 2

	// keepaliveInterval is how often the client pings the broker.
	keepaliveInterval = time.Second * 30

	// disconnectQuiesce is how long Close waits for in-flight work,
	// in milliseconds; see `go doc paho.mqtt.golang.Client.Disconnect`.
	disconnectQuiesce = 250
)

var (
	// ErrPublishTimeout should only happen if the broker is unresponsive.
	ErrPublishTimeout = errors.New("mqtt publish timed out")
)

// MQTTPublisher knows how to publish a collect.Msg to a topic on its
// connected broker.
type MQTTPublisher struct {
	client mqtt.Client
	opts   MQTTOptions
}

// MQTTOptions controls how the internal MQTT client is created.
type MQTTOptions struct {
	Topic       string
	Broker      string
	ClientID    string
	TLSKeyFile  string
	TLSCertFile string
}

// NewMQTT creates an MQTTPublisher from the given options.
func NewMQTT(o MQTTOptions) *MQTTPublisher {
	if o.ClientID == "" {
		o.ClientID = fmt.Sprintf("pktfilter:%v", time.Now().UnixNano())
	}

	opts := mqtt.NewClientOptions().
		AddBroker(o.Broker).
		SetClientID(o.ClientID).
		SetKeepAlive(keepaliveInterval)

	if o.TLSKeyFile != "" && o.TLSCertFile != "" {
		if cfg, err := tlsCfgFromFiles(o.TLSKeyFile, o.TLSCertFile); err == nil {
			opts.SetTLSConfig(cfg)
		}
	}

	return &MQTTPublisher{
		opts:   o,
		client: mqtt.NewClient(opts),
	}
}

// Connect initiates a client MQTT connection to the configured broker.
func (m *MQTTPublisher) Connect(ctx context.Context) error {
	log := zerolog.Ctx(ctx)
	timeout := timeoutFromCtx(ctx, defaultResponseTimeout)
	token := m.client.Connect()
	for {
		if ctx.Err() != nil {
			log.Debug().Msg("context ended while waiting for mqtt connect")
			return ctx.Err()
		}
		if token.WaitTimeout(timeout) {
			break
		}
	}
	if token.Error() != nil {
		return fmt.Errorf("mqtt connect failed: %w", token.Error())
	}
	return nil
}

// Publish encodes a collect.Msg as JSON and sends it to the configured
// topic with at-least-once delivery.
func (m *MQTTPublisher) Publish(ctx context.Context, msg *collect.Msg) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling Msg to json: %w", err)
	}

	log := zerolog.Ctx(ctx)
	log.Debug().Bytes("msg", data).Msg("publishing mqtt message")

	token := m.client.Publish(m.opts.Topic, qosAtLeastOnce, false, data)
	// does not handle early ctx cancellation; WaitTimeout has no ctx form
	if !token.WaitTimeout(timeoutFromCtx(ctx, defaultResponseTimeout)) {
		return ErrPublishTimeout
	}
	if token.Error() != nil {
		return fmt.Errorf("mqtt publish failed: %w", token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (m *MQTTPublisher) Close() {
	m.client.Disconnect(disconnectQuiesce)
}

func timeoutFromCtx(ctx context.Context, def time.Duration) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		return time.Until(dl)
	}
	return def
}

func tlsCfgFromFiles(key, cert string) (*tls.Config, error) {
	certs, err := tls.LoadX509KeyPair(cert, key)
	if err != nil {
		return nil, fmt.Errorf("loading tls keypair: %w", err)
	}
	return &tls.Config{Certificates: []tls.Certificate{certs}}, nil
}
