package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/povilasv/prommod"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
	"github.com/rs/zerolog"

	"github.com/pktai/pktfilter/collect"
	"github.com/pktai/pktfilter/decode"
	"github.com/pktai/pktfilter/filters"
	"github.com/pktai/pktfilter/publisher"
	"github.com/pktai/pktfilter/translate"
)

var (
	// The following vars are meant to be filled in by
	// `go build -ldflags -X=main.<X>=<Value>`.

	// Version is the git tag of this build (v1.2.3)
	Version = "unknown"
	// Build is the git short hash ref of this build (123abcdef)
	Build = "unknown"
	// Branch is the git branch for this build (master)
	Branch = "unknown"
	// Date is when this build was created (2020-01-02T03:04:05Z)
	Date = "unknown"
)

func run(args []string, stdout io.Writer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := zerolog.New(os.Stderr).With().Timestamp().Str("app", "pktfilter").Logger()
	ctx = log.WithContext(ctx)

	cfg := &config{}
	if err := cfg.Load(args); err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Debug().Msg("debug logging active")

	if cfg.CaptureFile == "" {
		return fmt.Errorf("no capture file given; use -capture-file")
	}

	log.Debug().Msg("setting up signal handling")
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() { <-signals; log.Debug().Msg("received quit signal"); cancel() }()

	source := cfg.Filter
	if cfg.Request != "" {
		if cfg.Filter != "" {
			return fmt.Errorf("-filter and -request are mutually exclusive")
		}
		source = translate.Request(cfg.Request)
		log.Info().Str("request", cfg.Request).Str("filter", source).Msg("translated request")
	}

	log.Debug().Str("filter", source).Msg("compiling display filter")
	expr, err := filters.Compile(source)
	if err != nil {
		return fmt.Errorf("unable to compile display filter: %w", err)
	}

	log.Debug().Msg("initializing capture decoder")
	capture := decode.NewSource()

	collectors := []prometheus.Collector{}
	collectors = append(collectors, capture.Metrics()...)

	var collecter *collect.Collecter
	var publ *publisher.MQTTPublisher
	if cfg.MQTT.Broker != "" {
		log.Debug().Msg("creating MQTT publisher")
		publ = publisher.NewMQTT(cfg.MQTT)
		if err := publ.Connect(ctx); err != nil {
			return fmt.Errorf("unable to connect to MQTT broker: %w", err)
		}

		log.Debug().Msg("building packet collecter")
		collecter = collect.NewCollecter(expr, publ.Publish, 10000)
		collectors = append(collectors, collecter.Metrics()...)
	}

	if cfg.MetricsAddr != "" {
		log.Debug().Msg("creating Prometheus registry")
		reg := prometheus.NewRegistry()
		version.Version = Version
		version.Revision = Build
		version.Branch = Branch
		version.BuildDate = Date
		reg.MustRegister(
			version.NewCollector("pktfilter"),
			prommod.NewCollector("pktfilter"),
			prometheus.NewGoCollector(),
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		)
		reg.MustRegister(collectors...)

		log.Debug().
			Str("address", cfg.MetricsAddr).
			Str("path", "/metrics").
			Msg("publishing Prometheus endpoint")
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Handler: mux, Addr: cfg.MetricsAddr}
		// Since we never call srv.Shutdown(), ListenAndServe will only ever
		// return if the underlying socket fails.
		go func() { log.Err(srv.ListenAndServe()).Msg("http metrics endpoint failed") }()
	}

	log.Debug().Str("file", cfg.CaptureFile).Msg("decoding capture")
	views, err := capture.File(ctx, cfg.CaptureFile)
	if err != nil {
		return fmt.Errorf("unable to decode capture: %w", err)
	}

	if collecter == nil {
		matched := filters.Apply(views, expr)
		log.Info().Int("packets", len(views)).Int("matched", len(matched)).Msg("filter applied")
		renderSummaries(stdout, matched)
		return nil
	}

	done := make(chan bool, 1)
	go func() { collecter.Publish(ctx); done <- true }()
	for _, v := range views {
		if err := collecter.Accept(v); err != nil {
			log.Err(err).Msg("packet not queued")
		}
	}
	collecter.Close()
	<-done

	publ.Close()
	log.Info().Msg("shutdown complete.")

	return nil
}

func main() {
	// these are stateful global module level changes; only do them in main
	time.Local = time.UTC
	zerolog.TimeFieldFormat = "2006-01-02T15:04:05.999Z07:00"

	if err := run(os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
