package main

import (
	"net/http"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lanikai/dtlsd"
	"github.com/lanikai/dtlsd/internal/logging"
)

var log = logging.DefaultLogger.WithTag("dtlsd.main")

func main() {
	flag.Parse()

	if flagHelp {
		help()
		os.Exit(0)
	}

	if flagVersion {
		version()
		os.Exit(0)
	}

	config := dtlsd.Config{
		BindAddress:      flagBindAddress,
		CookieBytes:      20,
		HandshakeTimeout: time.Duration(flagHandshakeTimeout) * time.Millisecond,
		MaxRTO:           time.Duration(flagMaxRTO) * time.Millisecond,
		SessionIdle:      time.Duration(flagSessionIdle) * time.Millisecond,
		MaxSessions:      flagMaxSessions,
	}

	engine, err := dtlsd.NewEngine(config)
	if err != nil {
		log.Error("creating engine: %v", err)
		os.Exit(1)
	}

	log.Info("certificate fingerprint: %s", engine.Fingerprint())

	if flagMetricsAddress != "" {
		go serveMetrics(engine)
	}

	if err := engine.Listen(); err != nil {
		log.Error("serving: %v", err)
		os.Exit(1)
	}
}

func serveMetrics(engine *dtlsd.Engine) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(engine.Registry(), promhttp.HandlerOpts{}))
	log.Info("serving metrics on %s", flagMetricsAddress)
	if err := http.ListenAndServe(flagMetricsAddress, mux); err != nil {
		log.Error("metrics server: %v", err)
	}
}
