// Package dtlsd implements a server-side DTLS 1.2 handshake engine for
// WebRTC-style peer-authenticated media sessions: record/handshake codec,
// cookie-challenged state machine, and ECDHE_ECDSA key exchange.
package dtlsd

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lanikai/dtlsd/internal/dtls"
	"github.com/lanikai/dtlsd/internal/logging"
	"github.com/lanikai/dtlsd/internal/transport"
)

var engineLog = logging.DefaultLogger.WithTag("dtlsd.engine")

// Engine wires together the transport socket, handshake state machine and
// dispatcher described by Config. It is the top-level entry point embedders
// use in place of constructing internal/dtls types directly.
type Engine struct {
	config Config
	cert   *SelfSignedCertificate

	stateMachine *dtls.StateMachine
	metrics      *dtls.Metrics
	registry     *prometheus.Registry

	socket     *transport.UDPSocket
	dispatcher *dtls.Dispatcher
	running    bool
}

// NewEngine constructs an Engine with its own self-signed certificate,
// HMAC-bound cookie service, and a fresh Prometheus registry. It does not
// bind a socket until Listen is called.
func NewEngine(config Config) (*Engine, error) {
	cert, err := NewSelfSignedCertificate()
	if err != nil {
		return nil, err
	}

	cookies, err := dtls.NewHMACCookieService()
	if err != nil {
		return nil, err
	}

	crypto := dtls.NewCryptoAdapter(cert)
	registry := prometheus.NewRegistry()

	return &Engine{
		config:       config,
		cert:         cert,
		stateMachine: dtls.NewStateMachine(crypto, cookies),
		metrics:      dtls.NewMetrics(registry),
		registry:     registry,
	}, nil
}

// Fingerprint returns the SHA-256 fingerprint of the engine's certificate,
// as would be advertised in an SDP a=fingerprint line.
func (e *Engine) Fingerprint() string {
	return dtls.NewCryptoAdapter(e.cert).Fingerprint()
}

// Registry returns the engine's Prometheus registry, for mounting a
// /metrics handler.
func (e *Engine) Registry() *prometheus.Registry {
	return e.registry
}

// Listen binds the configured UDP address and starts serving datagrams. It
// blocks until the socket returns a fatal error.
func (e *Engine) Listen() error {
	socket, err := transport.Listen(e.config.BindAddress)
	if err != nil {
		return err
	}
	e.socket = socket

	engineLog.Info("listening on %s", socket.LocalAddr())
	return e.Serve(socket)
}

// Serve drives the handshake engine over an arbitrary dtls.Socket, letting
// an embedder substitute its own transport (e.g. for testing) instead of
// the default UDP binding Listen provides.
func (e *Engine) Serve(socket dtls.Socket) error {
	if e.running {
		return errAlreadyListening
	}
	e.running = true

	e.dispatcher = dtls.NewDispatcher(socket, e.stateMachine, e.metrics, e.config.MaxSessions, e.config.SessionIdle)
	return e.dispatcher.Serve()
}

// Close releases the engine's bound socket, if Listen (not Serve) was used
// to start it.
func (e *Engine) Close() error {
	if !e.running {
		return errNotListening
	}
	e.running = false
	if e.socket == nil {
		return nil
	}
	return e.socket.Close()
}
