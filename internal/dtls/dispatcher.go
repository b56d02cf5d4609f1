package dtls

import (
	"net"
	"time"

	"github.com/golang/groupcache/lru"

	"github.com/lanikai/dtlsd/internal/logging"
)

// Socket is the transport collaborator a Dispatcher reads from and writes
// to. Datagram boundaries are preserved: one RecvFrom returns exactly one
// datagram, one SendTo writes exactly one.
type Socket interface {
	RecvFrom(buf []byte) (n int, addr net.Addr, err error)
	SendTo(b []byte, addr net.Addr) error
}

// maxDatagramSize is large enough for any record this core emits (the
// Certificate message is the largest, well under a typical path MTU).
const maxDatagramSize = 4096

var dispatcherLog = logging.DefaultLogger.WithTag("dtls.dispatcher")

// Dispatcher owns one Socket and the PeerSession table for every address
// that has spoken to it. It is not safe for concurrent use: the scheduling
// model is single-threaded cooperative per instance, serializing handler
// invocation so sessions never need their own locks.
type Dispatcher struct {
	socket      Socket
	sm          *StateMachine
	metrics     *Metrics
	idleTimeout time.Duration

	sessions map[string]*PeerSession
	lru      *lru.Cache // bounds the session table to MaxSessions entries
}

// NewDispatcher creates a Dispatcher. maxSessions bounds the number of
// concurrently tracked peers via an LRU eviction policy; idleTimeout is the
// additional, independent reaper for sessions that go quiet without ever
// hitting the LRU bound.
func NewDispatcher(socket Socket, sm *StateMachine, metrics *Metrics, maxSessions int, idleTimeout time.Duration) *Dispatcher {
	d := &Dispatcher{
		socket:      socket,
		sm:          sm,
		metrics:     metrics,
		idleTimeout: idleTimeout,
		sessions:    make(map[string]*PeerSession),
	}
	d.lru = lru.New(maxSessions)
	d.lru.OnEvicted = func(key lru.Key, _ interface{}) {
		addr, _ := key.(string)
		if _, ok := d.sessions[addr]; !ok {
			// Already removed by reap, which records the expiry itself.
			return
		}
		delete(d.sessions, addr)
		d.metrics.sessionEvicted()
	}
	return d
}

// Serve reads datagrams from the socket until it returns a non-nil error,
// processing each one to completion before reading the next.
func (d *Dispatcher) Serve() error {
	buf := make([]byte, maxDatagramSize)
	for {
		n, addr, err := d.socket.RecvFrom(buf)
		if err != nil {
			return err
		}

		// Copy out of the reusable read buffer before processing: RecvFrom
		// is free to overwrite buf on the next call. Handling is synchronous
		// and single-holder, so a plain copy is all this needs.
		data := make([]byte, n)
		copy(data, buf[:n])

		d.handleDatagram(addr, data)

		d.reap()
	}
}

func (d *Dispatcher) handleDatagram(addr net.Addr, data []byte) {
	header, payload, err := DecodeRecord(data)
	if err != nil {
		dispatcherLog.Debug("dropping malformed record from %s: %v", addr, err)
		d.metrics.datagramDropped("malformed_record")
		return
	}

	switch header.ContentType {
	case ContentTypeHandshake:
		d.handleHandshake(addr, header, payload)
	case ContentTypeChangeCipherSpec, ContentTypeAlert, ContentTypeApplicationData:
		d.handleNonHandshake(addr, header)
	default:
		dispatcherLog.Info("unknown message type %d from %s", header.ContentType, addr)
		d.metrics.datagramDropped("unknown_content_type")
	}
}

func (d *Dispatcher) handleNonHandshake(addr net.Addr, header RecordHeader) {
	key := addr.String()
	sess, known := d.sessions[key]

	if header.ContentType == ContentTypeApplicationData && header.Epoch == 0 {
		// ApplicationData under the null cipher is never valid: the
		// record-layer encryption transform that would protect it doesn't
		// exist yet at epoch 0.
		dispatcherLog.Debug("rejecting ApplicationData at epoch 0 from %s", addr)
		d.metrics.datagramDropped("application_data_epoch_zero")
		return
	}

	if !known {
		dispatcherLog.Debug("dropping %s from unknown peer %s", header.ContentType, addr)
		d.metrics.datagramDropped("unknown_peer")
		return
	}

	// ChangeCipherSpec/Alert/ApplicationData handling past this point
	// belongs to the record-layer transform and session lifecycle this core
	// does not implement; log and forward is a stub for that collaborator.
	sess.touch()
	dispatcherLog.Debug("forwarding %s from %s (out of core)", header.ContentType, addr)
}

func (d *Dispatcher) handleHandshake(addr net.Addr, recordHeader RecordHeader, payload []byte) {
	handshakeHeader, body, err := DecodeHandshake(payload)
	if err != nil {
		dispatcherLog.Debug("dropping malformed handshake from %s: %v", addr, err)
		d.metrics.datagramDropped("malformed_handshake")
		return
	}

	key := addr.String()
	sess, known := d.sessions[key]

	if handshakeHeader.Type == HandshakeTypeClientHello {
		ch, err := DecodeClientHello(body)
		if err != nil {
			dispatcherLog.Debug("dropping malformed ClientHello from %s: %v", addr, err)
			d.metrics.datagramDropped("malformed_client_hello")
			return
		}

		if !known {
			sess = NewPeerSession(addr)
		}
		cookieEchoed := len(ch.Cookie) > 0

		records, err := d.sm.HandleClientHello(sess, payload, ch)
		if err != nil {
			dispatcherLog.Warn("client hello from %s: %v", addr, err)
			d.metrics.datagramDropped("protocol_error")
			return
		}

		d.storeSession(key, sess)
		d.sendAll(addr, records)
		switch sess.Flight {
		case Flight2:
			if cookieEchoed {
				d.metrics.cookieMismatch(key)
			} else {
				d.metrics.helloVerifySent(key)
			}
		case Flight4:
			d.metrics.flight4Sent(key)
		}
		return
	}

	if !known {
		dispatcherLog.Debug("dropping %s from unknown peer %s", handshakeHeader.Type, addr)
		d.metrics.datagramDropped("unknown_peer")
		return
	}

	if err := d.sm.HandleFlight4Message(sess, handshakeHeader, payload, body); err != nil {
		dispatcherLog.Warn("handshake message from %s: %v", addr, err)
		d.metrics.datagramDropped("protocol_error")
		return
	}
	d.lru.Get(key) // refresh recency without mutating the session
}

func (d *Dispatcher) storeSession(key string, sess *PeerSession) {
	if _, exists := d.sessions[key]; !exists {
		d.metrics.sessionCreated()
	}
	d.sessions[key] = sess
	d.lru.Add(key, struct{}{})
}

func (d *Dispatcher) sendAll(addr net.Addr, records []OutboundRecord) {
	for _, rec := range records {
		if err := d.socket.SendTo(rec.Bytes, addr); err != nil {
			dispatcherLog.Error("sending %s to %s: %v", rec.HandshakeType, addr, err)
			return
		}
	}
}

// reap drops sessions that have been idle for longer than idleTimeout, a
// bound independent of (and typically tighter than) the LRU eviction policy.
func (d *Dispatcher) reap() {
	if d.idleTimeout <= 0 {
		return
	}
	for key, sess := range d.sessions {
		if sess.Idle(d.idleTimeout) {
			delete(d.sessions, key)
			d.lru.Remove(key)
			d.metrics.sessionExpired()
		}
	}
}
