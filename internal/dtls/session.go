package dtls

import (
	"net"
	"time"
)

// FlightState is the per-peer handshake state.
type FlightState int

const (
	// Flight0 is the initial state: no cookie has been issued yet. A peer
	// whose echoed cookie fails to validate is set back to Flight0 and
	// re-challenged in the same call, so it ends in Flight2 again.
	Flight0 FlightState = iota
	// Flight2 is entered once a HelloVerifyRequest has been sent; the
	// server is waiting for a ClientHello echoing the issued cookie.
	Flight2
	// Flight4 is entered once the server's key-exchange flight has been
	// sent; the server is waiting for the client's Certificate,
	// ClientKeyExchange, CertificateVerify, ChangeCipherSpec and Finished,
	// in that order.
	Flight4
	// Failed is terminal: the session encountered a fatal error.
	Failed
)

func (s FlightState) String() string {
	switch s {
	case Flight0:
		return "Flight0"
	case Flight2:
		return "Flight2"
	case Flight4:
		return "Flight4"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// PeerSession holds all per-peer handshake state. It is created on receipt
// of the first well-formed ClientHello from an unknown address, mutated
// only by the state machine owning that address, and destroyed on fatal
// error, completion hand-off, or inactivity timeout.
type PeerSession struct {
	PeerAddress net.Addr
	Flight      FlightState

	messageSeq uint16 // next outbound handshake message_seq
	recordSeq  uint64 // next outbound record sequence_number, within Epoch
	Epoch      uint16

	ClientHello  *ClientHello
	ServerRandom Random
	Cookie       []byte

	ChosenCipherSuite CipherSuiteId

	// EphemeralPublic/EphemeralPrivate are the server's X25519 key pair for
	// this handshake's ECDHE exchange.
	EphemeralPublic  [32]byte
	EphemeralPrivate [32]byte

	PeerEphemeralPublic []byte
	PeerCertChain       [][]byte
	PreMasterSecret     *[32]byte

	// Transcript is the ordered concatenation of every handshake message
	// (header included) sent or received so far, for the future Finished
	// PRF and CertificateVerify signature.
	Transcript []byte

	LastActivity time.Time
}

// NewPeerSession creates a session in Flight0 for addr.
func NewPeerSession(addr net.Addr) *PeerSession {
	return &PeerSession{
		PeerAddress:  addr,
		Flight:       Flight0,
		LastActivity: time.Now(),
	}
}

// nextMessageSeq returns the next outbound handshake message_seq and
// increments the counter. Retransmissions must reuse a previously returned
// value rather than calling this again.
func (s *PeerSession) nextMessageSeq() uint16 {
	seq := s.messageSeq
	s.messageSeq++
	return seq
}

// nextRecordSeq returns the next outbound record sequence_number within the
// current epoch and increments the counter.
func (s *PeerSession) nextRecordSeq() uint64 {
	seq := s.recordSeq
	s.recordSeq++
	return seq
}

// setEpoch resets the record sequence_number counter: it starts over at 0
// on every epoch change.
func (s *PeerSession) setEpoch(epoch uint16) {
	s.Epoch = epoch
	s.recordSeq = 0
}

// appendTranscript appends a handshake message's full wire encoding
// (12-byte header included) to the running transcript.
func (s *PeerSession) appendTranscript(encoded []byte) {
	s.Transcript = append(s.Transcript, encoded...)
}

func (s *PeerSession) touch() {
	s.LastActivity = time.Now()
}

// Idle reports whether the session has made no progress for at least d.
func (s *PeerSession) Idle(d time.Duration) bool {
	return time.Since(s.LastActivity) >= d
}
