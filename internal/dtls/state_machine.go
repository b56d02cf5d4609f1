package dtls

import (
	"github.com/lanikai/dtlsd/internal/logging"
	"github.com/lanikai/dtlsd/internal/packet"
)

var stateMachineLog = logging.DefaultLogger.WithTag("dtls.state_machine")

// OutboundRecord is a fully-encoded DTLS record the dispatcher should send
// as one datagram, along with the metadata needed to log/test it without
// re-parsing.
type OutboundRecord struct {
	Header        RecordHeader
	HandshakeType HandshakeType
	Bytes         []byte
}

// StateMachine drives a PeerSession through the server flights of RFC 6347
// §4.2: HelloVerifyRequest challenge, then the ECDHE_ECDSA key-exchange
// flight, then parsing of the client's reciprocal Certificate and
// ClientKeyExchange. CertificateVerify, ChangeCipherSpec and Finished are
// acknowledged structurally but not validated — that belongs to the
// record-layer AEAD transform this core does not implement.
type StateMachine struct {
	crypto  *CryptoAdapter
	cookies CookieService
}

func NewStateMachine(crypto *CryptoAdapter, cookies CookieService) *StateMachine {
	return &StateMachine{crypto: crypto, cookies: cookies}
}

// HandleClientHello processes a ClientHello addressed to sess (which may be
// freshly created and still in Flight0). It returns either a single
// HelloVerifyRequest record (cookie challenge) or the five-record Flight4
// burst (cookie verified).
func (m *StateMachine) HandleClientHello(sess *PeerSession, encoded []byte, ch ClientHello) ([]OutboundRecord, error) {
	sess.touch()

	if len(ch.Cookie) == 0 {
		return m.challenge(sess, encoded, ch)
	}

	if !m.cookies.Validate(sess.PeerAddress, ch.Random, ch.Cookie) {
		// Cookie present but wrong: demote to Flight0 and re-challenge with
		// a fresh HelloVerifyRequest carrying the cookie for this address and
		// client random.
		sess.Flight = Flight0
		return m.challenge(sess, encoded, ch)
	}

	// Cookie verified. If we have the Flight0 ClientHello on file, the
	// negotiation fields SHOULD match; this core logs a mismatch but does
	// not reject it.
	if sess.ClientHello != nil && !sess.ClientHello.sameNegotiationFields(ch) {
		stateMachineLog.Warn("negotiation fields changed between Flight0 and Flight2 ClientHello from %s", sess.PeerAddress)
	}
	sess.ClientHello = &ch
	sess.appendTranscript(encoded)

	return m.sendFlight4(sess)
}

func (m *StateMachine) challenge(sess *PeerSession, encoded []byte, ch ClientHello) ([]OutboundRecord, error) {
	cookie, err := m.cookies.Generate(sess.PeerAddress, ch.Random)
	if err != nil {
		return nil, err
	}

	sess.Flight = Flight2
	sess.ClientHello = &ch
	sess.Cookie = cookie
	sess.touch()

	// RFC 6347 §4.2.1: neither the first ClientHello nor the
	// HelloVerifyRequest are included in the handshake transcript.

	hvr := HelloVerifyRequest{Version: Version12, Cookie: cookie}
	rec := m.encodeOutbound(sess, hvr, false)
	return []OutboundRecord{rec}, nil
}

func (m *StateMachine) sendFlight4(sess *PeerSession) ([]OutboundRecord, error) {
	sess.Flight = Flight4

	serverRandom, err := NewRandom()
	if err != nil {
		return nil, err
	}
	sess.ServerRandom = serverRandom

	public, private, err := m.crypto.GenerateEphemeralKeyPair()
	if err != nil {
		return nil, err
	}
	sess.EphemeralPublic = public
	sess.EphemeralPrivate = private

	chosen := firstAcceptableCipherSuite(sess.ClientHello.CipherSuiteIds)
	if chosen == CipherSuiteUnsupported {
		return nil, protocolErrorf("no acceptable cipher suite")
	}
	sess.ChosenCipherSuite = chosen

	sig, err := m.crypto.SignServerKeyExchange(sess.ClientHello.Random, serverRandom, ECCurveX25519, public[:])
	if err != nil {
		return nil, err
	}

	serverHello := ServerHello{
		Version:                 Version12,
		Random:                  serverRandom,
		ChosenCipherSuiteId:     chosen,
		ChosenCompressionMethod: CompressionMethodNull,
	}
	cert := CertificateMessage{Certificates: [][]byte{m.crypto.CertificateDER()}}
	ske := ServerKeyExchange{
		CurveType: ECCurveTypeNamedCurve,
		Curve:     ECCurveX25519,
		PublicKey: public[:],
		AlgoPair:  DefaultAlgoPair,
		Signature: sig,
	}
	certReq := CertificateRequest{
		CertificateTypes:             []CertificateType{CertificateTypeECDSA},
		SupportedSignatureAlgorithms: []AlgoPair{DefaultAlgoPair},
	}
	done := ServerHelloDone{}

	records := make([]OutboundRecord, 0, 5)
	for _, body := range []Body{serverHello, cert, ske, certReq, done} {
		records = append(records, m.encodeOutbound(sess, body, true))
	}
	return records, nil
}

func (m *StateMachine) encodeOutbound(sess *PeerSession, body Body, transcribe bool) OutboundRecord {
	seq := sess.nextMessageSeq()
	encoded := EncodeHandshake(seq, body)
	if transcribe {
		sess.appendTranscript(encoded)
	}

	header := RecordHeader{
		ContentType:    ContentTypeHandshake,
		Version:        Version12,
		Epoch:          sess.Epoch,
		SequenceNumber: sess.nextRecordSeq(),
	}
	raw := EncodeRecord(header, encoded)
	header.Length = uint16(len(encoded))

	return OutboundRecord{Header: header, HandshakeType: body.HandshakeType(), Bytes: raw}
}

func firstAcceptableCipherSuite(ids []CipherSuiteId) CipherSuiteId {
	for _, id := range ids {
		if id != CipherSuiteUnsupported {
			return id
		}
	}
	return CipherSuiteUnsupported
}

// HandleFlight4Message processes a handshake-content-type message received
// while sess is in Flight4. Certificate and ClientKeyExchange are fully
// parsed and folded into the session; CertificateVerify and Finished are
// structurally acknowledged (added to the transcript) but not validated,
// since that requires the record-layer AEAD transform this core does not
// implement.
func (m *StateMachine) HandleFlight4Message(sess *PeerSession, header HandshakeHeader, encoded []byte, body *packet.Reader) error {
	if sess.Flight != Flight4 {
		return protocolErrorf("unexpected %s while in %s", header.Type, sess.Flight)
	}
	sess.touch()
	sess.appendTranscript(encoded)

	switch header.Type {
	case HandshakeTypeCertificate:
		cert, err := DecodeCertificateMessage(body)
		if err != nil {
			return err
		}
		sess.PeerCertChain = cert.Certificates
		return nil

	case HandshakeTypeClientKeyExchange:
		cke, err := DecodeClientKeyExchange(body)
		if err != nil {
			return err
		}
		sess.PeerEphemeralPublic = cke.PublicKey

		var peerPublic [32]byte
		if len(cke.PublicKey) != len(peerPublic) {
			return cryptoErrorf("client key exchange: malformed public key length %d", len(cke.PublicKey))
		}
		copy(peerPublic[:], cke.PublicKey)

		secret, err := m.crypto.DeriveSharedSecret(peerPublic, sess.EphemeralPrivate)
		if err != nil {
			return err
		}
		sess.PreMasterSecret = &secret
		return nil

	case HandshakeTypeCertificateVerify, HandshakeTypeFinished:
		// Out of this core's scope: accepted into the transcript only.
		return nil

	default:
		return protocolErrorf("unexpected handshake type %s in Flight4", header.Type)
	}
}
