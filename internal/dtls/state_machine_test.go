package dtls

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStateMachine(t *testing.T) *StateMachine {
	t.Helper()
	cert := newStubCertificateProvider(t)
	crypto := NewCryptoAdapter(cert)
	cookies, err := NewHMACCookieService()
	require.NoError(t, err)
	return NewStateMachine(crypto, cookies)
}

func testAddr() net.Addr {
	return &net.UDPAddr{IP: net.ParseIP("203.0.113.5"), Port: 52341}
}

func TestFirstClientHelloYieldsOneHelloVerifyRequest(t *testing.T) {
	sm := newTestStateMachine(t)
	sess := NewPeerSession(testAddr())

	ch := sampleClientHello()
	records, err := sm.HandleClientHello(sess, EncodeHandshake(0, ch), ch)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, HandshakeTypeHelloVerifyRequest, records[0].HandshakeType)
	assert.Equal(t, Flight2, sess.Flight)
	assert.Len(t, sess.Cookie, CookieLength)
}

func TestEchoedCookieYieldsOrderedFlight4Burst(t *testing.T) {
	sm := newTestStateMachine(t)
	sess := NewPeerSession(testAddr())

	first := sampleClientHello()
	_, err := sm.HandleClientHello(sess, EncodeHandshake(0, first), first)
	require.NoError(t, err)

	echoed := first
	echoed.Cookie = sess.Cookie

	records, err := sm.HandleClientHello(sess, EncodeHandshake(1, echoed), echoed)
	require.NoError(t, err)
	require.Len(t, records, 5)

	wantTypes := []HandshakeType{
		HandshakeTypeServerHello,
		HandshakeTypeCertificate,
		HandshakeTypeServerKeyExchange,
		HandshakeTypeCertificateRequest,
		HandshakeTypeServerHelloDone,
	}
	for i, rec := range records {
		assert.Equalf(t, wantTypes[i], rec.HandshakeType, "record %d type", i)

		header, _, err := DecodeHandshake(rec.Bytes[RecordHeaderLength:])
		require.NoError(t, err)
		assert.Equalf(t, uint16(i+1), header.MessageSeq, "record %d message_seq", i)

		recordHeader, _, err := DecodeRecord(rec.Bytes)
		require.NoError(t, err)
		// record_seq 0 was already consumed by the HelloVerifyRequest sent
		// in response to the first ClientHello.
		assert.Equalf(t, uint64(i+1), recordHeader.SequenceNumber, "record %d sequence_number", i)
	}

	assert.Equal(t, Flight4, sess.Flight)
	assert.NotEqual(t, CipherSuiteUnsupported, sess.ChosenCipherSuite)
}

func TestWrongCookieReChallenges(t *testing.T) {
	sm := newTestStateMachine(t)
	sess := NewPeerSession(testAddr())

	first := sampleClientHello()
	_, err := sm.HandleClientHello(sess, EncodeHandshake(0, first), first)
	require.NoError(t, err)
	firstCookie := append([]byte{}, sess.Cookie...)

	wrong := first
	wrong.Cookie = make([]byte, CookieLength) // all zero, almost certainly wrong

	records, err := sm.HandleClientHello(sess, EncodeHandshake(1, wrong), wrong)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, HandshakeTypeHelloVerifyRequest, records[0].HandshakeType)
	assert.Equal(t, Flight2, sess.Flight)
	// The HMAC cookie depends only on the address and client random, so the
	// re-challenge carries the same cookie the first one did.
	assert.Equal(t, firstCookie, sess.Cookie)
}

func TestClientKeyExchangeDerivesPreMasterSecret(t *testing.T) {
	sm := newTestStateMachine(t)
	sess := NewPeerSession(testAddr())

	first := sampleClientHello()
	_, err := sm.HandleClientHello(sess, EncodeHandshake(0, first), first)
	require.NoError(t, err)

	echoed := first
	echoed.Cookie = sess.Cookie
	_, err = sm.HandleClientHello(sess, EncodeHandshake(1, echoed), echoed)
	require.NoError(t, err)

	clientPublic, _, err := NewCryptoAdapter(newStubCertificateProvider(t)).GenerateEphemeralKeyPair()
	require.NoError(t, err)

	cke := ClientKeyExchange{PublicKey: clientPublic[:]}
	encoded := EncodeHandshake(6, cke)
	header, body, err := DecodeHandshake(encoded)
	require.NoError(t, err)

	err = sm.HandleFlight4Message(sess, header, encoded, body)
	require.NoError(t, err)
	require.NotNil(t, sess.PreMasterSecret)
}

func TestFlight4MessageRejectedBeforeFlight4(t *testing.T) {
	sm := newTestStateMachine(t)
	sess := NewPeerSession(testAddr())

	cke := ClientKeyExchange{PublicKey: make([]byte, 32)}
	encoded := EncodeHandshake(0, cke)
	header, body, err := DecodeHandshake(encoded)
	require.NoError(t, err)

	err = sm.HandleFlight4Message(sess, header, encoded, body)
	assert.Error(t, err)
}
