package dtls

import (
	"bytes"

	"github.com/lanikai/dtlsd/internal/packet"
)

// ClientHello is the first message a client sends, repeated once more with
// an echoed cookie once the server issues a HelloVerifyRequest.
type ClientHello struct {
	Version            Version
	Random             Random
	SessionID          []byte // always empty; resumption is out of scope
	Cookie             []byte // empty on the first ClientHello, 20 bytes on the second
	CipherSuiteIds     []CipherSuiteId
	CompressionMethods []CompressionMethodId
	// Extensions are tolerated but not interpreted by this core; the raw
	// bytes are retained so Marshal re-encodes them unchanged.
	Extensions []byte
}

func (ClientHello) HandshakeType() HandshakeType { return HandshakeTypeClientHello }

func (c ClientHello) Marshal(w *packet.Writer) {
	w.WriteUint16(c.Version.wire())
	c.Random.Marshal(w)

	w.WriteByte(uint8(len(c.SessionID)))
	w.WriteSlice(c.SessionID)

	w.WriteByte(uint8(len(c.Cookie)))
	w.WriteSlice(c.Cookie)

	w.WriteUint16(uint16(2 * len(c.CipherSuiteIds)))
	for _, id := range c.CipherSuiteIds {
		w.WriteUint16(uint16(id))
	}

	w.WriteByte(uint8(len(c.CompressionMethods)))
	for _, m := range c.CompressionMethods {
		w.WriteByte(uint8(m))
	}

	w.WriteSlice(c.Extensions)
}

// DecodeClientHello parses the body of a ClientHello message (the bytes
// following the 12-byte handshake header). Unrecognized cipher suite ids
// are mapped to CipherSuiteUnsupported rather than rejected outright; the
// ClientHello as a whole is only rejected if none of its cipher suites are
// recognized. Extensions are consumed but not interpreted.
func DecodeClientHello(r *packet.Reader) (ClientHello, error) {
	var c ClientHello
	var err error

	versionWire, err := r.ReadUint16()
	if err != nil {
		return c, codecErrorf("client hello: %v", err)
	}
	if c.Version, err = versionFromWire(versionWire); err != nil {
		return c, err
	}

	if c.Random, err = decodeRandom(r); err != nil {
		return c, err
	}

	sessionIDLen, err := r.ReadByte()
	if err != nil {
		return c, codecErrorf("client hello: %v", err)
	}
	if c.SessionID, err = r.ReadSlice(int(sessionIDLen)); err != nil {
		return c, codecErrorf("client hello session id: %v", err)
	}

	cookieLen, err := r.ReadByte()
	if err != nil {
		return c, codecErrorf("client hello: %v", err)
	}
	if c.Cookie, err = r.ReadSlice(int(cookieLen)); err != nil {
		return c, codecErrorf("client hello cookie: %v", err)
	}

	cipherSuitesLen, err := r.ReadUint16()
	if err != nil {
		return c, codecErrorf("client hello: %v", err)
	}
	if cipherSuitesLen%2 != 0 {
		return c, codecErrorf("client hello: odd cipher_suites length %d", cipherSuitesLen)
	}
	for i := 0; i < int(cipherSuitesLen)/2; i++ {
		idWire, err := r.ReadUint16()
		if err != nil {
			return c, codecErrorf("client hello cipher suite: %v", err)
		}
		c.CipherSuiteIds = append(c.CipherSuiteIds, cipherSuiteFromWire(idWire))
	}
	if !hasAcceptableCipherSuite(c.CipherSuiteIds) {
		return c, protocolErrorf("no acceptable cipher suite")
	}

	compressionLen, err := r.ReadByte()
	if err != nil {
		return c, codecErrorf("client hello: %v", err)
	}
	compressionBytes, err := r.ReadSlice(int(compressionLen))
	if err != nil {
		return c, codecErrorf("client hello compression methods: %v", err)
	}
	for _, b := range compressionBytes {
		c.CompressionMethods = append(c.CompressionMethods, CompressionMethodId(b))
	}

	// Extensions, if any, occupy the remainder of the message. Tolerated,
	// never interpreted, never a decode failure.
	c.Extensions = r.ReadRemaining()

	return c, nil
}

func hasAcceptableCipherSuite(ids []CipherSuiteId) bool {
	for _, id := range ids {
		if id != CipherSuiteUnsupported {
			return true
		}
	}
	return false
}

// sameNegotiationFields reports whether two ClientHellos carry byte-identical
// version, random, session_id, cipher_suite_ids and compression_methods, as
// required when comparing the Flight0 and Flight2 ClientHellos.
func (c ClientHello) sameNegotiationFields(other ClientHello) bool {
	if c.Version != other.Version {
		return false
	}
	if c.Random != other.Random {
		return false
	}
	if !bytes.Equal(c.SessionID, other.SessionID) {
		return false
	}
	if len(c.CipherSuiteIds) != len(other.CipherSuiteIds) {
		return false
	}
	for i := range c.CipherSuiteIds {
		if c.CipherSuiteIds[i] != other.CipherSuiteIds[i] {
			return false
		}
	}
	if len(c.CompressionMethods) != len(other.CompressionMethods) {
		return false
	}
	for i := range c.CompressionMethods {
		if c.CompressionMethods[i] != other.CompressionMethods[i] {
			return false
		}
	}
	return true
}
