package dtls

import "github.com/lanikai/dtlsd/internal/packet"

// ServerHello is the server's reply to a cookie-verified ClientHello,
// naming the negotiated version, random, and cipher suite. Resumption is
// disabled, so session_id is always empty and extensions are omitted.
type ServerHello struct {
	Version                 Version
	Random                  Random
	ChosenCipherSuiteId     CipherSuiteId
	ChosenCompressionMethod CompressionMethodId
}

func (ServerHello) HandshakeType() HandshakeType { return HandshakeTypeServerHello }

func (s ServerHello) Marshal(w *packet.Writer) {
	w.WriteUint16(s.Version.wire())
	s.Random.Marshal(w)
	w.WriteByte(0) // session_id length: resumption disabled
	w.WriteUint16(uint16(s.ChosenCipherSuiteId))
	w.WriteByte(uint8(s.ChosenCompressionMethod))
}

func DecodeServerHello(r *packet.Reader) (ServerHello, error) {
	var s ServerHello
	var err error

	versionWire, err := r.ReadUint16()
	if err != nil {
		return s, codecErrorf("server hello: %v", err)
	}
	if s.Version, err = versionFromWire(versionWire); err != nil {
		return s, err
	}

	if s.Random, err = decodeRandom(r); err != nil {
		return s, err
	}

	sessionIDLen, err := r.ReadByte()
	if err != nil {
		return s, codecErrorf("server hello: %v", err)
	}
	if _, err = r.ReadSlice(int(sessionIDLen)); err != nil {
		return s, codecErrorf("server hello session id: %v", err)
	}

	cipherWire, err := r.ReadUint16()
	if err != nil {
		return s, codecErrorf("server hello: %v", err)
	}
	s.ChosenCipherSuiteId = cipherSuiteFromWire(cipherWire)

	compressionByte, err := r.ReadByte()
	if err != nil {
		return s, codecErrorf("server hello: %v", err)
	}
	s.ChosenCompressionMethod = CompressionMethodId(compressionByte)

	return s, nil
}
