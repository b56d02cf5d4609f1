package dtls

import "github.com/lanikai/dtlsd/internal/packet"

// HelloVerifyRequest carries the cookie the server wants the client to
// echo back in its second ClientHello (RFC 6347 §4.2.1).
type HelloVerifyRequest struct {
	Version Version
	Cookie  []byte
}

func (HelloVerifyRequest) HandshakeType() HandshakeType { return HandshakeTypeHelloVerifyRequest }

func (h HelloVerifyRequest) Marshal(w *packet.Writer) {
	w.WriteUint16(h.Version.wire())
	w.WriteByte(uint8(len(h.Cookie)))
	w.WriteSlice(h.Cookie)
}

func DecodeHelloVerifyRequest(r *packet.Reader) (HelloVerifyRequest, error) {
	var h HelloVerifyRequest
	var err error

	versionWire, err := r.ReadUint16()
	if err != nil {
		return h, codecErrorf("hello verify request: %v", err)
	}
	if h.Version, err = versionFromWire(versionWire); err != nil {
		return h, err
	}

	cookieLen, err := r.ReadByte()
	if err != nil {
		return h, codecErrorf("hello verify request: %v", err)
	}
	if h.Cookie, err = r.ReadSlice(int(cookieLen)); err != nil {
		return h, codecErrorf("hello verify request cookie: %v", err)
	}
	if len(h.Cookie) != CookieLength {
		return h, codecErrorf("hello verify request: cookie length %d, want %d", len(h.Cookie), CookieLength)
	}

	return h, nil
}
