package dtls

import "github.com/lanikai/dtlsd/internal/packet"

// ClientKeyExchange carries the client's ephemeral ECDHE public key.
type ClientKeyExchange struct {
	PublicKey []byte // X25519 ephemeral public key
}

func (ClientKeyExchange) HandshakeType() HandshakeType { return HandshakeTypeClientKeyExchange }

func (c ClientKeyExchange) Marshal(w *packet.Writer) {
	w.WriteByte(uint8(len(c.PublicKey)))
	w.WriteSlice(c.PublicKey)
}

func DecodeClientKeyExchange(r *packet.Reader) (ClientKeyExchange, error) {
	var c ClientKeyExchange

	length, err := r.ReadByte()
	if err != nil {
		return c, codecErrorf("client key exchange: %v", err)
	}
	if c.PublicKey, err = r.ReadSlice(int(length)); err != nil {
		return c, codecErrorf("client key exchange public key: %v", err)
	}

	return c, nil
}
