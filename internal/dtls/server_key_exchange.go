package dtls

import "github.com/lanikai/dtlsd/internal/packet"

// ServerKeyExchange carries the server's ephemeral ECDHE public key and the
// signature binding it (and both randoms) to the server's certificate.
type ServerKeyExchange struct {
	CurveType ECCurveType
	Curve     ECCurve
	PublicKey []byte // X25519 ephemeral public key, 32 bytes
	AlgoPair  AlgoPair
	Signature []byte
}

func (ServerKeyExchange) HandshakeType() HandshakeType { return HandshakeTypeServerKeyExchange }

func (s ServerKeyExchange) Marshal(w *packet.Writer) {
	w.WriteByte(byte(s.CurveType))
	w.WriteUint16(uint16(s.Curve))
	w.WriteByte(uint8(len(s.PublicKey)))
	w.WriteSlice(s.PublicKey)
	s.AlgoPair.marshal(w)
	w.WriteUint16(uint16(len(s.Signature)))
	w.WriteSlice(s.Signature)
}

// ServerECDHParams returns the byte string T = curve_type(1) || named_curve(2)
// || pubkey_len(1) || pubkey_bytes, the portion of ServerKeyExchange that is
// signed (prefixed by the two randoms; see crypto.go).
func ServerECDHParams(curve ECCurve, publicKey []byte) []byte {
	w := packet.NewWriterSize(4 + len(publicKey))
	w.WriteByte(byte(ECCurveTypeNamedCurve))
	w.WriteUint16(uint16(curve))
	w.WriteByte(uint8(len(publicKey)))
	w.WriteSlice(publicKey)
	return w.Bytes()
}

func DecodeServerKeyExchange(r *packet.Reader) (ServerKeyExchange, error) {
	var s ServerKeyExchange
	var err error

	curveTypeByte, err := r.ReadByte()
	if err != nil {
		return s, codecErrorf("server key exchange: %v", err)
	}
	s.CurveType = ECCurveType(curveTypeByte)
	if s.CurveType != ECCurveTypeNamedCurve {
		return s, codecErrorf("server key exchange: unsupported curve type %d", curveTypeByte)
	}

	curveWire, err := r.ReadUint16()
	if err != nil {
		return s, codecErrorf("server key exchange: %v", err)
	}
	s.Curve = ECCurve(curveWire)

	pubKeyLen, err := r.ReadByte()
	if err != nil {
		return s, codecErrorf("server key exchange: %v", err)
	}
	if s.PublicKey, err = r.ReadSlice(int(pubKeyLen)); err != nil {
		return s, codecErrorf("server key exchange public key: %v", err)
	}

	if s.AlgoPair, err = decodeAlgoPair(r); err != nil {
		return s, err
	}

	sigLen, err := r.ReadUint16()
	if err != nil {
		return s, codecErrorf("server key exchange: %v", err)
	}
	if s.Signature, err = r.ReadSlice(int(sigLen)); err != nil {
		return s, codecErrorf("server key exchange signature: %v", err)
	}

	return s, nil
}
