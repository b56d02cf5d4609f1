package dtls

import (
	"github.com/lanikai/dtlsd/internal/packet"
)

// HandshakeHeaderLength is the fixed size of a DTLS handshake header: type
// (1) + length (3) + message_seq (2) + fragment_offset (3) + fragment_length (3).
const HandshakeHeaderLength = 12

// HandshakeHeader prefixes every handshake message. This core never
// fragments a handshake message across records, so FragmentOffset is always
// 0 and FragmentLength always equals Length.
type HandshakeHeader struct {
	Type           HandshakeType
	Length         uint32 // fits in 24 bits
	MessageSeq     uint16
	FragmentOffset uint32 // fits in 24 bits; always 0
	FragmentLength uint32 // fits in 24 bits; always equals Length
}

// Body is implemented by every handshake message type. Marshal appends the
// message's body (excluding the 12-byte handshake header) to w.
type Body interface {
	HandshakeType() HandshakeType
	Marshal(w *packet.Writer)
}

func encodeHandshakeHeader(w *packet.Writer, h HandshakeHeader) {
	w.WriteByte(byte(h.Type))
	w.WriteUint24(h.Length)
	w.WriteUint16(h.MessageSeq)
	w.WriteUint24(h.FragmentOffset)
	w.WriteUint24(h.FragmentLength)
}

func decodeHandshakeHeader(r *packet.Reader) (HandshakeHeader, error) {
	var h HandshakeHeader

	typeByte, err := r.ReadByte()
	if err != nil {
		return h, codecErrorf("handshake header: %v", err)
	}
	h.Type = HandshakeType(typeByte)

	if h.Length, err = r.ReadUint24(); err != nil {
		return h, codecErrorf("handshake header: %v", err)
	}
	if h.MessageSeq, err = r.ReadUint16(); err != nil {
		return h, codecErrorf("handshake header: %v", err)
	}
	if h.FragmentOffset, err = r.ReadUint24(); err != nil {
		return h, codecErrorf("handshake header: %v", err)
	}
	if h.FragmentLength, err = r.ReadUint24(); err != nil {
		return h, codecErrorf("handshake header: %v", err)
	}

	if h.FragmentOffset != 0 || h.FragmentLength != h.Length {
		return h, codecErrorf("fragmented handshake not supported (offset=%d, fragment_length=%d, length=%d)",
			h.FragmentOffset, h.FragmentLength, h.Length)
	}

	return h, nil
}

// EncodeHandshake serializes a 12-byte handshake header followed by body's
// wire form, with the given message_seq. Length and fragment_length are
// both set to the body's encoded length; fragment_offset is always 0.
func EncodeHandshake(messageSeq uint16, body Body) []byte {
	bw := packet.NewWriter()
	body.Marshal(bw)
	payload := bw.Bytes()

	header := HandshakeHeader{
		Type:           body.HandshakeType(),
		Length:         uint32(len(payload)),
		MessageSeq:     messageSeq,
		FragmentOffset: 0,
		FragmentLength: uint32(len(payload)),
	}

	hw := packet.NewWriterSize(HandshakeHeaderLength + len(payload))
	encodeHandshakeHeader(hw, header)
	hw.WriteSlice(payload)
	return hw.Bytes()
}

// DecodeHandshake parses a handshake header from b and returns it along with
// a reader positioned at the start of the (unparsed) body.
func DecodeHandshake(b []byte) (HandshakeHeader, *packet.Reader, error) {
	r := packet.NewReader(b)
	h, err := decodeHandshakeHeader(r)
	if err != nil {
		return h, nil, err
	}
	if r.Remaining() != int(h.Length) {
		return h, nil, codecErrorf("handshake: declared length %d does not match %d remaining bytes", h.Length, r.Remaining())
	}
	return h, r, nil
}
