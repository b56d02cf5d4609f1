package dtls

import (
	"github.com/lanikai/dtlsd/internal/packet"
)

// RecordHeaderLength is the fixed size of a DTLS record header: content
// type (1) + version (2) + epoch (2) + sequence_number (6) + length (2).
const RecordHeaderLength = 13

// RecordHeader is the 13-byte header prefixing every DTLS record.
type RecordHeader struct {
	ContentType    ContentType
	Version        Version
	Epoch          uint16
	SequenceNumber uint64 // fits in 48 bits
	Length         uint16
}

// EncodeRecordHeader writes h's 13 bytes into w. The caller is responsible
// for setting h.Length to len(payload) beforehand.
func EncodeRecordHeader(w *packet.Writer, h RecordHeader) {
	w.WriteByte(byte(h.ContentType))
	w.WriteUint16(h.Version.wire())
	w.WriteUint16(h.Epoch)
	w.WriteUint48(h.SequenceNumber)
	w.WriteUint16(h.Length)
}

// DecodeRecordHeader reads a 13-byte record header from r.
func DecodeRecordHeader(r *packet.Reader) (RecordHeader, error) {
	var h RecordHeader

	ctByte, err := r.ReadByte()
	if err != nil {
		return h, codecErrorf("record header: %v", err)
	}
	// Content type is not validated here: recognizing which types are
	// acceptable is the dispatcher's policy, not the codec's.
	h.ContentType = ContentType(ctByte)

	versionWire, err := r.ReadUint16()
	if err != nil {
		return h, codecErrorf("record header: %v", err)
	}
	h.Version, err = versionFromWire(versionWire)
	if err != nil {
		return h, err
	}

	if h.Epoch, err = r.ReadUint16(); err != nil {
		return h, codecErrorf("record header: %v", err)
	}
	if h.SequenceNumber, err = r.ReadUint48(); err != nil {
		return h, codecErrorf("record header: %v", err)
	}
	if h.Length, err = r.ReadUint16(); err != nil {
		return h, codecErrorf("record header: %v", err)
	}

	return h, nil
}

// EncodeRecord serializes a full record: header followed by payload. The
// state machine, not this function, chooses sequence_number and epoch; this
// function only serializes what it is given.
func EncodeRecord(h RecordHeader, payload []byte) []byte {
	h.Length = uint16(len(payload))
	w := packet.NewWriterSize(RecordHeaderLength + len(payload))
	EncodeRecordHeader(w, h)
	w.WriteSlice(payload)
	return w.Bytes()
}

// DecodeRecord parses a single DTLS record out of b, returning its header
// and a slice view of the payload. It fails if the declared length does not
// equal the number of trailing bytes.
func DecodeRecord(b []byte) (RecordHeader, []byte, error) {
	r := packet.NewReader(b)
	h, err := DecodeRecordHeader(r)
	if err != nil {
		return h, nil, err
	}

	payload := r.ReadRemaining()
	if int(h.Length) != len(payload) {
		return h, nil, codecErrorf("record: length %d does not match payload of %d bytes", h.Length, len(payload))
	}

	return h, payload, nil
}
