package packet

import (
	"encoding/binary"
)

var networkOrder = binary.BigEndian

// Writer appends big-endian primitives to a growable byte buffer. It carries
// no DTLS semantics of its own.
type Writer struct {
	buffer []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

// NewWriterSize pre-allocates capacity for n bytes, to avoid reallocation
// when the final size is known ahead of time (e.g. record/handshake headers).
func NewWriterSize(n int) *Writer {
	return &Writer{buffer: make([]byte, 0, n)}
}

func (w *Writer) WriteByte(v byte) {
	w.buffer = append(w.buffer, v)
}

func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	networkOrder.PutUint16(b[:], v)
	w.buffer = append(w.buffer, b[:]...)
}

// WriteUint24 encodes a 24-bit big-endian unsigned integer as (high<<16 |
// mid<<8 | low), never by summing independently-shifted halves.
func (w *Writer) WriteUint24(v uint32) {
	w.buffer = append(w.buffer, byte(v>>16), byte(v>>8), byte(v))
}

func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	networkOrder.PutUint32(b[:], v)
	w.buffer = append(w.buffer, b[:]...)
}

// WriteUint48 encodes a 48-bit big-endian unsigned integer as (high16<<32 |
// low32), matching the DTLS record sequence_number encoding.
func (w *Writer) WriteUint48(v uint64) {
	var b [6]byte
	networkOrder.PutUint16(b[0:2], uint16(v>>32))
	networkOrder.PutUint32(b[2:6], uint32(v))
	w.buffer = append(w.buffer, b[:]...)
}

func (w *Writer) WriteSlice(p []byte) {
	w.buffer = append(w.buffer, p...)
}

// Length returns the number of bytes written so far.
func (w *Writer) Length() int {
	return len(w.buffer)
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.buffer
}

func (w *Writer) Reset() {
	w.buffer = w.buffer[:0]
}
