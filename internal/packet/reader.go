package packet

import (
	"golang.org/x/xerrors"
)

// Reader reads big-endian primitives from a borrowed byte slice. It carries
// no DTLS semantics of its own; every Read method bounds-checks before
// advancing, returning an error instead of panicking when the underlying
// slice is exhausted.
type Reader struct {
	buffer []byte
	offset int
}

func NewReader(buffer []byte) *Reader {
	return &Reader{buffer, 0}
}

// Remaining returns the number of unread bytes left in the buffer.
func (r *Reader) Remaining() int {
	return len(r.buffer) - r.offset
}

func (r *Reader) checkRemaining(needed int) error {
	if r.Remaining() < needed {
		return xerrors.Errorf("packet: out of range: need %d bytes, %d remain", needed, r.Remaining())
	}
	return nil
}

func (r *Reader) ReadByte() (byte, error) {
	if err := r.checkRemaining(1); err != nil {
		return 0, err
	}
	v := r.buffer[r.offset]
	r.offset++
	return v, nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.checkRemaining(2); err != nil {
		return 0, err
	}
	v := networkOrder.Uint16(r.buffer[r.offset:])
	r.offset += 2
	return v, nil
}

// ReadUint24 decodes a 24-bit big-endian unsigned integer as (high<<16 |
// mid<<8 | low), never by summing independently-shifted halves.
func (r *Reader) ReadUint24() (uint32, error) {
	if err := r.checkRemaining(3); err != nil {
		return 0, err
	}
	v := uint32(r.buffer[r.offset])<<16 | uint32(r.buffer[r.offset+1])<<8 | uint32(r.buffer[r.offset+2])
	r.offset += 3
	return v, nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.checkRemaining(4); err != nil {
		return 0, err
	}
	v := networkOrder.Uint32(r.buffer[r.offset:])
	r.offset += 4
	return v, nil
}

// ReadUint48 decodes a 48-bit big-endian unsigned integer as (high16<<32 |
// low32), matching the DTLS record sequence_number encoding.
func (r *Reader) ReadUint48() (uint64, error) {
	if err := r.checkRemaining(6); err != nil {
		return 0, err
	}
	hi := uint64(networkOrder.Uint16(r.buffer[r.offset:]))
	lo := uint64(networkOrder.Uint32(r.buffer[r.offset+2:]))
	r.offset += 6
	return hi<<32 | lo, nil
}

func (r *Reader) ReadSlice(n int) ([]byte, error) {
	if err := r.checkRemaining(n); err != nil {
		return nil, err
	}
	v := r.buffer[r.offset : r.offset+n]
	r.offset += n
	return v, nil
}

func (r *Reader) Skip(n int) error {
	if err := r.checkRemaining(n); err != nil {
		return err
	}
	r.offset += n
	return nil
}

// ReadRemaining consumes and returns every byte left in the buffer.
func (r *Reader) ReadRemaining() []byte {
	v := r.buffer[r.offset:]
	r.offset += len(v)
	return v
}
