package packet

import (
	"reflect"
	"testing"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteByte(0x42)
	w.WriteUint16(0xBEEF)
	w.WriteUint24(0x010203)
	w.WriteUint32(0xDEADBEEF)
	w.WriteUint48(0x0102030405)
	w.WriteSlice([]byte{1, 2, 3})

	r := NewReader(w.Bytes())

	if b, err := r.ReadByte(); err != nil || b != 0x42 {
		t.Fatalf("ReadByte: got (%#x, %v), want (0x42, nil)", b, err)
	}
	if v, err := r.ReadUint16(); err != nil || v != 0xBEEF {
		t.Fatalf("ReadUint16: got (%#x, %v), want (0xbeef, nil)", v, err)
	}
	if v, err := r.ReadUint24(); err != nil || v != 0x010203 {
		t.Fatalf("ReadUint24: got (%#x, %v), want (0x010203, nil)", v, err)
	}
	if v, err := r.ReadUint32(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("ReadUint32: got (%#x, %v), want (0xdeadbeef, nil)", v, err)
	}
	if v, err := r.ReadUint48(); err != nil || v != 0x0102030405 {
		t.Fatalf("ReadUint48: got (%#x, %v), want (0x0102030405, nil)", v, err)
	}
	if s, err := r.ReadSlice(3); err != nil || !reflect.DeepEqual(s, []byte{1, 2, 3}) {
		t.Fatalf("ReadSlice: got (%v, %v), want ([1 2 3], nil)", s, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining: got %d, want 0", r.Remaining())
	}
}

func TestUint24BoundaryValues(t *testing.T) {
	w := NewWriter()
	w.WriteUint24(0xFFFFFF)
	r := NewReader(w.Bytes())
	if v, err := r.ReadUint24(); err != nil || v != 0xFFFFFF {
		t.Fatalf("max uint24: got (%#x, %v), want (0xffffff, nil)", v, err)
	}
}

func TestUint48BoundaryValues(t *testing.T) {
	w := NewWriter()
	w.WriteUint48(0xFFFFFFFFFFFF)
	r := NewReader(w.Bytes())
	if v, err := r.ReadUint48(); err != nil || v != 0xFFFFFFFFFFFF {
		t.Fatalf("max uint48: got (%#x, %v), want (0xffffffffffff, nil)", v, err)
	}
}

func TestReaderOutOfRangeDoesNotPanic(t *testing.T) {
	r := NewReader([]byte{0x01})

	if _, err := r.ReadUint32(); err == nil {
		t.Fatal("ReadUint32 on short buffer: got nil error, want out-of-range error")
	}

	// The reader must remain usable (and the process must not have
	// panicked) after a failed read.
	if _, err := r.ReadByte(); err != nil {
		t.Fatalf("ReadByte after failed ReadUint32: got error %v, want nil", err)
	}
}

func TestReaderEmptyBufferErrors(t *testing.T) {
	r := NewReader(nil)
	if _, err := r.ReadByte(); err == nil {
		t.Fatal("ReadByte on empty buffer: got nil error, want out-of-range error")
	}
}

func TestWriterGrowsPastInitialCapacity(t *testing.T) {
	w := NewWriterSize(1)
	for i := 0; i < 100; i++ {
		w.WriteByte(byte(i))
	}
	if w.Length() != 100 {
		t.Fatalf("Length: got %d, want 100", w.Length())
	}
}

func TestWriterReset(t *testing.T) {
	w := NewWriter()
	w.WriteByte(1)
	w.WriteByte(2)
	w.Reset()
	if w.Length() != 0 {
		t.Fatalf("Length after Reset: got %d, want 0", w.Length())
	}
}
