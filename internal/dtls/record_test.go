package dtls

import "testing"

func TestRecordHeaderRoundTrip(t *testing.T) {
	h := RecordHeader{
		ContentType:    ContentTypeHandshake,
		Version:        Version12,
		Epoch:          1,
		SequenceNumber: 0x0102030405,
		Length:         7,
	}

	encoded := EncodeRecord(h, []byte{1, 2, 3, 4, 5, 6, 7})
	decoded, payload, err := DecodeRecord(encoded)
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if decoded != h {
		t.Fatalf("DecodeRecord header: got %+v, want %+v", decoded, h)
	}
	if len(payload) != 7 {
		t.Fatalf("payload length: got %d, want 7", len(payload))
	}
}

func TestDecodeRecordRejectsLengthMismatch(t *testing.T) {
	h := RecordHeader{ContentType: ContentTypeHandshake, Version: Version12}
	encoded := EncodeRecord(h, []byte{1, 2, 3})
	encoded = append(encoded, 0xFF) // trailing garbage not covered by length

	if _, _, err := DecodeRecord(encoded); err == nil {
		t.Fatal("DecodeRecord with trailing bytes: got nil error, want length mismatch error")
	}
}

func TestDecodeRecordPassesThroughUnknownContentType(t *testing.T) {
	// The codec itself doesn't police which content types are acceptable;
	// that's the dispatcher's job (see TestDispatcherLogsAndDropsUnknownContentType).
	encoded := EncodeRecord(RecordHeader{ContentType: ContentType(99), Version: Version12}, nil)
	decoded, _, err := DecodeRecord(encoded)
	if err != nil {
		t.Fatalf("DecodeRecord with content type 99: %v", err)
	}
	if decoded.ContentType != ContentType(99) {
		t.Fatalf("ContentType: got %d, want 99", decoded.ContentType)
	}
}
