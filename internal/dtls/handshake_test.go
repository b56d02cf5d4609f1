package dtls

import (
	"testing"

	"github.com/lanikai/dtlsd/internal/packet"
)

func TestEncodeDecodeHandshakeRoundTrip(t *testing.T) {
	body := ServerHelloDone{}
	encoded := EncodeHandshake(5, body)

	header, r, err := DecodeHandshake(encoded)
	if err != nil {
		t.Fatalf("DecodeHandshake: %v", err)
	}
	if header.Type != HandshakeTypeServerHelloDone {
		t.Fatalf("Type: got %v, want ServerHelloDone", header.Type)
	}
	if header.MessageSeq != 5 {
		t.Fatalf("MessageSeq: got %d, want 5", header.MessageSeq)
	}
	if header.FragmentOffset != 0 || header.FragmentLength != header.Length {
		t.Fatalf("fragment fields: got offset=%d length=%d fragment_length=%d",
			header.FragmentOffset, header.Length, header.FragmentLength)
	}
	if r.Remaining() != 0 {
		t.Fatalf("body remaining: got %d, want 0", r.Remaining())
	}
}

func TestDecodeHandshakeRejectsFragmentedMessage(t *testing.T) {
	w := packet.NewWriter()
	encodeHandshakeHeader(w, HandshakeHeader{
		Type:           HandshakeTypeCertificate,
		Length:         10,
		MessageSeq:     0,
		FragmentOffset: 2,
		FragmentLength: 8,
	})
	if _, _, err := DecodeHandshake(w.Bytes()); err == nil {
		t.Fatal("DecodeHandshake with non-zero fragment_offset: got nil error, want codec error")
	}
}

func TestDecodeHandshakeRejectsDeclaredLengthMismatch(t *testing.T) {
	encoded := EncodeHandshake(0, ServerHelloDone{})
	encoded = append(encoded, 0xFF) // extra byte past what header.Length declares

	if _, _, err := DecodeHandshake(encoded); err == nil {
		t.Fatal("DecodeHandshake with trailing byte: got nil error, want length mismatch error")
	}
}
