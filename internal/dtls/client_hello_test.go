package dtls

import (
	"reflect"
	"testing"

	"github.com/lanikai/dtlsd/internal/packet"
)

func sampleClientHello() ClientHello {
	random, _ := NewRandom()
	return ClientHello{
		Version:            Version12,
		Random:             random,
		SessionID:          nil,
		Cookie:             nil,
		CipherSuiteIds:     []CipherSuiteId{CipherSuiteECDHE_ECDSA_WITH_AES_128_GCM_SHA256},
		CompressionMethods: []CompressionMethodId{CompressionMethodNull},
	}
}

func TestClientHelloRoundTripNoExtensions(t *testing.T) {
	ch := sampleClientHello()

	w := packet.NewWriter()
	ch.Marshal(w)

	decoded, err := DecodeClientHello(packet.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeClientHello: %v", err)
	}
	if !reflect.DeepEqual(decoded.CipherSuiteIds, ch.CipherSuiteIds) {
		t.Fatalf("CipherSuiteIds: got %v, want %v", decoded.CipherSuiteIds, ch.CipherSuiteIds)
	}
	if decoded.Random != ch.Random {
		t.Fatalf("Random: got %+v, want %+v", decoded.Random, ch.Random)
	}
	if len(decoded.Extensions) != 0 {
		t.Fatalf("Extensions: got %d bytes, want 0", len(decoded.Extensions))
	}
}

func TestClientHelloUnsupportedCipherSuiteMapped(t *testing.T) {
	ch := sampleClientHello()
	ch.CipherSuiteIds = []CipherSuiteId{0x1234, CipherSuiteECDHE_ECDSA_WITH_AES_128_GCM_SHA256}

	w := packet.NewWriter()
	ch.Marshal(w)

	decoded, err := DecodeClientHello(packet.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeClientHello: %v", err)
	}
	want := []CipherSuiteId{CipherSuiteUnsupported, CipherSuiteECDHE_ECDSA_WITH_AES_128_GCM_SHA256}
	if !reflect.DeepEqual(decoded.CipherSuiteIds, want) {
		t.Fatalf("CipherSuiteIds: got %v, want %v", decoded.CipherSuiteIds, want)
	}
}

func TestClientHelloRejectsNoAcceptableCipherSuite(t *testing.T) {
	ch := sampleClientHello()
	ch.CipherSuiteIds = []CipherSuiteId{0x1234, 0x5678}

	w := packet.NewWriter()
	ch.Marshal(w)

	if _, err := DecodeClientHello(packet.NewReader(w.Bytes())); err == nil {
		t.Fatal("DecodeClientHello with no acceptable cipher suite: got nil error, want protocol error")
	}
}

func TestClientHelloPreservesTrailingExtensionBytes(t *testing.T) {
	ch := sampleClientHello()
	ch.Extensions = []byte{0x00, 0x0d, 0x00, 0x02, 0xAB, 0xCD}

	w := packet.NewWriter()
	ch.Marshal(w)

	decoded, err := DecodeClientHello(packet.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeClientHello: %v", err)
	}
	if !reflect.DeepEqual(decoded.Extensions, ch.Extensions) {
		t.Fatalf("Extensions: got %v, want %v", decoded.Extensions, ch.Extensions)
	}
}

func TestSameNegotiationFields(t *testing.T) {
	a := sampleClientHello()
	b := a
	b.Cookie = []byte{1, 2, 3} // cookie is allowed to differ between the two ClientHellos

	if !a.sameNegotiationFields(b) {
		t.Fatal("sameNegotiationFields: got false for identical negotiation fields, want true")
	}

	c := a
	c.Random, _ = NewRandom()
	if a.sameNegotiationFields(c) {
		t.Fatal("sameNegotiationFields: got true with differing Random, want false")
	}
}
