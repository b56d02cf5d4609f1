package dtls

import (
	"net"
	"testing"
)

func TestHMACCookieGenerateValidate(t *testing.T) {
	svc, err := NewHMACCookieService()
	if err != nil {
		t.Fatalf("NewHMACCookieService: %v", err)
	}

	addr := &net.UDPAddr{IP: net.ParseIP("198.51.100.7"), Port: 9000}
	random, _ := NewRandom()

	cookie, err := svc.Generate(addr, random)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(cookie) != CookieLength {
		t.Fatalf("cookie length: got %d, want %d", len(cookie), CookieLength)
	}
	if !svc.Validate(addr, random, cookie) {
		t.Fatal("Validate: got false for freshly issued cookie, want true")
	}
}

func TestHMACCookieRejectedByOtherInstance(t *testing.T) {
	// Two services, each with their own secret: a cookie from one must not
	// validate against the other, proving validation actually depends on
	// the secret rather than accepting anything CookieLength bytes long.
	a, _ := NewHMACCookieService()
	b, _ := NewHMACCookieService()

	addr := &net.UDPAddr{IP: net.ParseIP("198.51.100.7"), Port: 9000}
	random, _ := NewRandom()

	cookie, _ := a.Generate(addr, random)
	if b.Validate(addr, random, cookie) {
		t.Fatal("Validate: cookie from a different secret validated, want false")
	}
}

func TestHMACCookieRejectsWrongAddress(t *testing.T) {
	svc, _ := NewHMACCookieService()
	random, _ := NewRandom()

	addr := &net.UDPAddr{IP: net.ParseIP("198.51.100.7"), Port: 9000}
	other := &net.UDPAddr{IP: net.ParseIP("198.51.100.8"), Port: 9000}

	cookie, _ := svc.Generate(addr, random)
	if svc.Validate(other, random, cookie) {
		t.Fatal("Validate: cookie accepted for a different address, want false")
	}
}

func TestHMACCookieRejectsWrongLength(t *testing.T) {
	svc, _ := NewHMACCookieService()
	addr := &net.UDPAddr{IP: net.ParseIP("198.51.100.7"), Port: 9000}
	random, _ := NewRandom()

	if svc.Validate(addr, random, []byte{1, 2, 3}) {
		t.Fatal("Validate: short cookie accepted, want false")
	}
}
