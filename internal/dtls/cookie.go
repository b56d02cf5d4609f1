package dtls

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"net"

	"github.com/pkg/errors"
)

// CookieLength is the fixed size of the opaque cookie this core issues in
// HelloVerifyRequest and expects echoed in the client's second ClientHello.
const CookieLength = 20

// CookieService generates and validates stateless cookies bound to a peer
// address and the client random it first appeared with.
type CookieService interface {
	// Generate returns the CookieLength-byte cookie for addr/clientRandom;
	// the same inputs always yield the same cookie.
	Generate(addr net.Addr, clientRandom Random) ([]byte, error)
	// Validate reports whether cookie is the one Generate would produce for
	// addr/clientRandom, without requiring any prior state for addr.
	Validate(addr net.Addr, clientRandom Random, cookie []byte) bool
}

// hmacCookieService implements the HMAC-bound cookie recommended by
// RFC 6347 §4.2.1: cookie = truncate20(HMAC-SHA256(secret, addr ||
// clientRandom)). Validation never consults per-peer state, so a valid
// cookie is accepted even for an address with no tracked PeerSession. The
// dispatcher still allocates a PeerSession before validating, and keeps it
// when a forged cookie is answered with a new HelloVerifyRequest.
type hmacCookieService struct {
	secret [32]byte
}

// NewHMACCookieService creates a CookieService with a fresh random secret.
// The secret is generated once at startup and never persisted; restarting
// the process invalidates all outstanding cookies, which only forces an
// extra round trip, not a protocol failure.
func NewHMACCookieService() (CookieService, error) {
	var s hmacCookieService
	if _, err := rand.Read(s.secret[:]); err != nil {
		return nil, errors.Wrap(err, "dtls: generating cookie secret")
	}
	return &s, nil
}

func (s *hmacCookieService) mac(addr net.Addr, clientRandom Random) []byte {
	h := hmac.New(sha256.New, s.secret[:])
	h.Write([]byte(addr.String()))
	randomBytes := clientRandom.Bytes()
	h.Write(randomBytes[:])
	return h.Sum(nil)[:CookieLength]
}

func (s *hmacCookieService) Generate(addr net.Addr, clientRandom Random) ([]byte, error) {
	return s.mac(addr, clientRandom), nil
}

func (s *hmacCookieService) Validate(addr net.Addr, clientRandom Random, cookie []byte) bool {
	if len(cookie) != CookieLength {
		return false
	}
	want := s.mac(addr, clientRandom)
	return subtle.ConstantTimeCompare(want, cookie) == 1
}
