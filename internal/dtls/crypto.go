package dtls

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/crypto/curve25519"
)

// CertificateProvider is the collaborator that owns the server's self-signed
// certificate and its ECDSA private key. Its internals (certificate
// generation) are out of this core's scope; only this contract is specified.
type CertificateProvider interface {
	// CertificateDER returns the DER-encoded leaf certificate.
	CertificateDER() []byte
	// Sign produces an ECDSA signature over digest (already hashed).
	Sign(digest []byte) ([]byte, error)
}

// CryptoAdapter wraps a CertificateProvider with the key-agreement and
// fingerprinting operations the handshake needs.
type CryptoAdapter struct {
	cert CertificateProvider
}

func NewCryptoAdapter(cert CertificateProvider) *CryptoAdapter {
	return &CryptoAdapter{cert: cert}
}

// CertificateDER returns the server's DER-encoded leaf certificate.
func (c *CryptoAdapter) CertificateDER() []byte {
	return c.cert.CertificateDER()
}

// SHA256 hashes b.
func (c *CryptoAdapter) SHA256(b []byte) [32]byte {
	return sha256.Sum256(b)
}

// Sign produces an ECDSA signature over SHA-256(msg).
func (c *CryptoAdapter) Sign(msg []byte) ([]byte, error) {
	digest := c.SHA256(msg)
	sig, err := c.cert.Sign(digest[:])
	if err != nil {
		return nil, cryptoErrorf("signing: %v", err)
	}
	return sig, nil
}

// Fingerprint returns the upper-case, colon-separated SHA-256 fingerprint of
// the server's certificate, as it would appear in an SDP a=fingerprint line.
func (c *CryptoAdapter) Fingerprint() string {
	sum := sha256.Sum256(c.cert.CertificateDER())
	out := make([]byte, 0, 3*len(sum)-1)
	for i, b := range sum {
		if i > 0 {
			out = append(out, ':')
		}
		out = append(out, []byte(fmt.Sprintf("%02X", b))...)
	}
	return string(out)
}

// GenerateEphemeralKeyPair produces a fresh X25519 key pair for one
// handshake's ECDHE exchange.
func (c *CryptoAdapter) GenerateEphemeralKeyPair() (public, private [32]byte, err error) {
	if _, err = rand.Read(private[:]); err != nil {
		return public, private, cryptoErrorf("generating ephemeral key: %v", err)
	}
	pub, err := curve25519.X25519(private[:], curve25519.Basepoint)
	if err != nil {
		return public, private, cryptoErrorf("deriving ephemeral public key: %v", err)
	}
	copy(public[:], pub)
	return public, private, nil
}

// DeriveSharedSecret computes the X25519 shared secret from the local
// private scalar and the peer's public key. This is the value that would
// feed a TLS 1.2 PRF to produce the master secret; deriving that master
// secret and the symmetric record keys is out of this core's scope.
func (c *CryptoAdapter) DeriveSharedSecret(peerPublic, localPrivate [32]byte) ([32]byte, error) {
	var shared [32]byte
	out, err := curve25519.X25519(localPrivate[:], peerPublic[:])
	if err != nil {
		return shared, cryptoErrorf("deriving shared secret: %v", errors.Cause(err))
	}
	copy(shared[:], out)
	return shared, nil
}

// SignServerKeyExchange computes the ServerKeyExchange signature: sign(
// SHA-256(client_random || server_random || ServerECDHParams)).
func (c *CryptoAdapter) SignServerKeyExchange(clientRandom, serverRandom Random, curve ECCurve, ephemeralPublic []byte) ([]byte, error) {
	cr := clientRandom.Bytes()
	sr := serverRandom.Bytes()

	t := make([]byte, 0, 64+4+len(ephemeralPublic))
	t = append(t, cr[:]...)
	t = append(t, sr[:]...)
	t = append(t, ServerECDHParams(curve, ephemeralPublic)...)

	return c.Sign(t)
}
