package dtls

import "github.com/lanikai/dtlsd/internal/packet"

// CipherSuiteId identifies a TLS cipher suite by its registered 16-bit id.
type CipherSuiteId uint16

const (
	// CipherSuiteECDHE_ECDSA_WITH_AES_128_GCM_SHA256 is the only cipher
	// suite this core negotiates.
	CipherSuiteECDHE_ECDSA_WITH_AES_128_GCM_SHA256 CipherSuiteId = 0xC02B

	// CipherSuiteUnsupported marks any id this core does not recognize.
	CipherSuiteUnsupported CipherSuiteId = 0xFFFF
)

func cipherSuiteFromWire(v uint16) CipherSuiteId {
	id := CipherSuiteId(v)
	if id == CipherSuiteECDHE_ECDSA_WITH_AES_128_GCM_SHA256 {
		return id
	}
	return CipherSuiteUnsupported
}

// CompressionMethodId identifies a TLS compression method. Only Null is
// accepted by this core.
type CompressionMethodId uint8

const CompressionMethodNull CompressionMethodId = 0

// ECCurveType identifies how an elliptic curve is specified in
// ServerKeyExchange. Only NamedCurve is supported.
type ECCurveType uint8

const ECCurveTypeNamedCurve ECCurveType = 3

// ECCurve identifies a named elliptic curve. Only X25519 is supported.
type ECCurve uint16

const ECCurveX25519 ECCurve = 0x001D

// HashAlgorithm identifies a signature hash algorithm.
type HashAlgorithm uint8

const HashAlgorithmSHA256 HashAlgorithm = 4

// SignatureAlgorithm identifies a signature algorithm.
type SignatureAlgorithm uint8

const SignatureAlgorithmECDSA SignatureAlgorithm = 3

// AlgoPair bundles a hash and signature algorithm, serialized hash-then-
// signature as a single byte each.
type AlgoPair struct {
	Hash      HashAlgorithm
	Signature SignatureAlgorithm
}

// DefaultAlgoPair is the only (hash, signature) combination this core offers
// or accepts.
var DefaultAlgoPair = AlgoPair{HashAlgorithmSHA256, SignatureAlgorithmECDSA}

func (a AlgoPair) marshal(w *packet.Writer) {
	w.WriteByte(byte(a.Hash))
	w.WriteByte(byte(a.Signature))
}

func decodeAlgoPair(r *packet.Reader) (AlgoPair, error) {
	var a AlgoPair
	hash, err := r.ReadByte()
	if err != nil {
		return a, codecErrorf("algo pair: %v", err)
	}
	sig, err := r.ReadByte()
	if err != nil {
		return a, codecErrorf("algo pair: %v", err)
	}
	a.Hash = HashAlgorithm(hash)
	a.Signature = SignatureAlgorithm(sig)
	return a, nil
}

// CertificateType identifies the kind of certificate a client may present
// to satisfy a CertificateRequest. Only ECDSA is offered by this core.
type CertificateType uint8

const CertificateTypeECDSA CertificateType = 64
