// Portions of this file are:

// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtlsd

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"time"

	"github.com/pkg/errors"
)

// SelfSignedCertificate is the default dtls.CertificateProvider: a
// self-signed ECDSA P-256 leaf certificate generated at startup, in the
// same shape alohartc generated its WebRTC DTLS certificates.
type SelfSignedCertificate struct {
	der     []byte
	private *ecdsa.PrivateKey
}

// NewSelfSignedCertificate generates a fresh ECDSA P-256 certificate, valid
// for 30 days from now, with CommonName "dtlsd".
//
// * Use elliptic curve digital signature algorithm (ECDSA) over the
//   P-256 curve.
// * Use a randomly generated serial number.
// * Expire the certificate 30 days from now.
// * Use ECDSA with SHA-256 as the signature algorithm (this is different
//   from the certificate fingerprint — a hash of the DER ASN.1 encoding —
//   which is what gets advertised in an SDP a=fingerprint line).
func NewSelfSignedCertificate() (*SelfSignedCertificate, error) {
	notBefore := time.Now()
	notAfter := notBefore.Add(30 * 24 * time.Hour)

	serialNumberLimit := new(big.Int).Lsh(big.NewInt(1), 128)
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		return nil, errors.Wrap(err, "generating serial number")
	}

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generating ECDSA key")
	}

	template := x509.Certificate{
		SignatureAlgorithm: x509.ECDSAWithSHA256,
		SerialNumber:       serialNumber,
		Subject:            pkix.Name{CommonName: "dtlsd"},
		NotBefore:          notBefore,
		NotAfter:           notAfter,
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		return nil, errors.Wrap(err, "creating certificate")
	}

	return &SelfSignedCertificate{der: der, private: priv}, nil
}

// CertificateDER implements dtls.CertificateProvider.
func (c *SelfSignedCertificate) CertificateDER() []byte {
	return c.der
}

// Sign implements dtls.CertificateProvider: an ECDSA signature over an
// already-computed digest (ASN.1 DER encoded, as ecdsa.SignASN1 produces).
func (c *SelfSignedCertificate) Sign(digest []byte) ([]byte, error) {
	sig, err := ecdsa.SignASN1(rand.Reader, c.private, digest)
	if err != nil {
		return nil, errors.Wrap(err, "signing digest")
	}
	return sig, nil
}
