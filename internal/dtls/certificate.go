package dtls

import "github.com/lanikai/dtlsd/internal/packet"

// CertificateMessage carries an ordered chain of DER-encoded certificates,
// each length-prefixed, the whole list itself length-prefixed.
type CertificateMessage struct {
	Certificates [][]byte // DER encoded
}

func (CertificateMessage) HandshakeType() HandshakeType { return HandshakeTypeCertificate }

func (c CertificateMessage) Marshal(w *packet.Writer) {
	inner := packet.NewWriter()
	for _, cert := range c.Certificates {
		inner.WriteUint24(uint32(len(cert)))
		inner.WriteSlice(cert)
	}
	w.WriteUint24(uint32(inner.Length()))
	w.WriteSlice(inner.Bytes())
}

func DecodeCertificateMessage(r *packet.Reader) (CertificateMessage, error) {
	var c CertificateMessage

	totalLen, err := r.ReadUint24()
	if err != nil {
		return c, codecErrorf("certificate: %v", err)
	}
	if r.Remaining() != int(totalLen) {
		return c, codecErrorf("certificate: declared length %d does not match %d remaining bytes", totalLen, r.Remaining())
	}

	for r.Remaining() > 0 {
		certLen, err := r.ReadUint24()
		if err != nil {
			return c, codecErrorf("certificate entry: %v", err)
		}
		der, err := r.ReadSlice(int(certLen))
		if err != nil {
			return c, codecErrorf("certificate entry: %v", err)
		}
		c.Certificates = append(c.Certificates, der)
	}

	return c, nil
}
