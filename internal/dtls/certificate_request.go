package dtls

import "github.com/lanikai/dtlsd/internal/packet"

// CertificateRequest asks the client to authenticate with a certificate of
// an acceptable type and signature algorithm. Certificate authorities are
// always an empty list in this core (no CA filtering).
type CertificateRequest struct {
	CertificateTypes             []CertificateType
	SupportedSignatureAlgorithms []AlgoPair
}

func (CertificateRequest) HandshakeType() HandshakeType { return HandshakeTypeCertificateRequest }

func (c CertificateRequest) Marshal(w *packet.Writer) {
	w.WriteByte(uint8(len(c.CertificateTypes)))
	for _, t := range c.CertificateTypes {
		w.WriteByte(uint8(t))
	}

	w.WriteUint16(uint16(2 * len(c.SupportedSignatureAlgorithms)))
	for _, a := range c.SupportedSignatureAlgorithms {
		a.marshal(w)
	}

	w.WriteUint16(0) // certificate_authorities: always empty
}

func DecodeCertificateRequest(r *packet.Reader) (CertificateRequest, error) {
	var c CertificateRequest

	typesLen, err := r.ReadByte()
	if err != nil {
		return c, codecErrorf("certificate request: %v", err)
	}
	typeBytes, err := r.ReadSlice(int(typesLen))
	if err != nil {
		return c, codecErrorf("certificate request types: %v", err)
	}
	for _, b := range typeBytes {
		c.CertificateTypes = append(c.CertificateTypes, CertificateType(b))
	}

	algosLen, err := r.ReadUint16()
	if err != nil {
		return c, codecErrorf("certificate request: %v", err)
	}
	if algosLen%2 != 0 {
		return c, codecErrorf("certificate request: odd signature_algorithms length %d", algosLen)
	}
	for i := 0; i < int(algosLen)/2; i++ {
		a, err := decodeAlgoPair(r)
		if err != nil {
			return c, err
		}
		c.SupportedSignatureAlgorithms = append(c.SupportedSignatureAlgorithms, a)
	}

	if _, err := r.ReadUint16(); err != nil { // certificate_authorities length
		return c, codecErrorf("certificate request: %v", err)
	}
	// certificate_authorities body is always empty in this core; any
	// trailing bytes belong to an authority list we don't interpret.
	r.ReadRemaining()

	return c, nil
}
