package crypto

// certificate.go - parsing of the wallet certificate sent with getpid/getmdl requests and
// validation of its signature algorithm and public key curve against the configured allow-list.

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"slices"
)

// AllowList maps a signature algorithm name to the public key curves permitted with it.
// Names are matched exactly (see algorithm.go for the vocabulary).
type AllowList map[string][]string

// Permits reports whether the algorithm is listed and the curve is allowed for that algorithm.
// A curve allowed under a different algorithm is not accepted.
func (a AllowList) Permits(algorithm, curve string) bool {
	curves, ok := a[algorithm]
	if !ok {
		return false
	}
	return slices.Contains(curves, curve)
}

// CertAlgoResult is the outcome of ValidateCertAlgo.
type CertAlgoResult struct {
	// OK is true when both the algorithm and the curve are permitted
	OK bool

	// Algorithm is the certificate signature algorithm name (empty if the certificate could not be parsed)
	Algorithm string

	// Curve is the public key curve name, CurveUnknown if not determined
	Curve string
}

// ParseCertificate parses a single X.509 certificate from PEM or DER encoded data.
//
// PEM input must contain a CERTIFICATE block; other block types are rejected.
// Input that contains no PEM block at all is treated as DER.
func ParseCertificate(data []byte) (*x509.Certificate, error) {
	if len(data) == 0 {
		return nil, NewCertificateError("empty certificate")
	}

	der := data
	if block, _ := pem.Decode(data); block != nil {
		if block.Type != "CERTIFICATE" {
			return nil, NewCertificateError(fmt.Sprintf("PEM block is not a certificate (type: %s)", block.Type))
		}
		der = block.Bytes
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, WrapCertificateError(err, "failed to parse certificate")
	}

	return cert, nil
}

// CheckCertAlgo checks an already parsed certificate against the allow-list.
//
// The algorithm is checked first: an algorithm absent from the allow-list is rejected
// regardless of the curve. Only then is the curve looked up in that algorithm's set.
func CheckCertAlgo(cert *x509.Certificate, allowList AllowList) CertAlgoResult {
	result := CertAlgoResult{
		Algorithm: SignatureAlgorithmName(cert.SignatureAlgorithm),
		Curve:     CurveName(cert.PublicKey),
	}

	if _, ok := allowList[result.Algorithm]; !ok {
		return result
	}
	result.OK = allowList.Permits(result.Algorithm, result.Curve)
	return result
}

// ValidateCertAlgo decodes certBytes and checks its signature algorithm and public key
// curve against the allow-list.
//
// Parse failures are returned as a certificate CryptoError alongside a result with
// OK=false and Curve=CurveUnknown. A rejected but well-formed certificate is not an error:
// the result carries OK=false and the offending names.
func ValidateCertAlgo(certBytes []byte, allowList AllowList) (CertAlgoResult, error) {
	cert, err := ParseCertificate(certBytes)
	if err != nil {
		return CertAlgoResult{Curve: CurveUnknown}, err
	}

	return CheckCertAlgo(cert, allowList), nil
}
