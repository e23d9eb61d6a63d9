// algorithm.go maps Go's x509 algorithm identifiers to the names used in the issuer configuration.
// The configuration uses the OpenSSL short names (ecdsa-with-SHA256, secp256r1 ...) so that
// allow-lists can be shared with the other issuer components.
package crypto

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
)

// CurveUnknown is reported when the curve of a public key cannot be determined
// (RSA keys, unsupported curves or unparseable certificates).
const CurveUnknown = "unknown"

// AlgorithmUnknown is reported for signature algorithms Go does not recognise.
const AlgorithmUnknown = "Unknown OID"

var signatureAlgorithmNames = map[x509.SignatureAlgorithm]string{
	x509.MD5WithRSA:       "md5WithRSAEncryption",
	x509.SHA1WithRSA:      "sha1WithRSAEncryption",
	x509.SHA256WithRSA:    "sha256WithRSAEncryption",
	x509.SHA384WithRSA:    "sha384WithRSAEncryption",
	x509.SHA512WithRSA:    "sha512WithRSAEncryption",
	x509.SHA256WithRSAPSS: "RSASSA-PSS",
	x509.SHA384WithRSAPSS: "RSASSA-PSS",
	x509.SHA512WithRSAPSS: "RSASSA-PSS",
	x509.DSAWithSHA1:      "dsa-with-sha1",
	x509.DSAWithSHA256:    "dsa-with-sha256",
	x509.ECDSAWithSHA1:    "ecdsa-with-SHA1",
	x509.ECDSAWithSHA256:  "ecdsa-with-SHA256",
	x509.ECDSAWithSHA384:  "ecdsa-with-SHA384",
	x509.ECDSAWithSHA512:  "ecdsa-with-SHA512",
	x509.PureEd25519:      "ed25519",
}

// NIST curve names as reported by crypto/elliptic, mapped to their SEC 2 names
var curveNames = map[string]string{
	"P-224": "secp224r1",
	"P-256": "secp256r1",
	"P-384": "secp384r1",
	"P-521": "secp521r1",
}

// SignatureAlgorithmName returns the configuration name of a certificate signature algorithm.
func SignatureAlgorithmName(alg x509.SignatureAlgorithm) string {
	if name, ok := signatureAlgorithmNames[alg]; ok {
		return name
	}
	return AlgorithmUnknown
}

// CurveName returns the SEC 2 curve name of a public key, or CurveUnknown.
func CurveName(publicKey any) string {
	switch key := publicKey.(type) {
	case *ecdsa.PublicKey:
		if key.Curve == nil {
			return CurveUnknown
		}
		if name, ok := curveNames[key.Curve.Params().Name]; ok {
			return name
		}
	case ed25519.PublicKey:
		return "ed25519"
	}
	return CurveUnknown
}

// KeyType describes a public key for display, e.g. "EC secp256r1" or "RSA 2048".
func KeyType(publicKey any) string {
	switch key := publicKey.(type) {
	case *ecdsa.PublicKey:
		return "EC " + CurveName(key)
	case *rsa.PublicKey:
		return fmt.Sprintf("RSA %d", key.N.BitLen())
	case ed25519.PublicKey:
		return "Ed25519"
	default:
		return fmt.Sprintf("%T", publicKey)
	}
}
