// policy fingerprints are computed over RFC 8785 canonical JSON so that key order and whitespace in the
// source file do not change the result.
// this implementation uses the gowebpki/jcs library to perform this canonicalization
package crypto

import (
	"encoding/json"

	"github.com/gowebpki/jcs"
)

// CanonicalizeJSON converts JSON to canonical form per RFC 8785
//
// If the input is not valid JSON, an error is returned (handled by jcs library).
func CanonicalizeJSON(jsonData []byte) ([]byte, error) {
	return jcs.Transform(jsonData)
}

// Fingerprint returns the SHA-256 hash (hex) of the canonical JSON encoding of v.
func Fingerprint(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", WrapInternalError(err, "failed to marshal value")
	}

	canonical, err := CanonicalizeJSON(raw)
	if err != nil {
		return "", WrapInternalError(err, "failed to canonicalize JSON")
	}

	return Hash(canonical)
}
