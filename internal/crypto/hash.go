// this file provides the SHA-256 and base64url helpers used on request parameters.
//
// The wallet sends binary values (certificates, public keys) base64url encoded, with or without padding.

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash calculates SHA-256 checksum (hash) and returns hex string.
func Hash(data []byte) (string, error) {
	if len(data) == 0 {
		return "", NewValidationError("data is empty")
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// DecodeBase64URL decodes a base64url value. Padding is optional.
//
// Inputs longer than maxSize are rejected before decoding.
func DecodeBase64URL(encoded string, maxSize int64) ([]byte, error) {
	if len(encoded) == 0 {
		return nil, NewValidationError("data is empty")
	}
	if int64(len(encoded)) > maxSize {
		return nil, NewValidationError(fmt.Sprintf("base64 content size (%d bytes) exceeds maximum (%d bytes)",
			len(encoded), maxSize))
	}

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return nil, WrapValidationError(err, "invalid base64url content")
	}
	return decoded, nil
}
