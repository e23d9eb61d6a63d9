// this file contains functions to parse the public and private keys exchanged with the wallet
//
// The device public key arrives as a PEM encoded SubjectPublicKeyInfo (or PKCS#1 for RSA) block,
// base64url encoded as a query parameter. The ephemeral key of the hybrid encryption test arrives as DER.
//
// Keys are identified in logs by their RFC 7638 JWK thumbprint rather than by the raw PEM text.

package crypto

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwk"
)

// ParsePublicKeyPEM parses the first PEM block of data as a public key of any supported algorithm.
//
// Accepted block types are "PUBLIC KEY" (PKIX) and "RSA PUBLIC KEY" (PKCS#1).
// Private keys, certificates and truncated blocks are rejected.
func ParsePublicKeyPEM(data []byte) (crypto.PublicKey, error) {
	if len(data) == 0 {
		return nil, NewKeyManagementError("empty public key")
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, NewKeyManagementError("failed to decode PEM block")
	}

	switch block.Type {
	case "PUBLIC KEY":
		pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, WrapKeyManagementError(err, "failed to parse public key")
		}
		return pubKey, nil
	case "RSA PUBLIC KEY":
		pubKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, WrapKeyManagementError(err, "failed to parse PKCS#1 public key")
		}
		return pubKey, nil
	default:
		return nil, NewKeyManagementError(fmt.Sprintf("PEM block is not a public key (type: %s)", block.Type))
	}
}

// IsValidPublicKey reports whether keyBytes is a well-formed PEM encoded public key.
// There are no partial results: any decoding or parsing failure returns false.
func IsValidPublicKey(keyBytes []byte) bool {
	_, err := ParsePublicKeyPEM(keyBytes)
	return err == nil
}

// PublicKeyID returns the base64url encoded SHA-256 JWK thumbprint of a public key.
func PublicKeyID(publicKey crypto.PublicKey) (string, error) {
	if publicKey == nil {
		return "", NewKeyManagementError("public key is nil")
	}

	key, err := jwk.Import(publicKey)
	if err != nil {
		return "", WrapKeyManagementError(err, "failed to create JWK from public key")
	}

	thumbprint, err := key.Thumbprint(crypto.SHA256)
	if err != nil {
		return "", WrapKeyManagementError(err, "failed to compute JWK thumbprint")
	}

	return base64.RawURLEncoding.EncodeToString(thumbprint), nil
}

// ParseEphemeralPublicKeyDER parses a DER (PKIX) encoded EC public key,
// as sent in the ciphertextPubKey field of the getpidtest response.
func ParseEphemeralPublicKeyDER(der []byte) (*ecdsa.PublicKey, error) {
	if len(der) == 0 {
		return nil, NewKeyManagementError("empty ephemeral public key")
	}

	pubKey, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, WrapKeyManagementError(err, "failed to parse ephemeral public key")
	}

	ecKey, ok := pubKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, NewKeyManagementError(fmt.Sprintf("ephemeral key is %T, expected *ecdsa.PublicKey", pubKey))
	}

	return ecKey, nil
}

// ParseECPrivateKeyPEM loads an EC private key from PEM data in SEC 1 ("EC PRIVATE KEY")
// or PKCS#8 ("PRIVATE KEY") format.
func ParseECPrivateKeyPEM(data []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, NewKeyManagementError("failed to decode PEM block")
	}

	switch block.Type {
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, WrapKeyManagementError(err, "failed to parse EC private key")
		}
		return key, nil
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, WrapKeyManagementError(err, "failed to parse PKCS#8 private key")
		}
		ecKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, NewKeyManagementError("key is not an EC private key")
		}
		return ecKey, nil
	default:
		return nil, NewKeyManagementError(fmt.Sprintf("PEM block is not a private key (type: %s)", block.Type))
	}
}

// EncodePublicKeyPEM encodes a public key as a PKIX "PUBLIC KEY" PEM block.
func EncodePublicKeyPEM(publicKey crypto.PublicKey) ([]byte, error) {
	pubBytes, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, WrapKeyManagementError(err, "failed to marshal public key")
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	}), nil
}

// EncodeECPrivateKeyPEM encodes an EC private key as a SEC 1 "EC PRIVATE KEY" PEM block.
func EncodeECPrivateKeyPEM(privateKey *ecdsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalECPrivateKey(privateKey)
	if err != nil {
		return nil, WrapKeyManagementError(err, "failed to marshal EC private key")
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "EC PRIVATE KEY",
		Bytes: der,
	}), nil
}

// GenerateECKey generates an EC key pair on the named curve (P-256, P-384 or P-521).
func GenerateECKey(curveName string) (*ecdsa.PrivateKey, error) {
	var curve elliptic.Curve
	switch curveName {
	case "P-256":
		curve = elliptic.P256()
	case "P-384":
		curve = elliptic.P384()
	case "P-521":
		curve = elliptic.P521()
	default:
		return nil, NewKeyManagementError(fmt.Sprintf("unsupported curve: %s (must be P-256, P-384 or P-521)", curveName))
	}

	key, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, WrapInternalError(err, "failed to generate EC key")
	}
	return key, nil
}
