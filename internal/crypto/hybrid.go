package crypto

// hybrid.go implements the ECC hybrid encryption used by the getpidtest self-test:
// ECDH between an ephemeral key and the recipient key, SHA-256 over the shared point
// coordinates as the AES-256 key, and AES-GCM for authenticated encryption.
//
// The verifier never stores or generates long-lived keys; the recipient private key is supplied per call.

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"
)

const (
	// NonceSize is the AES-GCM nonce length produced by EncryptECC.
	// It matches the 16 byte default nonce used by the wallet reference implementation.
	NonceSize = 16

	// TagSize is the AES-GCM authentication tag length
	TagSize = 16
)

// HybridCiphertext holds the output of EncryptECC, in the form the wallet returns it.
type HybridCiphertext struct {
	Ciphertext []byte
	Nonce      []byte
	AuthTag    []byte

	// EphemeralPublicKey is the sender's one-time key; the recipient combines it with its
	// private key to derive the symmetric key.
	EphemeralPublicKey *ecdsa.PublicKey
}

// deriveKey computes the shared point scalar × (x, y) and hashes both coordinates,
// each left-padded to the curve size, into a 256 bit AES key.
func deriveKey(curve elliptic.Curve, x, y *big.Int, scalar *big.Int) []byte {
	size := (curve.Params().BitSize + 7) / 8

	//lint:ignore SA1019 the key derivation hashes both coordinates of the shared point and crypto/ecdh only exposes x
	sx, sy := curve.ScalarMult(x, y, scalar.FillBytes(make([]byte, size)))

	h := sha256.New()
	h.Write(sx.FillBytes(make([]byte, size)))
	h.Write(sy.FillBytes(make([]byte, size)))
	return h.Sum(nil)
}

func newGCM(key []byte, nonceSize int) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, WrapInternalError(err, "failed to create AES cipher")
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, WrapInternalError(err, "failed to create GCM")
	}
	return gcm, nil
}

// EncryptECC encrypts plaintext for the holder of the private key matching recipient.
// A fresh ephemeral key and nonce are generated for every call.
func EncryptECC(plaintext []byte, recipient *ecdsa.PublicKey) (HybridCiphertext, error) {
	if recipient == nil || recipient.Curve == nil {
		return HybridCiphertext{}, NewKeyManagementError("recipient public key is nil")
	}
	if _, err := recipient.ECDH(); err != nil {
		return HybridCiphertext{}, WrapKeyManagementError(err, "invalid recipient public key")
	}

	ephemeral, err := ecdsa.GenerateKey(recipient.Curve, rand.Reader)
	if err != nil {
		return HybridCiphertext{}, WrapInternalError(err, "failed to generate ephemeral key")
	}

	gcm, err := newGCM(deriveKey(recipient.Curve, recipient.X, recipient.Y, ephemeral.D), NonceSize)
	if err != nil {
		return HybridCiphertext{}, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return HybridCiphertext{}, WrapInternalError(err, "failed to generate nonce")
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - TagSize

	return HybridCiphertext{
		Ciphertext:         sealed[:split],
		Nonce:              nonce,
		AuthTag:            sealed[split:],
		EphemeralPublicKey: &ephemeral.PublicKey,
	}, nil
}

// DecryptECC derives the symmetric key from the ephemeral public key and privateKey and
// opens the ciphertext. A tag mismatch returns a decryption error.
func DecryptECC(ct HybridCiphertext, privateKey *ecdsa.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, NewKeyManagementError("private key is nil")
	}
	if ct.EphemeralPublicKey == nil {
		return nil, NewKeyManagementError("ephemeral public key is nil")
	}
	if privateKey.Curve == nil || ct.EphemeralPublicKey.Curve == nil {
		return nil, NewKeyManagementError("key has no curve")
	}

	privCurve := privateKey.Curve.Params().Name
	ephCurve := ct.EphemeralPublicKey.Curve.Params().Name
	if privCurve != ephCurve {
		return nil, NewKeyManagementError(fmt.Sprintf("ephemeral key curve %s does not match private key curve %s", ephCurve, privCurve))
	}

	// ECDH() checks the point is on the curve and the scalar is in range
	if _, err := ct.EphemeralPublicKey.ECDH(); err != nil {
		return nil, WrapKeyManagementError(err, "invalid ephemeral public key")
	}
	if _, err := privateKey.ECDH(); err != nil {
		return nil, WrapKeyManagementError(err, "invalid private key")
	}

	if len(ct.Nonce) == 0 {
		return nil, NewDecryptionError("empty nonce")
	}
	if len(ct.AuthTag) != TagSize {
		return nil, NewDecryptionError(fmt.Sprintf("authentication tag must be %d bytes, got %d", TagSize, len(ct.AuthTag)))
	}

	gcm, err := newGCM(deriveKey(privateKey.Curve, ct.EphemeralPublicKey.X, ct.EphemeralPublicKey.Y, privateKey.D), len(ct.Nonce))
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ct.Ciphertext)+len(ct.AuthTag))
	sealed = append(sealed, ct.Ciphertext...)
	sealed = append(sealed, ct.AuthTag...)

	plaintext, err := gcm.Open(nil, ct.Nonce, sealed, nil)
	if err != nil {
		return nil, WrapDecryptionError(err, "failed to decrypt ciphertext")
	}

	return plaintext, nil
}

// VerifyHybridDecryption reports whether ct decrypts under privateKey to exactly expected.
//
// This is a proof-of-possession check: it succeeds only if the holder of privateKey derives
// the same symmetric key the ciphertext was sealed with.
func VerifyHybridDecryption(ct HybridCiphertext, expected string, privateKey *ecdsa.PrivateKey) bool {
	plaintext, err := DecryptECC(ct, privateKey)
	if err != nil {
		return false
	}
	return string(plaintext) == expected
}
