package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"testing"
)

func TestHybridRoundTrip(t *testing.T) {
	curves := []struct {
		name  string
		curve elliptic.Curve
	}{
		{"P-256", elliptic.P256()},
		{"P-384", elliptic.P384()},
		{"P-521", elliptic.P521()},
	}

	plaintext := "PID issuer self-test"

	for _, c := range curves {
		t.Run(c.name, func(t *testing.T) {
			recipient := generateECKey(t, c.curve)

			ct, err := EncryptECC([]byte(plaintext), &recipient.PublicKey)
			if err != nil {
				t.Fatalf("EncryptECC failed: %v", err)
			}

			if len(ct.Nonce) != NonceSize {
				t.Errorf("nonce length = %d, want %d", len(ct.Nonce), NonceSize)
			}
			if len(ct.AuthTag) != TagSize {
				t.Errorf("tag length = %d, want %d", len(ct.AuthTag), TagSize)
			}
			if len(ct.Ciphertext) != len(plaintext) {
				t.Errorf("ciphertext length = %d, want %d", len(ct.Ciphertext), len(plaintext))
			}

			if !VerifyHybridDecryption(ct, plaintext, recipient) {
				t.Error("expected verification to succeed with the matching private key")
			}
		})
	}
}

func TestVerifyHybridDecryption_Failures(t *testing.T) {
	recipient := generateECKey(t, elliptic.P256())
	plaintext := "expected plaintext"

	ct, err := EncryptECC([]byte(plaintext), &recipient.PublicKey)
	if err != nil {
		t.Fatalf("EncryptECC failed: %v", err)
	}

	flip := func(b []byte) []byte {
		out := append([]byte(nil), b...)
		out[0] ^= 0x01
		return out
	}

	p384Key := generateECKey(t, elliptic.P384())

	tests := []struct {
		name     string
		ct       HybridCiphertext
		expected string
		key      *ecdsa.PrivateKey
	}{
		{
			name:     "different private key",
			ct:       ct,
			expected: plaintext,
			key:      generateECKey(t, elliptic.P256()),
		},
		{
			name: "corrupted auth tag",
			ct: HybridCiphertext{
				Ciphertext:         ct.Ciphertext,
				Nonce:              ct.Nonce,
				AuthTag:            flip(ct.AuthTag),
				EphemeralPublicKey: ct.EphemeralPublicKey,
			},
			expected: plaintext,
			key:      recipient,
		},
		{
			name: "corrupted ciphertext",
			ct: HybridCiphertext{
				Ciphertext:         flip(ct.Ciphertext),
				Nonce:              ct.Nonce,
				AuthTag:            ct.AuthTag,
				EphemeralPublicKey: ct.EphemeralPublicKey,
			},
			expected: plaintext,
			key:      recipient,
		},
		{
			name: "corrupted nonce",
			ct: HybridCiphertext{
				Ciphertext:         ct.Ciphertext,
				Nonce:              flip(ct.Nonce),
				AuthTag:            ct.AuthTag,
				EphemeralPublicKey: ct.EphemeralPublicKey,
			},
			expected: plaintext,
			key:      recipient,
		},
		{
			name:     "plaintext mismatch",
			ct:       ct,
			expected: "something else",
			key:      recipient,
		},
		{
			name:     "private key on a different curve",
			ct:       ct,
			expected: plaintext,
			key:      p384Key,
		},
		{
			name: "missing ephemeral key",
			ct: HybridCiphertext{
				Ciphertext: ct.Ciphertext,
				Nonce:      ct.Nonce,
				AuthTag:    ct.AuthTag,
			},
			expected: plaintext,
			key:      recipient,
		},
		{
			name: "truncated tag",
			ct: HybridCiphertext{
				Ciphertext:         ct.Ciphertext,
				Nonce:              ct.Nonce,
				AuthTag:            ct.AuthTag[:8],
				EphemeralPublicKey: ct.EphemeralPublicKey,
			},
			expected: plaintext,
			key:      recipient,
		},
		{
			name:     "nil private key",
			ct:       ct,
			expected: plaintext,
			key:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyHybridDecryption(tt.ct, tt.expected, tt.key) {
				t.Error("expected verification to fail")
			}
		})
	}
}

func TestDecryptECC_ErrorCodes(t *testing.T) {
	recipient := generateECKey(t, elliptic.P256())

	ct, err := EncryptECC([]byte("hello"), &recipient.PublicKey)
	if err != nil {
		t.Fatalf("EncryptECC failed: %v", err)
	}

	t.Run("wrong key is a decryption error", func(t *testing.T) {
		_, err := DecryptECC(ct, generateECKey(t, elliptic.P256()))
		if CodeOf(err) != ErrCodeDecryption {
			t.Errorf("expected decryption error, got %v", err)
		}
	})

	t.Run("curve mismatch is a key management error", func(t *testing.T) {
		_, err := DecryptECC(ct, generateECKey(t, elliptic.P521()))
		if CodeOf(err) != ErrCodeKeyManagement {
			t.Errorf("expected key management error, got %v", err)
		}
	})

	t.Run("DER ephemeral key round trip", func(t *testing.T) {
		der := x509MarshalPKIXOrFail(t, ct.EphemeralPublicKey)
		eph, err := ParseEphemeralPublicKeyDER(der)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ct.EphemeralPublicKey = eph

		plaintext, err := DecryptECC(ct, recipient)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(plaintext) != "hello" {
			t.Errorf("plaintext = %q, want %q", plaintext, "hello")
		}
	})
}

func TestEncryptECC_Errors(t *testing.T) {
	if _, err := EncryptECC([]byte("x"), nil); err == nil {
		t.Error("expected error for nil recipient")
	}
}
