package crypto

import (
	"crypto/elliptic"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"strings"
	"testing"
)

func TestValidateCertAlgo(t *testing.T) {
	p256 := generateECKey(t, elliptic.P256())
	p384 := generateECKey(t, elliptic.P384())
	p521 := generateECKey(t, elliptic.P521())
	rsaKey := generateRSAKey(t)
	edKey := generateEd25519Key(t)

	allowList := AllowList{
		"ecdsa-with-SHA256": {"secp256r1"},
		"ecdsa-with-SHA384": {"secp384r1"},
		"ecdsa-with-SHA512": {"secp521r1"},
	}

	testCases := []struct {
		name          string
		certBytes     []byte
		allowList     AllowList
		wantOK        bool
		wantAlgorithm string
		wantCurve     string
	}{
		{
			name:          "P-256 with SHA256 (PEM)",
			certBytes:     makeCertPEM(t, p256, x509.ECDSAWithSHA256),
			allowList:     allowList,
			wantOK:        true,
			wantAlgorithm: "ecdsa-with-SHA256",
			wantCurve:     "secp256r1",
		},
		{
			name:          "P-256 with SHA256 (DER)",
			certBytes:     makeCertDER(t, p256, x509.ECDSAWithSHA256),
			allowList:     allowList,
			wantOK:        true,
			wantAlgorithm: "ecdsa-with-SHA256",
			wantCurve:     "secp256r1",
		},
		{
			name:          "P-384 with SHA384",
			certBytes:     makeCertPEM(t, p384, x509.ECDSAWithSHA384),
			allowList:     allowList,
			wantOK:        true,
			wantAlgorithm: "ecdsa-with-SHA384",
			wantCurve:     "secp384r1",
		},
		{
			name:          "curve not allowed for algorithm",
			certBytes:     makeCertPEM(t, p521, x509.ECDSAWithSHA256),
			allowList:     AllowList{"ecdsa-with-SHA256": {"secp256r1"}},
			wantOK:        false,
			wantAlgorithm: "ecdsa-with-SHA256",
			wantCurve:     "secp521r1",
		},
		{
			name:          "curve allowed only under a different algorithm",
			certBytes:     makeCertPEM(t, p521, x509.ECDSAWithSHA256),
			allowList:     allowList,
			wantOK:        false,
			wantAlgorithm: "ecdsa-with-SHA256",
			wantCurve:     "secp521r1",
		},
		{
			name:          "algorithm not in allow-list",
			certBytes:     makeCertPEM(t, p384, x509.ECDSAWithSHA384),
			allowList:     AllowList{"ecdsa-with-SHA256": {"secp256r1", "secp384r1"}},
			wantOK:        false,
			wantAlgorithm: "ecdsa-with-SHA384",
			wantCurve:     "secp384r1",
		},
		{
			name:          "empty allow-list",
			certBytes:     makeCertPEM(t, p256, x509.ECDSAWithSHA256),
			allowList:     AllowList{},
			wantOK:        false,
			wantAlgorithm: "ecdsa-with-SHA256",
			wantCurve:     "secp256r1",
		},
		{
			name:          "RSA certificate has no curve",
			certBytes:     makeCertPEM(t, rsaKey, x509.SHA256WithRSA),
			allowList:     AllowList{"sha256WithRSAEncryption": {"secp256r1"}},
			wantOK:        false,
			wantAlgorithm: "sha256WithRSAEncryption",
			wantCurve:     CurveUnknown,
		},
		{
			name:          "Ed25519 certificate",
			certBytes:     makeCertPEM(t, edKey, x509.PureEd25519),
			allowList:     AllowList{"ed25519": {"ed25519"}},
			wantOK:        true,
			wantAlgorithm: "ed25519",
			wantCurve:     "ed25519",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ValidateCertAlgo(tc.certBytes, tc.allowList)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.OK != tc.wantOK {
				t.Errorf("OK = %v, want %v", result.OK, tc.wantOK)
			}
			if result.Algorithm != tc.wantAlgorithm {
				t.Errorf("Algorithm = %q, want %q", result.Algorithm, tc.wantAlgorithm)
			}
			if result.Curve != tc.wantCurve {
				t.Errorf("Curve = %q, want %q", result.Curve, tc.wantCurve)
			}
		})
	}
}

func TestValidateCertAlgo_ParseFailure(t *testing.T) {
	p256 := generateECKey(t, elliptic.P256())
	allowList := AllowList{"ecdsa-with-SHA256": {"secp256r1"}}

	validDER := makeCertDER(t, p256, x509.ECDSAWithSHA256)

	testCases := []struct {
		name          string
		certBytes     []byte
		expectedError string
	}{
		{
			name:          "empty input",
			certBytes:     nil,
			expectedError: "empty certificate",
		},
		{
			name:          "not a certificate",
			certBytes:     []byte("not a certificate"),
			expectedError: "failed to parse certificate",
		},
		{
			name:          "truncated DER",
			certBytes:     validDER[:len(validDER)/2],
			expectedError: "failed to parse certificate",
		},
		{
			name:          "PEM block of wrong type",
			certBytes:     publicKeyPEM(t, &p256.PublicKey),
			expectedError: "PEM block is not a certificate",
		},
		{
			name:          "PEM certificate with corrupted body",
			certBytes:     pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("garbage")}),
			expectedError: "failed to parse certificate",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ValidateCertAlgo(tc.certBytes, allowList)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.expectedError) {
				t.Errorf("expected error containing %q, got %q", tc.expectedError, err.Error())
			}

			var cryptoErr *CryptoError
			if !errors.As(err, &cryptoErr) || cryptoErr.Code() != ErrCodeCertificate {
				t.Errorf("expected certificate error, got %v", err)
			}

			if result.OK {
				t.Error("expected OK=false on parse failure")
			}
			if result.Curve != CurveUnknown {
				t.Errorf("Curve = %q, want %q", result.Curve, CurveUnknown)
			}
			if result.Algorithm != "" {
				t.Errorf("Algorithm = %q, want empty on parse failure", result.Algorithm)
			}
		})
	}
}

func TestValidateCertAlgo_Deterministic(t *testing.T) {
	key := generateECKey(t, elliptic.P521())
	certPEM := makeCertPEM(t, key, x509.ECDSAWithSHA256)
	allowList := AllowList{"ecdsa-with-SHA256": {"secp256r1"}}

	first, err := ValidateCertAlgo(certPEM, allowList)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range 5 {
		got, err := ValidateCertAlgo(certPEM, allowList)
		if err != nil {
			t.Fatalf("unexpected error on run %d: %v", i, err)
		}
		if got != first {
			t.Errorf("run %d: got %+v, want %+v", i, got, first)
		}
	}
}

func TestAllowListPermits(t *testing.T) {
	allowList := AllowList{
		"ecdsa-with-SHA256": {"secp256r1"},
		"ecdsa-with-SHA512": {"secp521r1"},
	}

	tests := []struct {
		algorithm string
		curve     string
		want      bool
	}{
		{"ecdsa-with-SHA256", "secp256r1", true},
		{"ecdsa-with-SHA512", "secp521r1", true},
		{"ecdsa-with-SHA256", "secp521r1", false},
		{"ECDSA-WITH-SHA256", "secp256r1", false},
		{"ecdsa-with-SHA384", "secp384r1", false},
		{"ecdsa-with-SHA256", CurveUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm+"/"+tt.curve, func(t *testing.T) {
			if got := allowList.Permits(tt.algorithm, tt.curve); got != tt.want {
				t.Errorf("Permits(%q, %q) = %v, want %v", tt.algorithm, tt.curve, got, tt.want)
			}
		})
	}
}
