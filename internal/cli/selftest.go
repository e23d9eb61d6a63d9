package cli

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	pidcrypto "github.com/information-sharing-networks/pid-validate/internal/crypto"
)

func (a *app) selftestCmd() *cobra.Command {
	var (
		curve   string
		keyPath string
		message string
	)

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the ECC hybrid encryption round trip",
		Long: `Encrypt a message to a recipient key (ECDH with a fresh ephemeral key, SHA-256 KDF, AES-256-GCM) and check
that only the recipient's private key decrypts it back to the same message.

The recipient key is read from --key (SEC 1 or PKCS#8 PEM) or generated on --curve.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient, err := loadOrGenerateKey(keyPath, curve)
			if err != nil {
				return err
			}

			ct, err := pidcrypto.EncryptECC([]byte(message), &recipient.PublicKey)
			if err != nil {
				return err
			}

			// the ephemeral key travels as PKIX DER
			ephemeralDER, err := x509.MarshalPKIXPublicKey(ct.EphemeralPublicKey)
			if err != nil {
				return fmt.Errorf("failed to marshal ephemeral key: %w", err)
			}
			ct.EphemeralPublicKey, err = pidcrypto.ParseEphemeralPublicKeyDER(ephemeralDER)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "curve:         %s\n", pidcrypto.CurveName(&recipient.PublicKey))
			fmt.Fprintf(out, "ephemeral key: %s\n", base64.RawURLEncoding.EncodeToString(ephemeralDER))
			fmt.Fprintf(out, "nonce:         %s\n", base64.RawURLEncoding.EncodeToString(ct.Nonce))
			fmt.Fprintf(out, "tag:           %s\n", base64.RawURLEncoding.EncodeToString(ct.AuthTag))

			if !pidcrypto.VerifyHybridDecryption(ct, message, recipient) {
				fmt.Fprintln(out, "recipient key: FAILED")
				return fmt.Errorf("hybrid decryption self-test failed")
			}
			fmt.Fprintln(out, "recipient key: ok")

			// a different key on the same curve must not decrypt
			other, err := pidcrypto.GenerateECKey(recipient.Curve.Params().Name)
			if err != nil {
				return err
			}
			if pidcrypto.VerifyHybridDecryption(ct, message, other) {
				fmt.Fprintln(out, "other key:     FAILED (decrypted)")
				return fmt.Errorf("hybrid decryption self-test failed: ciphertext opened with an unrelated key")
			}
			fmt.Fprintln(out, "other key:     rejected")

			a.logger.Debug("hybrid decryption self-test passed",
				slog.String("curve", recipient.Curve.Params().Name),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&curve, "curve", "P-256", "Curve for a generated recipient key (P-256, P-384 or P-521)")
	cmd.Flags().StringVar(&keyPath, "key", "", "Recipient EC private key PEM file")
	cmd.Flags().StringVar(&message, "message", "PID issuer self-test", "Plaintext to encrypt")
	return cmd
}

func loadOrGenerateKey(path, curve string) (*ecdsa.PrivateKey, error) {
	if path == "" {
		return pidcrypto.GenerateECKey(curve)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return pidcrypto.ParseECPrivateKeyPEM(data)
}
