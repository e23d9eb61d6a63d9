package cli

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	pidcrypto "github.com/information-sharing-networks/pid-validate/internal/crypto"
)

// file naming convention - name.private.pem and name.public.pem
const (
	publicKeyFileNameFormat  = "%s.public.pem"
	privateKeyFileNameFormat = "%s.private.pem"
)

func (a *app) keygenCmd() *cobra.Command {
	var (
		curve     string
		outputDir string
		name      string
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an EC key pair for testing",
		Long: `Generate an EC key pair in PEM format, e.g. a device key for test requests or a recipient key for selftest.

The public key is also printed base64url encoded, ready to use as the device_publickey parameter.

Example:
  pidcheck keygen --curve P-256 --outputdir ./keys --name device`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// make the directory if it doesn't exist
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			privateKey, err := pidcrypto.GenerateECKey(curve)
			if err != nil {
				return err
			}

			privatePEM, err := pidcrypto.EncodeECPrivateKeyPEM(privateKey)
			if err != nil {
				return err
			}
			publicPEM, err := pidcrypto.EncodePublicKeyPEM(&privateKey.PublicKey)
			if err != nil {
				return err
			}
			keyID, err := pidcrypto.PublicKeyID(&privateKey.PublicKey)
			if err != nil {
				return err
			}

			privatePath := filepath.Join(outputDir, fmt.Sprintf(privateKeyFileNameFormat, name))
			if err := os.WriteFile(privatePath, privatePEM, 0o600); err != nil {
				return fmt.Errorf("failed to save private key: %w", err)
			}
			publicPath := filepath.Join(outputDir, fmt.Sprintf(publicKeyFileNameFormat, name))
			if err := os.WriteFile(publicPath, publicPEM, 0o644); err != nil {
				return fmt.Errorf("failed to save public key: %w", err)
			}

			a.logger.Debug("generated EC key pair",
				slog.String("curve", curve),
				slog.String("key_id", keyID),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Private key: %s (kid: %s)\n", privatePath, keyID)
			fmt.Fprintf(out, "✓ Public key:  %s (kid: %s)\n", publicPath, keyID)
			fmt.Fprintf(out, "device_publickey=%s\n", base64.URLEncoding.EncodeToString(publicPEM))
			return nil
		},
	}

	cmd.Flags().StringVarP(&curve, "curve", "c", "P-256", "Curve: P-256, P-384 or P-521")
	cmd.Flags().StringVarP(&outputDir, "outputdir", "o", "", "Output directory for generated keys [required]")
	cmd.Flags().StringVarP(&name, "name", "n", "device", "File name prefix")
	_ = cmd.MarkFlagRequired("outputdir")
	return cmd
}
