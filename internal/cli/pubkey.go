package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pidcrypto "github.com/information-sharing-networks/pid-validate/internal/crypto"
)

func (a *app) pubkeyCmd() *cobra.Command {
	var base64url bool

	cmd := &cobra.Command{
		Use:   "pubkey <file>",
		Short: "Check that a device public key is a PEM public key",
		Long: `Check that the file holds a PEM encoded public key ("PUBLIC KEY" or "RSA PUBLIC KEY") and print its key id (JWK thumbprint).

With --base64url the file holds the device_publickey query parameter as sent by the wallet. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], cmd.InOrStdin(), base64url, a.cfg.MaxParameterSize)
			if err != nil {
				return err
			}

			key, err := pidcrypto.ParsePublicKeyPEM(data)
			if err != nil {
				return fmt.Errorf("not a valid PEM public key: %w", err)
			}
			keyID, err := pidcrypto.PublicKeyID(key)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "result: valid")
			fmt.Fprintf(out, "type:   %s\n", pidcrypto.KeyType(key))
			fmt.Fprintf(out, "key id: %s\n", keyID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&base64url, "base64url", false, "Input is base64url encoded")
	return cmd
}
