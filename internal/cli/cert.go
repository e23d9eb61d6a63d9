package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	pidcrypto "github.com/information-sharing-networks/pid-validate/internal/crypto"
)

func (a *app) certCmd() *cobra.Command {
	var base64url bool

	cmd := &cobra.Command{
		Use:   "cert <file>",
		Short: "Check a wallet certificate against the algorithm/curve allow-list",
		Long: `Check that the certificate's signature algorithm and public key curve are allowed by the policy.

The file may hold a PEM or DER certificate, or (with --base64url) the certificate query parameter as sent by the wallet.
Use - to read from stdin.

Example:
  pidcheck cert wallet.pem`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], cmd.InOrStdin(), base64url, a.cfg.MaxParameterSize)
			if err != nil {
				return err
			}

			result, err := pidcrypto.ValidateCertAlgo(data, a.policy.AllowList)
			if err != nil {
				a.recorder.RecordCertCheck("unparseable")
				a.logger.Debug("certificate could not be parsed",
					slog.String("error_code", string(pidcrypto.CodeOf(err))),
				)
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "algorithm: %s\n", result.Algorithm)
			fmt.Fprintf(out, "curve:     %s\n", result.Curve)

			if !result.OK {
				a.recorder.RecordCertCheck("rejected")
				fmt.Fprintln(out, "result:    rejected")
				return fmt.Errorf("certificate algorithm (%s) or curve (%s) not supported", result.Algorithm, result.Curve)
			}
			a.recorder.RecordCertCheck("accepted")
			fmt.Fprintln(out, "result:    accepted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&base64url, "base64url", false, "Input is base64url encoded")
	return cmd
}
