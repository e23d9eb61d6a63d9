package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) policyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the effective validation policy",
		Long: `Print the effective policy (built-in defaults, overridden by --policy or POLICY_FILE) as YAML,
followed by its fingerprint: the SHA-256 of the policy's canonical JSON form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.policy.Encode()
			if err != nil {
				return err
			}
			fingerprint, err := a.policy.Fingerprint()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(data))
			fmt.Fprintf(out, "# fingerprint: %s\n", fingerprint)
			return nil
		},
	}
}
