package cli

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/pid-validate/internal/config"
	"github.com/information-sharing-networks/pid-validate/internal/logger"
	"github.com/information-sharing-networks/pid-validate/internal/metrics"
	"github.com/information-sharing-networks/pid-validate/internal/policy"
	"github.com/information-sharing-networks/pid-validate/internal/validate"
	"github.com/information-sharing-networks/pid-validate/internal/version"
)

// app holds what PersistentPreRunE loads for the subcommands
type app struct {
	cfg        *config.Environment
	logger     *slog.Logger
	policy     *policy.Policy
	policyPath string
	registry   *prometheus.Registry
	recorder   *metrics.Recorder
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:               "pidcheck",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Short:             "PID/mDL issuer request validation tool",
		Long: `pidcheck runs the PID/mDL issuer request checks offline: wallet certificate algorithm/curve checks,
device public key validation, the ECC hybrid encryption self-test and the full request parameter validation.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	rootCmd.PersistentFlags().StringVar(&a.policyPath, "policy", "", "Policy YAML file (overrides POLICY_FILE)")

	rootCmd.AddCommand(a.certCmd())
	rootCmd.AddCommand(a.pubkeyCmd())
	rootCmd.AddCommand(a.selftestCmd())
	rootCmd.AddCommand(a.paramsCmd())
	rootCmd.AddCommand(a.policyCmd())
	rootCmd.AddCommand(a.keygenCmd())

	return rootCmd
}

func (a *app) load(cmd *cobra.Command, args []string) error {
	var err error
	a.cfg, err = config.NewConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		return err
	}

	a.logger = logger.InitLogger(logger.ParseLogLevel(a.cfg.LogLevel), a.cfg.Environment)

	path := a.policyPath
	if path == "" {
		path = a.cfg.PolicyFile
	}
	if path == "" {
		a.policy = policy.Default()
	} else {
		a.policy, err = policy.Load(path, a.logger)
		if err != nil {
			return err
		}
	}

	fingerprint, err := a.policy.Fingerprint()
	if err != nil {
		return err
	}
	a.logger.Debug("policy loaded",
		slog.String("path", path),
		slog.String("fingerprint", fingerprint),
	)

	a.registry = prometheus.NewRegistry()
	a.recorder, err = metrics.NewRecorder(a.registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	return nil
}

func (a *app) validator() *validate.Validator {
	return validate.NewValidator(a.policy,
		validate.WithRecorder(a.recorder),
		validate.WithMaxParameterSize(a.cfg.MaxParameterSize),
	)
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
