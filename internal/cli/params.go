package cli

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/pid-validate/internal/redirect"
	"github.com/information-sharing-networks/pid-validate/internal/validate"
)

// default mandatory parameters of the issue and show routes
var (
	defaultIssueMandatory = []string{"version", "country", "certificate", "returnURL", "device_publickey"}
	defaultShowMandatory  = []string{"error"}
)

func (a *app) paramsCmd() *cobra.Command {
	var (
		variant      string
		query        string
		mandatory    []string
		route        string
		printMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Validate the query string of an issue or show request",
		Long: `Run the request parameter validation on a query string and print the outcome.

Example:
  pidcheck params --variant issue --query "version=0.3&country=PT&certificate=...&returnURL=https://w.example/cb&device_publickey=..."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
			if err != nil {
				return fmt.Errorf("invalid query string: %w", err)
			}
			reqArgs := validate.ArgsFromValues(values)

			state := validate.RequestState{
				Route:     route,
				Version:   a.cfg.APIVersion,
				RequestID: uuid.NewString(),
			}

			v := a.validator()

			var outcome validate.Outcome
			switch variant {
			case validate.VariantIssue:
				if !cmd.Flags().Changed("mandatory") {
					mandatory = defaultIssueMandatory
				}
				if state.Route == "" {
					state.Route = "/pid/getpid"
				}
				outcome, state = v.ValidateIssue(cmd.Context(), reqArgs, mandatory, state)
			case validate.VariantShow:
				if !cmd.Flags().Changed("mandatory") {
					mandatory = defaultShowMandatory
				}
				if state.Route == "" {
					state.Route = "/pid/show"
				}
				outcome, state = v.ValidateShow(cmd.Context(), reqArgs, mandatory, state)
			default:
				return fmt.Errorf("invalid variant: %s (must be 'issue' or 'show')", variant)
			}

			out := cmd.OutOrStdout()
			if err := printOutcome(out, outcome, a.policy.Message); err != nil {
				return err
			}
			fmt.Fprintf(out, "request id: %s\n", state.RequestID)

			if printMetrics {
				if err := printCounters(out, a.registry); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", validate.VariantIssue, "Request variant: issue or show")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Query string of the request")
	cmd.Flags().StringSliceVar(&mandatory, "mandatory", nil, "Mandatory parameters (comma separated, default depends on the variant)")
	cmd.Flags().StringVar(&route, "route", "", "Route recorded in logs (default /pid/getpid or /pid/show)")
	cmd.Flags().BoolVar(&printMetrics, "metrics", false, "Print the outcome counters")
	return cmd
}

func printOutcome(out io.Writer, outcome validate.Outcome, messages redirect.MessageFunc) error {
	switch o := outcome.(type) {
	case validate.Valid:
		fmt.Fprintln(out, "outcome:    valid")
	case validate.LocalError:
		fmt.Fprintln(out, "outcome:    local error")
		fmt.Fprintf(out, "status:     %d\n", o.Status)
		fmt.Fprintf(out, "body:       %s\n", o.Body())
	case validate.Redirect:
		target, err := redirect.BuildURL(o, messages)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "outcome:    redirect")
		fmt.Fprintf(out, "code:       %d\n", o.Code)
		fmt.Fprintf(out, "version:    %s\n", o.Version)
		fmt.Fprintf(out, "location:   %s\n", target)
	}
	return nil
}

// printCounters writes every counter in reg as name{labels} value
func printCounters(out io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			fmt.Fprintf(out, "%s{%s} %v\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}
