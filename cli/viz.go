// ABOUTME: Visualization CLI commands
// ABOUTME: Handles stats dashboard and account executive graph generation
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/view"
	"github.com/harperreed/clientdesk/viz"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		asOf   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the client dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := models.Today()
			if asOf != "" {
				day = models.ParseDate(asOf)
				if day.IsZero() {
					return fmt.Errorf("invalid --as-of %q (want YYYY-MM-DD)", asOf)
				}
			}

			ctx := cmd.Context()
			s, _, closeStore, err := a.openSession(ctx, nil)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			records, err := s.Records(ctx)
			if err != nil {
				return err
			}
			stats := viz.GenerateStats(records, day)

			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), stats)
			case "text":
				_, err := fmt.Fprint(cmd.OutOrStdout(), viz.RenderDashboard(stats))
				return err
			default:
				return fmt.Errorf("invalid format: %s (valid values: text, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Day used to count active contracts (default today)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

func newGraphCmd(a *app) *cobra.Command {
	var (
		output string
		exec   string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate a GraphViz graph of account executives and their clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, _, closeStore, err := a.openSession(ctx, nil)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			records, err := s.Records(ctx)
			if err != nil {
				return err
			}
			filters := models.NewFilterState()
			filters.Set(models.FieldAccountExec, exec)
			records = view.Derive(records, filters, models.SortState{}, "")

			dot, err := viz.GenerateExecGraph(ctx, records)
			if err != nil {
				return err
			}

			if output != "" {
				return os.WriteFile(output, []byte(dot), 0644)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), dot)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&exec, "exec", models.AllValues, "Only this account executive")
	return cmd
}
