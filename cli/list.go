// ABOUTME: list and options subcommands
// ABOUTME: Prints the filtered, searched, and sorted client list as a table or JSON
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/view"
)

// listColumns are shown by the table output, in order.
var listColumns = []models.Field{
	models.FieldID,
	models.FieldCompany,
	models.FieldProduct,
	models.FieldStatus,
	models.FieldChannel,
	models.FieldAccountExec,
	models.FieldEndDate,
	models.FieldDealAmount,
}

func newListCmd(a *app) *cobra.Command {
	var (
		product string
		status  string
		exec    string
		search  string
		sortKey string
		desc    bool
		format  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Long:  "List clients. Filters match exactly, search matches any field case-insensitively, and clients missing the sort field are listed last.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := view.NewQuery()
			q.Filters.Set(models.FieldProduct, product)
			q.Filters.Set(models.FieldStatus, status)
			q.Filters.Set(models.FieldAccountExec, exec)
			q.Search = search

			if sortKey != "" {
				field, err := parseFieldFlag("sort", sortKey)
				if err != nil {
					return err
				}
				q.Sort = models.SortState{Key: field}
				if desc {
					q.Sort.Direction = models.Descending
				}
			}

			if format != "table" && format != "json" {
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
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
			visible := q.Apply(records, models.AllCapabilities())

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), visible)
			}
			outputClientTable(cmd.OutOrStdout(), visible, q.Sort, getTerminalWidth())
			return nil
		},
	}

	cmd.Flags().StringVar(&product, "product", models.AllValues, "Only this product")
	cmd.Flags().StringVar(&status, "status", models.AllValues, "Only this status")
	cmd.Flags().StringVar(&exec, "exec", models.AllValues, "Only this account executive")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive text to match in any field")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Field to sort by (company, product, status, channel, accountExec, startDate, endDate, dealAmount, monthlyVolume, id)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

func newOptionsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show the values each filter can take",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, _, closeStore, err := a.openSession(ctx, nil)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			opts, err := s.Options(ctx)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), opts)
			case "table":
				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Filter", "Values"})
				for _, f := range models.FilterableFields {
					values := append([]string{models.AllValues}, opts[f]...)
					t.AppendRow(table.Row{f.Label(), strings.Join(values, "\n")})
				}
				t.Render()
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func getTerminalWidth() int {
	// Try to get terminal width from stdout
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	// Default width if terminal size cannot be determined
	return 120
}

func outputClientTable(w io.Writer, records []models.Client, sort models.SortState, termWidth int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	// Reserve space for borders and padding, roughly 3 chars per column
	cellWidth := (termWidth - len(listColumns)*3) / len(listColumns)
	if cellWidth < 8 {
		cellWidth = 8
	}

	header := make(table.Row, len(listColumns))
	for i, f := range listColumns {
		header[i] = f.Label() + sort.Indicator(f)
	}
	t.AppendHeader(header)

	for _, c := range records {
		row := make(table.Row, len(listColumns))
		for i, f := range listColumns {
			row[i] = runewidth.Truncate(c.Value(f), cellWidth, "…")
		}
		t.AppendRow(row)
	}

	t.AppendFooter(table.Row{fmt.Sprintf("%d clients", len(records))})
	t.Render()
}
