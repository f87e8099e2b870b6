// ABOUTME: Interactive terminal subcommand
// ABOUTME: Runs the bubbletea client table over a fresh session
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var features string

	cmd := &cobra.Command{
		Use:         "tui",
		Short:       "Browse and edit clients in the terminal",
		Long:        "Open a full-screen client table. Use --features to choose which of sort, filter, search, and tooltip are enabled.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{interactiveAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var caps *models.Capabilities
			if features != "" {
				c, err := models.ParseCapabilities(features)
				if err != nil {
					return err
				}
				caps = &c
			}

			ctx := cmd.Context()
			s, _, closeStore, err := a.openSession(ctx, caps)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			p := tea.NewProgram(
				tui.NewModel(ctx, s),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&features, "features", "", "Table features: all, none, or a list of sort,filter,search,tooltip (default from CLIENTDESK_FEATURES)")

	return cmd
}
