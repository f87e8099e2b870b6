// ABOUTME: Root command and shared session setup for the CLI
// ABOUTME: Loads config, applies global flags, configures logging, and opens the seeded store
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harperreed/clientdesk/config"
	"github.com/harperreed/clientdesk/logging"
	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/notify"
	"github.com/harperreed/clientdesk/session"
)

// interactiveAnnotation marks commands that own the terminal, so logs must
// not go to stderr.
const interactiveAnnotation = "interactive"

// app carries state from the root command's pre-run to subcommands.
type app struct {
	version  string
	seed     string
	logLevel string

	cfg      *config.Config
	logger   *log.Logger
	closeLog func() error
}

// NewRootCmd builds the clientdesk command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version}

	cmd := &cobra.Command{
		Use:           "clientdesk",
		Short:         "clientdesk - browse and edit a book of client accounts",
		Long:          "clientdesk loads a client list into a session and lets you filter, sort, search, and edit it from the terminal, a browser, or an MCP agent. Changes live for the session only.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.seed, "seed", "", "Client file to load (.json, .yaml); default $XDG_DATA_HOME/clientdesk/clients.json")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newOptionsCmd(a))
	cmd.AddCommand(newStatsCmd(a))
	cmd.AddCommand(newGraphCmd(a))
	cmd.AddCommand(newTUICmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newMCPCmd(a))

	return cmd
}

// Execute runs the command tree with the process arguments. Cancelling ctx
// stops long-running commands such as serve and mcp.
func Execute(ctx context.Context, version string) error {
	cmd := NewRootCmd(version)
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.seed != "" {
		cfg.Seed = a.seed
	}
	if a.logLevel != "" {
		cfg.Logger.Level = a.logLevel
	}

	quiet := cmd.Annotations[interactiveAnnotation] == "true"
	logger, closeLog, err := logging.Setup(cfg, cmd.ErrOrStderr(), quiet)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.closeLog = closeLog
	return nil
}

// openSession loads the seed into a fresh store. caps falls back to the
// configured feature set when nil.
func (a *app) openSession(ctx context.Context, caps *models.Capabilities) (*session.Session, *notify.Center, func() error, error) {
	if caps == nil {
		c, err := a.cfg.Capabilities()
		if err != nil {
			return nil, nil, nil, err
		}
		caps = &c
	}

	path, explicit := a.cfg.SeedPath()
	center := notify.NewCenter(a.logger, notify.DefaultHistory)

	s, closeStore, err := session.Open(ctx, path, explicit, center, *caps)
	if err != nil {
		return nil, nil, nil, err
	}

	count, err := s.Clients.Count(ctx)
	if err != nil {
		_ = closeStore()
		return nil, nil, nil, fmt.Errorf("failed to count clients: %w", err)
	}
	a.logger.Debug("session opened", "seed", path, "clients", count, "features", caps.String())

	return s, center, closeStore, nil
}

// parseFieldFlag resolves a --sort style flag, listing valid names on error.
func parseFieldFlag(name, value string) (models.Field, error) {
	f, err := models.ParseField(value)
	if err != nil {
		names := make([]string, 0, len(models.Fields()))
		for _, f := range models.Fields() {
			names = append(names, string(f))
		}
		return "", fmt.Errorf("invalid --%s %q (valid values: %s)", name, value, strings.Join(names, ", "))
	}
	return f, nil
}
