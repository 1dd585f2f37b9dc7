// Package commands implements the svclint subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/svclint/internal/cli/config"
	"github.com/leapstack-labs/svclint/internal/cli/output"
	"github.com/leapstack-labs/svclint/internal/loader"
	"github.com/leapstack-labs/svclint/internal/state"
	"github.com/leapstack-labs/svclint/pkg/naming"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Rules    *naming.RuleTables
	Loader   *loader.Loader
}

// NewCommandContext builds the dependencies of a command. A non-empty format
// overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) (*CommandContext, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())

	modeName := cfg.OutputFormat
	if format != "" {
		modeName = format
	}
	mode, err := output.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	ld := loader.New(logger)
	if cfg.Concurrency > 0 {
		ld = ld.WithConcurrency(cfg.Concurrency)
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
		Rules:    cfg.Rules.ToRuleTables(),
		Loader:   ld,
	}, nil
}

// getConfig returns the configuration loaded by the root command, loading it
// when a command runs on its own.
func getConfig() (*config.Config, error) {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	return config.LoadConfig("", nil)
}

// OpenStore opens and migrates the run history database.
// The caller must close the returned store.
func (c *CommandContext) OpenStore() (*state.SQLiteStore, error) {
	store := state.NewSQLiteStore(c.Logger)
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func formatFlagUsage() string {
	return fmt.Sprintf("Output format: %s, %s, %s, %s", output.ModeAuto, output.ModeText, output.ModeMarkdown, output.ModeJSON)
}
