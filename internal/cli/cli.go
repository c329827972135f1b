// Package cli implements the popdemo command-line interface.
//
// Running popdemo without a subcommand starts the interactive demo. The
// subcommands inspect placements and manage the config file without a
// terminal UI.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/riordanpawley/popover/internal/app"
	"github.com/riordanpawley/popover/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the build information shown by --version
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

// options holds the persistent flags
type options struct {
	configPath string
	logFile    string
	verbose    bool
}

// Execute runs the popdemo CLI
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "popdemo",
		Short:        "Anchored popovers in the terminal",
		Long:         `popdemo shows a grid of triggers, each presenting a popover attached to one of nine anchors. Popovers stack, animate in and out and can be dismissed by tapping the scrim.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			ctx := withConfig(cmd.Context(), cfg)
			ctx = withLogger(ctx, newLogger(cmd.ErrOrStderr(), logLevel(cfg, opts.verbose)))
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("popdemo %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (.json or .toml); defaults to .popover.json or .popover.toml in the working directory")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the demo runs")

	root.AddCommand(newResolveCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// runTUI starts the demo. The terminal belongs to the program, so logs
// only go to --log-file.
func runTUI(ctx context.Context, opts *options) error {
	cfg := configFromContext(ctx)

	var w io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := slog.New(newLogger(w, logLevel(cfg, opts.verbose)))
	slog.SetDefault(logger)

	model, err := app.New(cfg, app.WithLogger(logger))
	if err != nil {
		return err
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// logLevel picks the configured level, or debug with --verbose
func logLevel(cfg *config.Config, verbose bool) charmlog.Level {
	if verbose {
		return charmlog.DebugLevel
	}
	level, err := charmlog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return charmlog.InfoLevel
	}
	return level
}
