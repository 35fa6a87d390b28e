// Package cli implements the matex command tree.
package cli

import (
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/matex/internal/config"
	"github.com/roach88/matex/internal/provider"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	Source     string
	DB         string
	Seed       uint64
	Rows       int
	CacheKey   string

	// Config is the resolved configuration, set before any command runs.
	Config *config.Config

	// Logger writes diagnostics to stderr; debug level with --verbose.
	Logger *slog.Logger

	// source replaces the configured dataset source (for testing).
	source provider.Source

	// snapshots replaces the snapshot id generator (for testing).
	snapshots provider.SnapshotGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the matex CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matex",
		Short: "matex - materials property explorer",
		Long: `Explore a table of materials by band gap, density, energy above hull,
formation energy, formula and constituent elements.

Data comes from a seeded synthetic generator or from a SQLite database
filled with "matex seed". Settings are read from matex.yaml, MATEX_*
environment variables and flags, in increasing precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return resolveConfig(opts, cmd)
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.Format, "format", config.DefaultFormat, "output format (json|text)")
	pf.StringVar(&opts.ConfigFile, "config", "", "config file (default: ./matex.yaml if present)")
	pf.StringVar(&opts.Source, "source", config.DefaultSource, "dataset source (synthetic|sqlite)")
	pf.StringVar(&opts.DB, "db", config.DefaultDB, "SQLite database path")
	pf.Uint64Var(&opts.Seed, "seed", 0, "synthetic data seed (0 = random)")
	pf.IntVar(&opts.Rows, "rows", config.DefaultRows, "synthetic table size")
	pf.StringVar(&opts.CacheKey, "cache-key", config.DefaultCacheKey, "dataset cache key")

	cmd.AddCommand(NewFilterCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewPlotCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolveConfig layers config file, environment and flags, then copies the
// result back into opts and sets up logging.
func resolveConfig(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigFile, cmd.Flags())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if !isValidFormat(cfg.Format) {
		return NewExitError(ExitCommandError, "invalid format "+cfg.Format)
	}

	opts.Config = cfg
	opts.Verbose = cfg.Verbose
	opts.Format = cfg.Format
	opts.Source = cfg.Source
	opts.DB = cfg.DB
	opts.Seed = cfg.Seed
	opts.Rows = cfg.Rows
	opts.CacheKey = cfg.CacheKey

	logLevel := slog.LevelInfo
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	}
	opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))
	if cfg.File != "" {
		opts.Logger.Debug("config loaded", "file", cfg.File)
	}
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatter returns an OutputFormatter bound to cmd's writers.
func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}
