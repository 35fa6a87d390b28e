package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/matex/internal/provider"
	"github.com/roach88/matex/internal/store"
)

// SeedResult is the seed command's output.
type SeedResult struct {
	DB          string `json:"db"`
	Rows        int    `json:"rows"`
	Seed        uint64 `json:"seed"`
	Fingerprint string `json:"fingerprint"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a synthetic dataset to the SQLite database",
		Long: `Generate a synthetic table and replace the contents of the SQLite
database with it. The database is created if it does not exist.

With a non-zero --seed the same table is written every time.

Examples:
  matex seed --db matex.db --rows 500 --seed 42
  matex filter --source sqlite --db matex.db --range band_gap=0:3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, cmd)
		},
	}
	return cmd
}

func runSeed(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	t, err := provider.NewSynthetic(opts.Rows, opts.Seed).Load(cmd.Context())
	if err != nil {
		return formatter.Fail("generate dataset", err)
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return formatter.Fail("open database", err)
	}
	defer st.Close()

	if err := st.ReplaceAll(cmd.Context(), t); err != nil {
		return formatter.FailCode(ErrCodeWriteFailed, ExitCommandError, "write dataset", err)
	}
	formatter.VerboseLog("Wrote %d rows to %s", t.Len(), opts.DB)

	result := SeedResult{
		DB:          opts.DB,
		Rows:        t.Len(),
		Seed:        opts.Seed,
		Fingerprint: t.Fingerprint(),
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s with %d materials (fingerprint %s)\n", result.DB, result.Rows, result.Fingerprint)
	return nil
}
