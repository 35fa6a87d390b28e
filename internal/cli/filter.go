package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/matex/internal/chart"
	"github.com/roach88/matex/internal/config"
	"github.com/roach88/matex/internal/engine"
	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/preset"
	"github.com/roach88/matex/internal/queryir"
)

// filterFlags are the flags that build a FilterSpec. Shared by filter and
// plot.
type filterFlags struct {
	Ranges   []string
	Formula  string
	Elements string
	Preset   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.Ranges, "range", "r", nil, "inclusive range field=min:max (repeatable; either side may be empty)")
	cmd.Flags().StringVar(&f.Formula, "formula", "", "case-insensitive formula substring")
	cmd.Flags().StringVar(&f.Elements, "elements", "", "required element symbols, e.g. Fe,O")
	cmd.Flags().StringVar(&f.Preset, "preset", "", "preset file, or preset name in preset_dir")
}

// spec builds the FilterSpec: the preset first, then flags. --range adds
// to the preset's ranges; --formula and --elements replace its values.
// The spec is not validated here.
func (f *filterFlags) spec(cfg *config.Config) (queryir.FilterSpec, error) {
	var spec queryir.FilterSpec
	if f.Preset != "" {
		p, err := resolvePreset(f.Preset, cfg.PresetDir)
		if err != nil {
			return queryir.FilterSpec{}, err
		}
		spec = p.Filter().Spec()
	}

	for _, expr := range f.Ranges {
		r, err := queryir.ParseRange(expr)
		if err != nil {
			return queryir.FilterSpec{}, NewExitError(ExitCommandError, fmt.Sprintf("--range %q: %v", expr, err))
		}
		spec = spec.WithRange(r)
	}
	if f.Formula != "" {
		spec = spec.WithFormula(f.Formula)
	}
	if strings.TrimSpace(f.Elements) != "" {
		spec = spec.WithElements(queryir.ParseElements(f.Elements)...)
	}
	return spec, nil
}

// resolvePreset loads ref as a file path, or by name from dir.
func resolvePreset(ref, dir string) (preset.Preset, error) {
	if _, err := os.Stat(ref); err == nil || dir == "" {
		p, err := preset.Load(ref)
		if err != nil {
			return preset.Preset{}, err
		}
		return p, nil
	}

	presets, err := preset.LoadDir(dir)
	if err != nil {
		return preset.Preset{}, err
	}
	for _, p := range presets {
		if p.Name == ref {
			return p, nil
		}
	}
	return preset.Preset{}, NewExitError(ExitCommandError, fmt.Sprintf("preset %q not found in %s", ref, dir))
}

// FilterOptions holds flags for the filter command.
type FilterOptions struct {
	*RootOptions
	filterFlags
	Pushdown bool
}

// FilterResult is the filter command's output.
type FilterResult struct {
	Query    string            `json:"query"`
	Snapshot string            `json:"snapshot,omitempty"`
	Total    int               `json:"total,omitempty"`
	Matched  int               `json:"matched"`
	Elements []string          `json:"elements,omitempty"` // element symbols present in the dataset
	Pushdown bool              `json:"pushdown"`
	Rows     []material.Record `json:"rows"`
}

// NewFilterCommand creates the filter command.
func NewFilterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FilterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter materials by property ranges, formula and elements",
		Long: `Filter the dataset and print the first rows of the result.

All conditions must hold. Ranges are inclusive; a malformed filter
(min greater than max, unknown field, bad element symbol) is rejected.

Exit codes:
  0 - Success (including an empty result)
  1 - Invalid filter
  2 - Command error or data unavailable

Examples:
  matex filter --range band_gap=0:3
  matex filter --range density=5: --elements Fe,O --limit 20
  matex filter --formula tio --format json
  matex filter --source sqlite --db matex.db --pushdown --range band_gap=1:2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(opts, cmd)
		},
	}

	opts.filterFlags.register(cmd)
	cmd.Flags().Int("limit", config.DefaultLimit, "number of result rows to print")
	cmd.Flags().BoolVar(&opts.Pushdown, "pushdown", false, "evaluate the filter inside SQLite (sqlite source only)")

	return cmd
}

func runFilter(opts *FilterOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	spec, err := opts.spec(opts.Config)
	if err != nil {
		return formatter.Fail("invalid filter", err)
	}
	if err := engine.Validate(spec); err != nil {
		return formatter.Fail("invalid filter", err)
	}

	sess, err := openSession(opts.RootOptions)
	if err != nil {
		return formatter.Fail("cannot load dataset", err)
	}
	defer sess.Close()

	result := FilterResult{Query: spec.String(), Pushdown: opts.Pushdown}
	var matched material.Table

	if opts.Pushdown {
		fs, ok := sess.Filterable()
		if !ok {
			return formatter.Fail("invalid flags", NewExitError(ExitCommandError, "--pushdown requires --source sqlite"))
		}
		matched, err = fs.LoadFiltered(cmd.Context(), spec)
		if err != nil {
			return formatter.Fail("filter failed", err)
		}
	} else {
		table, err := sess.Table(cmd.Context())
		if err != nil {
			return formatter.Fail("cannot load dataset", err)
		}
		matched, err = engine.New(opts.Logger).Filter(table, spec)
		if err != nil {
			return formatter.Fail("invalid filter", err)
		}
		result.Snapshot = table.Snapshot()
		result.Total = table.Len()
		result.Elements = table.ElementSymbols()
	}

	result.Matched = matched.Len()
	result.Rows = chart.Preview(matched, opts.Config.Limit).Records()

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return outputFilterText(cmd, opts, result)
}

func outputFilterText(cmd *cobra.Command, opts *FilterOptions, r FilterResult) error {
	w := cmd.OutOrStdout()

	if r.Pushdown {
		fmt.Fprintf(w, "Matched %d materials (%s, evaluated in SQLite)\n", r.Matched, r.Query)
	} else {
		fmt.Fprintf(w, "Matched %d of %d materials (%s)\n", r.Matched, r.Total, r.Query)
		fmt.Fprintf(w, "Elements: %s\n", strings.Join(r.Elements, ", "))
	}
	if opts.Formula != "" {
		fmt.Fprintln(w, chart.SearchSummary(opts.Formula, r.Matched))
	}

	renderRecords(w, r.Rows)
	if len(r.Rows) < r.Matched {
		fmt.Fprintf(w, "(showing %d of %d)\n", len(r.Rows), r.Matched)
	}
	return nil
}
