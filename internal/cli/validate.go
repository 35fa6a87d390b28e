package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/matex/internal/preset"
)

// PresetSummary describes one valid preset.
type PresetSummary struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Query string `json:"query"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool            `json:"valid"`
	Presets []PresetSummary `json:"presets"`
	Errors  []string        `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <preset-file|preset-dir>",
		Short: "Validate filter presets",
		Long: `Validate a preset file (.yaml, .yml or .cue) or every preset in a
directory without loading any data.

CUE presets are checked against the #Preset schema; every preset must
also lower to a valid filter.

Exit codes:
  0 - All presets valid
  1 - One or more presets invalid
  2 - Command error (path not found, etc.)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	info, err := os.Stat(path)
	if err != nil {
		return formatter.Fail("cannot read presets", NewExitError(ExitCommandError, fmt.Sprintf("path not found: %s", path)))
	}

	var presets []preset.Preset
	if info.IsDir() {
		presets, err = preset.LoadDir(path)
	} else {
		var p preset.Preset
		p, err = preset.Load(path)
		presets = []preset.Preset{p}
	}

	result := ValidationResult{Valid: err == nil, Presets: []PresetSummary{}}
	if err != nil {
		result.Errors = []string{err.Error()}
	} else {
		for _, p := range presets {
			spec, _ := p.Spec()
			result.Presets = append(result.Presets, PresetSummary{Name: p.Name, Path: p.Path, Query: spec.String()})
		}
	}
	formatter.VerboseLog("Checked %s", path)

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, e := range result.Errors {
			fmt.Fprintf(w, "✗ %s\n", e)
		}
		for _, p := range result.Presets {
			fmt.Fprintf(w, "✓ %s: %s\n", p.Name, p.Query)
		}
	}

	if !result.Valid {
		exitErr := WrapExitError(ExitFailure, "invalid preset", err)
		exitErr.Reported = true
		return exitErr
	}
	return nil
}
