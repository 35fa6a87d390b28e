package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/matex/internal/chart"
	"github.com/roach88/matex/internal/engine"
)

// ShowResult is the show command's output.
type ShowResult struct {
	ID         string           `json:"id"`
	Found      bool             `json:"found"`
	Snapshot   string           `json:"snapshot,omitempty"`
	Properties []chart.Property `json:"properties,omitempty"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of one material",
		Long: `Show the formula, band gap, density and formation energy of the
material with the given id.

An unknown id is not an error: the command reports it and exits 0.

Examples:
  matex show mp-7
  matex show mp-7 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	sess, err := openSession(opts)
	if err != nil {
		return formatter.Fail("cannot load dataset", err)
	}
	defer sess.Close()

	t, err := sess.Table(cmd.Context())
	if err != nil {
		return formatter.Fail("cannot load dataset", err)
	}

	result := ShowResult{ID: id, Snapshot: t.Snapshot()}
	r, ok := engine.New(opts.Logger).Lookup(t, id)
	if ok {
		result.Found = true
		result.Properties = chart.Details(r)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	if !result.Found {
		fmt.Fprintf(w, "No material with id %s\n", id)
		return nil
	}

	fmt.Fprintf(w, "Material %s\n", id)
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	for _, p := range result.Properties {
		tw.AppendRow(table.Row{p.Label, p.String()})
	}
	tw.Render()
	return nil
}
