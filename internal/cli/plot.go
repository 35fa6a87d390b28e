package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/matex/internal/chart"
	"github.com/roach88/matex/internal/engine"
	"github.com/roach88/matex/internal/material"
)

// PlotOptions holds flags for the plot command.
type PlotOptions struct {
	*RootOptions
	filterFlags
	X string
	Y string
}

// NewPlotCommand creates the plot command.
func NewPlotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Build a scatter plot of the filtered materials",
		Long: `Build scatter data of one property against another over the filtered
table, one series per formula.

The x axis is one of ` + axisList(chart.XAxisOptions) + `; the y axis is one of
` + axisList(chart.YAxisOptions) + `. The filter flags are those of "matex filter".

Examples:
  matex plot
  matex plot --x density --y formation_energy --range band_gap=0:3
  matex plot --elements O --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(opts, cmd)
		},
	}

	opts.filterFlags.register(cmd)
	cmd.Flags().StringVar(&opts.X, "x", string(chart.DefaultX), "x axis field")
	cmd.Flags().StringVar(&opts.Y, "y", string(chart.DefaultY), "y axis field")

	return cmd
}

func axisList(fields []material.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func runPlot(opts *PlotOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	x, err := material.ParseField(opts.X)
	if err != nil {
		return formatter.Fail("invalid axis", WrapExitError(ExitCommandError, "--x", err))
	}
	y, err := material.ParseField(opts.Y)
	if err != nil {
		return formatter.Fail("invalid axis", WrapExitError(ExitCommandError, "--y", err))
	}

	spec, err := opts.spec(opts.Config)
	if err != nil {
		return formatter.Fail("invalid filter", err)
	}

	sess, err := openSession(opts.RootOptions)
	if err != nil {
		return formatter.Fail("cannot load dataset", err)
	}
	defer sess.Close()

	t, err := sess.Table(cmd.Context())
	if err != nil {
		return formatter.Fail("cannot load dataset", err)
	}
	matched, err := engine.New(opts.Logger).Filter(t, spec)
	if err != nil {
		return formatter.Fail("invalid filter", err)
	}

	scatter, err := chart.NewScatter(matched, x, y)
	if err != nil {
		return formatter.Fail("cannot build plot", err)
	}

	if opts.Format == "json" {
		return formatter.Success(scatter)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (%d points, %d series)\n", scatter.Title, scatter.Points(), len(scatter.Series))
	if scatter.Points() == 0 {
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"formula", "id", scatter.XLabel, scatter.YLabel})
	for _, s := range scatter.Series {
		for _, p := range s.Points {
			tw.AppendRow(table.Row{s.Formula, p.ID, chart.FormatValue(p.X), chart.FormatValue(p.Y)})
		}
	}
	tw.Render()
	return nil
}
