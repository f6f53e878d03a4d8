package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/hotzsauce/edan/scenario"
	"github.com/hotzsauce/edan/transform"
)

func newForecastCmd() *cobra.Command {
	var (
		method  string
		values  []float64
		opts    scenario.Options
		end     string
		measure string
	)

	cmd := &cobra.Command{
		Use:   "forecast <address>",
		Short: "Project a component forward from assumed changes",
		Long: `The forecast command extends one measure of a component by inverting a
transformation: each assumed value is the change the projected level should
show under the method. A single value is held over the whole horizon.

Example:
  edan -t gdp.yaml -d gdp.csv forecast gdp --method difa% --value 2
  edan -t gdp.yaml -d gdp.csv forecast gdp --method diff --value 10,20,30
  edan -t gdp.yaml -d gdp.csv forecast gdp --value 2.5 --end 2026-12-31`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, table, err := setup(cmd)
			if err != nil {
				return err
			}
			node, err := table.Get(args[0])
			if err != nil {
				return err
			}
			if end != "" {
				if opts.End, err = time.Parse(time.DateOnly, end); err != nil {
					return err
				}
			}

			fc, err := scenario.ProjectMeasure(node, measure, method, values, opts)
			if err != nil {
				return err
			}
			logger.Info("projected series", "component", node.FullPath(), "method", method,
				"periods", fc.Len(), "last_observed", fc.LastObserved().Format(time.DateOnly))
			return writeSeries(cmd.OutOrStdout(), "", fc.Path())
		},
	}
	cmd.Flags().StringVarP(&method, "method", "m", transform.DefMethod, "Method the assumptions are expressed in")
	cmd.Flags().Float64SliceVar(&values, "value", nil, "Assumed values, one per period or one for all (required)")
	cmd.Flags().IntVarP(&opts.Periods, "periods", "p", 0, "Number of periods to project")
	cmd.Flags().StringVar(&end, "end", "", "Last date to project (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.H, "h", 0, "Periods per year (default from the series frequency)")
	cmd.Flags().StringVar(&opts.Label, "label", "", "Name of the projected series")
	cmd.Flags().StringVar(&measure, "measure", "", "Measure to project (default: the component's default measure)")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
