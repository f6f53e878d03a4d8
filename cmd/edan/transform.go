package main

import (
	"github.com/spf13/cobra"

	"github.com/hotzsauce/edan/timeseries"
	"github.com/hotzsauce/edan/transform"
)

func newTransformCmd() *cobra.Command {
	var (
		spec    transform.Spec
		measure string
		subs    []string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "transform <address>",
		Short: "Transform a component's series",
		Long: `The transform command applies a transformation to one measure of a
component, or of several of its subcomponents, and prints the result.

Example:
  edan -t gdp.yaml -d gdp.csv transform gdp --method difa%
  edan -t gdp.yaml -d gdp.csv transform gdp:c --method yryr% --sub g --sub s
  edan -t gdp.yaml -d gdp.csv transform gdp --method index --base 2017`,
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
			engine := transform.NewEngine(logger)

			if all {
				for _, s := range node.Subs() {
					subs = append(subs, s.FullPath())
				}
			}

			var series []*timeseries.Series
			if len(subs) == 0 {
				res, err := node.TransformWith(engine, measure, spec)
				if err != nil {
					return err
				}
				series = append(series, res.Series)
			} else {
				series, err = node.SelectWith(cmd.Context(), engine, subs, measure, spec)
				if err != nil {
					return err
				}
			}

			unit := ""
			if spec.Method != "" {
				unit = transform.Unit(spec.Method, spec.N, series[0].Freq)
			}
			return writeSeries(cmd.OutOrStdout(), unit, series...)
		},
	}

	cmd.Flags().StringVarP(&spec.Method, "method", "m", "", "Transformation method (see 'edan methods'); none prints levels")
	cmd.Flags().IntVar(&spec.N, "n", 0, "Lag or window length (default 1)")
	cmd.Flags().IntVar(&spec.H, "h", 0, "Periods per year (default from the series frequency)")
	cmd.Flags().StringVar(&spec.Base, "base", "", "Index base year or range, e.g. 2017 or 2017-01-01/2017-12-01")
	cmd.Flags().StringVar(&spec.Label, "label", "", "Name of the output series")
	cmd.Flags().StringVar(&measure, "measure", "", "Measure to transform (default: the component's default measure)")
	cmd.Flags().StringArrayVar(&subs, "sub", nil, "Subcomponent address, relative or absolute (repeatable)")
	cmd.Flags().BoolVar(&all, "subs", false, "Transform every direct subcomponent")
	return cmd
}
