package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hotzsauce/edan/component"
	"github.com/hotzsauce/edan/indexnum"
	"github.com/hotzsauce/edan/timeseries"
	"github.com/hotzsauce/edan/transform"
)

func newIndexCmd() *cobra.Command {
	var (
		formula string
		base    string
		opts    indexnum.Options
	)

	cmd := &cobra.Command{
		Use:   "index <address>...",
		Short: "Price or quantity index over a basket of components",
		Long: `The index command computes an index number over the listed components.
Prices come from the price measure, or from nominal/real when a component
has none, and quantities from the real measure.

Example:
  edan -t gdp.yaml -d gdp.csv index gdp:c:g gdp:c:s
  edan -t gdp.yaml -d gdp.csv index gdp:c:g gdp:c:s --formula laspeyres --kind quantity --fixed`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, table, err := setup(cmd)
			if err != nil {
				return err
			}
			f, err := indexnum.ParseFormula(formula)
			if err != nil {
				return err
			}
			if opts.Base, err = transform.ParseBase(base); err != nil {
				return err
			}
			nodes, err := getNodes(table, args)
			if err != nil {
				return err
			}
			opts.Engine = transform.NewEngine(logger)

			s, err := indexnum.FromNodes(f, nodes, opts)
			if err != nil {
				return err
			}
			return writeSeries(cmd.OutOrStdout(), "index", s)
		},
	}
	cmd.Flags().StringVarP(&formula, "formula", "f", string(indexnum.FormulaFisher), "Index formula")
	cmd.Flags().StringVar(&opts.Kind, "kind", component.Price, "Index kind (price or quantity)")
	cmd.Flags().BoolVar(&opts.Fixed, "fixed", false, "Compare every period with the base instead of chaining")
	cmd.Flags().StringVar(&base, "base", "", "Base year or range (default: the first period)")
	return cmd
}

func newAggregateCmd() *cobra.Command {
	var (
		aggOpts indexnum.AggregateOptions
		base    string
	)

	cmd := &cobra.Command{
		Use:   "aggregate <address>...",
		Short: "Chain-weighted aggregate of components",
		Long: `The aggregate command combines the listed components into a new one and
prints its nominal, real, price and quantity measures. The real level is
a Fisher quantity chain scaled to the components' real total in the base.

Example:
  edan -t gdp.yaml -d gdp.csv aggregate gdp:c:g gdp:c:s --name c --base 2020`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, table, err := setup(cmd)
			if err != nil {
				return err
			}
			if aggOpts.Base, err = transform.ParseBase(base); err != nil {
				return err
			}
			nodes, err := getNodes(table, args)
			if err != nil {
				return err
			}
			aggOpts.Engine = transform.NewEngine(logger)

			agg, err := indexnum.Aggregate(nodes, aggOpts)
			if err != nil {
				return err
			}
			logger.Debug("built aggregate", "name", agg.Name(), "members", len(agg.Subs()))

			var series []*timeseries.Series
			for _, m := range agg.Measures() {
				ref, err := agg.Measure(m)
				if err != nil {
					return err
				}
				s := *ref.Series
				s.Name = fmt.Sprintf("%s %s", agg.Name(), m)
				series = append(series, &s)
			}
			return writeSeries(cmd.OutOrStdout(), "", series...)
		},
	}
	cmd.Flags().StringVar(&aggOpts.Name, "name", "agg", "Name of the aggregate")
	cmd.Flags().StringVar(&aggOpts.LongName, "long-name", "", "Long name of the aggregate")
	cmd.Flags().StringVar(&base, "base", "", "Base year or range (default: the first period)")
	return cmd
}

func getNodes(table *component.Table, addrs []string) ([]*component.Node, error) {
	nodes := make([]*component.Node, len(addrs))
	for i, addr := range addrs {
		n, err := table.Get(addr)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}
