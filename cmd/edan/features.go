package main

import (
	"github.com/spf13/cobra"

	"github.com/hotzsauce/edan/features"
	"github.com/hotzsauce/edan/transform"
)

func newContributionsCmd() *cobra.Command {
	var growth transform.Spec

	cmd := &cobra.Command{
		Use:     "contributions <address>",
		Aliases: []string{"contr"},
		Short:   "Contributions of subcomponents to an aggregate's growth",
		Long: `The contributions command splits the growth of an aggregate's real level
among its subcomponents, in percentage points. The contributions of each
period sum to the aggregate's growth.

Example:
  edan -t gdp.yaml -d gdp.csv contributions gdp
  edan -t gdp.yaml -d gdp.csv contributions gdp:c --method yryr%`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeature(cmd, args[0], features.FeatureContributions, features.Options{Growth: growth})
		},
	}
	cmd.Flags().StringVarP(&growth.Method, "method", "m", "", "Growth transformation of the aggregate (default difa%)")
	cmd.Flags().IntVar(&growth.N, "n", 0, "Lag length of the growth transformation")
	cmd.Flags().IntVar(&growth.H, "h", 0, "Periods per year (default from the series frequency)")
	return cmd
}

func newSharesCmd() *cobra.Command {
	var measure string

	cmd := &cobra.Command{
		Use:   "shares <address>",
		Short: "Shares of subcomponents in an aggregate",
		Long: `The shares command prints each subcomponent's measure as a percent of the
aggregate's. Subtracted balance components have negative shares.

Example:
  edan -t gdp.yaml -d gdp.csv shares gdp
  edan -t gdp.yaml -d gdp.csv shares gdp:c --measure real`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeature(cmd, args[0], features.FeatureShares, features.Options{Measure: measure})
		},
	}
	cmd.Flags().StringVar(&measure, "measure", "", "Measure to compare (default nominal)")
	return cmd
}

func runFeature(cmd *cobra.Command, addr string, f features.Feature, opts features.Options) error {
	logger, table, err := setup(cmd)
	if err != nil {
		return err
	}
	node, err := table.Get(addr)
	if err != nil {
		return err
	}
	opts.Engine = transform.NewEngine(logger)

	series, err := features.Compute(cmd.Context(), f, node, opts)
	if err != nil {
		return err
	}
	unit := "% of total"
	if f == features.FeatureContributions {
		unit = "pct. pts."
	}
	return writeSeries(cmd.OutOrStdout(), unit, series...)
}
