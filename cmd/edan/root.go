package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hotzsauce/edan/component"
	"github.com/hotzsauce/edan/internal/logging"
	"github.com/hotzsauce/edan/timeseries"
)

var (
	// Global flags
	tablePath string
	dataPath  string
	frequency string
	logLevel  string
	jsonOut   bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "edan",
		Short: "Query hierarchical economic tables and transform their series",
		Long: `edan loads a table of economic components (GDP, PCE, CPI, ...) from a YAML
description and the series behind it from a CSV file. Components are addressed
with codes such as gdp:c:g, gdp:x+x or gdp#e.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&tablePath, "table", "t", "", "YAML table description")
	root.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "CSV file of series, one column per code")
	root.PersistentFlags().StringVar(&frequency, "freq", "", "Frequency of the CSV data (A, Q, M, W, D); inferred when empty")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	root.AddCommand(
		newTreeCmd(),
		newResolveCmd(),
		newTransformCmd(),
		newContributionsCmd(),
		newSharesCmd(),
		newForecastCmd(),
		newIndexCmd(),
		newAggregateCmd(),
		newMethodsCmd(),
	)
	return root
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the logger selected by --log-level, writing to the
// command's error stream.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(cmd.ErrOrStderr(), level), nil
}

// loadTable reads the table named by --table, binding its measures to the
// series in --data.
func loadTable(logger *slog.Logger) (*component.Table, error) {
	if tablePath == "" {
		return nil, errors.New("no table description given (use --table)")
	}

	var src component.Source
	if dataPath != "" {
		opts := timeseries.DefaultCSVOptions()
		freq, err := timeseries.ParseFrequency(frequency)
		if err != nil {
			return nil, err
		}
		opts.Frequency = freq

		series, err := timeseries.LoadCSVTable(dataPath, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to load series: %w", err)
		}
		logger.Debug("loaded series", "path", dataPath, "count", len(series))
		src = component.MapSource(series)
	}

	table, err := component.LoadTableFile(tablePath, src)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded table", "name", table.Name(), "components", table.Len())
	return table, nil
}

// setup is the common prologue of the commands that need a table.
func setup(cmd *cobra.Command) (*slog.Logger, *component.Table, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	table, err := loadTable(logger)
	if err != nil {
		return nil, nil, err
	}
	return logger, table, nil
}
