package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hotzsauce/edan/scenario"
	"github.com/hotzsauce/edan/timeseries"
	"github.com/hotzsauce/edan/transform"
)

type methodInfo struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	NeedsH   bool   `json:"needs_h"`
	Forecast bool   `json:"forecast"`
	Default  bool   `json:"default,omitempty"`
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the transformation methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []methodInfo
			for _, name := range transform.Methods() {
				infos = append(infos, methodInfo{
					Name:     name,
					Unit:     transform.Unit(name, 1, timeseries.Unknown),
					NeedsH:   transform.NeedsPeriodsPerYear(name),
					Forecast: scenario.Supported(name),
					Default:  name == transform.DefMethod,
				})
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, infos)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tUNIT\tANNUALIZED\tFORECAST")
			for _, m := range infos {
				name := m.Name
				if m.Default {
					name += " *"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, m.Unit, yesNo(m.NeedsH), yesNo(m.Forecast))
			}
			return w.Flush()
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
