package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hotzsauce/edan/code"
	"github.com/hotzsauce/edan/component"
)

func newTreeCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "tree [address]",
		Short: "Display the component tree",
		Long: `The tree command lists the components of the table, or of the subtree
below an address, one per line with its code.

Example:
  edan --table gdp.yaml tree
  edan --table gdp.yaml tree gdp:c
  edan --table gdp.yaml tree --yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, table, err := setup(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asYAML {
				return table.WriteYAML(out)
			}
			if len(args) == 0 {
				_, err := fmt.Fprint(out, table.String())
				return err
			}

			node, err := table.Get(args[0])
			if err != nil {
				return err
			}
			base := node.Level()
			component.Inspect(node, func(n *component.Node) bool {
				if n == nil {
					return false
				}
				indent := strings.Repeat("  ", n.Level()-base)
				if n.Kind() == code.Partition && n != node {
					indent += "# "
				}
				fmt.Fprintf(out, "%s%s [%s]\n", indent, n.DisplayName(), n.FullPath())
				return true
			})
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the table description as YAML")
	return cmd
}
