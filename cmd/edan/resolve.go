package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hotzsauce/edan/component"
)

type measureInfo struct {
	Measure   string `json:"measure"`
	Code      string `json:"code"`
	Frequency string `json:"frequency"`
	Len       int    `json:"observations"`
}

type nodeInfo struct {
	Path       string        `json:"path"`
	Name       string        `json:"name"`
	Display    string        `json:"display_name"`
	Kind       string        `json:"kind"`
	Level      int           `json:"level"`
	Balance    bool          `json:"balance"`
	Measures   []measureInfo `json:"measures"`
	Subs       []string      `json:"subs"`
	Partitions []string      `json:"partitions"`
}

func describe(n *component.Node) nodeInfo {
	info := nodeInfo{
		Path:    n.FullPath(),
		Name:    n.Name(),
		Display: n.DisplayName(),
		Kind:    n.Kind().String(),
		Level:   n.Level(),
		Balance: n.IsBalance(),
	}
	for _, m := range n.Measures() {
		ref, _ := n.Measure(m)
		info.Measures = append(info.Measures, measureInfo{
			Measure:   m,
			Code:      ref.Code,
			Frequency: ref.Frequency().String(),
			Len:       ref.Series.Len(),
		})
	}
	for _, s := range n.Subs() {
		info.Subs = append(info.Subs, s.FullPath())
	}
	for _, p := range n.Partitions() {
		info.Partitions = append(info.Partitions, p.FullPath())
	}
	return info
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <address> [relative]",
		Short: "Resolve an address and describe the component",
		Long: `The resolve command looks up a component by its absolute address, or by an
address relative to it when a second argument is given.

Example:
  edan --table gdp.yaml resolve gdp:x+x
  edan --table gdp.yaml resolve gdp:x -- -m`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, table, err := setup(cmd)
			if err != nil {
				return err
			}
			node, err := table.Get(args[0])
			if err != nil {
				return err
			}
			if len(args) > 1 {
				if node, err = node.Get(args[1]); err != nil {
					return err
				}
			}

			info := describe(node)
			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, info)
			}

			fmt.Fprintf(out, "%s\n", info.Path)
			fmt.Fprintf(out, "  name:     %s\n", info.Display)
			fmt.Fprintf(out, "  kind:     %s\n", info.Kind)
			fmt.Fprintf(out, "  level:    %d\n", info.Level)
			if info.Balance {
				fmt.Fprintf(out, "  balance:  yes\n")
			}
			for _, m := range info.Measures {
				fmt.Fprintf(out, "  %-9s %s (%s, %d obs.)\n", m.Measure+":", m.Code, m.Frequency, m.Len)
			}
			for _, s := range info.Subs {
				fmt.Fprintf(out, "  sub:      %s\n", s)
			}
			for _, p := range info.Partitions {
				fmt.Fprintf(out, "  part:     %s\n", p)
			}
			return nil
		},
	}
}
