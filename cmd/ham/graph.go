package main

import (
	"fmt"

	"github.com/aretw0/ham/internal/presentation/graph"
	"github.com/spf13/cobra"
)

func newGraphCmd(a *app) *cobra.Command {
	var current string

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Export the topology as a Mermaid diagram",
		Long:  `Outputs a Mermaid flowchart (graph LR) with one node per state and one edge per possible transition.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topo, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			var overlay *graph.GraphOverlay
			if current != "" {
				overlay = &graph.GraphOverlay{Current: current}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(topo, overlay))
			return err
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "highlight this state")
	return cmd
}
