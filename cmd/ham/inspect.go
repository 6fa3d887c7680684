package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/ham/internal/presentation/tui"
	"github.com/aretw0/ham/pkg/domain"
	"github.com/aretw0/ham/pkg/topology"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		stateName string
		plain     bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Describe the states of a topology",
		Long: `Prints every state (or one, with --state): its dense transitions, end
transition and emission tables. Output is rendered markdown on a terminal and
raw markdown otherwise; --plain prints the diagnostic dump instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topo, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			states := append([]*domain.State{topo.Init()}, topo.States()...)
			if stateName != "" {
				st, ok := topo.Lookup(stateName)
				if !ok {
					return fmt.Errorf("%w %q", domain.ErrUnknownState, stateName)
				}
				states = []*domain.State{st}
			}

			out := cmd.OutOrStdout()
			if plain {
				return dump(out, states)
			}
			return render(out, topo, states, stateName != "")
		},
	}
	cmd.Flags().StringVar(&stateName, "state", "", "only inspect this state")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the plain diagnostic dump")
	return cmd
}

func dump(w io.Writer, states []*domain.State) error {
	for _, st := range states {
		if err := st.Dump(w); err != nil {
			return err
		}
	}
	return nil
}

func render(w io.Writer, topo *topology.Topology, states []*domain.State, single bool) error {
	md := tui.TopologyMarkdown(topo)
	if single {
		md = tui.StateMarkdown(states[0])
	}

	f, ok := w.(*os.File)
	if !ok || !tui.IsTerminal(f) {
		_, err := io.WriteString(w, md)
		return err
	}

	r, err := tui.NewRenderer(tui.TerminalWidth(f))
	if err != nil {
		return err
	}
	out, err := r(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
