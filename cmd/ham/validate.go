package main

import (
	"github.com/aretw0/ham/internal/presentation/tui"
	"github.com/aretw0/ham/internal/validator"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a topology file",
		Long: `Loads the topology, resolving every transition and emission, and reports the
first error. It then warns about unreachable states, states that cannot end
and distributions that do not sum to 1; --strict turns those into failures.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topo, err := a.load(cmd, args[0])
			if err != nil {
				tui.Failure(cmd.ErrOrStderr(), "Validation failed: %v", err)
				return errReported
			}

			issues := validator.Inspect(topo)
			for _, issue := range issues {
				tui.Warning(cmd.ErrOrStderr(), "%s", issue)
			}
			if strict && len(issues) > 0 {
				tui.Failure(cmd.ErrOrStderr(), "Validation failed: %d issues", len(issues))
				return errReported
			}

			tui.Success(cmd.OutOrStdout(), "Topology %q is valid: %d states, %d tracks", topo.Name(), topo.Len(), len(topo.Tracks()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on modelling warnings")
	return cmd
}
