package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/ham"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ham",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ham version %s\n", strings.TrimSpace(ham.Version))
		},
	}
}
