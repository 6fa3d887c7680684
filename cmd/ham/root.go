package main

import (
	"errors"
	"log/slog"

	"github.com/aretw0/ham"
	"github.com/aretw0/ham/internal/config"
	"github.com/aretw0/ham/pkg/domain"
	"github.com/aretw0/ham/pkg/observability"
	"github.com/aretw0/ham/pkg/topology"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// errReported marks failures the command already printed.
var errReported = errors.New("reported")

// app carries what every subcommand needs once the environment is read.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	policy   domain.DuplicateEndPolicy
	registry *prometheus.Registry
	metrics  *observability.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var envFiles []string

	rootCmd := &cobra.Command{
		Use:   "ham",
		Short: "ham loads and inspects hidden Markov model topologies",
		Long: `ham reads a YAML topology (tracks, states, transitions, emissions),
validates it and builds the dense transition layout used by decoding kernels.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, envFiles)
		},
	}
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default: ./.env if present)")

	rootCmd.AddCommand(
		newValidateCmd(a),
		newInspectCmd(a),
		newGraphCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, envFiles []string) error {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	policy, err := cfg.DuplicateEndPolicy()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.policy = policy
	a.registry = prometheus.NewRegistry()
	a.metrics = observability.NewMetrics(a.registry)
	return nil
}

func (a *app) load(cmd *cobra.Command, path string) (*topology.Topology, error) {
	return ham.Load(cmd.Context(), path,
		ham.WithLogger(a.logger),
		ham.WithDuplicateEndPolicy(a.policy),
		ham.WithMetrics(a.metrics),
	)
}
