package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/ham"
	httpAdapter "github.com/aretw0/ham/internal/adapters/http"
	"github.com/aretw0/ham/internal/presentation/tui"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve a read-only view of a topology over HTTP",
		Long: `Loads the topology once and exposes it as JSON (/states, /states/{name}),
a Mermaid graph (/graph) and Prometheus metrics (/metrics).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topo, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Addr
			}

			srv := &http.Server{
				Addr: addr,
				Handler: httpAdapter.NewHandler(topo,
					httpAdapter.WithVersion(ham.Version),
					httpAdapter.WithGatherer(a.registry),
					httpAdapter.WithLogger(a.logger),
				),
				ReadHeaderTimeout: 10 * time.Second,
			}

			tui.PrintBanner(cmd.OutOrStdout(), ham.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving topology %q on %s\n", topo.Name(), addr)
			return run(cmd.Context(), srv, a)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $HAM_ADDR or :8080)")
	return cmd
}

// run blocks until the server fails or ctx is canceled, then shuts down.
func run(ctx context.Context, srv *http.Server, a *app) error {
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		a.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		a.logger.Info("Server stopped gracefully")
		return nil
	}
}
