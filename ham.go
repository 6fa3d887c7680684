package ham

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/aretw0/ham/internal/logging"
	"github.com/aretw0/ham/pkg/domain"
	"github.com/aretw0/ham/pkg/observability"
	"github.com/aretw0/ham/pkg/topology"
)

type loader struct {
	logger  *slog.Logger
	dupEnd  domain.DuplicateEndPolicy
	metrics *observability.Metrics
	source  string
}

// Option defines a functional option for Load and Parse.
type Option func(*loader)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

// WithDuplicateEndPolicy selects how repeated "end" transitions in one state
// are handled (default domain.DuplicateEndLastWins).
func WithDuplicateEndPolicy(p domain.DuplicateEndPolicy) Option {
	return func(l *loader) {
		l.dupEnd = p
	}
}

// WithMetrics records every load on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(l *loader) {
		l.metrics = m
	}
}

// Load reads a topology file and builds its finalized topology.
func Load(ctx context.Context, path string, opts ...Option) (*topology.Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology: %w", err)
	}
	return Parse(ctx, data, append(slices.Clip(opts), withSource(path))...)
}

// Parse builds a finalized topology from YAML bytes.
func Parse(ctx context.Context, data []byte, opts ...Option) (*topology.Topology, error) {
	l := &loader{dupEnd: domain.DuplicateEndLastWins}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.NewNop()
	}
	if l.source != "" {
		l.logger = l.logger.With("source", l.source)
	}

	start := time.Now()
	topo, err := parse(ctx, data, l)
	elapsed := time.Since(start)

	if err != nil {
		l.metrics.ObserveLoad("", 0, elapsed, err)
		l.logger.Error("Topology load failed", "err", err)
		return nil, err
	}
	l.metrics.ObserveLoad(topo.Name(), topo.Len(), elapsed, nil)
	l.logger.Info("Topology loaded",
		"topology", topo.Name(),
		"states", topo.Len(),
		"duration", elapsed,
	)
	return topo, nil
}

func parse(ctx context.Context, data []byte, l *loader) (*topology.Topology, error) {
	doc, err := topology.Decode(data)
	if err != nil {
		return nil, err
	}
	return topology.Load(ctx, doc,
		topology.WithLogger(l.logger),
		topology.WithDuplicateEndPolicy(l.dupEnd),
	)
}

// withSource tags log lines with the file being loaded.
func withSource(path string) Option {
	return func(l *loader) {
		l.source = path
	}
}
