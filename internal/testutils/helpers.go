package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/ham/pkg/topology"
	"github.com/stretchr/testify/require"
)

// LoadTopology decodes and loads a YAML topology.
// It fails the test immediately on error.
func LoadTopology(t *testing.T, src string, opts ...topology.Option) *topology.Topology {
	t.Helper()

	doc, err := topology.Decode([]byte(src))
	require.NoError(t, err, "Failed to decode topology")

	topo, err := topology.Load(context.Background(), doc, opts...)
	require.NoError(t, err, "Failed to load topology")

	return topo
}

// WriteTopology writes src to a file in a temporary directory and returns its
// absolute path.
func WriteTopology(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "topology.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644), "Failed to write topology")

	return path
}
