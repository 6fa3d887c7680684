package topology

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/ham/internal/compiler"
	"github.com/aretw0/ham/internal/logging"
	"github.com/aretw0/ham/pkg/domain"
	"github.com/aretw0/ham/pkg/emission"
	"gopkg.in/yaml.v3"
)

// Document keys.
const (
	KeyName   = "name"
	KeyTracks = "tracks"
	KeyStates = "states"
)

type options struct {
	logger *slog.Logger
	dupEnd domain.DuplicateEndPolicy
}

// Option configures Load.
type Option func(*options)

// WithLogger sets the logger used for pass-level debug output and parse warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDuplicateEndPolicy selects how repeated "end" transitions are handled.
func WithDuplicateEndPolicy(p domain.DuplicateEndPolicy) Option {
	return func(o *options) {
		o.dupEnd = p
	}
}

// Decode parses YAML bytes into the document node consumed by Load.
func Decode(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse topology: %w", err)
	}
	return &doc, nil
}

// Load builds a finalized topology from its document node:
//
//	name: example
//	tracks: {nukes: [A, C, G, T]}
//	states:
//	  - {name: init, label: start, transitions: {A: 1}}
//	  - {name: A, label: a, transitions: {A: 0.9, end: 0.1}, emissions: {...}}
//
// Construction runs in passes: collect names, parse every state, assign
// iterators (init excluded), finalize every state. Any failure aborts the
// whole load; a partial topology is never returned.
func Load(ctx context.Context, node *yaml.Node, opts ...Option) (*Topology, error) {
	o := options{dupEnd: domain.DuplicateEndLastWins}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	logger := o.logger

	doc, err := documentOf(node)
	if err != nil {
		return nil, err
	}

	topo := &Topology{handles: make(map[string]int)}
	if n, ok := doc[KeyName]; ok {
		if err := n.Decode(&topo.name); err != nil {
			return nil, fmt.Errorf("topology name: %w", err)
		}
	}
	if n, ok := doc[KeyTracks]; ok {
		if topo.tracks, err = emission.ParseTracks(n); err != nil {
			return nil, err
		}
	}
	blocks, ok := doc[KeyStates]
	if !ok || blocks.Kind != yaml.SequenceNode || len(blocks.Content) == 0 {
		return nil, ErrNoStates
	}
	logger = logger.With("topology", topo.name)

	// First pass: collect every declared name so transitions may reference
	// states defined further down.
	names, err := collectNames(blocks)
	if err != nil {
		return nil, err
	}
	logger.Debug("Load: name collection complete.", "state_count", len(names))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Second pass: parse each state block.
	parser := compiler.NewParser(names, topo.tracks,
		compiler.WithDuplicateEndPolicy(o.dupEnd),
		compiler.WithLogger(logger),
	)
	for _, block := range blocks.Content {
		st, err := parser.ParseState(block)
		if err != nil {
			return nil, err
		}
		topo.handles[st.Name] = len(topo.arena)
		topo.arena = append(topo.arena, st)
	}
	logger.Debug("Load: state parsing complete.")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Third pass: assign iterators. Init keeps Unassigned; it has no column.
	for h, st := range topo.arena {
		if st.IsInit() {
			continue
		}
		st.SetIterator(len(topo.dense))
		topo.dense = append(topo.dense, h)
	}
	logger.Debug("Load: iterator assignment complete.", "dense_width", len(topo.dense))

	// Fourth pass: finalize. Every iterator is assigned before the first
	// state is rewritten.
	total := topo.Len()
	for _, st := range topo.arena {
		if err := st.Finalize(topo, total); err != nil {
			return nil, err
		}
	}
	logger.Debug("Load: finalization complete.")

	return topo, nil
}

// documentOf unwraps a document node and indexes the top-level mapping.
func documentOf(node *yaml.Node) (map[string]*yaml.Node, error) {
	if node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, ErrNoStates
		}
		node = node.Content[0]
	}
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("topology document must be a mapping")
	}
	doc := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		doc[node.Content[i].Value] = node.Content[i+1]
	}
	return doc, nil
}

func collectNames(blocks *yaml.Node) ([]string, error) {
	names := make([]string, 0, len(blocks.Content))
	seen := make(map[string]int, len(blocks.Content))
	hasInit := false

	for _, block := range blocks.Content {
		if block.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: state block must be a mapping", block.Line)
		}
		for i := 0; i+1 < len(block.Content); i += 2 {
			key, value := block.Content[i], block.Content[i+1]
			if key.Value != compiler.KeyName || value.Kind != yaml.ScalarNode {
				continue
			}
			if line, dup := seen[value.Value]; dup {
				return nil, fmt.Errorf("%w %q (lines %d and %d)", ErrDuplicateState, value.Value, line, value.Line)
			}
			seen[value.Value] = value.Line
			names = append(names, value.Value)
			if value.Value == domain.InitState {
				hasInit = true
			}
		}
	}
	if !hasInit {
		return nil, ErrMissingInit
	}
	return names, nil
}
