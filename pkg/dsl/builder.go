package dsl

import (
	"context"
	"fmt"

	"github.com/aretw0/ham/pkg/topology"
	"gopkg.in/yaml.v3"
)

// Builder manages the topology construction.
type Builder struct {
	name   string
	tracks []track
	states []*StateBuilder
	index  map[string]*StateBuilder
}

type track struct {
	name    string
	symbols []string
}

// New creates a new topology builder.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		index: make(map[string]*StateBuilder),
	}
}

// Track declares an emission track and its alphabet.
func (b *Builder) Track(name string, symbols ...string) *Builder {
	b.tracks = append(b.tracks, track{name: name, symbols: symbols})
	return b
}

// Add creates a new state in the topology.
// If the state already exists, it returns the existing builder.
// States keep the order of their first Add, which fixes their iterators.
func (b *Builder) Add(name string) *StateBuilder {
	if sb, ok := b.index[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, label: name}
	b.index[name] = sb
	b.states = append(b.states, sb)
	return sb
}

// Node returns the YAML document the builder describes.
func (b *Builder) Node() (*yaml.Node, error) {
	root := mapping()
	if b.name != "" {
		appendPair(root, topology.KeyName, scalar(b.name))
	}

	if len(b.tracks) > 0 {
		tracks := mapping()
		for _, t := range b.tracks {
			n, err := encode(t.symbols)
			if err != nil {
				return nil, fmt.Errorf("track %q: %w", t.name, err)
			}
			appendPair(tracks, t.name, n)
		}
		appendPair(root, topology.KeyTracks, tracks)
	}

	states := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, sb := range b.states {
		n, err := sb.node()
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", sb.name, err)
		}
		states.Content = append(states.Content, n)
	}
	appendPair(root, topology.KeyStates, states)

	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}, nil
}

// Build compiles the described model into a finalized topology. The document
// goes through the same loader as a YAML file would.
func (b *Builder) Build(ctx context.Context, opts ...topology.Option) (*topology.Topology, error) {
	doc, err := b.Node()
	if err != nil {
		return nil, fmt.Errorf("failed to encode topology: %w", err)
	}
	topo, err := topology.Load(ctx, doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build topology: %w", err)
	}
	return topo, nil
}

// MarshalYAML renders the builder as a topology document.
func (b *Builder) MarshalYAML() (any, error) {
	doc, err := b.Node()
	if err != nil {
		return nil, err
	}
	return doc.Content[0], nil
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}

func encode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}
