package compiler

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/aretw0/ham/internal/logging"
	"github.com/aretw0/ham/pkg/domain"
	"github.com/aretw0/ham/pkg/emission"
	"github.com/aretw0/ham/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Config keys of a state block.
const (
	KeyName          = "name"
	KeyLabel         = "label"
	KeyTransitions   = "transitions"
	KeyEmissions     = "emissions"
	KeyPairEmissions = "pair_emissions"
)

// Parser converts state config subtrees into domain states.
// It validates transition targets against the state names known up front,
// so forward references are legal.
type Parser struct {
	names  []string
	tracks emission.Tracks
	dupEnd domain.DuplicateEndPolicy
	logger *slog.Logger
	fields schema.Schema
}

// Option configures a Parser.
type Option func(*Parser)

// WithDuplicateEndPolicy selects how repeated "end" transitions are handled.
func WithDuplicateEndPolicy(p domain.DuplicateEndPolicy) Option {
	return func(pr *Parser) {
		pr.dupEnd = p
	}
}

// WithLogger sets the logger used for parse warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(pr *Parser) {
		pr.logger = logger
	}
}

// NewParser creates a parser for a topology declaring stateNames and tracks.
func NewParser(stateNames []string, tracks emission.Tracks, opts ...Option) *Parser {
	mapping := schema.Custom("mapping", func(v any) error {
		n, ok := v.(*yaml.Node)
		if !ok {
			return fmt.Errorf("expected mapping, got scalar %q", v)
		}
		if n.Kind != yaml.MappingNode {
			return fmt.Errorf("expected mapping, got %s", kindName(n.Kind))
		}
		return nil
	})

	p := &Parser{
		names:  slices.Clone(stateNames),
		tracks: tracks,
		dupEnd: domain.DuplicateEndLastWins,
		fields: schema.Schema{
			KeyName:          schema.String(),
			KeyLabel:         schema.String(),
			KeyTransitions:   schema.Optional(mapping),
			KeyEmissions:     schema.Optional(mapping),
			KeyPairEmissions: schema.Optional(mapping),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	return p
}

// ParseState builds a State from its config subtree:
//
//	name: A
//	label: first
//	transitions: {B: 0.25, end: 0.75}
//	emissions: {...}       # optional, ignored for init
//	pair_emissions: {...}  # optional, ignored for init
func (p *Parser) ParseState(node *yaml.Node) (*domain.State, error) {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("state block must be a mapping")
	}

	fields, nodes := fieldsOf(node)
	if err := schema.Validate(p.fields, fields); err != nil {
		if name, ok := fields[KeyName].(string); ok {
			return nil, fmt.Errorf("state %q (line %d): %w", name, node.Line, err)
		}
		return nil, fmt.Errorf("state at line %d: %w", node.Line, err)
	}

	st := domain.NewState(fields[KeyName].(string), fields[KeyLabel].(string))

	transitions, _ := present(nodes, KeyTransitions)
	if err := p.parseTransitions(st, transitions); err != nil {
		return nil, fmt.Errorf("state %q: %w", st.Name, err)
	}

	if st.IsInit() {
		return st, nil
	}

	if n, ok := present(nodes, KeyEmissions); ok {
		e, err := emission.ParseSingle(n, p.tracks)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", st.Name, err)
		}
		if err := st.SetSingleEmission(e); err != nil {
			return nil, err
		}
	}
	if n, ok := present(nodes, KeyPairEmissions); ok {
		e, err := emission.ParsePair(n, p.tracks)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", st.Name, err)
		}
		if err := st.SetPairEmission(e); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// parseTransitions walks the transitions mapping in document order. Working
// on the node keeps duplicate keys visible, which a decoded map would hide.
func (p *Parser) parseTransitions(st *domain.State, node *yaml.Node) error {
	if node == nil {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		to := key.Value

		if to != domain.EndState && !slices.Contains(p.names, to) {
			return fmt.Errorf("%w %q (line %d)", domain.ErrUnknownState, to, key.Line)
		}

		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("transition to %q (line %d): expected number, got %s", to, value.Line, kindName(value.Kind))
		}
		prob, err := schema.AsFloat(value.Value)
		if err != nil {
			return fmt.Errorf("transition to %q (line %d): %w", to, value.Line, err)
		}
		t, err := domain.NewTransition(to, prob)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}

		if t.IsEnd() && st.HasEnd() {
			if p.dupEnd == domain.DuplicateEndReject {
				return fmt.Errorf("%w (line %d)", domain.ErrDuplicateEnd, key.Line)
			}
			p.logger.Warn("duplicate end transition, keeping the last one",
				"state", st.Name, "line", key.Line)
		}
		if err := st.AddTransition(t); err != nil {
			return err
		}
	}
	return nil
}

// fieldsOf splits a mapping into scalar fields (for schema validation) and
// raw child nodes (for the structured sections). Scalars keep their source
// text, so "name: 1" names the state "1" just as name collection sees it.
func fieldsOf(node *yaml.Node) (map[string]any, map[string]*yaml.Node) {
	fields := make(map[string]any, len(node.Content)/2)
	nodes := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		nodes[key.Value] = value
		if value.Kind != yaml.ScalarNode {
			fields[key.Value] = value
			continue
		}
		if value.Tag == "!!null" {
			fields[key.Value] = nil
			continue
		}
		fields[key.Value] = value.Value
	}
	return fields, nodes
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "node"
	}
}

// present returns the child node for key unless it is absent or null.
func present(nodes map[string]*yaml.Node, key string) (*yaml.Node, bool) {
	n, ok := nodes[key]
	if !ok || (n.Kind == yaml.ScalarNode && n.Tag == "!!null") {
		return nil, false
	}
	return n, true
}
