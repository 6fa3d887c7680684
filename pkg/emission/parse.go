package emission

import (
	"errors"
	"fmt"
	"math"

	"github.com/aretw0/ham/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Mode tags passed by the state parser.
const (
	ModeSingle = "single"
	ModePair   = "pair"
)

// ErrUnknownTrack is returned when an emission names an undeclared track.
var ErrUnknownTrack = errors.New("unknown track")

// ErrUnknownSymbol is returned when a probability names a symbol outside the track alphabet.
var ErrUnknownSymbol = errors.New("unknown symbol")

// singleConfig is the config shape of a single emission:
//
//	emissions:
//	  track: nukes
//	  probs: {A: 0.25, C: 0.25, G: 0.25, T: 0.25}
type singleConfig struct {
	Track string             `mapstructure:"track"`
	Probs map[string]float64 `mapstructure:"probs"`
}

// pairConfig is the config shape of a pair emission:
//
//	pair_emissions:
//	  tracks: [nukes, nukes]
//	  probs:
//	    A: {A: 0.7, C: 0.1}
type pairConfig struct {
	Tracks []string                      `mapstructure:"tracks"`
	Probs  map[string]map[string]float64 `mapstructure:"probs"`
}

var (
	singleSchema = schema.Schema{
		"track": schema.String(),
		"probs": schema.Optional(schema.Map(schema.Probability())),
	}
	pairSchema = schema.Schema{
		"tracks": schema.Slice(schema.String()),
		"probs":  schema.Optional(schema.Map(schema.Map(schema.Probability()))),
	}
)

// ParseSingle parses a single-track emission subtree.
func ParseSingle(node *yaml.Node, tracks Tracks) (*Single, error) {
	var cfg singleConfig
	if err := decode(node, ModeSingle, singleSchema, &cfg); err != nil {
		return nil, err
	}
	track, ok := tracks.Lookup(cfg.Track)
	if !ok {
		return nil, fmt.Errorf("%s emission: %w %q", ModeSingle, ErrUnknownTrack, cfg.Track)
	}
	e, err := NewSingle(track, cfg.Probs)
	if err != nil {
		return nil, fmt.Errorf("%s emission: %w", ModeSingle, err)
	}
	return e, nil
}

// ParsePair parses a two-track emission subtree.
func ParsePair(node *yaml.Node, tracks Tracks) (*Pair, error) {
	var cfg pairConfig
	if err := decode(node, ModePair, pairSchema, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Tracks) != 2 {
		return nil, fmt.Errorf("%s emission: expected 2 tracks, got %d", ModePair, len(cfg.Tracks))
	}
	var pairTracks [2]*Track
	for i, name := range cfg.Tracks {
		t, ok := tracks.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%s emission: %w %q", ModePair, ErrUnknownTrack, name)
		}
		pairTracks[i] = t
	}
	e, err := NewPair(pairTracks[0], pairTracks[1], cfg.Probs)
	if err != nil {
		return nil, fmt.Errorf("%s emission: %w", ModePair, err)
	}
	return e, nil
}

// decode turns the YAML subtree into a generic tree, validates it against
// fields and binds it onto out. Unknown keys are rejected so typos in the
// config surface early.
func decode(node *yaml.Node, mode string, fields schema.Schema, out any) error {
	if node == nil || node.Kind != yaml.MappingNode {
		return fmt.Errorf("%s emission: expected a mapping", mode)
	}

	tree, err := plain(node)
	if err != nil {
		return fmt.Errorf("%s emission: %w", mode, err)
	}
	raw := tree.(map[string]any)
	if err := schema.Validate(fields, raw); err != nil {
		return fmt.Errorf("%s emission (line %d): %w", mode, node.Line, err)
	}

	// Scalars arrive as source text; weak typing parses the numeric ones.
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%s emission (line %d): %w", mode, node.Line, err)
	}
	return nil
}

// plain converts a node tree into maps, slices and strings. Mapping keys and
// scalars keep their source text, so the symbol 0 and the symbol "0" are the
// same, matching how track alphabets are read.
func plain(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return plain(node.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if _, dup := m[key.Value]; dup {
				return nil, fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)
			}
			v, err := plain(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[key.Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, len(node.Content))
		for i, child := range node.Content {
			v, err := plain(child)
			if err != nil {
				return nil, err
			}
			s[i] = v
		}
		return s, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return node.Value, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node", node.Line)
	}
}

func logProb(p float64) (float64, error) {
	if err := schema.Probability().Validate(p); err != nil {
		return 0, err
	}
	if p == 0 {
		return math.Inf(-1), nil
	}
	return math.Log(p), nil
}
