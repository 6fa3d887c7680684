package dsl

import (
	"strconv"

	"github.com/aretw0/ham/internal/compiler"
	"github.com/aretw0/ham/pkg/domain"
	"gopkg.in/yaml.v3"
)

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name        string
	label       string
	transitions []arc
	single      *singleDoc
	pair        *pairDoc
}

type arc struct {
	to   string
	prob float64
}

type singleDoc struct {
	Track string             `yaml:"track"`
	Probs map[string]float64 `yaml:"probs"`
}

type pairDoc struct {
	Tracks []string                      `yaml:"tracks,flow"`
	Probs  map[string]map[string]float64 `yaml:"probs"`
}

// Label sets the human-readable label. It defaults to the state name.
func (s *StateBuilder) Label(label string) *StateBuilder {
	s.label = label
	return s
}

// Go adds a transition to target with probability p. Targets may be states
// added later.
func (s *StateBuilder) Go(target string, p float64) *StateBuilder {
	s.transitions = append(s.transitions, arc{to: target, prob: p})
	return s
}

// End adds the transition to the terminal pseudo-state.
func (s *StateBuilder) End(p float64) *StateBuilder {
	return s.Go(domain.EndState, p)
}

// Emit sets the single-track emission distribution.
func (s *StateBuilder) Emit(track string, probs map[string]float64) *StateBuilder {
	s.single = &singleDoc{Track: track, Probs: probs}
	return s
}

// EmitPair sets the joint distribution over two tracks, indexed
// probs[first][second].
func (s *StateBuilder) EmitPair(first, second string, probs map[string]map[string]float64) *StateBuilder {
	s.pair = &pairDoc{Tracks: []string{first, second}, Probs: probs}
	return s
}

func (s *StateBuilder) node() (*yaml.Node, error) {
	n := mapping()
	appendPair(n, compiler.KeyName, scalar(s.name))
	appendPair(n, compiler.KeyLabel, scalar(s.label))

	if len(s.transitions) > 0 {
		// Built by hand so repeated targets survive; a Go map would fold them.
		trans := mapping()
		for _, a := range s.transitions {
			appendPair(trans, a.to, &yaml.Node{
				Kind:  yaml.ScalarNode,
				Tag:   "!!float",
				Value: strconv.FormatFloat(a.prob, 'g', -1, 64),
			})
		}
		appendPair(n, compiler.KeyTransitions, trans)
	}

	if s.single != nil {
		e, err := encode(s.single)
		if err != nil {
			return nil, err
		}
		appendPair(n, compiler.KeyEmissions, e)
	}
	if s.pair != nil {
		e, err := encode(s.pair)
		if err != nil {
			return nil, err
		}
		appendPair(n, compiler.KeyPairEmissions, e)
	}
	return n, nil
}

