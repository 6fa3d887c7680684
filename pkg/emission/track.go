package emission

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Track is a named observation channel with a fixed alphabet.
type Track struct {
	Name     string
	Alphabet []string

	index map[string]int
}

// NewTrack builds a track. The alphabet must be non-empty and duplicate-free.
func NewTrack(name string, alphabet []string) (*Track, error) {
	if name == "" {
		return nil, fmt.Errorf("track missing name")
	}
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("track %q: empty alphabet", name)
	}
	index := make(map[string]int, len(alphabet))
	for i, sym := range alphabet {
		if _, dup := index[sym]; dup {
			return nil, fmt.Errorf("track %q: duplicate symbol %q", name, sym)
		}
		index[sym] = i
	}
	return &Track{
		Name:     name,
		Alphabet: append([]string(nil), alphabet...),
		index:    index,
	}, nil
}

// SymbolIndex returns the position of sym in the alphabet.
func (t *Track) SymbolIndex(sym string) (int, bool) {
	i, ok := t.index[sym]
	return i, ok
}

// Tracks is the ordered set of tracks shared by every state of a topology.
type Tracks []*Track

// Lookup finds a track by name.
func (ts Tracks) Lookup(name string) (*Track, bool) {
	for _, t := range ts {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Names returns the track names in declaration order.
func (ts Tracks) Names() []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name
	}
	return names
}

// ParseTracks reads a mapping of track name to symbol list, keeping the
// declaration order.
//
//	tracks:
//	  nukes: [A, C, G, T]
func ParseTracks(node *yaml.Node) (Tracks, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: tracks must be a mapping", node.Line)
	}

	tracks := make(Tracks, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var alphabet []string
		if err := value.Decode(&alphabet); err != nil {
			return nil, fmt.Errorf("track %q: %w", key.Value, err)
		}
		if _, dup := tracks.Lookup(key.Value); dup {
			return nil, fmt.Errorf("duplicate track %q", key.Value)
		}
		t, err := NewTrack(key.Value, alphabet)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}
