// Package activity defines the fixed set of activities pixtrack can track.
package activity

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition describes one trackable activity and the remote graph it maps to.
type Definition struct {
	Key     string `yaml:"key"`
	Name    string `yaml:"name"`
	Icon    string `yaml:"icon"`
	GraphID string `yaml:"graph_id"`
}

// Label returns the icon and name, e.g. "🧘 Meditation".
func (d Definition) Label() string {
	if d.Icon == "" {
		return d.Name
	}
	return d.Icon + " " + d.Name
}

// Registry is an ordered, immutable list of activity definitions.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// Defaults are the activities pixtrack ships with.
var Defaults = []Definition{
	{Key: "meditation", Name: "Meditation", Icon: "🧘", GraphID: "meditation-graph"},
	{Key: "sports", Name: "Sports", Icon: "🏃", GraphID: "sports-graph"},
	{Key: "dancing", Name: "Dancing", Icon: "💃", GraphID: "dance-graph"},
	{Key: "gaming", Name: "Gaming", Icon: "🎮", GraphID: "gaming-graph"},
	{Key: "freshair", Name: "Fresh Air", Icon: "🌳", GraphID: "freshair-graph"},
	{Key: "sauna", Name: "Sauna", Icon: "🧖", GraphID: "sauna-graph"},
}

// NewRegistry validates defs and builds a Registry. Keys must be unique and
// non-empty, and every definition needs a graph ID.
func NewRegistry(defs []Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, errors.New("no activities defined")
	}

	r := &Registry{
		defs:  make([]Definition, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	copy(r.defs, defs)

	for i, d := range r.defs {
		if d.Key == "" {
			return nil, fmt.Errorf("activity %d has no key", i+1)
		}
		if d.GraphID == "" {
			return nil, fmt.Errorf("activity %s has no graph_id", d.Key)
		}
		if _, dup := r.index[d.Key]; dup {
			return nil, fmt.Errorf("duplicate activity key %s", d.Key)
		}
		if d.Name == "" {
			r.defs[i].Name = d.Key
		}
		r.index[d.Key] = i
	}
	return r, nil
}

// Default returns the registry of built-in activities.
func Default() *Registry {
	r, err := NewRegistry(Defaults)
	if err != nil {
		panic(err)
	}
	return r
}

// Load reads an activities.yaml override. A missing file yields the defaults.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading activities: %w", err)
	}

	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parsing activities YAML: %w", err)
	}
	r, err := NewRegistry(defs)
	if err != nil {
		return nil, fmt.Errorf("invalid activities file: %w", err)
	}
	return r, nil
}

// All returns the definitions in registry order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Keys returns the activity keys in registry order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.defs))
	for i, d := range r.defs {
		keys[i] = d.Key
	}
	return keys
}

// Lookup returns the definition for key.
func (r *Registry) Lookup(key string) (Definition, bool) {
	i, ok := r.index[key]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// At returns the definition at position i (0-based).
func (r *Registry) At(i int) (Definition, bool) {
	if i < 0 || i >= len(r.defs) {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Len returns the number of activities.
func (r *Registry) Len() int {
	return len(r.defs)
}
