// Package app owns the application state and the controller that mutates it.
//
// All mutation happens through Controller.Dispatch and Controller.Apply, which
// are called from a single goroutine (the bubbletea update loop, or RunSync
// for the CLI). Network work is handed back to the caller as Effects that
// only read values captured when they were created.
package app

import "github.com/stefanpenner/pixtrack/pkg/store"

// TrackedSet is a set of activity keys that remembers insertion order.
type TrackedSet struct {
	keys  []string
	index map[string]struct{}
}

// NewTrackedSet returns a set holding keys, in order, without duplicates.
func NewTrackedSet(keys ...string) TrackedSet {
	var s TrackedSet
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts key. Adding a present key is a no-op.
func (s *TrackedSet) Add(key string) {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[key]; ok {
		return
	}
	s.index[key] = struct{}{}
	s.keys = append(s.keys, key)
}

// Has reports whether key is in the set.
func (s TrackedSet) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Clear empties the set.
func (s *TrackedSet) Clear() {
	s.keys = nil
	s.index = nil
}

// Len returns the number of keys.
func (s TrackedSet) Len() int {
	return len(s.keys)
}

// Keys returns the keys in insertion order.
func (s TrackedSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Clone returns an independent copy.
func (s TrackedSet) Clone() TrackedSet {
	return NewTrackedSet(s.keys...)
}

// State is everything the UI renders from.
type State struct {
	Credentials  store.Credentials
	Remembered   bool // credentials are persisted on disk
	Date         store.Date
	Tracked      TrackedSet
	SettingsOpen bool
	Refreshing   bool

	// LookupErrors holds the reason a lookup failed in the latest accepted
	// refresh, keyed by activity. Those activities are shown untracked.
	LookupErrors map[string]string

	generation uint64
	// confirmed holds keys whose increment succeeded since the current
	// batch was issued. The batch may have read the remote before them.
	confirmed TrackedSet
}

// Configured reports whether remote calls may be made.
func (s State) Configured() bool {
	return s.Credentials.Complete()
}

func (s State) clone() State {
	out := s
	out.Tracked = s.Tracked.Clone()
	out.confirmed = s.confirmed.Clone()
	if s.LookupErrors != nil {
		out.LookupErrors = make(map[string]string, len(s.LookupErrors))
		for k, v := range s.LookupErrors {
			out.LookupErrors[k] = v
		}
	}
	return out
}
