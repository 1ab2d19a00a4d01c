package app

import "github.com/stefanpenner/pixtrack/pkg/activity"

// NothingTracked is shown in place of an empty activity log.
const NothingTracked = "No activities tracked yet for this date."

// ButtonTracked reports whether the control bound to key shows as tracked.
func (s State) ButtonTracked(key string) bool {
	return s.Tracked.Has(key)
}

// RenderLog lists tracked activities as "icon name" lines in registry order.
// An empty set renders the NothingTracked placeholder; the bool is false then.
func RenderLog(tracked TrackedSet, registry *activity.Registry) ([]string, bool) {
	var lines []string
	for _, def := range registry.All() {
		if tracked.Has(def.Key) {
			lines = append(lines, def.Label())
		}
	}
	if len(lines) == 0 {
		return []string{NothingTracked}, false
	}
	return lines, true
}
