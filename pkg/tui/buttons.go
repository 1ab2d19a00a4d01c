package tui

import (
	"github.com/stefanpenner/pixtrack/pkg/activity"
	"github.com/stefanpenner/pixtrack/pkg/app"
)

// ButtonItem is one activity control as it should currently render.
type ButtonItem struct {
	Number    int // 1-based shortcut, 0 when past 9
	Def       activity.Definition
	Tracked   bool
	LookupErr string
}

// BuildButtons derives every activity control's state from the app state.
func BuildButtons(st app.State, registry *activity.Registry) []ButtonItem {
	defs := registry.All()
	items := make([]ButtonItem, len(defs))
	for i, def := range defs {
		n := i + 1
		if n > 9 {
			n = 0
		}
		items[i] = ButtonItem{
			Number:    n,
			Def:       def,
			Tracked:   st.ButtonTracked(def.Key),
			LookupErr: st.LookupErrors[def.Key],
		}
	}
	return items
}
