package tui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/pixtrack/pkg/activity"
	"github.com/stefanpenner/pixtrack/pkg/app"
)

func TestBuildButtons(t *testing.T) {
	st := app.State{
		Tracked:      app.NewTrackedSet("sports"),
		LookupErrors: map[string]string{"sauna": "timeout"},
	}
	items := BuildButtons(st, activity.Default())
	require.Len(t, items, 6)

	assert.Equal(t, 1, items[0].Number)
	assert.Equal(t, "meditation", items[0].Def.Key)
	assert.False(t, items[0].Tracked)

	assert.True(t, items[1].Tracked)
	assert.Equal(t, "timeout", items[5].LookupErr)
	assert.False(t, items[5].Tracked)
}

func TestBuildButtonsNumbersStopAtNine(t *testing.T) {
	var defs []activity.Definition
	for i := 0; i < 11; i++ {
		defs = append(defs, activity.Definition{Key: fmt.Sprintf("a%d", i), GraphID: fmt.Sprintf("g%d", i)})
	}
	reg, err := activity.NewRegistry(defs)
	require.NoError(t, err)

	items := BuildButtons(app.State{Tracked: app.NewTrackedSet()}, reg)
	assert.Equal(t, 9, items[8].Number)
	assert.Equal(t, 0, items[9].Number)
	assert.Equal(t, 0, items[10].Number)
}

func TestRenderButtonShowsLookupError(t *testing.T) {
	item := ButtonItem{Number: 3, Def: activity.Defaults[2], LookupErr: "boom"}
	out := renderButton(item, false)
	assert.Contains(t, out, "3.")
	assert.Contains(t, out, "Dancing")
	assert.Contains(t, out, "boom")
}
