package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestNotifier() (*Notifier, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)}
	n := NewNotifier(0)
	n.now = clock.Now
	return n, clock
}

func TestNotifierExpiresAfterLifetime(t *testing.T) {
	n, clock := newTestNotifier()
	assert.Equal(t, DefaultStatusLifetime, n.Lifetime)

	n.Show("Settings saved successfully!", SeveritySuccess)

	clock.Advance(2999 * time.Millisecond)
	msg, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, SeveritySuccess, msg.Severity)

	clock.Advance(time.Millisecond)
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestNotifierNewestWins(t *testing.T) {
	n, clock := newTestNotifier()

	first := n.Show("Tracking Sports...", SeverityInfo)
	clock.Advance(2 * time.Second)
	second := n.Show("Error: invalid token", SeverityError)

	msg, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, msg.ID)

	// The first message's timer firing must not hide the second one
	assert.False(t, n.Dismiss(first.ID))

	// The second owns its own three seconds from when it appeared
	clock.Advance(2 * time.Second)
	_, ok = n.Current()
	assert.True(t, ok)
	clock.Advance(time.Second)
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestNotifierDismiss(t *testing.T) {
	n, _ := newTestNotifier()

	msg := n.Show("hello", SeverityInfo)
	assert.True(t, n.Dismiss(msg.ID))
	_, ok := n.Current()
	assert.False(t, ok)
	_, ok = n.Latest()
	assert.False(t, ok)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "success", SeveritySuccess.String())
	assert.Equal(t, "error", SeverityError.String())
}
