package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpenner/pixtrack/pkg/activity"
	"github.com/stefanpenner/pixtrack/pkg/app"
	"github.com/stefanpenner/pixtrack/pkg/store"
	gsync "github.com/stefanpenner/pixtrack/pkg/sync"
)

var today = store.Date{Year: 2024, Month: time.March, Day: 10}

type fakeRemote struct {
	mu       sync.Mutex
	tracked  map[string]bool // graph@date
	failWith error
}

func (f *fakeRemote) Increment(ctx context.Context, creds store.Credentials, graphID string, date store.Date) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.tracked[graphID+"@"+date.Pixel()] = true
	return nil
}

func (f *fakeRemote) Quantity(ctx context.Context, creds store.Credentials, graphID string, date store.Date) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tracked[graphID+"@"+date.Pixel()] {
		return 1, nil
	}
	return 0, nil
}

type memCredentials struct {
	creds   store.Credentials
	present bool
}

func (m *memCredentials) LoadCredentials() (store.Credentials, bool, error) {
	return m.creds, m.present, nil
}

func (m *memCredentials) SaveCredentials(c store.Credentials) error {
	m.creds, m.present = c, true
	return nil
}

func (m *memCredentials) ClearCredentials() error {
	m.creds, m.present = store.Credentials{}, false
	return nil
}

func setupModel(t *testing.T, creds *memCredentials) (Model, *fakeRemote) {
	t.Helper()
	remote := &fakeRemote{tracked: make(map[string]bool)}
	engine := gsync.NewEngine(remote, activity.Default())
	ctrl := app.NewController(engine, creds,
		app.WithToday(func() store.Date { return today }),
		app.WithNotifier(app.NewNotifier(time.Millisecond)),
	)
	m := NewModel(context.Background(), ctrl)
	m.width, m.height = 100, 30
	return m, remote
}

func loggedIn() *memCredentials {
	return &memCredentials{creds: store.Credentials{Username: "alice", Token: "secret"}, present: true}
}

// settle runs cmd and everything it leads to, feeding controller events back
// through Update.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case EventMsg:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return settle(t, next.(Model), cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func latest(t *testing.T, m Model) string {
	t.Helper()
	msg, ok := m.ctrl.Notifier().Latest()
	require.True(t, ok)
	return msg.Text
}

func TestNewModelWithoutCredentialsOpensSettings(t *testing.T) {
	m, _ := setupModel(t, &memCredentials{})

	assert.True(t, m.formOpen)
	assert.True(t, m.remember)
	assert.Equal(t, fieldUsername, m.settingsFocus)
	assert.Contains(t, m.View(), "Pixela Settings")
}

func TestSettingsFormSavesAndRefreshes(t *testing.T) {
	creds := &memCredentials{}
	m, remote := setupModel(t, creds)
	remote.tracked["sauna-graph@20240310"] = true

	m = press(t, m, runes("bob"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("tok"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.formOpen)
	assert.True(t, creds.present)
	assert.Equal(t, "bob", creds.creds.Username)
	assert.Equal(t, "tok", creds.creds.Token)

	st := m.ctrl.State()
	assert.True(t, st.Tracked.Has("sauna"))
	assert.Equal(t, 1, st.Tracked.Len())
}

func TestSettingsFormRejectsEmptyToken(t *testing.T) {
	creds := &memCredentials{}
	m, _ := setupModel(t, creds)

	m = press(t, m, runes("bob"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.formOpen)
	assert.False(t, creds.present)
	assert.Equal(t, "Please enter both username and token", latest(t, m))
}

func TestSettingsRememberToggle(t *testing.T) {
	creds := &memCredentials{}
	m, _ := setupModel(t, creds)

	m = press(t, m, runes("bob"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("tok"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, fieldRemember, m.settingsFocus)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, m.remember)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, creds.present)
	assert.True(t, m.ctrl.State().Configured())
	assert.False(t, m.ctrl.State().Remembered)
}

func TestSettingsPrefillFromState(t *testing.T) {
	m, _ := setupModel(t, loggedIn())
	m = settle(t, m, m.effectCmds(m.startup))

	m = press(t, m, runes("s"))
	assert.True(t, m.formOpen)
	assert.Equal(t, "alice", m.usernameInput.Value())
	assert.Equal(t, "secret", m.tokenInput.Value())
	assert.True(t, m.remember)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.formOpen)
	assert.False(t, m.ctrl.State().SettingsOpen)
}

func TestQuickTrackByNumber(t *testing.T) {
	m, _ := setupModel(t, loggedIn())
	m = settle(t, m, m.effectCmds(m.startup))

	m = press(t, m, runes("1"))

	st := m.ctrl.State()
	assert.True(t, st.Tracked.Has("meditation"))
	assert.Equal(t, 1, st.Tracked.Len())
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "🧘 Meditation tracked!", latest(t, m))
}

func TestTrackSelectedWithEnter(t *testing.T) {
	m, _ := setupModel(t, loggedIn())
	m = settle(t, m, m.effectCmds(m.startup))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.ctrl.State().Tracked.Has("sports"))
}

func TestTrackFailureLeavesButtonUntracked(t *testing.T) {
	m, remote := setupModel(t, loggedIn())
	m = settle(t, m, m.effectCmds(m.startup))
	remote.failWith = errors.New("invalid token")

	m = press(t, m, runes("2"))

	assert.False(t, m.ctrl.State().Tracked.Has("sports"))
	assert.Contains(t, latest(t, m), "invalid token")
}

func TestQuickTrackOutOfRangeIgnored(t *testing.T) {
	m, _ := setupModel(t, loggedIn())
	m = settle(t, m, m.effectCmds(m.startup))

	m = press(t, m, runes("9"))
	assert.Equal(t, 0, m.ctrl.State().Tracked.Len())
}

func TestDayNavigation(t *testing.T) {
	m, remote := setupModel(t, loggedIn())
	m = settle(t, m, m.effectCmds(m.startup))
	remote.tracked["gaming-graph@20240309"] = true

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	st := m.ctrl.State()
	assert.Equal(t, today.AddDays(-1), st.Date)
	assert.True(t, st.Tracked.Has("gaming"))

	m = press(t, m, runes("t"))
	st = m.ctrl.State()
	assert.Equal(t, today, st.Date)
	assert.False(t, st.Tracked.Has("gaming"))
}

func TestTypedDate(t *testing.T) {
	m, _ := setupModel(t, loggedIn())
	m = settle(t, m, m.effectCmds(m.startup))

	m = press(t, m, runes("d"))
	require.True(t, m.isDateInput)
	assert.Equal(t, "2024-03-10", m.dateInput.Value())

	m.dateInput.SetValue("20240105")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.isDateInput)
	assert.Equal(t, store.Date{Year: 2024, Month: time.January, Day: 5}, m.ctrl.State().Date)
}

func TestTypedDateEscCancels(t *testing.T) {
	m, _ := setupModel(t, loggedIn())
	m = settle(t, m, m.effectCmds(m.startup))

	m = press(t, m, runes("d"))
	m.dateInput.SetValue("garbage")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.isDateInput)
	assert.Equal(t, today, m.ctrl.State().Date)
}

func TestHelpModalToggle(t *testing.T) {
	m, _ := setupModel(t, loggedIn())

	m = press(t, m, runes("?"))
	assert.True(t, m.showHelpModal)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	// Keys other than close are swallowed by the modal.
	m = press(t, m, runes("1"))
	assert.Equal(t, 0, m.ctrl.State().Tracked.Len())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelpModal)
}

func TestQuit(t *testing.T) {
	m, _ := setupModel(t, loggedIn())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStatusExpiredOnlyDismissesMatchingMessage(t *testing.T) {
	creds := loggedIn()
	remote := &fakeRemote{tracked: make(map[string]bool)}
	ctrl := app.NewController(gsync.NewEngine(remote, activity.Default()), creds,
		app.WithToday(func() store.Date { return today }),
		app.WithNotifier(app.NewNotifier(time.Hour)),
	)
	m := NewModel(context.Background(), ctrl)

	first := ctrl.Notifier().Show("first", app.SeverityInfo)
	second := ctrl.Notifier().Show("second", app.SeverityInfo)

	next, _ := m.Update(StatusExpiredMsg{ID: first.ID})
	m = next.(Model)
	cur, ok := ctrl.Notifier().Current()
	require.True(t, ok)
	assert.Equal(t, "second", cur.Text)

	next, _ = m.Update(StatusExpiredMsg{ID: second.ID})
	m = next.(Model)
	_, ok = ctrl.Notifier().Current()
	assert.False(t, ok)
}

func TestCredentialsChangedReloads(t *testing.T) {
	creds := loggedIn()
	m, _ := setupModel(t, creds)
	m = settle(t, m, m.effectCmds(m.startup))

	creds.creds = store.Credentials{Username: "carol", Token: "other"}
	next, cmd := m.Update(CredentialsChangedMsg{})
	m = settle(t, next.(Model), cmd)

	assert.Equal(t, "carol", m.ctrl.State().Credentials.Username)
}

func TestViewShowsPlaceholderAndUser(t *testing.T) {
	m, _ := setupModel(t, loggedIn())
	m = settle(t, m, m.effectCmds(m.startup))

	view := m.View()
	assert.Contains(t, view, "@alice")
	assert.Contains(t, view, "2024-03-10")
	assert.Contains(t, view, app.NothingTracked)
	assert.Contains(t, view, "Meditation")
	assert.Contains(t, view, "Sauna")
}
