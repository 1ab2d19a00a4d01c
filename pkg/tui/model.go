package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/stefanpenner/pixtrack/pkg/app"
)

// EventMsg carries the result of a controller effect back into the update loop.
type EventMsg struct {
	Event app.Event
}

// StatusExpiredMsg is sent when a status message's display time is up.
type StatusExpiredMsg struct {
	ID uint64
}

// CredentialsChangedMsg is sent when the file watcher sees credentials change.
type CredentialsChangedMsg struct{}

// Settings form fields, in focus order.
const (
	fieldUsername = iota
	fieldToken
	fieldRemember
	fieldCount
)

// Model is the Bubble Tea model for the habit tracker.
type Model struct {
	ctrl    *app.Controller
	ctx     context.Context
	keys    KeyMap
	width   int
	height  int
	cursor  int
	startup []app.Effect

	// Modal state
	showHelpModal bool

	// Settings form, mirrors State.SettingsOpen
	formOpen      bool
	usernameInput textinput.Model
	tokenInput    textinput.Model
	remember      bool
	settingsFocus int

	// Date entry mode
	isDateInput bool
	dateInput   textinput.Model

	spinner spinner.Model

	// Status message timer bookkeeping
	scheduledStatus uint64

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel creates a new TUI model and runs the controller's startup flow.
func NewModel(ctx context.Context, ctrl *app.Controller) Model {
	user := textinput.New()
	user.Placeholder = "pixela username"
	user.CharLimit = 64

	token := textinput.New()
	token.Placeholder = "token"
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'
	token.CharLimit = 256

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 16

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = StatusInfoStyle

	m := Model{
		ctrl:          ctrl,
		ctx:           ctx,
		keys:          DefaultKeyMap(),
		usernameInput: user,
		tokenInput:    token,
		dateInput:     date,
		spinner:       sp,
	}
	m.startup = ctrl.Start()
	m.syncForm()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.WindowSize(), m.spinner.Tick, m.effectCmds(m.startup)}
	if m.formOpen {
		cmds = append(cmds, textinput.Blink)
	}
	if msg, ok := m.ctrl.Notifier().Current(); ok {
		cmds = append(cmds, m.expireCmd(msg))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.getGlamourRenderer(m.logWidth())
		return m, tea.ClearScreen

	case EventMsg:
		effects, _ := m.ctrl.Apply(msg.Event)
		return m, m.after(effects)

	case StatusExpiredMsg:
		m.ctrl.Notifier().Dismiss(msg.ID)
		return m, nil

	case CredentialsChangedMsg:
		return m.dispatch(app.ReloadCredentials{})

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.formOpen {
		return m.handleSettings(msg)
	}

	if m.isDateInput {
		return m.handleDateInput(msg)
	}

	// Help modal
	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	// Quick track by number
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
		idx := int(msg.Runes[0] - '1')
		if def, ok := m.ctrl.Registry().At(idx); ok {
			m.cursor = idx
			return m.dispatch(app.TrackActivity{Key: def.Key})
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.ctrl.Registry().Len()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Track):
		if def, ok := m.ctrl.Registry().At(m.cursor); ok {
			return m.dispatch(app.TrackActivity{Key: def.Key})
		}

	case key.Matches(msg, m.keys.PrevDay):
		return m.dispatch(app.ShiftDate{Days: -1})

	case key.Matches(msg, m.keys.NextDay):
		return m.dispatch(app.ShiftDate{Days: 1})

	case key.Matches(msg, m.keys.Today):
		return m.dispatch(app.ResetDate{})

	case key.Matches(msg, m.keys.TypeDate):
		m.isDateInput = true
		m.dateInput.Reset()
		m.dateInput.SetValue(m.ctrl.State().Date.String())
		m.dateInput.CursorEnd()
		m.dateInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		return m.dispatch(app.Refresh{})

	case key.Matches(msg, m.keys.Settings):
		return m.dispatch(app.OpenSettings{})

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = !m.showHelpModal
	}

	return m, nil
}

// handleSettings handles key messages while the settings dialog is open.
func (m Model) handleSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.dispatch(app.CloseSettings{})

	case tea.KeyEnter:
		return m.dispatch(app.SaveSettings{
			Username: m.usernameInput.Value(),
			Token:    m.tokenInput.Value(),
			Remember: m.remember,
		})

	case tea.KeyTab, tea.KeyDown:
		m.focusField((m.settingsFocus + 1) % fieldCount)
		return m, textinput.Blink

	case tea.KeyShiftTab, tea.KeyUp:
		m.focusField((m.settingsFocus + fieldCount - 1) % fieldCount)
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	switch m.settingsFocus {
	case fieldUsername:
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	case fieldToken:
		m.tokenInput, cmd = m.tokenInput.Update(msg)
	case fieldRemember:
		if msg.Type == tea.KeySpace || msg.String() == "x" {
			m.remember = !m.remember
		}
	}
	return m, cmd
}

// handleDateInput handles key messages while typing a date.
func (m Model) handleDateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isDateInput = false
		m.dateInput.Blur()
		return m, nil

	case tea.KeyEnter:
		m.isDateInput = false
		m.dateInput.Blur()
		return m.dispatch(app.SelectDate{Input: m.dateInput.Value()})

	default:
		var cmd tea.Cmd
		m.dateInput, cmd = m.dateInput.Update(msg)
		return m, cmd
	}
}

// dispatch hands cmd to the controller and schedules whatever follows.
func (m Model) dispatch(cmd app.Command) (tea.Model, tea.Cmd) {
	effects, _ := m.ctrl.Dispatch(cmd)
	return m, m.after(effects)
}

// after brings the form in line with state and turns effects and the newest
// status message into commands.
func (m *Model) after(effects []app.Effect) tea.Cmd {
	var cmds []tea.Cmd
	if opened := m.syncForm(); opened {
		cmds = append(cmds, textinput.Blink)
	}
	cmds = append(cmds, m.effectCmds(effects))
	if msg, ok := m.ctrl.Notifier().Current(); ok && msg.ID != m.scheduledStatus {
		m.scheduledStatus = msg.ID
		cmds = append(cmds, m.expireCmd(msg))
	}
	return tea.Batch(cmds...)
}

func (m Model) effectCmds(effects []app.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		eff := eff
		ctx := m.ctx
		cmds = append(cmds, func() tea.Msg {
			return EventMsg{Event: eff(ctx)}
		})
	}
	return tea.Batch(cmds...)
}

func (m Model) expireCmd(msg app.Message) tea.Cmd {
	id := msg.ID
	return tea.Tick(m.ctrl.Notifier().Lifetime, func(time.Time) tea.Msg {
		return StatusExpiredMsg{ID: id}
	})
}

// syncForm opens or closes the settings form to match the controller state.
// It reports whether the form was just opened.
func (m *Model) syncForm() bool {
	st := m.ctrl.State()
	switch {
	case st.SettingsOpen && !m.formOpen:
		m.formOpen = true
		m.usernameInput.SetValue(st.Credentials.Username)
		m.tokenInput.SetValue(st.Credentials.Token)
		m.remember = st.Remembered || !st.Configured()
		if st.Credentials.Username == "" {
			m.focusField(fieldUsername)
		} else {
			m.focusField(fieldToken)
		}
		return true
	case !st.SettingsOpen && m.formOpen:
		m.formOpen = false
		m.usernameInput.Blur()
		m.tokenInput.Blur()
	}
	return false
}

func (m *Model) focusField(field int) {
	m.settingsFocus = field
	m.usernameInput.Blur()
	m.tokenInput.Blur()
	switch field {
	case fieldUsername:
		m.usernameInput.Focus()
	case fieldToken:
		m.tokenInput.Focus()
	}
}

func (m Model) logWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// getGlamourRenderer returns a cached glamour renderer, creating one if needed
// or if the width changed.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}
