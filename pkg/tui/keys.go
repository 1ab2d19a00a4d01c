package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Track    key.Binding
	Today    key.Binding
	TypeDate key.Binding
	Refresh  key.Binding
	Settings key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Track: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "track"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		TypeDate: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "enter date"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "↑↓ select  enter track  1-9 quick track  ←→ day  t today  d date  r refresh  s settings  ? help"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"↑/k ↓/j", "Select activity"},
		{"enter/space", "Track selected activity"},
		{"1-9", "Track activity by number"},
		{"←/h", "Previous day"},
		{"→/l", "Next day"},
		{"t", "Back to today"},
		{"d", "Type a date (YYYY-MM-DD)"},
		{"r", "Refresh from Pixela"},
		{"s", "Settings (username / token)"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
}
