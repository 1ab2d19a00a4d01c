package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorBlue        = lipgloss.Color("#4285F4")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
	ColorTrackedBg   = lipgloss.Color("#1F3A2B")
	ColorCyan        = lipgloss.Color("#56B6C2")
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorPurple).
			Padding(0, 1)

	DateArrowStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Activity button styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite).
			Padding(0, 1)

	SelectedButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorWhite).
				Background(ColorSelectionBg).
				Padding(0, 1)

	TrackedButtonStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Background(ColorTrackedBg).
				Padding(0, 1)

	SelectedTrackedButtonStyle = lipgloss.NewStyle().
					Bold(true).
					Foreground(ColorGreen).
					Background(ColorSelectionBg).
					Padding(0, 1)

	ButtonNumberStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	LookupErrorStyle = lipgloss.NewStyle().
				Foreground(ColorYellow)
)

// Log panel styles
var (
	LogTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Italic(true)
)

// Status styles, one per severity
var (
	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	StatusErrorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorRed)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	ModalLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(10)

	ModalFocusedLabelStyle = lipgloss.NewStyle().
				Foreground(ColorPurple).
				Bold(true).
				Width(10)
)

// Input styles
var (
	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorPurple).
				Bold(true)
)

// Status icons
const (
	IconTracked     = "✓"
	IconUntracked   = "○"
	IconLookupError = "!"
	IconChecked     = "[x]"
	IconUnchecked   = "[ ]"
)
