package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stefanpenner/pixtrack/pkg/app"
)

const minWidth = 40
const minHeight = 12

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.formOpen {
		return placeOverlay(m.renderSettingsModal(), w, h)
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	st := m.ctrl.State()
	var b strings.Builder

	b.WriteString(m.renderHeader(st, w))
	b.WriteString("\n")
	b.WriteString(m.renderDateBar(st, w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	buttons := m.renderButtons(st, w)
	b.WriteString(buttons)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	used := 5 + strings.Count(buttons, "\n") + 1
	logHeight := h - used - 2
	if logHeight < 3 {
		logHeight = 3
	}
	logPanel := m.renderLogPanel(st)
	for i := 0; i < logHeight; i++ {
		b.WriteString(getLine(logPanel, i, w))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(w))

	return b.String()
}

func (m Model) renderHeader(st app.State, width int) string {
	title := HeaderStyle.Render("Pixtrack")
	user := HeaderCountStyle.Render("not configured")
	if st.Configured() {
		user = HeaderCountStyle.Render("@" + st.Credentials.Username)
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(user)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + user
}

func (m Model) renderDateBar(st app.State, width int) string {
	var left string
	if m.isDateInput {
		left = InputPromptStyle.Render("Date: ") + m.dateInput.View()
	} else {
		left = DateArrowStyle.Render("← ") + DateStyle.Render(st.Date.String()) + DateArrowStyle.Render(" →")
		if st.Refreshing {
			left += " " + m.spinner.View()
		}
	}

	status := m.renderStatus(width - lipgloss.Width(left) - 2)
	if status == "" {
		return left
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(status)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + status
}

// renderStatus renders the visible status message, truncated to width.
func (m Model) renderStatus(width int) string {
	msg, ok := m.ctrl.Notifier().Current()
	if !ok || width <= 0 {
		return ""
	}
	text := msg.Text
	if lipgloss.Width(text) > width {
		r := []rune(text)
		if width > 1 && len(r) > width-1 {
			text = string(r[:width-1]) + "…"
		}
	}
	switch msg.Severity {
	case app.SeveritySuccess:
		return StatusSuccessStyle.Render(text)
	case app.SeverityError:
		return StatusErrorStyle.Render(text)
	default:
		return StatusInfoStyle.Render(text)
	}
}

func (m Model) renderButtons(st app.State, width int) string {
	items := BuildButtons(st, m.ctrl.Registry())
	lines := make([]string, 0, len(items))
	for i, item := range items {
		line := renderButton(item, i == m.cursor)
		if lipgloss.Width(line) > width {
			line = lipgloss.NewStyle().MaxWidth(width).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderButton(item ButtonItem, selected bool) string {
	num := "   "
	if item.Number > 0 {
		num = fmt.Sprintf("%d. ", item.Number)
	}

	icon := IconUntracked
	if item.Tracked {
		icon = IconTracked
	}

	style := ButtonStyle
	switch {
	case selected && item.Tracked:
		style = SelectedTrackedButtonStyle
	case selected:
		style = SelectedButtonStyle
	case item.Tracked:
		style = TrackedButtonStyle
	}

	line := ButtonNumberStyle.Render(num) + style.Render(icon+" "+item.Def.Label())
	if item.LookupErr != "" {
		line += " " + LookupErrorStyle.Render(IconLookupError+" "+item.LookupErr)
	}
	return line
}

// renderLogPanel renders the activity log for the selected date.
func (m Model) renderLogPanel(st app.State) string {
	var b strings.Builder
	b.WriteString(LogTitleStyle.Render("Activity log"))
	b.WriteString("\n")

	lines, ok := app.RenderLog(st.Tracked, m.ctrl.Registry())
	if !ok {
		b.WriteString(PlaceholderStyle.Render(lines[0]))
		return b.String()
	}

	var md strings.Builder
	for _, line := range lines {
		md.WriteString("- " + line + "\n")
	}

	if r := m.getGlamourRenderer(m.logWidth()); r != nil {
		if out, err := r.Render(md.String()); err == nil {
			b.WriteString(strings.Trim(out, "\n"))
			return b.String()
		}
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func (m Model) renderFooter(width int) string {
	help := m.keys.ShortHelp()
	if m.isDateInput {
		help = "enter go  esc cancel  accepts YYYY-MM-DD, YYYYMMDD, today, yesterday"
	}
	return FooterStyle.MaxWidth(width).Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderSettingsModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Pixela Settings"))
	b.WriteString("\n\n")

	label := func(field int, text string) string {
		if m.settingsFocus == field {
			return ModalFocusedLabelStyle.Render(text)
		}
		return ModalLabelStyle.Render(text)
	}

	b.WriteString(label(fieldUsername, "Username"))
	b.WriteString(m.usernameInput.View())
	b.WriteString("\n")
	b.WriteString(label(fieldToken, "Token"))
	b.WriteString(m.tokenInput.View())
	b.WriteString("\n\n")

	box := IconUnchecked
	if m.remember {
		box = IconChecked
	}
	b.WriteString(label(fieldRemember, "Remember"))
	b.WriteString(box + " keep credentials on this machine")
	b.WriteString("\n")

	if msg, ok := m.ctrl.Notifier().Current(); ok && msg.Severity == app.SeverityError {
		b.WriteString("\n")
		b.WriteString(StatusErrorStyle.Render(msg.Text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("tab next field  space toggle  enter save  esc close"))

	return ModalStyle.Render(b.String())
}

// Helper functions

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
