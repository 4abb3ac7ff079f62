package components

import "github.com/charmbracelet/lipgloss"

var (
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)

	hintTextStyle = lipgloss.NewStyle().
			Foreground(fadedColor)

	hintChipStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(frameColor).
			Padding(0, 1).
			MarginRight(1)

	statusBarStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

// Hint formats one keybind chip body, e.g. "Uložit" plus the keycap.
func Hint(key, desc string) string {
	return hintTextStyle.Render(desc+" ") + keyCapStyle.Render(key)
}

// StatusBar renders the bottom hint bar. Chips that do not fit the
// terminal width wrap onto further centered rows.
func StatusBar(hints []string, width int) string {
	chips := make([]string, 0, len(hints))
	for _, h := range hints {
		chips = append(chips, hintChipStyle.Render(h))
	}
	if width <= 0 {
		return statusBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	}

	rows := wrapSegments(chips, width)
	if len(rows) == 0 {
		return ""
	}
	widest := 0
	for _, row := range rows {
		if w := lipgloss.Width(row); w > widest {
			widest = w
		}
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.NewStyle().Width(widest).Align(lipgloss.Center).Render(row))
	}
	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(block)
}

// wrapSegments packs segments into rows no wider than width. A segment
// wider than the whole row still gets a row of its own.
func wrapSegments(segments []string, width int) []string {
	if width <= 0 {
		return []string{lipgloss.JoinHorizontal(lipgloss.Top, segments...)}
	}
	var rows []string
	var row []string
	used := 0
	for _, seg := range segments {
		w := lipgloss.Width(seg)
		if used > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, seg)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return rows
}
