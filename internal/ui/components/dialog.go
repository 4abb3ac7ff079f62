package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dialogFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(frameColor).
			Padding(1, 2).
			Width(40)

	dialogTitleStyle = lipgloss.NewStyle().
				Foreground(titleColor).
				Bold(true)

	dialogBodyStyle = lipgloss.NewStyle().
			Foreground(fadedColor)

	dialogFieldStyle = lipgloss.NewStyle().
				Foreground(labelColor)
)

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	header := dialogTitleStyle.Render(title)
	body := dialogBodyStyle.Render(message)
	hint := dialogBodyStyle.Render("\ny: ano | n: ne")
	return dialogFrame.Render(header + "\n\n" + body + hint)
}

// InputDialog renders a single-line text prompt.
func InputDialog(title, input string) string {
	header := dialogTitleStyle.Render(title)
	field := dialogFieldStyle.Render("> " + input + "█")
	hint := dialogBodyStyle.Render("\nenter: potvrdit | esc: zrušit")
	return dialogFrame.Render(header + "\n\n" + field + hint)
}

// UnsavedChangesDialog renders the close confirmation for a dirty
// form, listing the fields that would be lost.
func UnsavedChangesDialog(title string, changes []DiffRow, width int) string {
	sections := make([]string, 0, 2)
	if len(changes) > 0 {
		sections = append(sections, DiffTable("Neuložené změny", changes, width))
	}
	sections = append(sections, dialogBodyStyle.Render("y: zahodit změny | n: pokračovat v úpravách"))
	return TitledBox(title, strings.Join(sections, "\n\n"), width)
}
