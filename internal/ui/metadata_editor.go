package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spravado/domovnik/internal/ui/components"
)

// MetadataEditor is the free-text editor for attachment metadata.
type MetadataEditor struct {
	Active bool
	Buffer string
}

func (m *MetadataEditor) Open(initial map[string]any) {
	m.Active = true
	m.Buffer = metadataToInput(initial)
}

func (m *MetadataEditor) Reset() {
	m.Active = false
	m.Buffer = ""
}

// HandleKey consumes one key. It returns true when the editor closed.
func (m *MetadataEditor) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case isBack(msg):
		m.Active = false
		return true
	case isKey(msg, "backspace", "delete"):
		m.Buffer = dropLastRune(m.Buffer)
	case isKey(msg, "ctrl+u"):
		m.Buffer = ""
	case isEnter(msg):
		m.Buffer += "\n"
	case isKey(msg, "tab"):
		m.Buffer += "  "
	case isSpace(msg):
		m.Buffer += " "
	default:
		ch := msg.String()
		if len(ch) == 1 {
			m.Buffer += ch
		}
	}
	return false
}

func (m MetadataEditor) Render(width int) string {
	content := renderMetadataInput(m.Buffer)
	if strings.TrimSpace(m.Buffer) == "" {
		content = "-"
	}
	content += AccentStyle.Render("█")
	hint := MutedStyle.Render("tab odsadí  |  enter nový řádek  |  esc uloží a zavře")
	if _, err := parseMetadataInput(m.Buffer); err != nil {
		hint = hint + "\n" + ErrorStyle.Render(err.Error())
	}
	return components.Indent(components.TitledBox("Metadata přílohy", content+"\n\n"+hint, width), 1)
}

func dropLastRune(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
