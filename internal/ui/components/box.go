package components

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const (
	frameColor     = lipgloss.Color("#273540")
	titleColor     = lipgloss.Color("#7f57b4")
	labelColor     = lipgloss.Color("#436b77")
	valueColor     = lipgloss.Color("#d7d9da")
	fadedColor     = lipgloss.Color("#9ba0bf")
	diffNameColor  = lipgloss.Color("#a9c4ff")
	alertEdgeColor = lipgloss.Color("#7a2f3a")
	alertTextColor = lipgloss.Color("#e06c75")
	alertBodyColor = lipgloss.Color("#d6b5b5")
)

var (
	boxFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(frameColor).
			Padding(1, 2)

	boxTitleStyle = lipgloss.NewStyle().
			Foreground(titleColor).
			Bold(true)

	boxLabelStyle = lipgloss.NewStyle().
			Foreground(labelColor).
			Bold(true)

	boxValueStyle = lipgloss.NewStyle().
			Foreground(valueColor)

	boxFadedStyle = lipgloss.NewStyle().
			Foreground(fadedColor)

	diffLabelStyle = lipgloss.NewStyle().
			Foreground(diffNameColor).
			Bold(true)

	alertFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(alertEdgeColor).
			Padding(1, 2)

	alertTitleStyle = lipgloss.NewStyle().
			Foreground(alertTextColor).
			Bold(true)

	alertBodyStyle = lipgloss.NewStyle().
			Foreground(alertBodyColor)
)

// boxWidth picks the frame width for a terminal of the given width:
// roughly 70 %, never narrower than 40 and never wider than 80 cells.
func boxWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := width * 70 / 100
	switch {
	case w < 40:
		return 40
	case w > 80:
		return 80
	}
	return w
}

// safeBoxWidth additionally caps the frame at the terminal width so a
// narrow window never overflows.
func safeBoxWidth(width int) int {
	w := boxWidth(width)
	if width > 0 && w > width {
		return width
	}
	return w
}

// Box renders content inside the standard rounded frame.
func Box(content string, width int) string {
	return boxFrame.Width(safeBoxWidth(width)).Render(content)
}

// BoxContentWidth is the inner width left after the frame's border and
// padding.
func BoxContentWidth(width int) int {
	inner := safeBoxWidth(width) - 6
	if inner < 0 {
		return 0
	}
	return inner
}

// ClampTextWidth sanitizes text to a single line and truncates it to
// the given visual width.
func ClampTextWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	cleaned := SanitizeOneLine(text)
	if lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	return truncateRunes(cleaned, width)
}

// ErrorBox renders a red frame around an error message.
func ErrorBox(title, message string, width int) string {
	body := alertBodyStyle.Render(message)
	if title != "" {
		body = alertTitleStyle.Render(title) + "\n\n" + body
	}
	return alertFrame.Width(safeBoxWidth(width)).Render(body)
}

// TitledBox renders the standard frame with the title embedded in the
// top border.
func TitledBox(title, content string, width int) string {
	boxed := boxFrame.Width(safeBoxWidth(width)).Render(content)
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	if len(lines) == 0 {
		return boxed
	}
	topWidth := lipgloss.Width(lines[0])
	if topWidth < 4 {
		return boxed
	}
	lines[0] = titleLine(title, topWidth)
	return strings.Join(lines, "\n")
}

// titleLine rebuilds the frame's top border with " [ title ] "
// centered in it.
func titleLine(title string, width int) string {
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(frameColor)

	span := width - 2
	text := fmt.Sprintf(" [ %s ] ", title)
	if lipgloss.Width(text) > span {
		text = truncateRunes(text, span)
	}
	left := (span - lipgloss.Width(text)) / 2
	if left < 0 {
		left = 0
	}
	right := span - lipgloss.Width(text) - left
	if right < 0 {
		right = 0
	}

	line := edge.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		boxTitleStyle.Render(text) +
		edge.Render(strings.Repeat(border.Top, right)+border.TopRight)
	if w := lipgloss.Width(line); w < width {
		line += edge.Render(strings.Repeat(border.Top, width-w))
	} else if w > width {
		line = truncateRunes(line, width)
	}
	return line
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	var b strings.Builder
	b.Grow(max)
	n := 0
	for _, r := range s {
		if n >= max {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// InfoRow renders a "label: value" line for detail views.
func InfoRow(label, value string) string {
	return boxFadedStyle.Render(SanitizeOneLine(label)+": ") +
		boxValueStyle.Render(SanitizeOneLine(value))
}

// TableRow is a single row in a key-value table.
type TableRow struct {
	Label string
	Value string
}

// Table renders key-value rows with aligned labels inside the frame.
func Table(title string, rows []TableRow, width int) string {
	if len(rows) == 0 {
		return ""
	}

	maxLabel := 0
	safeRows := make([]TableRow, len(rows))
	for i, r := range rows {
		safeRows[i] = TableRow{
			Label: SanitizeOneLine(r.Label),
			Value: SanitizeOneLine(r.Value),
		}
		maxLabel = maxInt(maxLabel, lipgloss.Width(safeRows[i].Label))
	}

	labelWidth, valueWidth := tableColumns(maxLabel, BoxContentWidth(width))

	var b strings.Builder
	for i, r := range safeRows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(boxLabelStyle.Render(padRight(ClampTextWidth(r.Label, labelWidth), labelWidth)))
		b.WriteString("  ")
		b.WriteString(boxValueStyle.Render(ClampTextWidth(r.Value, valueWidth)))
	}

	if title != "" {
		return TitledBox(title, b.String(), width)
	}
	return Box(b.String(), width)
}

// tableColumns splits the content width between the label and the
// value column. Labels get at most 24 cells and at most half of the
// content width; the value column never drops below 4 cells.
func tableColumns(maxLabel, contentWidth int) (labelWidth, valueWidth int) {
	if contentWidth <= 0 {
		contentWidth = maxLabel + 8
	}

	labelWidth = maxLabel
	if labelWidth > 24 {
		labelWidth = 24
	}
	half := contentWidth / 2
	if half < 8 {
		half = contentWidth
	}
	if labelWidth > half {
		labelWidth = half
	}
	if labelWidth < 4 {
		labelWidth = maxLabel
	}

	valueWidth = contentWidth - labelWidth - 2
	if valueWidth < 4 {
		valueWidth = 4
		labelWidth = maxInt(4, contentWidth-valueWidth-2)
	}
	return labelWidth, valueWidth
}

// Indent prefixes every line of a multi-line string with spaces.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// DiffRow is a single change with its before and after values.
type DiffRow struct {
	Label string
	From  string
	To    string
}

// DiffTable renders changed fields as "- from" / "+ to" pairs inside
// the frame.
func DiffTable(title string, rows []DiffRow, width int) string {
	if len(rows) == 0 {
		return ""
	}

	removeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4d6d"))
	addStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffbf3f"))

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(diffLabelStyle.Render(SanitizeOneLine(r.Label)))
		b.WriteString("\n")
		b.WriteString(diffValue(removeStyle, "  - ", r.From))
		b.WriteString("\n")
		b.WriteString(diffValue(addStyle, "  + ", r.To))
	}
	return TitledBox(title, b.String(), width)
}

// diffValue renders one side of a diff row. Continuation lines of a
// multi-line value are indented under the +/- marker.
func diffValue(style lipgloss.Style, prefix, value string) string {
	value = SanitizeText(value)
	if value == "" {
		value = "-"
	}
	cont := strings.Repeat(" ", len(prefix))
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		if i == 0 {
			lines[i] = style.Render(prefix + line)
		} else {
			lines[i] = style.Render(cont + line)
		}
	}
	return strings.Join(lines, "\n")
}

// MetadataTable renders a nested metadata map as a framed table.
func MetadataTable(data map[string]any, width int) string {
	if len(data) == 0 {
		return ""
	}
	lines := renderMetadataLines(data, 0)
	if len(lines) == 0 {
		return ""
	}
	return TitledBox("Metadata", strings.Join(lines, "\n"), width)
}

func renderMetadataLines(data map[string]any, indent int) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	pad := strings.Repeat(" ", indent)
	for _, k := range keys {
		if nested, ok := data[k].(map[string]any); ok {
			lines = append(lines, pad+k+":")
			lines = append(lines, renderMetadataLines(nested, indent+2)...)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s%s: %s", pad, k, formatMetadataValue(data[k])))
	}
	return lines
}

func formatMetadataValue(val any) string {
	switch typed := val.(type) {
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			parts = append(parts, formatMetadataValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprintf("%v", typed)
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
