package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func gridColumns() []TableColumn {
	return []TableColumn{
		{Header: "Označení", Width: 14},
		{Header: "Podlaží", Width: 8, Align: lipgloss.Right},
		{Header: "Nájemné", Width: 10, Align: lipgloss.Right},
	}
}

func TestTableGridRendersHeaderAndRows(t *testing.T) {
	out := TableGrid(gridColumns(), [][]string{
		{"2+kk, 3. patro", "3", "12 500"},
		{"1+1, přízemí", "0", "8 200"},
	}, 60)
	clean := SanitizeText(out)

	assert.Contains(t, clean, "Označení")
	assert.Contains(t, clean, "2+kk, 3. patro")
	assert.Contains(t, clean, "12 500")

	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 60, lipgloss.Width(line))
	}
}

func TestTableGridShowsSortMarkOnHeader(t *testing.T) {
	cols := gridColumns()
	cols[2].SortMark = "▼"
	out := TableGrid(cols, nil, 60)

	assert.Contains(t, SanitizeText(out), "Nájemné ▼")
}

func TestTableGridActiveRowKeepsContent(t *testing.T) {
	plain := TableGrid(gridColumns(), [][]string{{"a", "1", "2"}}, 60)
	active := TableGridWithActiveRow(gridColumns(), [][]string{{"a", "1", "2"}}, 60, 0)

	assert.Equal(t, SanitizeText(stripStyles(plain)), SanitizeText(stripStyles(active)))
}

func TestTableGridRightAlignPadsLeft(t *testing.T) {
	cell := renderGridCell("42", 6, lipgloss.Right)
	assert.Equal(t, "    42", cell)

	cell = renderGridCell("42", 6, lipgloss.Left)
	assert.Equal(t, "42    ", cell)
}

func TestTableGridEmptyColumnsStillFillsWidth(t *testing.T) {
	out := TableGrid(nil, nil, 30)
	assert.Equal(t, 30, lipgloss.Width(out))
}

func stripStyles(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
