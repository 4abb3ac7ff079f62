package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseColumns() []Column {
	return []Column{
		{Key: "name", Label: "Název", Width: 30, Sortable: true},
		{Key: "type", Label: "Typ", Width: 16, Sortable: true},
		{Key: "rent", Label: "Nájem", Width: 12, Sortable: true, Align: AlignRight},
		{Key: "note", Label: "Poznámka", Width: 24},
	}
}

func keysOf(cols []Column) []string {
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return keys
}

func TestApplyColumnPrefsReordersAndAppendsUnlisted(t *testing.T) {
	prefs := ColumnPrefs{Order: []string{"rent", "type"}}

	out := ApplyColumnPrefs(baseColumns(), prefs, "name", nil)

	assert.Equal(t, []string{"name", "rent", "type", "note"}, keysOf(out))
}

func TestApplyColumnPrefsIdempotent(t *testing.T) {
	prefs := ColumnPrefs{
		Order:  []string{"note", "rent"},
		Hidden: map[string]bool{"type": true},
		Widths: map[string]int{"rent": 20},
	}

	once := ApplyColumnPrefs(baseColumns(), prefs, "name", []string{"name"})
	twice := ApplyColumnPrefs(once, prefs, "name", []string{"name"})

	assert.Equal(t, once, twice)
}

func TestApplyColumnPrefsFixedFirstInvariant(t *testing.T) {
	cases := []ColumnPrefs{
		{},
		{Order: []string{"rent", "name", "type"}},
		{Order: []string{"note", "type", "rent"}},
		{Order: []string{"type"}, Hidden: map[string]bool{"name": true}},
	}

	for _, prefs := range cases {
		out := ApplyColumnPrefs(baseColumns(), prefs, "name", nil)
		require.NotEmpty(t, out)
		assert.Equal(t, "name", out[0].Key)
	}
}

func TestApplyColumnPrefsRequiredKeysNeverHidden(t *testing.T) {
	prefs := ColumnPrefs{Hidden: map[string]bool{"name": true, "type": true, "rent": true}}

	out := ApplyColumnPrefs(baseColumns(), prefs, "name", []string{"name", "type"})

	keys := keysOf(out)
	assert.Contains(t, keys, "name")
	assert.Contains(t, keys, "type")
	assert.NotContains(t, keys, "rent")
}

func TestApplyColumnPrefsOverlaysWidths(t *testing.T) {
	prefs := ColumnPrefs{Widths: map[string]int{"type": 40}}

	out := ApplyColumnPrefs(baseColumns(), prefs, "name", nil)

	for _, c := range out {
		if c.Key == "type" {
			assert.Equal(t, 40, c.Width)
		}
		if c.Key == "name" {
			assert.Equal(t, 30, c.Width)
		}
	}
}

func TestApplyColumnPrefsIgnoresUnknownOrderKeys(t *testing.T) {
	prefs := ColumnPrefs{Order: []string{"ghost", "rent", "rent"}}

	out := ApplyColumnPrefs(baseColumns(), prefs, "name", nil)

	assert.Equal(t, []string{"name", "rent", "type", "note"}, keysOf(out))
}

func TestWithWidthMergesSingleColumn(t *testing.T) {
	prefs := ColumnPrefs{
		Order:  []string{"rent"},
		Widths: map[string]int{"name": 25},
		Hidden: map[string]bool{"note": true},
	}

	next := prefs.WithWidth("rent", 18)

	assert.Equal(t, 18, next.Widths["rent"])
	assert.Equal(t, 25, next.Widths["name"])
	assert.Equal(t, prefs.Order, next.Order)
	assert.Equal(t, prefs.Hidden, next.Hidden)
	// Original is untouched.
	_, ok := prefs.Widths["rent"]
	assert.False(t, ok)
}

func TestColumnPrefsEqual(t *testing.T) {
	a := ColumnPrefs{Sort: &SortKey{Key: "name", Dir: SortAsc}, Widths: map[string]int{"name": 30}}
	b := ColumnPrefs{Sort: &SortKey{Key: "name", Dir: SortAsc}, Widths: map[string]int{"name": 30}}
	assert.True(t, a.Equal(b))

	b.Sort = &SortKey{Key: "name", Dir: SortDesc}
	assert.False(t, a.Equal(b))

	b.Sort = nil
	assert.False(t, a.Equal(b))
}
