package listview

// Align controls how cell text is aligned within a column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Column describes one displayable field of a list view.
// Key must be unique within a column set.
type Column struct {
	Key      string
	Label    string
	Width    int
	Sortable bool
	Align    Align
}

// SortDir is a sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// SortKey names a column and a direction. A nil *SortKey means
// "use the view's default sort rule".
type SortKey struct {
	Key string  `json:"key"`
	Dir SortDir `json:"dir"`
}

// ColumnPrefs holds the per-view column customization. Order is a
// permutation hint only: keys absent from it retain base order and are
// appended after the listed ones. Hidden keys are dropped from the
// projection unless they are required.
type ColumnPrefs struct {
	Version int             `json:"version"`
	Sort    *SortKey        `json:"sort,omitempty"`
	Widths  map[string]int  `json:"col_widths,omitempty"`
	Order   []string        `json:"col_order,omitempty"`
	Hidden  map[string]bool `json:"col_hidden,omitempty"`
}

// WithWidth returns a copy of p with a single column width merged in.
// Order and Hidden are left untouched.
func (p ColumnPrefs) WithWidth(key string, px int) ColumnPrefs {
	widths := make(map[string]int, len(p.Widths)+1)
	for k, v := range p.Widths {
		widths[k] = v
	}
	widths[key] = px
	p.Widths = widths
	return p
}

// Equal reports structural equality of two preference sets.
func (p ColumnPrefs) Equal(other ColumnPrefs) bool {
	if p.Version != other.Version {
		return false
	}
	if (p.Sort == nil) != (other.Sort == nil) {
		return false
	}
	if p.Sort != nil && *p.Sort != *other.Sort {
		return false
	}
	if len(p.Widths) != len(other.Widths) || len(p.Order) != len(other.Order) || len(p.Hidden) != len(other.Hidden) {
		return false
	}
	for k, v := range p.Widths {
		if other.Widths[k] != v {
			return false
		}
	}
	for i, k := range p.Order {
		if other.Order[i] != k {
			return false
		}
	}
	for k, v := range p.Hidden {
		if other.Hidden[k] != v {
			return false
		}
	}
	return true
}

// ApplyColumnPrefs projects a base column set through stored preferences.
// The result reorders by prefs.Order (unlisted columns keep base relative
// order after the listed ones), removes hidden columns except those in
// required, overlays stored widths, and always pins fixedFirst as the first
// column when it names a base column. Pure and idempotent.
func ApplyColumnPrefs(base []Column, prefs ColumnPrefs, fixedFirst string, required []string) []Column {
	req := make(map[string]bool, len(required))
	for _, k := range required {
		req[k] = true
	}

	byKey := make(map[string]Column, len(base))
	for _, c := range base {
		byKey[c.Key] = c
	}

	ordered := make([]Column, 0, len(base))
	seen := make(map[string]bool, len(base))
	for _, key := range prefs.Order {
		c, ok := byKey[key]
		if !ok || seen[key] {
			continue
		}
		ordered = append(ordered, c)
		seen[key] = true
	}
	for _, c := range base {
		if !seen[c.Key] {
			ordered = append(ordered, c)
		}
	}

	out := make([]Column, 0, len(ordered))
	if first, ok := byKey[fixedFirst]; ok {
		out = append(out, first)
	}
	for _, c := range ordered {
		if c.Key == fixedFirst {
			continue
		}
		if prefs.Hidden[c.Key] && !req[c.Key] {
			continue
		}
		out = append(out, c)
	}

	for i := range out {
		if w, ok := prefs.Widths[out[i].Key]; ok && w > 0 {
			out[i].Width = w
		}
	}
	return out
}
