package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spravado/domovnik/internal/listview"
)

// colEditState is the column settings overlay. It edits a working copy
// of the preferences; nothing is persisted until the user confirms.
type colEditState struct {
	desc   EntityDesc
	prefs  listview.ColumnPrefs
	keys   []string // full base order projected through the working prefs
	cursor int
}

func newColEditState(desc EntityDesc, current listview.ColumnPrefs) *colEditState {
	s := &colEditState{desc: desc, prefs: clonePrefs(current)}
	s.rebuildKeys()
	return s
}

func clonePrefs(p listview.ColumnPrefs) listview.ColumnPrefs {
	out := listview.ColumnPrefs{Version: p.Version}
	if p.Sort != nil {
		sort := *p.Sort
		out.Sort = &sort
	}
	if len(p.Widths) > 0 {
		out.Widths = make(map[string]int, len(p.Widths))
		for k, v := range p.Widths {
			out.Widths[k] = v
		}
	}
	out.Order = append([]string(nil), p.Order...)
	if len(p.Hidden) > 0 {
		out.Hidden = make(map[string]bool, len(p.Hidden))
		for k, v := range p.Hidden {
			out.Hidden[k] = v
		}
	}
	return out
}

// rebuildKeys lists every base column in the working order, including
// hidden ones so they can be toggled back.
func (s *colEditState) rebuildKeys() {
	byKey := make(map[string]listview.Column, len(s.desc.Columns))
	for _, c := range s.desc.Columns {
		byKey[c.Key] = c
	}
	keys := make([]string, 0, len(s.desc.Columns))
	seen := make(map[string]bool, len(s.desc.Columns))
	for _, k := range s.prefs.Order {
		if _, ok := byKey[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	for _, c := range s.desc.Columns {
		if !seen[c.Key] {
			keys = append(keys, c.Key)
		}
	}
	s.keys = keys
	if s.cursor >= len(keys) {
		s.cursor = len(keys) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *colEditState) selectedKey() string {
	if s.cursor < 0 || s.cursor >= len(s.keys) {
		return ""
	}
	return s.keys[s.cursor]
}

func (s *colEditState) column(key string) (listview.Column, bool) {
	for _, c := range s.desc.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return listview.Column{}, false
}

func (s *colEditState) isRequired(key string) bool {
	if key == s.desc.FixedFirst {
		return true
	}
	for _, r := range s.desc.Required {
		if r == key {
			return true
		}
	}
	return false
}

func (s *colEditState) toggleHidden() {
	key := s.selectedKey()
	if key == "" || s.isRequired(key) {
		return
	}
	if s.prefs.Hidden == nil {
		s.prefs.Hidden = map[string]bool{}
	}
	s.prefs.Hidden[key] = !s.prefs.Hidden[key]
}

func (s *colEditState) move(delta int) {
	target := s.cursor + delta
	if target < 0 || target >= len(s.keys) {
		return
	}
	s.keys[s.cursor], s.keys[target] = s.keys[target], s.keys[s.cursor]
	s.cursor = target
	s.prefs.Order = append([]string(nil), s.keys...)
}

func (s *colEditState) resizeWidth(delta int) {
	key := s.selectedKey()
	if key == "" {
		return
	}
	base, ok := s.column(key)
	if !ok {
		return
	}
	cur := base.Width
	if w, ok := s.prefs.Widths[key]; ok {
		cur = w
	}
	next := cur + delta
	if next < 4 {
		next = 4
	}
	if next > 80 {
		next = 80
	}
	s.prefs = s.prefs.WithWidth(key, next)
}

func (s *colEditState) cycleSort() {
	key := s.selectedKey()
	if key == "" {
		return
	}
	base, ok := s.column(key)
	if !ok || !base.Sortable {
		return
	}
	s.prefs.Sort = listview.NextSort(s.prefs.Sort, key)
}

func (m TileModel) handleColEditKeys(msg tea.KeyMsg) (TileModel, tea.Cmd) {
	s := m.colEdit
	switch {
	case isBack(msg):
		m.colEdit = nil
	case isEnter(msg):
		prefs := s.prefs
		m.colEdit = nil
		m.applyColPrefs(prefs)
	case isUp(msg):
		if s.cursor > 0 {
			s.cursor--
		}
	case isDown(msg):
		if s.cursor < len(s.keys)-1 {
			s.cursor++
		}
	case isKey(msg, "K"):
		s.move(-1)
	case isKey(msg, "J"):
		s.move(1)
	case isSpace(msg):
		s.toggleHidden()
	case isKey(msg, "+"):
		s.resizeWidth(2)
	case isKey(msg, "-"):
		s.resizeWidth(-2)
	case isKey(msg, "s"):
		s.cycleSort()
	case isKey(msg, "R"):
		m.colEdit = newColEditState(m.desc, m.desc.DefaultPrefs())
	}
	return m, nil
}
