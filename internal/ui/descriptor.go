package ui

import (
	"strconv"
	"strings"

	"github.com/spravado/domovnik/internal/api"
	"github.com/spravado/domovnik/internal/form"
	"github.com/spravado/domovnik/internal/listview"
)

// Row is one list entry of a tile, reduced to what the projection and
// the grid need. Cells are keyed by column key.
type Row struct {
	ID         string
	Archived   bool
	OrderIndex *int
	TypeCode   string
	Cells      map[string]listview.Value
	Search     string
}

func rowValue(r Row, key string) listview.Value {
	if v, ok := r.Cells[key]; ok {
		return v
	}
	return listview.Value{}
}

func rowSearch(r Row) string { return r.Search }

// Field describes one editable attribute of an entity form. Options,
// when set, make the field an enumerated choice cycled with left/right.
type Field struct {
	Key      string
	Label    string
	Required bool
	Numeric  bool
	ReadOnly bool
	Options  []string
}

// RelationPane is one panel of a tile's relations hub. Panes load
// independently; one failing pane shows its own placeholder without
// blanking its neighbours.
type RelationPane struct {
	Title string
	Load  func(c *api.Client, id string) ([]string, error)
}

// EntityDesc is everything the generic tile controller needs to serve
// one entity family. The controller owns navigation, projection,
// preferences, forms and attachments; the descriptor contributes the
// family's columns, fields, validation and service calls.
type EntityDesc struct {
	TileID         string
	Title          string
	Columns        []listview.Column
	Required       []string
	FixedFirst     string
	AttachmentType string
	TypeOptions    []string

	// DiscriminatorKey names the draft field a type pre-selection
	// lands in when a record is created through a typed link or a
	// typed list filter.
	DiscriminatorKey string

	// LinkUserKey names the draft field the fromUserId link
	// parameter pre-fills on create. Empty means the parameter is
	// ignored by this tile.
	LinkUserKey string

	Fields    []Field
	Relations []RelationPane

	List     func(c *api.Client, f api.ListFilter) ([]Row, error)
	Get      func(c *api.Client, id string) (map[string]string, error)
	Save     func(c *api.Client, draft map[string]string) (map[string]string, error)
	Archive  func(c *api.Client, id string, archived bool) error
	Delete   func(c *api.Client, id string) error
	Validate form.Validator[map[string]string]
}

// ViewKey is the preference key of this tile's list view.
func (d EntityDesc) ViewKey() string {
	return d.TileID + ".list"
}

// DefaultPrefs is the preference baseline the stored blob is merged
// over. Sort stays nil so the view keeps following the default rule.
func (d EntityDesc) DefaultPrefs() listview.ColumnPrefs {
	return listview.ColumnPrefs{Version: 1}
}

// --- draft helpers ---

func draftGet(draft map[string]string, key string) string {
	return strings.TrimSpace(draft[key])
}

func requireFields(draft map[string]string, fields []Field) *form.ValidationError {
	for _, f := range fields {
		if f.Required && draftGet(draft, f.Key) == "" {
			return form.Invalid(f.Label, "")
		}
	}
	return nil
}

func requireNumeric(draft map[string]string, fields []Field) *form.ValidationError {
	for _, f := range fields {
		if !f.Numeric {
			continue
		}
		v := draftGet(draft, f.Key)
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64); err != nil {
			return form.Invalid(f.Label, "musí být číslo")
		}
	}
	return nil
}

func draftFloat(draft map[string]string, key string) float64 {
	v := strings.ReplaceAll(draftGet(draft, key), ",", ".")
	if v == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

func draftInt(draft map[string]string, key string) int {
	v := draftGet(draft, key)
	if v == "" {
		return 0
	}
	n, _ := strconv.Atoi(v)
	return n
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func draftDate(draft map[string]string, key string) *api.Date {
	v := draftGet(draft, key)
	if v == "" {
		return nil
	}
	var d api.Date
	if err := d.UnmarshalJSON([]byte(strconv.Quote(v))); err != nil {
		return nil
	}
	return &d
}

func formatDate(d *api.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func archivedMark(archived bool) string {
	if archived {
		return "[archiv]"
	}
	return ""
}

func searchBlob(parts ...string) string {
	return strings.Join(parts, " ")
}
