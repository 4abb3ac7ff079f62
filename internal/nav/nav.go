// Package nav derives the visible screen of the application from a set
// of query parameters and writes it back. The parameter string is the
// only persisted navigation state: every other view flag is recomputed
// from it, so the address can always be shared as a deep link.
package nav

import "net/url"

// Query parameter names. Other tooling relies on these exact keys.
const (
	ParamTile        = "t"
	ParamID          = "id"
	ParamViewMode    = "vm"
	ParamType        = "type"
	ParamAttachments = "am"
	ParamFromUserID  = "fromUserId"
)

// NewEntityID is the sentinel id for a record being created that has
// not been persisted yet.
const NewEntityID = "new"

// ViewMode is the detail-panel state of a tile.
type ViewMode string

const (
	ModeList        ViewMode = "list"
	ModeRead        ViewMode = "read"
	ModeEdit        ViewMode = "edit"
	ModeCreate      ViewMode = "create"
	ModeRelations   ViewMode = "relations"
	ModeAttachments ViewMode = "attachments-manager"
)

// State is the derived navigation state. It is never stored: callers
// recompute it from the current query values on every change.
type State struct {
	TileID      string
	EntityID    string
	ViewMode    ViewMode
	TypeFilter  string
	Attachments bool
	FromUserID  string
}

// Parse derives the navigation state from query values.
//
// Derivation rules, in priority order:
//   - am=1 together with an id wins over whatever vm is set to; the
//     attachments manager is an overlay, not a peer view mode
//   - id=new means create; the type parameter pre-seeds a discriminator
//   - an id with vm=read or vm=edit selects that mode; any other vm
//     value with an id falls back to read
//   - vm=relations selects the relations hub
//   - no id means list
func Parse(q url.Values) State {
	s := State{
		TileID:     q.Get(ParamTile),
		EntityID:   q.Get(ParamID),
		TypeFilter: q.Get(ParamType),
		FromUserID: q.Get(ParamFromUserID),
	}
	s.Attachments = q.Get(ParamAttachments) == "1" && s.EntityID != ""

	switch {
	case s.Attachments:
		s.ViewMode = ModeAttachments
	case s.EntityID == NewEntityID:
		s.ViewMode = ModeCreate
	case s.EntityID != "":
		switch q.Get(ParamViewMode) {
		case "edit":
			s.ViewMode = ModeEdit
		case "relations":
			s.ViewMode = ModeRelations
		default:
			s.ViewMode = ModeRead
		}
	case q.Get(ParamViewMode) == "relations":
		s.ViewMode = ModeRelations
	default:
		s.ViewMode = ModeList
	}
	return s
}

// Values writes the state back to query values. Parse(s.Values()) is
// identical to s for any state produced by Parse.
func (s State) Values() url.Values {
	q := url.Values{}
	if s.TileID != "" {
		q.Set(ParamTile, s.TileID)
	}
	if s.EntityID != "" {
		q.Set(ParamID, s.EntityID)
	}
	switch s.ViewMode {
	case ModeAttachments:
		q.Set(ParamAttachments, "1")
	case ModeRead, ModeEdit:
		if s.EntityID != "" {
			q.Set(ParamViewMode, string(s.ViewMode))
		}
	case ModeRelations:
		q.Set(ParamViewMode, "relations")
	case ModeCreate, ModeList:
		// create is carried by id=new, list by the absence of an id
	}
	if s.TypeFilter != "" {
		q.Set(ParamType, s.TypeFilter)
	}
	if s.FromUserID != "" {
		q.Set(ParamFromUserID, s.FromUserID)
	}
	return q
}

// Close is the single canonical close transition: from any non-list
// view mode back to the tile's list, clearing the entity selection, the
// type pre-seed and the attachments flag. Closing a list is a no-op.
func (s State) Close() State {
	return State{TileID: s.TileID, ViewMode: ModeList}
}

// Open returns the state for opening one entity of the current tile in
// the given mode.
func (s State) Open(entityID string, mode ViewMode) State {
	next := State{TileID: s.TileID, EntityID: entityID, ViewMode: mode}
	next.Attachments = mode == ModeAttachments
	return next
}

// Create returns the state for creating a new entity, optionally
// pre-seeding a discriminator type.
func (s State) Create(typeCode string) State {
	return State{
		TileID:     s.TileID,
		EntityID:   NewEntityID,
		ViewMode:   ModeCreate,
		TypeFilter: typeCode,
	}
}

// Encode renders the state as a canonical deep-link string, e.g.
// "t=040.units&id=5&vm=edit".
func (s State) Encode() string {
	return s.Values().Encode()
}

// ParseLink parses a deep-link string produced by Encode.
func ParseLink(link string) (State, error) {
	q, err := url.ParseQuery(link)
	if err != nil {
		return State{}, err
	}
	return Parse(q), nil
}
