package ui

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spravado/domovnik/internal/api"
	"github.com/spravado/domovnik/internal/fetch"
	"github.com/spravado/domovnik/internal/form"
	"github.com/spravado/domovnik/internal/listview"
	"github.com/spravado/domovnik/internal/nav"
	"github.com/spravado/domovnik/internal/prefs"
	"github.com/spravado/domovnik/internal/ui/components"
)

// searchDebounce is how long the list waits after the last keystroke
// before re-projecting. Typing into a few thousand rows should not
// re-sort on every rune.
const searchDebounce = 300 * time.Millisecond

// --- Messages ---

type tileRowsMsg struct {
	tileID string
	key    string
	rows   []Row
}

type tileErrMsg struct {
	tileID string
	err    error
}

type tileDraftMsg struct {
	tileID string
	id     string
	mode   nav.ViewMode
	draft  map[string]string
}

type tileDetailFailedMsg struct {
	tileID string
	err    error
}

type tileSavedMsg struct {
	tileID string
	draft  map[string]string
}

type tileInvalidMsg struct {
	tileID string
	verr   *form.ValidationError
}

type tileMutatedMsg struct {
	tileID string
	note   string
}

type tilePaneMsg struct {
	tileID string
	id     string
	idx    int
	lines  []string
	err    error
}

type tileAttachmentsMsg struct {
	tileID string
	id     string
	items  []api.Attachment
}

type tilePrefsMsg struct {
	tileID string
	prefs  listview.ColumnPrefs
}

type searchTickMsg struct {
	tileID string
	seq    int
}

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmClose
	confirmArchive
	confirmDelete
	confirmAttachmentDelete
)

type paneState struct {
	lines   []string
	loading bool
	err     string
}

// --- Tile Model ---

// TileModel is the controller of one entity family. The same model
// serves every tile; EntityDesc supplies what differs between them.
type TileModel struct {
	client *api.Client
	store  *prefs.Store
	desc   EntityDesc

	nav nav.State

	rows     []Row
	visible  []Row
	cols     []listview.Column
	list     *components.List
	loads    *fetch.Group[[]Row]
	loading  bool
	errText  string
	toast    string
	prefsOK  bool
	colPrefs listview.ColumnPrefs

	search    textinput.Model
	searchSeq int

	includeArchived bool
	typeIdx         int

	// read/edit
	detailID    string
	openedDraft map[string]string
	session     *form.Session[map[string]string]
	fieldFocus  int
	saving      bool
	invalidText string

	confirm confirmKind

	colEdit *colEditState

	panes []paneState

	attachments []api.Attachment
	attCursor   int
	attPrompt   string // non-empty while asking for a file path
	attBuf      string
	attVersion  bool // prompt uploads a new version of the selected attachment
	attMeta     MetadataEditor

	width  int
	height int
}

// NewTileModel builds the controller for one descriptor.
func NewTileModel(client *api.Client, store *prefs.Store, desc EntityDesc) TileModel {
	search := textinput.New()
	search.Placeholder = "hledat"
	search.Prompt = "/ "
	search.CharLimit = 120
	return TileModel{
		client:   client,
		store:    store,
		desc:     desc,
		nav:      nav.State{TileID: desc.TileID, ViewMode: nav.ModeList},
		list:     components.NewList(15),
		loads:    fetch.NewGroup[[]Row](),
		search:   search,
		colPrefs: desc.DefaultPrefs(),
		cols:     desc.Columns,
	}
}

// Init loads preferences and the first page of rows.
func (m TileModel) Init() tea.Cmd {
	return tea.Batch(m.loadPrefsCmd(), m.reloadCmd())
}

// Nav returns the tile's current navigation state for deep links.
func (m TileModel) Nav() nav.State { return m.nav }

// SetNav applies an externally supplied navigation state (deep link)
// and returns the commands needed to materialize it.
func (m TileModel) SetNav(s nav.State) (TileModel, tea.Cmd) {
	m.nav = s
	cmds := []tea.Cmd{m.loadPrefsCmd(), m.reloadCmd()}
	switch s.ViewMode {
	case nav.ModeRead, nav.ModeEdit:
		cmds = append(cmds, m.loadDraftCmd(s.EntityID, s.ViewMode))
	case nav.ModeCreate:
		m = m.openCreate(s.TypeFilter, s.FromUserID)
	case nav.ModeRelations:
		if s.EntityID != "" {
			m.detailID = s.EntityID
			m, cmds = m.startRelations(s.EntityID, cmds)
		}
	case nav.ModeAttachments:
		m.detailID = s.EntityID
		cmds = append(cmds, m.loadAttachmentsCmd(s.EntityID))
	}
	return m, tea.Batch(cmds...)
}

// CapturesInput reports whether the tile is consuming raw typed runes,
// so global single-letter shortcuts must stay inactive.
func (m TileModel) CapturesInput() bool {
	if m.search.Focused() || m.attPrompt != "" || m.attMeta.Active {
		return true
	}
	switch m.nav.ViewMode {
	case nav.ModeEdit, nav.ModeCreate:
		return true
	}
	return false
}

// Dirty reports whether an open form has unsaved changes.
func (m TileModel) Dirty() bool {
	return m.session != nil && m.session.Dirty()
}

// --- Commands ---

func (m TileModel) filter() api.ListFilter {
	f := api.ListFilter{IncludeArchived: m.includeArchived}
	if m.typeIdx > 0 && m.typeIdx <= len(m.desc.TypeOptions) {
		f.TypeCode = m.desc.TypeOptions[m.typeIdx-1]
	}
	return f
}

func (m TileModel) reloadCmd() tea.Cmd {
	f := m.filter()
	key := f.Key()
	tileID := m.desc.TileID
	loads := m.loads
	client := m.client
	load := m.desc.List
	return func() tea.Msg {
		rows, _, err := loads.Do(key, func() ([]Row, error) {
			return load(client, f)
		})
		if err != nil {
			return tileErrMsg{tileID: tileID, err: err}
		}
		return tileRowsMsg{tileID: tileID, key: key, rows: rows}
	}
}

func (m TileModel) loadPrefsCmd() tea.Cmd {
	store := m.store
	tileID := m.desc.TileID
	viewKey := m.desc.ViewKey()
	defaults := m.desc.DefaultPrefs()
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return tilePrefsMsg{tileID: tileID, prefs: store.Load(viewKey, defaults)}
	}
}

func (m TileModel) loadDraftCmd(id string, mode nav.ViewMode) tea.Cmd {
	tileID := m.desc.TileID
	client := m.client
	get := m.desc.Get
	return func() tea.Msg {
		draft, err := get(client, id)
		if err != nil {
			return tileDetailFailedMsg{tileID: tileID, err: err}
		}
		return tileDraftMsg{tileID: tileID, id: id, mode: mode, draft: draft}
	}
}

func (m TileModel) submitCmd() tea.Cmd {
	tileID := m.desc.TileID
	sess := m.session
	return func() tea.Msg {
		draft, err := sess.Submit(context.Background())
		if err != nil {
			var verr *form.ValidationError
			if errors.As(err, &verr) {
				return tileInvalidMsg{tileID: tileID, verr: verr}
			}
			return tileErrMsg{tileID: tileID, err: err}
		}
		return tileSavedMsg{tileID: tileID, draft: draft}
	}
}

func (m TileModel) archiveCmd(id string, archived bool) tea.Cmd {
	tileID := m.desc.TileID
	client := m.client
	archive := m.desc.Archive
	note := "Záznam archivován."
	if !archived {
		note = "Záznam obnoven z archivu."
	}
	return func() tea.Msg {
		if err := archive(client, id, archived); err != nil {
			return tileErrMsg{tileID: tileID, err: err}
		}
		return tileMutatedMsg{tileID: tileID, note: note}
	}
}

func (m TileModel) deleteCmd(id string) tea.Cmd {
	tileID := m.desc.TileID
	client := m.client
	del := m.desc.Delete
	return func() tea.Msg {
		if err := del(client, id); err != nil {
			return tileErrMsg{tileID: tileID, err: err}
		}
		return tileMutatedMsg{tileID: tileID, note: "Záznam smazán."}
	}
}

func (m TileModel) loadPaneCmd(id string, idx int) tea.Cmd {
	tileID := m.desc.TileID
	client := m.client
	pane := m.desc.Relations[idx]
	return func() tea.Msg {
		lines, err := pane.Load(client, id)
		return tilePaneMsg{tileID: tileID, id: id, idx: idx, lines: lines, err: err}
	}
}

func (m TileModel) loadAttachmentsCmd(id string) tea.Cmd {
	tileID := m.desc.TileID
	client := m.client
	entityType := m.desc.AttachmentType
	return func() tea.Msg {
		items, err := client.ListAttachments(entityType, id)
		if err != nil {
			return tileErrMsg{tileID: tileID, err: err}
		}
		return tileAttachmentsMsg{tileID: tileID, id: id, items: items}
	}
}

func (m TileModel) uploadAttachmentCmd(path string, versionOf string) tea.Cmd {
	tileID := m.desc.TileID
	client := m.client
	entityType := m.desc.AttachmentType
	entityID := m.detailID
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return tileErrMsg{tileID: tileID, err: err}
		}
		input := api.UploadAttachmentInput{
			Name:     filepath.Base(path),
			FileName: filepath.Base(path),
			MimeType: mime.TypeByExtension(filepath.Ext(path)),
			Content:  base64.StdEncoding.EncodeToString(data),
		}
		if versionOf != "" {
			_, err = client.UploadAttachmentVersion(versionOf, input)
		} else {
			_, err = client.UploadAttachment(entityType, entityID, input)
		}
		if err != nil {
			return tileErrMsg{tileID: tileID, err: err}
		}
		return tileMutatedMsg{tileID: tileID, note: "Příloha uložena."}
	}
}

func (m TileModel) updateAttachmentMetadataCmd(id string, meta map[string]any) tea.Cmd {
	tileID := m.desc.TileID
	client := m.client
	return func() tea.Msg {
		if _, err := client.UpdateAttachmentMetadata(id, api.JSONMap(meta)); err != nil {
			return tileErrMsg{tileID: tileID, err: err}
		}
		return tileMutatedMsg{tileID: tileID, note: "Metadata přílohy uložena."}
	}
}

func (m TileModel) deleteAttachmentCmd(id string) tea.Cmd {
	tileID := m.desc.TileID
	client := m.client
	return func() tea.Msg {
		if err := client.DeleteAttachment(id); err != nil {
			return tileErrMsg{tileID: tileID, err: err}
		}
		return tileMutatedMsg{tileID: tileID, note: "Příloha smazána."}
	}
}

func (m TileModel) searchTickCmd() tea.Cmd {
	tileID := m.desc.TileID
	seq := m.searchSeq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{tileID: tileID, seq: seq}
	})
}

// --- Update ---

func (m TileModel) Update(msg tea.Msg) (TileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tileRowsMsg:
		if msg.tileID != m.desc.TileID {
			return m, nil
		}
		// A reload for an outdated filter must not overwrite the
		// current one.
		if msg.key != m.filter().Key() {
			return m, nil
		}
		m.loading = false
		m.errText = ""
		m.rows = msg.rows
		m.reproject()
		return m, nil

	case tileErrMsg:
		if msg.tileID != m.desc.TileID {
			return m, nil
		}
		m.loading = false
		m.saving = false
		m.errText = msg.err.Error()
		return m, nil

	case tilePrefsMsg:
		if msg.tileID != m.desc.TileID {
			return m, nil
		}
		m.prefsOK = true
		m.colPrefs = msg.prefs
		if m.store != nil {
			if err := m.store.LastErr(); err != nil {
				m.toast = "Nastavení sloupců se nepodařilo načíst, platí výchozí."
			}
		}
		m.reproject()
		return m, nil

	case tileDraftMsg:
		if msg.tileID != m.desc.TileID || msg.id != m.nav.EntityID {
			return m, nil
		}
		m.detailID = msg.id
		m.openedDraft = cloneDraft(msg.draft)
		m.session = form.Open(cloneDraft(msg.draft), m.desc.Validate, m.saver())
		m.fieldFocus = m.firstEditableField()
		m.invalidText = ""
		return m, nil

	case tileDetailFailedMsg:
		if msg.tileID != m.desc.TileID {
			return m, nil
		}
		// A dead deep link or stale row: fall back to the list with a
		// single notice instead of a broken detail.
		m.nav = m.nav.Close()
		m.session = nil
		m.toast = "Záznam se nepodařilo načíst: " + msg.err.Error()
		return m, nil

	case tileSavedMsg:
		if msg.tileID != m.desc.TileID {
			return m, nil
		}
		m.saving = false
		m.invalidText = ""
		m.openedDraft = cloneDraft(msg.draft)
		m.detailID = draftGet(msg.draft, "id")
		m.toast = "Uloženo."
		m.nav = m.nav.Open(m.detailID, nav.ModeRead)
		m.loading = true
		return m, m.reloadCmd()

	case tileInvalidMsg:
		if msg.tileID != m.desc.TileID {
			return m, nil
		}
		m.saving = false
		m.invalidText = msg.verr.Error()
		return m, nil

	case tileMutatedMsg:
		if msg.tileID != m.desc.TileID {
			return m, nil
		}
		m.toast = msg.note
		m.loading = true
		cmds := []tea.Cmd{m.reloadCmd()}
		if m.nav.ViewMode == nav.ModeAttachments && m.detailID != "" {
			cmds = append(cmds, m.loadAttachmentsCmd(m.detailID))
		}
		return m, tea.Batch(cmds...)

	case tilePaneMsg:
		if msg.tileID != m.desc.TileID || msg.id != m.detailID || msg.idx >= len(m.panes) {
			return m, nil
		}
		p := &m.panes[msg.idx]
		p.loading = false
		if msg.err != nil {
			p.err = msg.err.Error()
		} else {
			p.lines = msg.lines
		}
		return m, nil

	case tileAttachmentsMsg:
		if msg.tileID != m.desc.TileID || msg.id != m.detailID {
			return m, nil
		}
		m.attachments = msg.items
		if m.attCursor >= len(msg.items) {
			m.attCursor = 0
		}
		return m, nil

	case searchTickMsg:
		if msg.tileID != m.desc.TileID || msg.seq != m.searchSeq {
			return m, nil
		}
		m.reproject()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m TileModel) handleKeys(msg tea.KeyMsg) (TileModel, tea.Cmd) {
	if m.confirm != confirmNone {
		return m.handleConfirmKeys(msg)
	}
	if m.colEdit != nil {
		return m.handleColEditKeys(msg)
	}
	switch m.nav.ViewMode {
	case nav.ModeRead:
		return m.handleReadKeys(msg)
	case nav.ModeEdit, nav.ModeCreate:
		return m.handleFormKeys(msg)
	case nav.ModeRelations:
		return m.handleRelationsKeys(msg)
	case nav.ModeAttachments:
		return m.handleAttachmentsKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m TileModel) handleListKeys(msg tea.KeyMsg) (TileModel, tea.Cmd) {
	if m.search.Focused() {
		if isBack(msg) || isEnter(msg) {
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.searchSeq++
			return m, tea.Batch(cmd, m.searchTickCmd())
		}
		return m, cmd
	}

	switch {
	case isUp(msg):
		m.list.Up()
	case isDown(msg):
		m.list.Down()
	case isKey(msg, "pgup"):
		m.list.PageUp()
	case isKey(msg, "pgdown"):
		m.list.PageDown()
	case isKey(msg, "home"):
		m.list.Home()
	case isKey(msg, "end"):
		m.list.End()
	case isKey(msg, "/"):
		m.search.Focus()
		return m, textinput.Blink
	case isEnter(msg):
		if row, ok := m.selectedRow(); ok {
			return m.openEntity(row.ID, nav.ModeRead)
		}
	case isKey(msg, "a"):
		m.nav = m.nav.Create(m.filter().TypeCode)
		m = m.openCreate(m.nav.TypeFilter, "")
		return m, nil
	case isKey(msg, "e"):
		if row, ok := m.selectedRow(); ok {
			return m.openEntity(row.ID, nav.ModeEdit)
		}
	case isKey(msg, "r"):
		if row, ok := m.selectedRow(); ok && len(m.desc.Relations) > 0 {
			return m.openRelations(row.ID)
		}
	case isKey(msg, "p"):
		if row, ok := m.selectedRow(); ok && m.desc.AttachmentType != "" {
			return m.openAttachments(row.ID)
		}
	case isKey(msg, "c"):
		m.colEdit = newColEditState(m.desc, m.colPrefs)
		return m, nil
	case isKey(msg, "f"):
		m.includeArchived = !m.includeArchived
		m.loading = true
		return m, m.reloadCmd()
	case isKey(msg, "t"):
		if len(m.desc.TypeOptions) > 0 {
			m.typeIdx = (m.typeIdx + 1) % (len(m.desc.TypeOptions) + 1)
			m.nav.TypeFilter = m.filter().TypeCode
			m.loading = true
			return m, m.reloadCmd()
		}
	case isKey(msg, "x"):
		if _, ok := m.selectedRow(); ok {
			m.confirm = confirmArchive
		}
	case isKey(msg, "d"):
		if _, ok := m.selectedRow(); ok {
			m.confirm = confirmDelete
		}
	}
	return m, nil
}

func (m TileModel) handleReadKeys(msg tea.KeyMsg) (TileModel, tea.Cmd) {
	switch {
	case isBack(msg):
		return m.closeDetail()
	case isKey(msg, "e"):
		m.nav = m.nav.Open(m.nav.EntityID, nav.ModeEdit)
		m.fieldFocus = m.firstEditableField()
		return m, nil
	case isKey(msg, "r"):
		if len(m.desc.Relations) > 0 {
			return m.openRelations(m.nav.EntityID)
		}
	case isKey(msg, "p"):
		if m.desc.AttachmentType != "" {
			return m.openAttachments(m.nav.EntityID)
		}
	}
	return m, nil
}

func (m TileModel) handleFormKeys(msg tea.KeyMsg) (TileModel, tea.Cmd) {
	if m.session == nil {
		if isBack(msg) {
			return m.closeDetail()
		}
		return m, nil
	}
	if m.saving {
		return m, nil
	}
	switch {
	case isBack(msg):
		if m.session.Dirty() {
			m.confirm = confirmClose
			return m, nil
		}
		return m.closeDetail()
	case isSave(msg):
		m.saving = true
		m.invalidText = ""
		return m, m.submitCmd()
	case isUp(msg), isKey(msg, "shift+tab"):
		m.fieldFocus = m.prevEditableField()
		return m, nil
	case isDown(msg), isKey(msg, "tab"):
		m.fieldFocus = m.nextEditableField()
		return m, nil
	}

	field := m.desc.Fields[m.fieldFocus]
	if len(field.Options) > 0 {
		switch {
		case isKey(msg, "left"):
			m.cycleOption(field, -1)
			return m, nil
		case isKey(msg, "right"), isEnter(msg), isSpace(msg):
			m.cycleOption(field, 1)
			return m, nil
		}
		return m, nil
	}

	switch {
	case isKey(msg, "backspace"):
		m.session.Update(func(d *map[string]string) {
			v := (*d)[field.Key]
			if v != "" {
				(*d)[field.Key] = v[:len(v)-trailingRuneLen(v)]
			}
		})
	default:
		if msg.Type == tea.KeyRunes {
			text := string(msg.Runes)
			m.session.Update(func(d *map[string]string) {
				(*d)[field.Key] += text
			})
		}
	}
	return m, nil
}

func (m TileModel) handleRelationsKeys(msg tea.KeyMsg) (TileModel, tea.Cmd) {
	if isBack(msg) {
		m.nav = m.nav.Open(m.detailID, nav.ModeRead)
		if m.session == nil {
			return m, m.loadDraftCmd(m.detailID, nav.ModeRead)
		}
		return m, nil
	}
	return m, nil
}

func (m TileModel) handleAttachmentsKeys(msg tea.KeyMsg) (TileModel, tea.Cmd) {
	if m.attMeta.Active {
		if closed := m.attMeta.HandleKey(msg); closed {
			buffer := m.attMeta.Buffer
			m.attMeta.Reset()
			meta, err := parseMetadataInput(buffer)
			if err != nil {
				m.errText = err.Error()
				return m, nil
			}
			if att, ok := m.selectedAttachment(); ok {
				return m, m.updateAttachmentMetadataCmd(att.ID, meta)
			}
		}
		return m, nil
	}
	if m.attPrompt != "" {
		switch {
		case isBack(msg):
			m.attPrompt = ""
			m.attBuf = ""
		case isEnter(msg):
			path := m.attBuf
			versionOf := ""
			if m.attVersion {
				if att, ok := m.selectedAttachment(); ok {
					versionOf = att.ID
				}
			}
			m.attPrompt = ""
			m.attBuf = ""
			if path != "" {
				return m, m.uploadAttachmentCmd(path, versionOf)
			}
		case isKey(msg, "backspace"):
			if m.attBuf != "" {
				m.attBuf = m.attBuf[:len(m.attBuf)-trailingRuneLen(m.attBuf)]
			}
		default:
			if msg.Type == tea.KeyRunes {
				m.attBuf += string(msg.Runes)
			}
		}
		return m, nil
	}

	switch {
	case isBack(msg):
		m.nav = m.nav.Close()
		m.attachments = nil
		return m, nil
	case isUp(msg):
		if m.attCursor > 0 {
			m.attCursor--
		}
	case isDown(msg):
		if m.attCursor < len(m.attachments)-1 {
			m.attCursor++
		}
	case isKey(msg, "u"):
		m.attPrompt = "Cesta k souboru (nová příloha)"
		m.attVersion = false
	case isKey(msg, "n"):
		if _, ok := m.selectedAttachment(); ok {
			m.attPrompt = "Cesta k souboru (nová verze)"
			m.attVersion = true
		}
	case isKey(msg, "m"):
		if att, ok := m.selectedAttachment(); ok {
			m.attMeta.Open(map[string]any(att.Metadata))
		}
	case isKey(msg, "d"):
		if _, ok := m.selectedAttachment(); ok {
			m.confirm = confirmAttachmentDelete
		}
	}
	return m, nil
}

func (m TileModel) handleConfirmKeys(msg tea.KeyMsg) (TileModel, tea.Cmd) {
	kind := m.confirm
	switch {
	case isKey(msg, "y"):
		m.confirm = confirmNone
		switch kind {
		case confirmClose:
			return m.closeDetail()
		case confirmArchive:
			if row, ok := m.selectedRow(); ok {
				return m, m.archiveCmd(row.ID, !row.Archived)
			}
		case confirmDelete:
			if row, ok := m.selectedRow(); ok {
				return m, m.deleteCmd(row.ID)
			}
		case confirmAttachmentDelete:
			if att, ok := m.selectedAttachment(); ok {
				return m, m.deleteAttachmentCmd(att.ID)
			}
		}
	case isKey(msg, "n"), isBack(msg):
		m.confirm = confirmNone
	}
	return m, nil
}

// --- Transitions ---

func (m TileModel) openEntity(id string, mode nav.ViewMode) (TileModel, tea.Cmd) {
	m.nav = m.nav.Open(id, mode)
	m.detailID = id
	m.session = nil
	m.invalidText = ""
	return m, m.loadDraftCmd(id, mode)
}

func (m TileModel) openCreate(typeCode, fromUserID string) TileModel {
	draft := map[string]string{}
	if typeCode != "" && m.desc.DiscriminatorKey != "" {
		draft[m.desc.DiscriminatorKey] = typeCode
	}
	if fromUserID != "" && m.desc.LinkUserKey != "" {
		draft[m.desc.LinkUserKey] = fromUserID
	}
	m.detailID = ""
	m.openedDraft = cloneDraft(draft)
	m.session = form.Open(draft, m.desc.Validate, m.saver())
	m.fieldFocus = m.firstEditableField()
	m.invalidText = ""
	return m
}

func (m TileModel) openRelations(id string) (TileModel, tea.Cmd) {
	m.nav = m.nav.Open(id, nav.ModeRelations)
	m.detailID = id
	var cmds []tea.Cmd
	m, cmds = m.startRelations(id, nil)
	return m, tea.Batch(cmds...)
}

func (m TileModel) startRelations(id string, cmds []tea.Cmd) (TileModel, []tea.Cmd) {
	m.panes = make([]paneState, len(m.desc.Relations))
	for i := range m.panes {
		m.panes[i].loading = true
		cmds = append(cmds, m.loadPaneCmd(id, i))
	}
	return m, cmds
}

func (m TileModel) openAttachments(id string) (TileModel, tea.Cmd) {
	m.nav = m.nav.Open(id, nav.ModeAttachments)
	m.detailID = id
	m.attCursor = 0
	return m, m.loadAttachmentsCmd(id)
}

func (m TileModel) closeDetail() (TileModel, tea.Cmd) {
	m.nav = m.nav.Close()
	m.nav.TypeFilter = m.filter().TypeCode
	m.session = nil
	m.openedDraft = nil
	m.invalidText = ""
	m.panes = nil
	m.attachments = nil
	return m, nil
}

// --- Helpers ---

func (m TileModel) saver() form.Saver[map[string]string] {
	client := m.client
	save := m.desc.Save
	return func(_ context.Context, draft map[string]string) (map[string]string, error) {
		return save(client, draft)
	}
}

func (m *TileModel) reproject() {
	m.cols = listview.ApplyColumnPrefs(m.desc.Columns, m.colPrefs, m.desc.FixedFirst, m.desc.Required)
	def := listview.DefaultSort[Row]{
		OrderIndex: func(r Row) (int, bool) {
			if r.OrderIndex == nil {
				return 0, false
			}
			return *r.OrderIndex, true
		},
		Text: func(r Row) string { return rowValue(r, m.desc.FixedFirst).Text },
	}
	m.visible = listview.Project(m.rows, m.search.Value(), m.colPrefs.Sort, rowValue, rowSearch, def)
	placeholders := make([]string, len(m.visible))
	m.list.SetItemsKeepCursor(placeholders)
}

func (m TileModel) selectedRow() (Row, bool) {
	idx := m.list.Selected()
	if idx < 0 || idx >= len(m.visible) {
		return Row{}, false
	}
	return m.visible[idx], true
}

func (m TileModel) selectedAttachment() (api.Attachment, bool) {
	if m.attCursor < 0 || m.attCursor >= len(m.attachments) {
		return api.Attachment{}, false
	}
	return m.attachments[m.attCursor], true
}

func (m TileModel) firstEditableField() int {
	for i, f := range m.desc.Fields {
		if !f.ReadOnly {
			return i
		}
	}
	return 0
}

func (m TileModel) nextEditableField() int {
	n := len(m.desc.Fields)
	for step := 1; step <= n; step++ {
		i := (m.fieldFocus + step) % n
		if !m.desc.Fields[i].ReadOnly {
			return i
		}
	}
	return m.fieldFocus
}

func (m TileModel) prevEditableField() int {
	n := len(m.desc.Fields)
	for step := 1; step <= n; step++ {
		i := (m.fieldFocus - step + n) % n
		if !m.desc.Fields[i].ReadOnly {
			return i
		}
	}
	return m.fieldFocus
}

func (m *TileModel) cycleOption(field Field, dir int) {
	m.session.Update(func(d *map[string]string) {
		cur := (*d)[field.Key]
		idx := 0
		for i, opt := range field.Options {
			if opt == cur {
				idx = i + dir
				break
			}
		}
		n := len(field.Options)
		(*d)[field.Key] = field.Options[((idx%n)+n)%n]
	})
}

func (m *TileModel) applyColPrefs(p listview.ColumnPrefs) {
	m.colPrefs = p
	m.reproject()
	if m.store != nil {
		m.store.Save(m.desc.ViewKey(), p, m.desc.DefaultPrefs())
	}
}

func cloneDraft(d map[string]string) map[string]string {
	out := make(map[string]string, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func trailingRuneLen(s string) int {
	if s == "" {
		return 0
	}
	runes := []rune(s)
	return len(string(runes[len(runes)-1]))
}

// SetSize propagates the window dimensions.
func (m TileModel) SetSize(width, height int) TileModel {
	m.width = width
	m.height = height
	page := height - 10
	if page < 5 {
		page = 5
	}
	m.list.PageSize = page
	return m
}

// TakeToast returns the pending one-shot notice and clears it.
func (m *TileModel) TakeToast() string {
	t := m.toast
	m.toast = ""
	return t
}

// --- View ---

func (m TileModel) View() string {
	if m.attMeta.Active {
		return m.attMeta.Render(m.width)
	}
	if m.confirm != confirmNone {
		return components.Indent(m.renderConfirm(), 1)
	}
	if m.colEdit != nil {
		return components.Indent(m.renderColEdit(), 1)
	}
	switch m.nav.ViewMode {
	case nav.ModeRead:
		return components.Indent(m.renderRead(), 1)
	case nav.ModeEdit, nav.ModeCreate:
		return components.Indent(m.renderForm(), 1)
	case nav.ModeRelations:
		return components.Indent(m.renderRelations(), 1)
	case nav.ModeAttachments:
		return components.Indent(m.renderAttachments(), 1)
	default:
		return components.Indent(m.renderList(), 1)
	}
}

func (m TileModel) renderList() string {
	if m.loading && len(m.rows) == 0 {
		return "  " + MutedStyle.Render("Načítám...")
	}

	var b strings.Builder
	if m.errText != "" {
		b.WriteString(ErrorStyle.Render("Chyba: " + m.errText))
		b.WriteString("\n")
	}

	countLine := fmt.Sprintf("%d záznamů%s", len(m.visible), m.filterSummary())
	if m.search.Focused() || m.search.Value() != "" {
		countLine += " · " + m.search.View()
	}
	b.WriteString(MutedStyle.Render(countLine))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(MutedStyle.Render("Žádné záznamy."))
		return components.TitledBox(m.desc.Title, b.String(), m.width)
	}

	cols := make([]components.TableColumn, len(m.cols))
	for i, c := range m.cols {
		tc := components.TableColumn{Header: c.Label, Width: c.Width}
		if c.Align == listview.AlignRight {
			tc.Align = lipgloss.Right
		}
		if m.colPrefs.Sort != nil && m.colPrefs.Sort.Key == c.Key {
			if m.colPrefs.Sort.Dir == listview.SortDesc {
				tc.SortMark = "▼"
			} else {
				tc.SortMark = "▲"
			}
		}
		cols[i] = tc
	}

	start := m.list.Offset
	end := start + m.list.PageSize
	if end > len(m.visible) {
		end = len(m.visible)
	}
	grid := make([][]string, 0, end-start)
	for _, r := range m.visible[start:end] {
		cells := make([]string, len(m.cols))
		for i, c := range m.cols {
			cells[i] = rowValue(r, c.Key).Text
		}
		if r.Archived && len(cells) > 0 {
			cells[0] = strings.TrimSpace(cells[0] + " " + archivedMark(true))
		}
		grid = append(grid, cells)
	}
	b.WriteString(components.TableGridWithActiveRow(cols, grid, components.BoxContentWidth(m.width), m.list.Selected()-start))
	return components.TitledBox(m.desc.Title, b.String(), m.width)
}

func (m TileModel) renderRead() string {
	if m.session == nil {
		return "  " + MutedStyle.Render("Načítám...")
	}
	draft := m.session.Value()
	rows := make([]components.TableRow, 0, len(m.desc.Fields))
	for _, f := range m.desc.Fields {
		rows = append(rows, components.TableRow{Label: f.Label, Value: draft[f.Key]})
	}
	return components.Table(m.desc.Title, rows, m.width)
}

func (m TileModel) renderForm() string {
	if m.session == nil {
		return "  " + MutedStyle.Render("Načítám...")
	}
	if m.saving {
		return "  " + MutedStyle.Render("Ukládám...")
	}
	draft := m.session.Value()
	var b strings.Builder
	if m.invalidText != "" {
		b.WriteString(ErrorStyle.Render(m.invalidText))
		b.WriteString("\n\n")
	}
	for i, f := range m.desc.Fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		value := draft[f.Key]
		if len(f.Options) > 0 {
			value = "‹ " + value + " ›"
		}
		line := components.InfoRow(label, value)
		switch {
		case i == m.fieldFocus:
			b.WriteString(SelectedStyle.Render("› " + line))
		case f.ReadOnly:
			b.WriteString(MutedStyle.Render("  " + line))
		default:
			b.WriteString(NormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	title := m.desc.Title + " · úprava"
	if m.nav.ViewMode == nav.ModeCreate {
		title = m.desc.Title + " · nový záznam"
	}
	return components.TitledBox(title, strings.TrimRight(b.String(), "\n"), m.width)
}

func (m TileModel) renderRelations() string {
	var b strings.Builder
	for i, pane := range m.desc.Relations {
		if i > 0 {
			b.WriteString("\n")
		}
		var content string
		switch {
		case i >= len(m.panes) || m.panes[i].loading:
			content = MutedStyle.Render("Načítám...")
		case m.panes[i].err != "":
			content = ErrorStyle.Render("Chyba: " + m.panes[i].err)
		case len(m.panes[i].lines) == 0:
			content = MutedStyle.Render("Žádné záznamy.")
		default:
			content = strings.Join(m.panes[i].lines, "\n")
		}
		b.WriteString(components.TitledBox(pane.Title, content, m.width))
	}
	return b.String()
}

func (m TileModel) renderAttachments() string {
	if m.attPrompt != "" {
		return components.InputDialog(m.attPrompt, m.attBuf)
	}
	var b strings.Builder
	if len(m.attachments) == 0 {
		b.WriteString(MutedStyle.Render("Žádné přílohy."))
	}
	for i, att := range m.attachments {
		line := fmt.Sprintf("%s (%s, v%d)", att.Name, att.FileName, att.Version)
		if i == m.attCursor {
			b.WriteString(SelectedStyle.Render("› " + line))
		} else {
			b.WriteString(NormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if att, ok := m.selectedAttachment(); ok && len(att.Metadata) > 0 {
		b.WriteString("\n")
		b.WriteString(components.MetadataTable(map[string]any(att.Metadata), m.width))
	}
	return components.TitledBox("Přílohy", strings.TrimRight(b.String(), "\n"), m.width)
}

func (m TileModel) renderConfirm() string {
	switch m.confirm {
	case confirmClose:
		return components.UnsavedChangesDialog(m.desc.Title, m.formChanges(), m.width)
	case confirmArchive:
		row, _ := m.selectedRow()
		msg := "Archivovat vybraný záznam?"
		if row.Archived {
			msg = "Obnovit vybraný záznam z archivu?"
		}
		return components.ConfirmDialog("Archivace", msg)
	case confirmDelete:
		return components.ConfirmDialog("Smazání", "Opravdu smazat vybraný záznam? Akce je nevratná.")
	case confirmAttachmentDelete:
		return components.ConfirmDialog("Smazání přílohy", "Opravdu smazat vybranou přílohu?")
	}
	return ""
}

func (m TileModel) formChanges() []components.DiffRow {
	if m.session == nil {
		return nil
	}
	cur := m.session.Value()
	var out []components.DiffRow
	for _, f := range m.desc.Fields {
		before := m.openedDraft[f.Key]
		after := cur[f.Key]
		if before != after {
			out = append(out, components.DiffRow{Label: f.Label, From: before, To: after})
		}
	}
	return out
}

func (m TileModel) renderColEdit() string {
	s := m.colEdit
	var b strings.Builder
	b.WriteString(MutedStyle.Render("mezera: skrýt/zobrazit · J/K: pořadí · +/-: šířka · s: řazení · R: výchozí · enter: uložit"))
	b.WriteString("\n\n")
	for i, key := range s.keys {
		col, ok := s.column(key)
		if !ok {
			continue
		}
		width := col.Width
		if w, ok := s.prefs.Widths[key]; ok {
			width = w
		}
		mark := "[x]"
		if s.prefs.Hidden[key] && !s.isRequired(key) {
			mark = "[ ]"
		}
		line := fmt.Sprintf("%s %s (%d)", mark, col.Label, width)
		if s.prefs.Sort != nil && s.prefs.Sort.Key == key {
			if s.prefs.Sort.Dir == listview.SortDesc {
				line += " ▼"
			} else {
				line += " ▲"
			}
		}
		if s.isRequired(key) {
			line += MutedStyle.Render(" (povinný)")
		}
		if i == s.cursor {
			b.WriteString(SelectedStyle.Render("› " + line))
		} else {
			b.WriteString(NormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return components.TitledBox("Nastavení sloupců", strings.TrimRight(b.String(), "\n"), m.width)
}

func (m TileModel) filterSummary() string {
	parts := ""
	if f := m.filter(); f.TypeCode != "" {
		parts += fmt.Sprintf(" typ=%s", f.TypeCode)
	}
	if m.includeArchived {
		parts += " vč. archivu"
	}
	return parts
}
