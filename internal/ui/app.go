package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spravado/domovnik/internal/api"
	"github.com/spravado/domovnik/internal/config"
	"github.com/spravado/domovnik/internal/nav"
	"github.com/spravado/domovnik/internal/prefs"
	"github.com/spravado/domovnik/internal/ui/components"
)

type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

// App is the root TUI model. It owns one TileModel per entity family
// and routes input to the active one.
type App struct {
	client *api.Client
	config *config.Config
	store  *prefs.Store

	tiles  []TileModel
	active int

	width  int
	height int

	helpOpen    bool
	quitConfirm bool
	toast       *appToast

	startCmd tea.Cmd
}

// NewApp creates the root application model. The descriptor order
// determines the tab order and the 1..9 shortcuts.
func NewApp(client *api.Client, cfg *config.Config, store *prefs.Store, types *api.SubjectTypeCache) App {
	descs := Descriptors(types)
	tiles := make([]TileModel, len(descs))
	for i, d := range descs {
		tiles[i] = NewTileModel(client, store, d)
	}
	return App{
		client: client,
		config: cfg,
		store:  store,
		tiles:  tiles,
	}
}

// OpenLink applies a deep link before the program starts. Unknown tile
// ids and malformed links leave the app on the first tile.
func (a App) OpenLink(link string) (App, error) {
	state, err := nav.ParseLink(link)
	if err != nil {
		return a, err
	}
	for i := range a.tiles {
		if a.tiles[i].desc.TileID == state.TileID {
			a.active = i
			a.tiles[i], a.startCmd = a.tiles[i].SetNav(state)
			return a, nil
		}
	}
	return a, fmt.Errorf("unknown tile %q", state.TileID)
}

func (a App) Init() tea.Cmd {
	if a.startCmd != nil {
		return a.startCmd
	}
	return a.tiles[a.active].Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for i := range a.tiles {
			a.tiles[i] = a.tiles[i].SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				if a.store != nil {
					a.store.Flush()
				}
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}

		captures := a.tiles[a.active].CapturesInput()
		if !captures {
			if isKey(msg, "?") {
				a.helpOpen = true
				return a, nil
			}
			if isQuit(msg) {
				if a.hasUnsaved() {
					a.quitConfirm = true
					return a, nil
				}
				if a.store != nil {
					a.store.Flush()
				}
				return a, tea.Quit
			}
			for n := 1; n <= len(a.tiles); n++ {
				if isTile(msg, n) {
					return a.switchTile(n - 1)
				}
			}
		}
	}

	var cmd tea.Cmd
	a.tiles[a.active], cmd = a.tiles[a.active].Update(msg)
	if t := a.tiles[a.active].TakeToast(); t != "" {
		toastCmd := a.setToast("info", t)
		if cmd != nil {
			return a, tea.Batch(cmd, toastCmd)
		}
		return a, toastCmd
	}
	return a, cmd
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)

	var content string
	switch {
	case a.quitConfirm:
		content = components.Indent(components.ConfirmDialog("Ukončení", "Máte neuložené změny. Opravdu skončit?"), 1)
	case a.helpOpen:
		content = a.renderHelp()
	default:
		content = a.tiles[a.active].View()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n\n%s%s", banner, tabs, content, hints, feedback)
}

func (a App) switchTile(idx int) (App, tea.Cmd) {
	if idx == a.active {
		return a, nil
	}
	if a.tiles[a.active].Dirty() {
		a.toast = &appToast{level: "warning", text: "Nejdřív uložte nebo zavřete rozpracovaný formulář."}
		return a, tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
			return clearToastMsg{}
		})
	}
	a.active = idx
	return a, a.tiles[idx].Init()
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(a.tiles))
	for i, t := range a.tiles {
		label := fmt.Sprintf("%d %s", i+1, t.desc.Title)
		if i == a.active {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Ano"),
			components.Hint("n", "Ne"),
		}
	}
	if a.helpOpen {
		return []string{
			components.Hint("esc", "Zpět"),
		}
	}
	base := []string{}
	if !a.tiles[a.active].CapturesInput() {
		base = append(base,
			components.Hint("1-7", "Sekce"),
			components.Hint("?", "Nápověda"),
			components.Hint("q", "Konec"),
		)
	}
	return append(base, a.tiles[a.active].Hints()...)
}

func (a App) renderHelp() string {
	hints := a.tiles[a.active].Hints()
	lines := make([]string, 0, len(hints)+2)
	lines = append(lines, MutedStyle.Render("esc zavře nápovědu"))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("Nápověda", body, a.width), 1)
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	switch a.toast.level {
	case "error":
		return components.ErrorBox("Chyba", a.toast.text, a.width)
	case "warning":
		return components.TitledBox("Upozornění", a.toast.text, a.width)
	}
	return components.TitledBox("Oznámení", a.toast.text, a.width)
}

func (a App) hasUnsaved() bool {
	for i := range a.tiles {
		if a.tiles[i].Dirty() {
			return true
		}
	}
	return false
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
