package ui

import (
	"github.com/spravado/domovnik/internal/nav"
	"github.com/spravado/domovnik/internal/ui/components"
)

// Hints returns the status bar hints for the tile's current state.
// Only actions that would actually do something are listed.
func (m TileModel) Hints() []string {
	if m.confirm != confirmNone {
		return []string{
			components.Hint("y", "Ano"),
			components.Hint("n", "Ne"),
		}
	}
	if m.colEdit != nil {
		return []string{
			components.Hint("mezera", "Skrýt"),
			components.Hint("J/K", "Pořadí"),
			components.Hint("+/-", "Šířka"),
			components.Hint("s", "Řazení"),
			components.Hint("enter", "Uložit"),
			components.Hint("esc", "Zpět"),
		}
	}
	switch m.nav.ViewMode {
	case nav.ModeRead:
		hints := []string{components.Hint("e", "Upravit")}
		if len(m.desc.Relations) > 0 {
			hints = append(hints, components.Hint("r", "Vazby"))
		}
		if m.desc.AttachmentType != "" {
			hints = append(hints, components.Hint("p", "Přílohy"))
		}
		return append(hints, components.Hint("esc", "Zavřít"))
	case nav.ModeEdit, nav.ModeCreate:
		hints := []string{
			components.Hint("↑/↓", "Pole"),
			components.Hint("ctrl+s", "Uložit"),
		}
		if m.Dirty() {
			hints = append(hints, components.Hint("esc", "Zahodit"))
		} else {
			hints = append(hints, components.Hint("esc", "Zavřít"))
		}
		return hints
	case nav.ModeRelations:
		return []string{components.Hint("esc", "Zpět na detail")}
	case nav.ModeAttachments:
		if m.attMeta.Active {
			return []string{components.Hint("esc", "Uložit a zavřít")}
		}
		hints := []string{components.Hint("u", "Nahrát")}
		if len(m.attachments) > 0 {
			hints = append(hints,
				components.Hint("n", "Nová verze"),
				components.Hint("m", "Metadata"),
				components.Hint("d", "Smazat"),
			)
		}
		return append(hints, components.Hint("esc", "Zavřít"))
	default:
		hints := []string{
			components.Hint("↑/↓", "Pohyb"),
			components.Hint("/", "Hledat"),
			components.Hint("enter", "Detail"),
			components.Hint("a", "Nový"),
		}
		if _, ok := m.selectedRow(); ok {
			hints = append(hints, components.Hint("e", "Upravit"))
			if len(m.desc.Relations) > 0 {
				hints = append(hints, components.Hint("r", "Vazby"))
			}
			if m.desc.AttachmentType != "" {
				hints = append(hints, components.Hint("p", "Přílohy"))
			}
			hints = append(hints, components.Hint("x", "Archiv"))
		}
		hints = append(hints, components.Hint("c", "Sloupce"), components.Hint("f", "Vč. archivu"))
		if len(m.desc.TypeOptions) > 0 {
			hints = append(hints, components.Hint("t", "Typ"))
		}
		return hints
	}
}
