package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spravado/domovnik/internal/nav"
)

// PrintLinkHelp writes the canonical deep-link format with examples.
// The examples are built through the navigation encoder, so they can
// never drift from what --link actually accepts.
func PrintLinkHelp(out io.Writer) {
	examples := []struct {
		desc  string
		state nav.State
	}{
		{"seznam jednotek", nav.State{TileID: "040.units", ViewMode: nav.ModeList}},
		{"detail jednotky", nav.State{TileID: "040.units", EntityID: "5", ViewMode: nav.ModeRead}},
		{"úprava smlouvy", nav.State{TileID: "060.contracts", EntityID: "12", ViewMode: nav.ModeEdit}},
		{"nový nájemník (firma)", nav.State{TileID: "050.tenants", EntityID: nav.NewEntityID, ViewMode: nav.ModeCreate, TypeFilter: "firma"}},
		{"vazby nemovitosti", nav.State{TileID: "020.properties", EntityID: "3", ViewMode: nav.ModeRelations}},
		{"přílohy jednotky", nav.State{TileID: "040.units", EntityID: "5", ViewMode: nav.ModeAttachments}},
	}

	fmt.Fprintln(out, "Odkaz je řetězec parametrů pro přepínač --link:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s  sekce (např. 040.units)\n", nav.ParamTile)
	fmt.Fprintf(out, "  %s  id záznamu, nebo '%s' pro nový\n", nav.ParamID, nav.NewEntityID)
	fmt.Fprintf(out, "  %s  režim: read | edit | relations\n", nav.ParamViewMode)
	fmt.Fprintf(out, "  %s  %s=1 otevře správce příloh\n", nav.ParamAttachments, nav.ParamAttachments)
	fmt.Fprintf(out, "  %s  předvyplněný typ při zakládání\n", nav.ParamType)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Příklady:")
	for _, e := range examples {
		fmt.Fprintf(out, "  domovnik --link %q  # %s\n", e.state.Encode(), e.desc)
	}
}

// LinkCmd returns the `domovnik link` command.
func LinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Popis formátu odkazů pro --link",
		Run: func(_ *cobra.Command, _ []string) {
			PrintLinkHelp(os.Stdout)
		},
	}
}
