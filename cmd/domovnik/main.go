package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/spravado/domovnik/internal/api"
	"github.com/spravado/domovnik/internal/cmd"
	"github.com/spravado/domovnik/internal/config"
	"github.com/spravado/domovnik/internal/prefs"
	"github.com/spravado/domovnik/internal/ui"
)

func main() {
	var link string

	root := &cobra.Command{
		Use:   "domovnik",
		Short: "Domovník - kancelář správce nemovitostí",
		Long:  "Domovník: evidence pronajímatelů, nemovitostí, jednotek, nájemníků a smluv z terminálu.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(link)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().StringVar(&link, "link", "", "otevřít přímo daný pohled, např. \"t=040.units&id=5&vm=edit\"")

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.LinkCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(link string) error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("nejste přihlášeni, spusťte nejdřív 'domovnik login'")
		}
		return err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	client := api.NewClient(baseURL, cfg.APIKey)

	cachePath := cfg.PrefsCachePath
	if cachePath == "" {
		cachePath = config.DefaultPrefsCachePath()
	}
	cache, err := prefs.OpenCache(cachePath)
	if err != nil {
		return fmt.Errorf("open prefs cache: %w", err)
	}
	defer cache.Close()
	store := prefs.NewStore(client, cache)
	defer store.Flush()

	types := api.NewSubjectTypeCache(client)

	app := ui.NewApp(client, cfg, store, types)
	if link != "" {
		if app, err = app.OpenLink(link); err != nil {
			return fmt.Errorf("invalid link: %w", err)
		}
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
