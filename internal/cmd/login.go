package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spravado/domovnik/internal/api"
	"github.com/spravado/domovnik/internal/config"
)

// RunInteractiveLogin prompts for username, calls the login API, and
// persists the config file.
func RunInteractiveLogin(in io.Reader, out io.Writer, baseURL string) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "uživatel: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	if username == "" {
		return fmt.Errorf("uživatelské jméno je povinné")
	}

	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	client := api.NewClient(baseURL, "")
	resp, err := client.Login(username)
	if err != nil {
		return fmt.Errorf("přihlášení selhalo: %w", err)
	}

	cachePath := config.DefaultPrefsCachePath()
	cfg := &config.Config{
		APIKey:         resp.APIKey,
		BaseURL:        baseURL,
		Username:       resp.Username,
		UserID:         resp.UserID,
		PrefsCachePath: cachePath,
		Theme:          "dark",
		VimKeys:        true,
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "přihlášen jako %s\n", resp.Username)
	fmt.Fprintf(out, "konfigurace uložena do %s\n", config.Path())
	return nil
}

// LoginCmd returns the `domovnik login` command.
func LoginCmd() *cobra.Command {
	var server string
	c := &cobra.Command{
		Use:   "login",
		Short: "Přihlášení k serveru",
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunInteractiveLogin(os.Stdin, os.Stdout, server)
		},
	}
	c.Flags().StringVar(&server, "server", "", "adresa serveru (výchozí "+api.DefaultBaseURL+")")
	return c
}
