// Command autoprestige is the terminal client of the AutoPrestige backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autoprestige/autoprestige/internal/api"
	"github.com/autoprestige/autoprestige/internal/config"
	"github.com/autoprestige/autoprestige/internal/logging"
	"github.com/autoprestige/autoprestige/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	initConfig := flag.Bool("init-config", false, "write the effective configuration to the config file and exit")
	baseURL := flag.String("api", "", "backend base URL (overrides api.base_url)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *initConfig {
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Println(config.Path())
		return nil
	}

	logger, closer, err := logging.Open(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Path: cfg.Log.Path})
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	defer closer.Close()
	logging.SetGlobalLogger(logger)

	client := api.New(cfg.API.BaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		api.WithLogger(logger.With().Str("component", "api").Logger()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := tui.New(ctx, tui.Deps{
		Backend:   client,
		UXDelay:   cfg.API.UXDelay,
		ExportDir: cfg.Export.Dir,
		Log:       logger.With().Str("component", "tui").Logger(),
		SavePrefs: func(ac tui.AppContext) error {
			cfg.UI.Language, cfg.UI.Currency, cfg.UI.Theme = ac.Lang, ac.Currency, ac.Theme
			return config.Save(cfg)
		},
	}, tui.AppContext{Lang: cfg.UI.Language, Currency: cfg.UI.Currency, Theme: cfg.UI.Theme})

	logger.Info().Str("backend", client.BaseURL()).Msg("starting")
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		logger.Error().Err(err).Msg("program exited")
		return err
	}
	return nil
}
