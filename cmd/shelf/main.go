package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/adapter"
	"github.com/mmcdole/shelf/internal/api"
	"github.com/mmcdole/shelf/internal/catalog"
	"github.com/mmcdole/shelf/internal/tui"
	"github.com/mmcdole/shelf/internal/tui/components"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion, initConfig bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&initConfig, "init-config", false, "write the default config file and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("shelf %s\n", Version)
		return
	}

	if initConfig {
		path, err := adapter.SaveConfig(adapter.DefaultConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Wrote %s\n", path)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("shelf needs an interactive terminal")
	}

	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting shelf", "version", Version, "api", cfg.API.BaseURL)

	client := api.NewClient(cfg.API.BaseURL, nil, logger)
	svc := catalog.NewService(client, logger)

	// The first load runs from the model's Init command
	model := tui.NewModel(svc, components.NewBody(),
		tui.WithTimeout(cfg.API.Timeout),
		tui.WithLogger(logger),
	)
	defer model.Teardown()

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
