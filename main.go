package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"wanderdesk/cmd"
	"wanderdesk/internal/api"
	"wanderdesk/internal/fixture"
	"wanderdesk/internal/logging"
	"wanderdesk/internal/ui"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if config.ShowVersion {
		fmt.Println("wanderdesk", config.Version)
		return
	}

	if config.FixtureAddr != "" {
		if err := runFixture(config); err != nil {
			fmt.Fprintf(os.Stderr, "Fixture backend failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logFile, err := logging.OpenFile(config.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := logging.New(logging.Config{Level: config.LogLevel, Format: config.LogFormat, Output: logFile})
	logger.Info().Str("version", config.Version).Str("api", config.APIBaseURL).Msg("starting dashboard")

	client := api.NewClient(config.APIBaseURL, config.Timeout, logger)

	p := tea.NewProgram(ui.New(client, config.PageSize, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("dashboard exited")
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

func runFixture(config *cmd.Config) error {
	logger := logging.New(logging.Config{Level: config.LogLevel, Format: config.LogFormat, Output: os.Stdout})

	database, err := fixture.Open(config.FixtureDB)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fixture.New(database, logger).Run(ctx, config.FixtureAddr)
}
