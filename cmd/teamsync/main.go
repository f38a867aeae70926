package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"teamsync/internal/auth"
	"teamsync/internal/config"
	"teamsync/internal/engine"
	"teamsync/internal/logging"
	"teamsync/internal/store"
	"teamsync/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("teamsync %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	// A .env file is optional
	godotenv.Load()
	cfg := config.Load()

	log, closeLog, err := logging.New(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Initialize the in-memory store with demo data
	st, err := store.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := store.Seed(st); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding store: %v\n", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(st, log)
	eng := engine.New(st, log)

	// Create and run the application
	app := ui.NewApp(st, authSvc, eng)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
