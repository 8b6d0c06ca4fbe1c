// cmd/jobdesk/main.go
//
// Entry point for the jobdesk TUI. Wires config, the journey logbook, the
// API client, the session store, and the identity manager together, then
// hands control to bubbletea.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arshanss504/job-contractor/internal/api"
	"github.com/arshanss504/job-contractor/internal/config"
	"github.com/arshanss504/job-contractor/internal/identity"
	"github.com/arshanss504/job-contractor/internal/logbook"
	"github.com/arshanss504/job-contractor/internal/session"
	"github.com/arshanss504/job-contractor/internal/tui"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitJobdeskDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .jobdesk directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	lb, err := logbook.New(filepath.Join(cfg.LogsDir(), "journey.log"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening logbook: %v\n", err)
		os.Exit(1)
	}
	defer lb.Sync()

	client := api.NewClient(cfg.APIBaseURL(), lb.Logger(), api.WithTimeout(cfg.APITimeout()))
	store := session.NewStore(cfg.StateDir())
	ident := identity.NewManager(client, store, lb.Logger())

	p := tea.NewProgram(
		tui.NewApp(client, ident, lb),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
