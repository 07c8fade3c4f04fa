package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/vocabtracker/backend/internal/client"
	"github.com/vocabtracker/backend/internal/dashboard"
	"github.com/vocabtracker/backend/internal/tui"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()

	baseURL := os.Getenv("VOCAB_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Log to a file when requested so output never corrupts the terminal UI
	logger := zap.NewNop()
	if logPath := os.Getenv("VOCAB_DEBUG_LOG"); logPath != "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{logPath}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			fmt.Printf("Error initializing debug log: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	apiClient := client.New(baseURL)
	ctrl := dashboard.NewController(apiClient, logger)

	p := tea.NewProgram(tui.NewApp(apiClient, ctrl))

	// A rejected token from any request drops the session back to login
	apiClient.OnUnauthorized = func() {
		p.Send(tui.UnauthorizedMsg{})
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
