// Command console is a terminal client for a fablestream API server. It
// creates (or resumes) a game session, renders narration as it streams over
// SSE, and submits player commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "fablestream API base URL")
	gameIDArg := flag.String("game", "", "existing game session ID to resume")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := newAPIClient(*baseURL)

	var gameID uuid.UUID
	if *gameIDArg != "" {
		id, err := uuid.Parse(*gameIDArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid game id: %v\n", err)
			os.Exit(1)
		}
		gameID = id
	} else {
		ws, err := client.newGame(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create game: %v\n", err)
			os.Exit(1)
		}
		gameID = ws.ID
	}

	events, err := client.streamEvents(ctx, gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to subscribe to events: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(
		newModel(ctx, client, gameID, events),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
