package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/taskpad/taskpad/client"
	"github.com/taskpad/taskpad/tui"
)

func main() {
	_ = godotenv.Load(".env")

	api := client.New(client.BaseURLFromEnv())
	p := tea.NewProgram(tui.NewModel(api), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
