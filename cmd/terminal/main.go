package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/snippet-review/internal/client"
)

func main() {
	defaultServer := os.Getenv("SR_SERVER_URL")
	if defaultServer == "" {
		defaultServer = client.DefaultServerURL
	}

	// Parse command-line flags
	serverFlag := flag.String("server", defaultServer, "Snippet review server URL")
	themeFlag := flag.String("theme", "", "UI theme (cyan, matrix, amber, dracula, light)")
	listThemes := flag.Bool("list-themes", false, "List all available themes")
	flag.Parse()

	// If user wants to list themes
	if *listThemes {
		fmt.Println("Available themes:")
		for _, theme := range ListThemes() {
			fmt.Printf("  - %s\n", theme)
		}
		os.Exit(0)
	}

	selectedTheme := *themeFlag
	if selectedTheme == "" {
		selectedTheme = os.Getenv("SR_THEME")
	}
	if selectedTheme == "" {
		selectedTheme = string(ThemeCyan)
	}

	theme := ThemeName(selectedTheme)
	if !slices.Contains(ListThemes(), theme) {
		fmt.Printf("Invalid theme '%s'. Use --list-themes to see available options.\n", theme)
		os.Exit(1)
	}

	c, err := client.New(*serverFlag)
	if err != nil {
		fmt.Printf("Invalid server URL: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(c, *serverFlag, theme), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("error running program", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
