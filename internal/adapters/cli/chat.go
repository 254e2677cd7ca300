package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/karimelsayed/ragkb/internal/adapters/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question session",
	Long: `Starts an interactive session against the indexed documents.

Commands inside the session:
  lang ar - switch answers to Arabic
  lang en - switch answers to English
  quit    - exit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(*cobra.Command, []string) error {
	app, err := newApp(true)
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.New(app.QueryUC), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run chat session: %w", err)
	}
	return nil
}
