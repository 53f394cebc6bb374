package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sitesearch/internal/searchclient"
	"sitesearch/internal/session"
	"sitesearch/internal/tui"
	"sitesearch/pkg/logger"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive search form",
		Long: `Launch the interactive search form.

Keyboard shortcuts:
  Tab / Shift+Tab  Move between URL, query and results
  Enter            Search (in the form) / view HTML (on a result)
  ↑/↓ or j/k       Select a result
  Space            View or hide the selected result's HTML
  Esc              Back to the form
  q, Ctrl+C        Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// the terminal belongs to the UI, so logs are discarded
			client := searchclient.New(backendURL, searchclient.WithLogger(logger.Discard()))
			ctrl := session.New(client, logger.Discard())
			p := tea.NewProgram(tui.NewModel(cmd.Context(), client, ctrl), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}
