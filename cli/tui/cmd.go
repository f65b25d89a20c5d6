package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nexusai/nexus/internal/cli"
	"github.com/nexusai/nexus/internal/session"
)

// NewCmd instantiates and returns the sessions command.
func NewCmd(registry *session.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "Browse, preview and delete saved sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			model := New(registry)
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return errors.Wrap(err, "running session browser")
			}
			if model.Selected != "" {
				cli.Info("Resume with: nexus chat --session %s\n", model.Selected)
			}
			return nil
		},
	}
}
