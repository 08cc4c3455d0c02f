package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	chatview "github.com/harvestguru/hg-cli/internal/adapters/render/chat"
	"github.com/harvestguru/hg-cli/internal/application"
	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/harvestguru/hg-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newChatCmd(app *app) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the multilingual farming assistant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := requireSession(cmd, app); err != nil {
				return err
			}

			session := application.NewChatSession(app.gateway, ports.SystemClock{})
			if err := session.SetLanguage(domain.Language(language)); err != nil {
				return err
			}

			model := chatview.NewModel(cmd.Context(), session)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&language, "language", "en", "Assistant language (en|hi|bn|or)")

	return cmd
}
