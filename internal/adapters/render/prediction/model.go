package prediction

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harvestguru/hg-cli/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	result domain.PredictionResult
	opts   RenderOptions
	styles styles
	output string
}

func newModel(result domain.PredictionResult, opts RenderOptions) model {
	return model{
		result: result,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.result, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render produces the read-only result view as a string.
func Render(result domain.PredictionResult, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(result, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
