package predictform

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harvestguru/hg-cli/internal/adapters/render/prediction"
	"github.com/harvestguru/hg-cli/internal/application"
	"github.com/harvestguru/hg-cli/internal/domain"
)

type districtsLoadedMsg struct {
	state   string
	visible bool
	err     error
}

type submitDoneMsg struct {
	result domain.PredictionResult
	err    error
}

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
)

// field binds one form line to the workflow. Choice fields cycle their
// options with left/right; text fields edit through the shared input.
// detail, when set, supplies a caption shown under the focused line.
type field struct {
	label    string
	required bool
	kind     fieldKind
	options  func() []string
	value    func() string
	set      func(string) tea.Cmd
	detail   func() string
}

// Model drives the cascading prediction form. The workflow owns the
// stage machine and field values; the reference cache owns the option
// lists and the district generation that discards stale fetches.
type Model struct {
	ctx      context.Context
	workflow *application.PredictionWorkflow
	refs     *application.ReferenceCache
	userID   string

	fields  []field
	focus   int
	input   textinput.Model
	spin    spinner.Model
	styles  styles
	notice  string
	loading bool
	done    bool
	err     error
}

func NewModel(ctx context.Context, workflow *application.PredictionWorkflow, refs *application.ReferenceCache, userID string) Model {
	in := textinput.New()
	in.Prompt = ""
	in.Width = 40

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	m := Model{
		ctx:      ctx,
		workflow: workflow,
		refs:     refs,
		userID:   userID,
		input:    in,
		spin:     s,
		styles:   newStyles(),
	}
	m.fields = m.buildFields()
	m.syncInput()
	return m
}

// Err reports the submission failure the model quit with, if any.
func (m Model) Err() error { return m.err }

func (m Model) buildFields() []field {
	wf := m.workflow
	refs := m.refs

	text := func(label string, required bool, value func() string, set func(string)) field {
		return field{
			label:    label,
			required: required,
			kind:     fieldText,
			value:    value,
			set: func(v string) tea.Cmd {
				set(v)
				return nil
			},
		}
	}
	choice := func(label string, required bool, options func() []string, value func() string, set func(string)) field {
		return field{
			label:    label,
			required: required,
			kind:     fieldChoice,
			options:  options,
			value:    value,
			set: func(v string) tea.Cmd {
				set(v)
				return nil
			},
		}
	}

	soilNames := func() []string {
		soilTypes := refs.SoilTypes()
		names := make([]string, 0, len(soilTypes))
		for _, soilType := range soilTypes {
			names = append(names, soilType.Name)
		}
		return names
	}
	soilDescription := func() string {
		name := wf.Fields().SoilType
		if name == "" {
			return ""
		}
		for _, soilType := range refs.SoilTypes() {
			if soilType.Name == name {
				return soilType.Description
			}
		}
		return ""
	}
	fixed := func(values ...string) func() []string {
		return func() []string { return values }
	}

	return []field{
		{
			label:    "State",
			required: true,
			kind:     fieldChoice,
			options:  refs.States,
			value:    func() string { return wf.Fields().State },
			set:      m.selectState,
		},
		choice("District", false, refs.Districts,
			func() string { return wf.Fields().District },
			func(v string) { _ = wf.SetDistrict(v) }),
		text("Village", false,
			func() string { return wf.Fields().Village },
			func(v string) { f := wf.Fields(); _ = wf.SetFarmDetails(v, f.Pincode, f.FarmSize, f.FarmSizeUnit) }),
		text("Pincode", false,
			func() string { return wf.Fields().Pincode },
			func(v string) { f := wf.Fields(); _ = wf.SetFarmDetails(f.Village, v, f.FarmSize, f.FarmSizeUnit) }),
		text("Farm size", true,
			func() string { return wf.Fields().FarmSize },
			func(v string) { f := wf.Fields(); _ = wf.SetFarmDetails(f.Village, f.Pincode, v, f.FarmSizeUnit) }),
		choice("Unit", false, fixed("acre", "hectare", "bigha"),
			func() string { return wf.Fields().FarmSizeUnit },
			func(v string) { f := wf.Fields(); _ = wf.SetFarmDetails(f.Village, f.Pincode, f.FarmSize, v) }),
		choice("Crop", true, refs.Crops,
			func() string { return wf.Fields().CropName },
			func(v string) { f := wf.Fields(); _ = wf.SetCrop(v, f.Variety, f.SowingDate, f.Season) }),
		text("Variety", false,
			func() string { return wf.Fields().Variety },
			func(v string) { f := wf.Fields(); _ = wf.SetCrop(f.CropName, v, f.SowingDate, f.Season) }),
		text("Sowing date", false,
			func() string { return wf.Fields().SowingDate },
			func(v string) { f := wf.Fields(); _ = wf.SetCrop(f.CropName, f.Variety, v, f.Season) }),
		choice("Season", true, fixed("Kharif", "Rabi", "Zaid"),
			func() string { return wf.Fields().Season },
			func(v string) { f := wf.Fields(); _ = wf.SetCrop(f.CropName, f.Variety, f.SowingDate, v) }),
		{
			label:    "Soil type",
			required: true,
			kind:     fieldChoice,
			options:  soilNames,
			value:    func() string { return wf.Fields().SoilType },
			set: func(v string) tea.Cmd {
				f := wf.Fields()
				_ = wf.SetSoil(v, f.FertilizerUsed, f.PHLevel, f.OrganicCarbon)
				return nil
			},
			detail: soilDescription,
		},
		text("Fertilizer used", false,
			func() string { return wf.Fields().FertilizerUsed },
			func(v string) { f := wf.Fields(); _ = wf.SetSoil(f.SoilType, v, f.PHLevel, f.OrganicCarbon) }),
		text("Soil pH", false,
			func() string { return wf.Fields().PHLevel },
			func(v string) { f := wf.Fields(); _ = wf.SetSoil(f.SoilType, f.FertilizerUsed, v, f.OrganicCarbon) }),
		text("Organic carbon", false,
			func() string { return wf.Fields().OrganicCarbon },
			func(v string) { f := wf.Fields(); _ = wf.SetSoil(f.SoilType, f.FertilizerUsed, f.PHLevel, v) }),
		text("Irrigation source", true,
			func() string { return wf.Fields().IrrigationSource },
			func(v string) { f := wf.Fields(); _ = wf.SetIrrigation(v, f.IrrigationFrequency, f.WaterAvailability) }),
		choice("Irrigation frequency", true, fixed("Rarely", "Sometimes", "Regularly"),
			func() string { return wf.Fields().IrrigationFrequency },
			func(v string) { f := wf.Fields(); _ = wf.SetIrrigation(f.IrrigationSource, v, f.WaterAvailability) }),
		text("Water availability", false,
			func() string { return wf.Fields().WaterAvailability },
			func(v string) { f := wf.Fields(); _ = wf.SetIrrigation(f.IrrigationSource, f.IrrigationFrequency, v) }),
	}
}

// selectState routes the parent-field change through the workflow so
// the dependent district selection is cleared, then fetches districts
// for the new state unless they are already cached. The fetch carries
// the generation captured here; a response arriving after another
// state change is discarded by the cache.
func (m *Model) selectState(state string) tea.Cmd {
	cached, ok, generation, err := m.workflow.SetState(state)
	if err != nil || state == "" {
		return nil
	}
	if ok && len(cached) > 0 {
		return nil
	}

	ctx := m.ctx
	refs := m.refs
	return func() tea.Msg {
		_, visible, fetchErr := refs.FetchDistricts(ctx, state, generation)
		return districtsLoadedMsg{state: state, visible: visible, err: fetchErr}
	}
}

func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case districtsLoadedMsg:
		if msg.err != nil {
			m.notice = m.styles.errorText.Render(fmt.Sprintf("Districts unavailable for %s: %v", msg.state, msg.err))
		} else if msg.visible {
			m.notice = ""
		}
		return m, nil

	case submitDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = m.styles.errorText.Render(fmt.Sprintf("Prediction failed: %v", msg.err))
			return m, nil
		}
		m.notice = ""
		return m, nil
	}

	if m.focused().kind == fieldText && !m.loading && m.workflow.Stage() == application.StageEditing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.focused().set(m.input.Value())
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.workflow.Stage() {
	case application.StageSubmitting:
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case application.StageResult:
		switch msg.String() {
		case "n":
			m.workflow.Reset()
			m.focus = 0
			m.syncInput()
			return m, nil
		case "q", "esc", "ctrl+c", "enter":
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		m.done = true
		return m, tea.Quit

	case "up", "shift+tab":
		return m.moveFocus(-1), nil

	case "down", "tab":
		return m.moveFocus(1), nil

	case "left", "right":
		if m.focused().kind == fieldChoice {
			return m, m.cycleChoice(msg.String() == "right")
		}

	case "enter":
		if m.focus < len(m.fields)-1 {
			return m.moveFocus(1), nil
		}
		return m.submit()

	case "ctrl+s":
		return m.submit()
	}

	if m.focused().kind == fieldText {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.focused().set(m.input.Value())
		return m, cmd
	}

	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.workflow.CanSubmit() {
		m.notice = m.styles.errorText.Render("Fill every required field (marked *) with a positive farm size first.")
		return m, nil
	}

	m.loading = true
	m.notice = ""

	ctx := m.ctx
	workflow := m.workflow
	userID := m.userID
	submit := func() tea.Msg {
		result, err := workflow.Submit(ctx, userID)
		return submitDoneMsg{result: result, err: err}
	}

	return m, tea.Batch(submit, m.spin.Tick)
}

func (m Model) moveFocus(delta int) Model {
	m.focus += delta
	if m.focus < 0 {
		m.focus = 0
	}
	if m.focus >= len(m.fields) {
		m.focus = len(m.fields) - 1
	}
	m.syncInput()
	return m
}

func (m *Model) syncInput() {
	current := m.focused()
	if current.kind == fieldText {
		m.input.SetValue(current.value())
		m.input.CursorEnd()
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) focused() *field {
	return &m.fields[m.focus]
}

func (m Model) cycleChoice(forward bool) tea.Cmd {
	current := m.focused()
	options := current.options()
	if len(options) == 0 {
		return nil
	}

	index := -1
	for i, option := range options {
		if option == current.value() {
			index = i
			break
		}
	}
	if forward {
		index = (index + 1) % len(options)
	} else if index <= 0 {
		index = len(options) - 1
	} else {
		index--
	}

	return current.set(options[index])
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	switch m.workflow.Stage() {
	case application.StageSubmitting:
		return fmt.Sprintf("%s %s\n", m.spin.View(), m.styles.faint.Render("Predicting yield..."))

	case application.StageResult:
		result, ok := m.workflow.Result()
		if !ok {
			return ""
		}
		fields := m.workflow.Fields()
		view := prediction.View(result, prediction.RenderOptions{
			CropName: fields.CropName,
			District: fields.District,
		})
		return view + "\n\n" + m.styles.faint.Render("n: make another prediction · q: quit") + "\n"
	}

	return m.editingView()
}

func (m Model) editingView() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Crop yield prediction"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		label := f.label
		if f.required {
			label += " *"
		}
		line := fmt.Sprintf("%-24s", label)

		if i == m.focus {
			if f.kind == fieldText {
				line = m.styles.focused.Render(line) + m.input.View()
			} else {
				line = m.styles.focused.Render(line) + m.styles.choice.Render("◀ "+displayValue(f.value())+" ▶")
			}
		} else {
			line = m.styles.label.Render(line) + m.styles.value.Render(displayValue(f.value()))
		}

		b.WriteString(line)
		b.WriteString("\n")

		if i == m.focus && f.detail != nil {
			if detail := f.detail(); detail != "" {
				b.WriteString(m.styles.faint.Render(fmt.Sprintf("%-24s%s", "", detail)))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n")
	}
	hint := "↑/↓: move · ←/→: choose · ctrl+s: predict · esc: quit"
	if !m.workflow.CanSubmit() {
		hint = "fields marked * are required · " + hint
	}
	b.WriteString(m.styles.faint.Render(hint))
	b.WriteString("\n")

	return b.String()
}

func displayValue(value string) string {
	if value == "" {
		return "—"
	}
	return value
}
