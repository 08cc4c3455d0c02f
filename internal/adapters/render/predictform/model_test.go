package predictform

import (
	"context"
	"errors"
	"testing"

	"github.com/harvestguru/hg-cli/internal/application"
	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/harvestguru/hg-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway serves only the reference lists the form needs; every
// other call is out of scope for these tests.
type stubGateway struct {
	soilTypes []domain.SoilType
}

var _ ports.Gateway = (*stubGateway)(nil)

var errStubCall = errors.New("unexpected gateway call")

func (s *stubGateway) Login(context.Context, string, string) (string, domain.User, error) {
	return "", domain.User{}, errStubCall
}

func (s *stubGateway) Register(context.Context, string, string, string, string) (string, domain.User, error) {
	return "", domain.User{}, errStubCall
}

func (s *stubGateway) CurrentUser(context.Context) (domain.User, error) {
	return domain.User{}, errStubCall
}

func (s *stubGateway) States(context.Context) ([]string, error) {
	return []string{"Odisha"}, nil
}

func (s *stubGateway) Districts(context.Context, string) ([]string, error) {
	return []string{"Cuttack"}, nil
}

func (s *stubGateway) Crops(context.Context) ([]string, error) {
	return []string{"Rice"}, nil
}

func (s *stubGateway) SoilTypes(context.Context) ([]domain.SoilType, error) {
	return s.soilTypes, nil
}

func (s *stubGateway) PredictYield(context.Context, domain.PredictionRequest) (domain.PredictionResult, error) {
	return domain.PredictionResult{}, errStubCall
}

func (s *stubGateway) MyPredictions(context.Context) ([]domain.PredictionRecord, error) {
	return nil, errStubCall
}

func (s *stubGateway) Weather(context.Context, float64, float64) (domain.Weather, error) {
	return domain.Weather{}, errStubCall
}

func (s *stubGateway) Chat(context.Context, string, domain.Language) (domain.ChatReply, error) {
	return domain.ChatReply{}, errStubCall
}

func newTestModel(t *testing.T, gateway ports.Gateway) Model {
	t.Helper()

	refs := application.NewReferenceCache(gateway)
	require.NoError(t, refs.LoadSoilTypes(context.Background()))
	workflow := application.NewPredictionWorkflow(gateway, refs)

	return NewModel(context.Background(), workflow, refs, "u-1")
}

func (m Model) fieldIndex(t *testing.T, label string) int {
	t.Helper()

	for i, f := range m.fields {
		if f.label == label {
			return i
		}
	}
	t.Fatalf("no field labeled %q", label)
	return -1
}

func TestEditingViewShowsSoilDescriptionWhenFocused(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{soilTypes: []domain.SoilType{
		{Name: "Alluvial", Description: "Fertile soil deposited by rivers, good for rice and wheat."},
	}}
	m := newTestModel(t, gateway)

	soil := m.fieldIndex(t, "Soil type")
	require.NoError(t, m.workflow.SetSoil("Alluvial", "", "", ""))
	m.focus = soil
	m.syncInput()

	view := m.editingView()
	assert.Contains(t, view, "Alluvial")
	assert.Contains(t, view, "Fertile soil deposited by rivers, good for rice and wheat.")
}

func TestEditingViewOmitsSoilDescriptionWhenUnfocused(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{soilTypes: []domain.SoilType{
		{Name: "Laterite", Description: "Acidic soil suited to cashew and tea."},
	}}
	m := newTestModel(t, gateway)

	require.NoError(t, m.workflow.SetSoil("Laterite", "", "", ""))

	// Focus stays on the first field; the caption belongs to the soil
	// line only.
	view := m.editingView()
	assert.Contains(t, view, "Laterite")
	assert.NotContains(t, view, "Acidic soil suited to cashew and tea.")
}

func TestEditingViewOmitsCaptionForUnknownSoil(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{soilTypes: []domain.SoilType{
		{Name: "Alluvial", Description: "Fertile soil deposited by rivers, good for rice and wheat."},
	}}
	m := newTestModel(t, gateway)

	soil := m.fieldIndex(t, "Soil type")
	require.NoError(t, m.workflow.SetSoil("Volcanic", "", "", ""))
	m.focus = soil
	m.syncInput()

	view := m.editingView()
	assert.NotContains(t, view, "Fertile soil")
}
