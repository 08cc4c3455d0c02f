package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/harvestguru/hg-cli/internal/ports"
)

type WorkflowStage string

const (
	StageEditing    WorkflowStage = "editing"
	StageSubmitting WorkflowStage = "submitting"
	StageResult     WorkflowStage = "result"
)

// FormFields holds the raw form inputs as entered. Everything is a
// string until BuildRequest parses and validates; a blank optional
// numeric stays blank and is transmitted as absent, never as zero.
type FormFields struct {
	State        string
	District     string
	Village      string
	Pincode      string
	FarmSize     string
	FarmSizeUnit string

	CropName   string
	Variety    string
	SowingDate string
	Season     string

	SoilType       string
	FertilizerUsed string
	PHLevel        string
	OrganicCarbon  string

	IrrigationSource    string
	IrrigationFrequency string
	WaterAvailability   string
}

// PredictionWorkflow is the cascading prediction form: a state machine
// Editing → Submitting → Result, with Result → Editing (blank) as the
// only backward transition. A state change invalidates the dependent
// district selection.
type PredictionWorkflow struct {
	gateway ports.Gateway
	refs    *ReferenceCache
	history ports.PredictionHistory
	clock   ports.Clock

	mu     sync.Mutex
	stage  WorkflowStage
	fields FormFields
	result *domain.PredictionResult
}

func NewPredictionWorkflow(gateway ports.Gateway, refs *ReferenceCache) *PredictionWorkflow {
	return &PredictionWorkflow{
		gateway: gateway,
		refs:    refs,
		clock:   ports.SystemClock{},
		stage:   StageEditing,
	}
}

// WithHistory records each successful prediction in history. Recording
// is best effort; a write failure never fails the prediction itself.
func (w *PredictionWorkflow) WithHistory(history ports.PredictionHistory) *PredictionWorkflow {
	w.history = history
	return w
}

func (w *PredictionWorkflow) Stage() WorkflowStage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

func (w *PredictionWorkflow) Fields() FormFields {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields
}

// SetState changes the parent location field. The dependent district
// selection is cleared and the cache generation advances, so a fetch
// still in flight for the old state can never become visible. The
// cached districts for the new state are returned when available,
// along with the generation to tag a fresh fetch with.
func (w *PredictionWorkflow) SetState(state string) (cached []string, ok bool, generation uint64, err error) {
	w.mu.Lock()
	if w.stage != StageEditing {
		w.mu.Unlock()
		return nil, false, 0, domain.ErrNotEditing
	}
	w.fields.State = state
	w.fields.District = ""
	w.mu.Unlock()

	cached, ok, generation = w.refs.SelectState(state)
	return cached, ok, generation, nil
}

func (w *PredictionWorkflow) SetDistrict(district string) error {
	return w.edit(func(f *FormFields) { f.District = district })
}

func (w *PredictionWorkflow) SetFarmDetails(village, pincode, farmSize, unit string) error {
	return w.edit(func(f *FormFields) {
		f.Village = village
		f.Pincode = pincode
		f.FarmSize = farmSize
		f.FarmSizeUnit = unit
	})
}

func (w *PredictionWorkflow) SetCrop(name, variety, sowingDate, season string) error {
	return w.edit(func(f *FormFields) {
		f.CropName = name
		f.Variety = variety
		f.SowingDate = sowingDate
		f.Season = season
	})
}

func (w *PredictionWorkflow) SetSoil(soilType, fertilizerUsed, phLevel, organicCarbon string) error {
	return w.edit(func(f *FormFields) {
		f.SoilType = soilType
		f.FertilizerUsed = fertilizerUsed
		f.PHLevel = phLevel
		f.OrganicCarbon = organicCarbon
	})
}

func (w *PredictionWorkflow) SetIrrigation(source, frequency, waterAvailability string) error {
	return w.edit(func(f *FormFields) {
		f.IrrigationSource = source
		f.IrrigationFrequency = frequency
		f.WaterAvailability = waterAvailability
	})
}

func (w *PredictionWorkflow) edit(apply func(*FormFields)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage != StageEditing {
		return domain.ErrNotEditing
	}
	apply(&w.fields)
	return nil
}

// CanSubmit reports whether submission is enabled: every required
// field is non-empty, farm size parses as a positive number, and no
// submission is already in flight.
func (w *PredictionWorkflow) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage != StageEditing {
		return false
	}
	return requiredFieldsComplete(w.fields)
}

func requiredFieldsComplete(f FormFields) bool {
	for _, required := range []string{
		f.State, f.CropName, f.Season, f.SoilType,
		f.IrrigationSource, f.IrrigationFrequency, f.FarmSize,
	} {
		if strings.TrimSpace(required) == "" {
			return false
		}
	}

	size, err := strconv.ParseFloat(strings.TrimSpace(f.FarmSize), 64)
	return err == nil && size > 0
}

// Submit assembles the request and posts it once. On failure the
// workflow returns to Editing with the fields intact; on success it
// holds the result until Reset.
func (w *PredictionWorkflow) Submit(ctx context.Context, userID string) (domain.PredictionResult, error) {
	w.mu.Lock()
	if w.stage != StageEditing {
		w.mu.Unlock()
		return domain.PredictionResult{}, domain.ErrNotEditing
	}
	if !requiredFieldsComplete(w.fields) {
		w.mu.Unlock()
		return domain.PredictionResult{}, domain.ErrFormIncomplete
	}

	req, err := buildRequest(w.fields, userID)
	if err != nil {
		w.mu.Unlock()
		return domain.PredictionResult{}, err
	}

	w.stage = StageSubmitting
	w.mu.Unlock()

	result, err := w.gateway.PredictYield(ctx, req)

	w.mu.Lock()
	if err != nil {
		w.stage = StageEditing
		w.mu.Unlock()
		return domain.PredictionResult{}, fmt.Errorf("predict yield: %w", err)
	}

	w.stage = StageResult
	w.result = &result
	w.mu.Unlock()

	if w.history != nil {
		_ = w.history.Append(ctx, domain.PredictionRecord{
			PredictionResult: result,
			InputData:        &req,
			CreatedAt:        w.clock.Now(),
		})
	}

	return result, nil
}

// Result returns the prediction held since the last successful submit.
func (w *PredictionWorkflow) Result() (domain.PredictionResult, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage != StageResult || w.result == nil {
		return domain.PredictionResult{}, false
	}
	return *w.result, true
}

// Reset discards the result and returns to a blank editable form. The
// prior field values are not restored.
func (w *PredictionWorkflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage == StageSubmitting {
		return
	}
	w.stage = StageEditing
	w.fields = FormFields{}
	w.result = nil
}

func buildRequest(f FormFields, userID string) (domain.PredictionRequest, error) {
	size, err := strconv.ParseFloat(strings.TrimSpace(f.FarmSize), 64)
	if err != nil || size <= 0 {
		return domain.PredictionRequest{}, &domain.ValidationError{Field: "farm_size", Reason: "must be a positive number"}
	}

	unit := domain.FarmSizeUnit(strings.TrimSpace(f.FarmSizeUnit))
	if unit == "" {
		unit = domain.UnitAcre
	}
	if !unit.Valid() {
		return domain.PredictionRequest{}, &domain.ValidationError{Field: "farm_size_unit", Reason: "must be acre, hectare, or bigha"}
	}

	season := domain.Season(strings.TrimSpace(f.Season))
	if !season.Valid() {
		return domain.PredictionRequest{}, &domain.ValidationError{Field: "season", Reason: "must be Kharif, Rabi, or Zaid"}
	}

	frequency := domain.IrrigationFrequency(strings.TrimSpace(f.IrrigationFrequency))
	if !frequency.Valid() {
		return domain.PredictionRequest{}, &domain.ValidationError{Field: "irrigation_frequency", Reason: "must be Rarely, Sometimes, or Regularly"}
	}

	ph, err := parseOptionalFloat(f.PHLevel)
	if err != nil {
		return domain.PredictionRequest{}, &domain.ValidationError{Field: "ph_level", Reason: "must be a number"}
	}
	if ph != nil && (*ph < 0 || *ph > 14) {
		return domain.PredictionRequest{}, &domain.ValidationError{Field: "ph_level", Reason: "must be between 0 and 14"}
	}

	organicCarbon, err := parseOptionalFloat(f.OrganicCarbon)
	if err != nil {
		return domain.PredictionRequest{}, &domain.ValidationError{Field: "organic_carbon", Reason: "must be a number"}
	}
	if organicCarbon != nil && *organicCarbon < 0 {
		return domain.PredictionRequest{}, &domain.ValidationError{Field: "organic_carbon", Reason: "must not be negative"}
	}

	return domain.PredictionRequest{
		UserID: userID,
		FarmDetails: domain.FarmDetails{
			State:        strings.TrimSpace(f.State),
			District:     strings.TrimSpace(f.District),
			Village:      strings.TrimSpace(f.Village),
			Pincode:      strings.TrimSpace(f.Pincode),
			FarmSize:     size,
			FarmSizeUnit: unit,
		},
		CropInfo: domain.CropInfo{
			CropName:   strings.TrimSpace(f.CropName),
			Variety:    strings.TrimSpace(f.Variety),
			SowingDate: strings.TrimSpace(f.SowingDate),
			Season:     season,
		},
		SoilInputs: domain.SoilInputs{
			SoilType:       strings.TrimSpace(f.SoilType),
			FertilizerUsed: strings.TrimSpace(f.FertilizerUsed),
			PHLevel:        ph,
			OrganicCarbon:  organicCarbon,
		},
		IrrigationInfo: domain.IrrigationInfo{
			IrrigationSource:    strings.TrimSpace(f.IrrigationSource),
			IrrigationFrequency: frequency,
			WaterAvailability:   strings.TrimSpace(f.WaterAvailability),
		},
	}, nil
}

// parseOptionalFloat maps a blank input to absent. Zero is a
// measurement; blank is "not measured".
func parseOptionalFloat(raw string) (*float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
