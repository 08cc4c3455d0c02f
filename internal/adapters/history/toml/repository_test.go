package toml

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "history.toml"))
	require.NoError(t, err)
	return repo
}

func sampleRecord(yield float64, createdAt time.Time) domain.PredictionRecord {
	ph := 6.5
	return domain.PredictionRecord{
		PredictionResult: domain.PredictionResult{
			PredictedYield:       yield,
			YieldUnit:            "tons/acre",
			DistrictAverage:      3.8,
			ComparisonPercentage: 10.5,
			ConfidenceScore:      0.87,
			Recommendations:      []string{"Apply organic compost"},
		},
		InputData: &domain.PredictionRequest{
			UserID: "u1",
			FarmDetails: domain.FarmDetails{
				State:        "Odisha",
				District:     "Cuttack",
				FarmSize:     2.5,
				FarmSizeUnit: domain.UnitAcre,
			},
			CropInfo: domain.CropInfo{CropName: "Rice", Season: domain.SeasonKharif},
			SoilInputs: domain.SoilInputs{
				SoilType: "Alluvial",
				PHLevel:  &ph,
			},
			IrrigationInfo: domain.IrrigationInfo{
				IrrigationSource:    "Canal",
				IrrigationFrequency: domain.IrrigationRegularly,
			},
		},
		CreatedAt: createdAt,
	}
}

func TestRepositoryAppendAndListRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()
	createdAt := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, sampleRecord(4.2, createdAt)))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.InDelta(t, 4.2, got.PredictedYield, 1e-9)
	assert.Equal(t, "tons/acre", got.YieldUnit)
	assert.Equal(t, createdAt, got.CreatedAt)

	require.NotNil(t, got.InputData)
	assert.Equal(t, "Odisha", got.InputData.FarmDetails.State)
	assert.Equal(t, domain.SeasonKharif, got.InputData.CropInfo.Season)
	require.NotNil(t, got.InputData.SoilInputs.PHLevel)
	assert.InDelta(t, 6.5, *got.InputData.SoilInputs.PHLevel, 1e-9)
	assert.Nil(t, got.InputData.SoilInputs.OrganicCarbon)
}

func TestRepositoryListNewestFirst(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(ctx, sampleRecord(float64(i+1), base.AddDate(0, 0, i))))
	}

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.InDelta(t, 3, records[0].PredictedYield, 1e-9)
	assert.InDelta(t, 1, records[2].PredictedYield, 1e-9)
}

func TestRepositoryCapsRecordCount(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < maxRecords+5; i++ {
		require.NoError(t, repo.Append(ctx, sampleRecord(float64(i), base.Add(time.Duration(i)*time.Hour))))
	}

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, maxRecords)

	// The newest record survives, the oldest five do not.
	assert.InDelta(t, float64(maxRecords+4), records[0].PredictedYield, 1e-9)
	assert.InDelta(t, 5, records[maxRecords-1].PredictedYield, 1e-9)
}

func TestRepositoryListMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRepositoryRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewRepository("   ")
	require.Error(t, err)
}

func TestRepositoryConcurrentAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.toml")
	ctx := context.Background()
	done := make(chan error, 4)

	for i := 0; i < 4; i++ {
		go func(i int) {
			repo, err := NewRepository(path)
			if err != nil {
				done <- err
				return
			}
			done <- repo.Append(ctx, sampleRecord(float64(i), time.Now()))
		}(i)
	}

	for i := 0; i < 4; i++ {
		require.NoError(t, <-done)
	}

	repo, err := NewRepository(path)
	require.NoError(t, err)
	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}
