package toml

import (
	"fmt"
	"time"

	"github.com/harvestguru/hg-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version     int            `toml:"version"`
	Predictions []recordSchema `toml:"predictions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported history schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type recordSchema struct {
	PredictedYield       float64        `toml:"predicted_yield"`
	YieldUnit            string         `toml:"yield_unit"`
	DistrictAverage      float64        `toml:"district_average"`
	ComparisonPercentage float64        `toml:"comparison_percentage"`
	ConfidenceScore      float64        `toml:"confidence_score"`
	Recommendations      []string       `toml:"recommendations,omitempty"`
	Input                *requestSchema `toml:"input,omitempty"`
	CreatedAt            string         `toml:"created_at"`
}

type requestSchema struct {
	UserID              string   `toml:"user_id"`
	State               string   `toml:"state"`
	District            string   `toml:"district"`
	Village             string   `toml:"village,omitempty"`
	Pincode             string   `toml:"pincode,omitempty"`
	FarmSize            float64  `toml:"farm_size"`
	FarmSizeUnit        string   `toml:"farm_size_unit"`
	CropName            string   `toml:"crop_name"`
	Variety             string   `toml:"variety,omitempty"`
	SowingDate          string   `toml:"sowing_date,omitempty"`
	Season              string   `toml:"season"`
	SoilType            string   `toml:"soil_type"`
	FertilizerUsed      string   `toml:"fertilizer_used,omitempty"`
	PHLevel             *float64 `toml:"ph_level,omitempty"`
	OrganicCarbon       *float64 `toml:"organic_carbon,omitempty"`
	IrrigationSource    string   `toml:"irrigation_source"`
	IrrigationFrequency string   `toml:"irrigation_frequency"`
	WaterAvailability   string   `toml:"water_availability,omitempty"`
}

func toSchema(record domain.PredictionRecord) recordSchema {
	return recordSchema{
		PredictedYield:       record.PredictedYield,
		YieldUnit:            record.YieldUnit,
		DistrictAverage:      record.DistrictAverage,
		ComparisonPercentage: record.ComparisonPercentage,
		ConfidenceScore:      record.ConfidenceScore,
		Recommendations:      record.Recommendations,
		Input:                toRequestSchema(record.InputData),
		CreatedAt:            formatTime(record.CreatedAt),
	}
}

func fromSchema(record recordSchema) domain.PredictionRecord {
	return domain.PredictionRecord{
		PredictionResult: domain.PredictionResult{
			PredictedYield:       record.PredictedYield,
			YieldUnit:            record.YieldUnit,
			DistrictAverage:      record.DistrictAverage,
			ComparisonPercentage: record.ComparisonPercentage,
			ConfidenceScore:      record.ConfidenceScore,
			Recommendations:      record.Recommendations,
		},
		InputData: fromRequestSchema(record.Input),
		CreatedAt: parseTime(record.CreatedAt),
	}
}

func toRequestSchema(req *domain.PredictionRequest) *requestSchema {
	if req == nil {
		return nil
	}

	return &requestSchema{
		UserID:              req.UserID,
		State:               req.FarmDetails.State,
		District:            req.FarmDetails.District,
		Village:             req.FarmDetails.Village,
		Pincode:             req.FarmDetails.Pincode,
		FarmSize:            req.FarmDetails.FarmSize,
		FarmSizeUnit:        string(req.FarmDetails.FarmSizeUnit),
		CropName:            req.CropInfo.CropName,
		Variety:             req.CropInfo.Variety,
		SowingDate:          req.CropInfo.SowingDate,
		Season:              string(req.CropInfo.Season),
		SoilType:            req.SoilInputs.SoilType,
		FertilizerUsed:      req.SoilInputs.FertilizerUsed,
		PHLevel:             req.SoilInputs.PHLevel,
		OrganicCarbon:       req.SoilInputs.OrganicCarbon,
		IrrigationSource:    req.IrrigationInfo.IrrigationSource,
		IrrigationFrequency: string(req.IrrigationInfo.IrrigationFrequency),
		WaterAvailability:   req.IrrigationInfo.WaterAvailability,
	}
}

func fromRequestSchema(req *requestSchema) *domain.PredictionRequest {
	if req == nil {
		return nil
	}

	return &domain.PredictionRequest{
		UserID: req.UserID,
		FarmDetails: domain.FarmDetails{
			State:        req.State,
			District:     req.District,
			Village:      req.Village,
			Pincode:      req.Pincode,
			FarmSize:     req.FarmSize,
			FarmSizeUnit: domain.FarmSizeUnit(req.FarmSizeUnit),
		},
		CropInfo: domain.CropInfo{
			CropName:   req.CropName,
			Variety:    req.Variety,
			SowingDate: req.SowingDate,
			Season:     domain.Season(req.Season),
		},
		SoilInputs: domain.SoilInputs{
			SoilType:       req.SoilType,
			FertilizerUsed: req.FertilizerUsed,
			PHLevel:        req.PHLevel,
			OrganicCarbon:  req.OrganicCarbon,
		},
		IrrigationInfo: domain.IrrigationInfo{
			IrrigationSource:    req.IrrigationSource,
			IrrigationFrequency: domain.IrrigationFrequency(req.IrrigationFrequency),
			WaterAvailability:   req.WaterAvailability,
		},
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
