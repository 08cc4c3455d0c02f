package domain

import "time"

type Season string

const (
	SeasonKharif Season = "Kharif"
	SeasonRabi   Season = "Rabi"
	SeasonZaid   Season = "Zaid"
)

func (s Season) Valid() bool {
	switch s {
	case SeasonKharif, SeasonRabi, SeasonZaid:
		return true
	}
	return false
}

type FarmSizeUnit string

const (
	UnitAcre    FarmSizeUnit = "acre"
	UnitHectare FarmSizeUnit = "hectare"
	UnitBigha   FarmSizeUnit = "bigha"
)

func (u FarmSizeUnit) Valid() bool {
	switch u {
	case UnitAcre, UnitHectare, UnitBigha:
		return true
	}
	return false
}

type IrrigationFrequency string

const (
	IrrigationRarely    IrrigationFrequency = "Rarely"
	IrrigationSometimes IrrigationFrequency = "Sometimes"
	IrrigationRegularly IrrigationFrequency = "Regularly"
)

func (f IrrigationFrequency) Valid() bool {
	switch f {
	case IrrigationRarely, IrrigationSometimes, IrrigationRegularly:
		return true
	}
	return false
}

type FarmDetails struct {
	State        string       `json:"state"`
	District     string       `json:"district"`
	Village      string       `json:"village"`
	Pincode      string       `json:"pincode"`
	FarmSize     float64      `json:"farm_size"`
	FarmSizeUnit FarmSizeUnit `json:"farm_size_unit"`
}

type CropInfo struct {
	CropName   string `json:"crop_name"`
	Variety    string `json:"variety"`
	SowingDate string `json:"sowing_date"`
	Season     Season `json:"season"`
}

// SoilInputs carries the optional measurements as pointers so that a
// blank form field is transmitted as absent rather than zero.
type SoilInputs struct {
	SoilType       string   `json:"soil_type"`
	FertilizerUsed string   `json:"fertilizer_used"`
	PHLevel        *float64 `json:"ph_level,omitempty"`
	OrganicCarbon  *float64 `json:"organic_carbon,omitempty"`
}

type IrrigationInfo struct {
	IrrigationSource    string              `json:"irrigation_source"`
	IrrigationFrequency IrrigationFrequency `json:"irrigation_frequency"`
	WaterAvailability   string              `json:"water_availability"`
}

type PredictionRequest struct {
	UserID         string         `json:"user_id"`
	FarmDetails    FarmDetails    `json:"farm_details"`
	CropInfo       CropInfo       `json:"crop_info"`
	SoilInputs     SoilInputs     `json:"soil_inputs"`
	IrrigationInfo IrrigationInfo `json:"irrigation_info"`
}

type PredictionResult struct {
	PredictedYield       float64  `json:"predicted_yield"`
	YieldUnit            string   `json:"yield_unit"`
	DistrictAverage      float64  `json:"district_average"`
	ComparisonPercentage float64  `json:"comparison_percentage"`
	ConfidenceScore      float64  `json:"confidence_score"`
	Recommendations      []string `json:"recommendations"`
}

// PredictionRecord is a past prediction as returned by the history
// endpoint: the result plus the inputs that produced it.
type PredictionRecord struct {
	PredictionResult
	InputData *PredictionRequest `json:"input_data,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
