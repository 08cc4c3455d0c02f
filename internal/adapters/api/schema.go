package api

import (
	"time"

	"github.com/harvestguru/hg-cli/internal/domain"
)

type authResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        userSchema `json:"user"`
}

type userSchema struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (u userSchema) toDomain() domain.User {
	return domain.User{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Phone: u.Phone,
	}
}

type predictionRecordSchema struct {
	PredictedYield       float64                   `json:"predicted_yield"`
	YieldUnit            string                    `json:"yield_unit"`
	DistrictAverage      float64                   `json:"district_average"`
	ComparisonPercentage float64                   `json:"comparison_percentage"`
	ConfidenceScore      float64                   `json:"confidence_score"`
	Recommendations      []string                  `json:"recommendations"`
	InputData            *domain.PredictionRequest `json:"input_data"`
	CreatedAt            time.Time                 `json:"created_at"`
}

func (p predictionRecordSchema) toDomain() domain.PredictionRecord {
	return domain.PredictionRecord{
		PredictionResult: domain.PredictionResult{
			PredictedYield:       p.PredictedYield,
			YieldUnit:            p.YieldUnit,
			DistrictAverage:      p.DistrictAverage,
			ComparisonPercentage: p.ComparisonPercentage,
			ConfidenceScore:      p.ConfidenceScore,
			Recommendations:      p.Recommendations,
		},
		InputData: p.InputData,
		CreatedAt: p.CreatedAt,
	}
}
