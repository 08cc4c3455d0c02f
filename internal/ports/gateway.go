package ports

import (
	"context"

	"github.com/harvestguru/hg-cli/internal/domain"
)

// Gateway is the single chokepoint for calls to the HarvestGuru API.
// Implementations attach the current bearer credential to every request
// and surface failures as *domain.RequestError. They never retry and
// never react to an unauthorized response themselves.
type Gateway interface {
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	Register(ctx context.Context, email, password, name, phone string) (string, domain.User, error)
	CurrentUser(ctx context.Context) (domain.User, error)

	States(ctx context.Context) ([]string, error)
	Districts(ctx context.Context, state string) ([]string, error)
	Crops(ctx context.Context) ([]string, error)
	SoilTypes(ctx context.Context) ([]domain.SoilType, error)

	PredictYield(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResult, error)
	MyPredictions(ctx context.Context) ([]domain.PredictionRecord, error)
	Weather(ctx context.Context, lat, lon float64) (domain.Weather, error)
	Chat(ctx context.Context, message string, language domain.Language) (domain.ChatReply, error)
}
