package ports

import (
	"context"

	"github.com/harvestguru/hg-cli/internal/domain"
)

// PredictionHistory is the local record of past predictions, kept so
// the history screen still has something to show when the network does
// not.
type PredictionHistory interface {
	Append(ctx context.Context, record domain.PredictionRecord) error
	List(ctx context.Context) ([]domain.PredictionRecord, error)
}
