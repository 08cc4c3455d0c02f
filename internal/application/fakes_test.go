package application

import (
	"context"
	"errors"
	"time"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/harvestguru/hg-cli/internal/ports"
)

type fakeGateway struct {
	loginFn       func(ctx context.Context, email, password string) (string, domain.User, error)
	registerFn    func(ctx context.Context, email, password, name, phone string) (string, domain.User, error)
	currentUserFn func(ctx context.Context) (domain.User, error)
	statesFn      func(ctx context.Context) ([]string, error)
	districtsFn   func(ctx context.Context, state string) ([]string, error)
	cropsFn       func(ctx context.Context) ([]string, error)
	soilTypesFn   func(ctx context.Context) ([]domain.SoilType, error)
	predictFn     func(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResult, error)
	predictionsFn func(ctx context.Context) ([]domain.PredictionRecord, error)
	weatherFn     func(ctx context.Context, lat, lon float64) (domain.Weather, error)
	chatFn        func(ctx context.Context, message string, language domain.Language) (domain.ChatReply, error)
}

var _ ports.Gateway = (*fakeGateway)(nil)

var errFakeNotConfigured = errors.New("fake gateway call not configured")

func (f *fakeGateway) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	if f.loginFn == nil {
		return "", domain.User{}, errFakeNotConfigured
	}
	return f.loginFn(ctx, email, password)
}

func (f *fakeGateway) Register(ctx context.Context, email, password, name, phone string) (string, domain.User, error) {
	if f.registerFn == nil {
		return "", domain.User{}, errFakeNotConfigured
	}
	return f.registerFn(ctx, email, password, name, phone)
}

func (f *fakeGateway) CurrentUser(ctx context.Context) (domain.User, error) {
	if f.currentUserFn == nil {
		return domain.User{}, errFakeNotConfigured
	}
	return f.currentUserFn(ctx)
}

func (f *fakeGateway) States(ctx context.Context) ([]string, error) {
	if f.statesFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.statesFn(ctx)
}

func (f *fakeGateway) Districts(ctx context.Context, state string) ([]string, error) {
	if f.districtsFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.districtsFn(ctx, state)
}

func (f *fakeGateway) Crops(ctx context.Context) ([]string, error) {
	if f.cropsFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.cropsFn(ctx)
}

func (f *fakeGateway) SoilTypes(ctx context.Context) ([]domain.SoilType, error) {
	if f.soilTypesFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.soilTypesFn(ctx)
}

func (f *fakeGateway) PredictYield(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResult, error) {
	if f.predictFn == nil {
		return domain.PredictionResult{}, errFakeNotConfigured
	}
	return f.predictFn(ctx, req)
}

func (f *fakeGateway) MyPredictions(ctx context.Context) ([]domain.PredictionRecord, error) {
	if f.predictionsFn == nil {
		return nil, errFakeNotConfigured
	}
	return f.predictionsFn(ctx)
}

func (f *fakeGateway) Weather(ctx context.Context, lat, lon float64) (domain.Weather, error) {
	if f.weatherFn == nil {
		return domain.Weather{}, errFakeNotConfigured
	}
	return f.weatherFn(ctx, lat, lon)
}

func (f *fakeGateway) Chat(ctx context.Context, message string, language domain.Language) (domain.ChatReply, error) {
	if f.chatFn == nil {
		return domain.ChatReply{}, errFakeNotConfigured
	}
	return f.chatFn(ctx, message, language)
}

type inMemoryCredentialStore struct {
	token   string
	saveErr error
	onClear func()
}

var _ ports.CredentialStore = (*inMemoryCredentialStore)(nil)

func (s *inMemoryCredentialStore) Load(_ context.Context) (string, error) {
	if s.token == "" {
		return "", domain.ErrCredentialNotFound
	}
	return s.token, nil
}

func (s *inMemoryCredentialStore) Save(_ context.Context, token string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	return nil
}

func (s *inMemoryCredentialStore) Clear(_ context.Context) error {
	if s.onClear != nil {
		s.onClear()
	}
	s.token = ""
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
