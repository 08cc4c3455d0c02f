package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/harvestguru/hg-cli/internal/ports"
)

const maxResponseBytes = 1 << 20

// CredentialSource yields the bearer credential to attach to outbound
// requests. An empty string means no Authorization header is sent. The
// client never caches the value: every request reads the latest one.
type CredentialSource interface {
	Token() string
}

// Client is the authenticated request gateway for the HarvestGuru API.
// It attaches the current credential, maps failures to the
// *domain.RequestError taxonomy, and never retries.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	credentials    CredentialSource
	requestTimeout time.Duration
}

var _ ports.Gateway = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client, credentials CredentialSource) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     httpClient,
		credentials:    credentials,
		requestTimeout: 30 * time.Second,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	var resp authResponse
	err := c.do(ctx, "login", http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", domain.User{}, err
	}

	return resp.AccessToken, resp.User.toDomain(), nil
}

func (c *Client) Register(ctx context.Context, email, password, name, phone string) (string, domain.User, error) {
	var resp authResponse
	err := c.do(ctx, "register", http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
		"phone":    phone,
	}, &resp)
	if err != nil {
		return "", domain.User{}, err
	}

	return resp.AccessToken, resp.User.toDomain(), nil
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var resp userSchema
	if err := c.do(ctx, "current user", http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return domain.User{}, err
	}

	return resp.toDomain(), nil
}

func (c *Client) States(ctx context.Context) ([]string, error) {
	var resp struct {
		States []string `json:"states"`
	}
	if err := c.do(ctx, "states", http.MethodGet, "/states", nil, &resp); err != nil {
		return nil, err
	}

	return resp.States, nil
}

func (c *Client) Districts(ctx context.Context, state string) ([]string, error) {
	var resp struct {
		Districts []string `json:"districts"`
	}
	path := "/districts/" + url.PathEscape(state)
	if err := c.do(ctx, "districts", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Districts, nil
}

func (c *Client) Crops(ctx context.Context) ([]string, error) {
	var resp struct {
		Crops []string `json:"crops"`
	}
	if err := c.do(ctx, "crops", http.MethodGet, "/crops", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Crops, nil
}

func (c *Client) SoilTypes(ctx context.Context) ([]domain.SoilType, error) {
	var resp struct {
		SoilTypes []domain.SoilType `json:"soilTypes"`
	}
	if err := c.do(ctx, "soil types", http.MethodGet, "/soil-types", nil, &resp); err != nil {
		return nil, err
	}

	return resp.SoilTypes, nil
}

func (c *Client) PredictYield(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResult, error) {
	var resp domain.PredictionResult
	if err := c.do(ctx, "predict yield", http.MethodPost, "/predict-yield", req, &resp); err != nil {
		return domain.PredictionResult{}, err
	}

	return resp, nil
}

func (c *Client) MyPredictions(ctx context.Context) ([]domain.PredictionRecord, error) {
	var resp struct {
		Predictions []predictionRecordSchema `json:"predictions"`
	}
	if err := c.do(ctx, "my predictions", http.MethodGet, "/my-predictions", nil, &resp); err != nil {
		return nil, err
	}

	records := make([]domain.PredictionRecord, 0, len(resp.Predictions))
	for _, entry := range resp.Predictions {
		records = append(records, entry.toDomain())
	}

	return records, nil
}

func (c *Client) Weather(ctx context.Context, lat, lon float64) (domain.Weather, error) {
	var resp domain.Weather
	path := fmt.Sprintf("/weather/%g/%g", lat, lon)
	if err := c.do(ctx, "weather", http.MethodGet, path, nil, &resp); err != nil {
		return domain.Weather{}, err
	}

	return resp, nil
}

func (c *Client) Chat(ctx context.Context, message string, language domain.Language) (domain.ChatReply, error) {
	var resp struct {
		Response        string   `json:"response"`
		Language        string   `json:"language"`
		Recommendations []string `json:"recommendations"`
	}
	err := c.do(ctx, "chat", http.MethodPost, "/chat", map[string]string{
		"message":  message,
		"language": string(language),
	}, &resp)
	if err != nil {
		return domain.ChatReply{}, err
	}

	return domain.ChatReply{
		Response:        resp.Response,
		Language:        domain.Language(resp.Language),
		Recommendations: resp.Recommendations,
	}, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request body: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(requestCtx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := c.credentials.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &domain.RequestError{Kind: domain.KindNetwork, Op: op, Err: err}
	}
	defer func() { _ = response.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return &domain.RequestError{Kind: domain.KindNetwork, Op: op, Err: err}
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return &domain.RequestError{
			Kind:   kindForStatus(response.StatusCode),
			Op:     op,
			Detail: decodeErrorDetail(payload),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}

func kindForStatus(status int) domain.RequestErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.KindUnauthorized
	case status >= 400 && status < 500:
		return domain.KindValidation
	default:
		return domain.KindServer
	}
}

// decodeErrorDetail extracts the server-provided message from an error
// body shaped {"detail": "..."}; it falls back to the raw body.
func decodeErrorDetail(payload []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Detail != "" {
		return body.Detail
	}

	return strings.TrimSpace(string(payload))
}
