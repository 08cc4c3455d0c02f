package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/harvestguru/hg-cli/internal/adapters/api"
	credchain "github.com/harvestguru/hg-cli/internal/adapters/credentials/chain"
	credfile "github.com/harvestguru/hg-cli/internal/adapters/credentials/file"
	credpass "github.com/harvestguru/hg-cli/internal/adapters/credentials/pass"
	historytoml "github.com/harvestguru/hg-cli/internal/adapters/history/toml"
	"github.com/harvestguru/hg-cli/internal/application"
	"github.com/harvestguru/hg-cli/internal/ports"
)

const (
	configName        = "config"
	configType        = "toml"
	configDir         = ".harvestguru"
	baseURLKey        = "api.base_url"
	sessionPathKey    = "session.path"
	sessionBackendKey = "session.backend"
	passEntryKey      = "session.pass_entry"
	historyPathKey    = "history.path"
	defaultBaseURL    = "https://api.harvestguru.in/api"
	defaultPassEntry  = "harvestguru/session"

	backendFile = "file"
	backendPass = "pass"
	backendAuto = "auto"
)

type app struct {
	gateway  ports.Gateway
	sessions *application.SessionService
	refs     *application.ReferenceCache
	history  ports.PredictionHistory
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := wireCredentialStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire credential store: %w", err)
	}

	history, err := historytoml.NewRepository(cfg.GetString(historyPathKey))
	if err != nil {
		return nil, fmt.Errorf("wire prediction history: %w", err)
	}

	creds := application.NewCredentialHolder()
	gateway := api.NewClient(cfg.GetString(baseURLKey), http.DefaultClient, creds)

	return &app{
		gateway:  gateway,
		sessions: application.NewSessionService(gateway, store, creds),
		refs:     application.NewReferenceCache(gateway),
		history:  history,
	}, nil
}

func wireCredentialStore(cfg *viper.Viper) (ports.CredentialStore, error) {
	sessionPath := cfg.GetString(sessionPathKey)
	passEntry := cfg.GetString(passEntryKey)

	switch backend := cfg.GetString(sessionBackendKey); backend {
	case backendFile:
		return credfile.NewStore(sessionPath)
	case backendPass:
		return credpass.NewStore(passEntry), nil
	case backendAuto:
		return credchain.NewPassFirstWithFileFallback(passEntry, sessionPath)
	default:
		return nil, fmt.Errorf("unknown session backend %q (expected %s, %s or %s)",
			backend, backendFile, backendPass, backendAuto)
	}
}

func loadConfig() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetDefault(baseURLKey, envOrDefault("HG_API_BASE_URL", defaultBaseURL))
	cfg.SetDefault(sessionPathKey, filepath.Join(homeDir, configDir, "session.toml"))
	cfg.SetDefault(sessionBackendKey, backendFile)
	cfg.SetDefault(passEntryKey, defaultPassEntry)
	cfg.SetDefault(historyPathKey, filepath.Join(homeDir, configDir, "history.toml"))

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
