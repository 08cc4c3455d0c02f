package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/harvestguru/hg-cli/internal/adapters/credentials/file"
	passstore "github.com/harvestguru/hg-cli/internal/adapters/credentials/pass"
	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/harvestguru/hg-cli/internal/ports"
)

// Store reads and writes the credential through a primary backend with
// a fallback. The fallback is consulted when the primary fails or has
// no credential, never on context cancellation.
type Store struct {
	primary  ports.CredentialStore
	fallback ports.CredentialStore
}

var _ ports.CredentialStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary credential store is nil")
	errNilFallbackStore = errors.New("fallback credential store is nil")
)

func NewStore(primary ports.CredentialStore, fallback ports.CredentialStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// NewPassFirstWithFileFallback prefers the pass password manager and
// falls back to the plain session file when pass is unavailable.
func NewPassFirstWithFileFallback(passEntry, filePath string) (*Store, error) {
	fileBackend, err := filestore.NewStore(filePath)
	if err != nil {
		return nil, err
	}

	return NewStore(passstore.NewStore(passEntry), fileBackend)
}

func (s *Store) Load(ctx context.Context) (string, error) {
	token, err := s.primary.Load(ctx)
	if err == nil {
		return token, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackToken, fallbackErr := s.fallback.Load(ctx)
	if fallbackErr == nil {
		return fallbackToken, nil
	}
	if errors.Is(err, domain.ErrCredentialNotFound) && errors.Is(fallbackErr, domain.ErrCredentialNotFound) {
		return "", domain.ErrCredentialNotFound
	}

	return "", fmt.Errorf("primary backend load failed: %w; fallback backend load failed: %w", err, fallbackErr)
}

func (s *Store) Save(ctx context.Context, token string) error {
	err := s.primary.Save(ctx, token)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Save(ctx, token)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend save failed: %w; fallback backend save failed: %w", err, fallbackErr)
}

// Clear removes the credential from both backends so that a logout
// leaves nothing behind regardless of where the token was written.
func (s *Store) Clear(ctx context.Context) error {
	primaryErr := s.primary.Clear(ctx)
	if shouldSkipFallback(primaryErr) {
		return primaryErr
	}

	fallbackErr := s.fallback.Clear(ctx)
	if primaryErr == nil && fallbackErr == nil {
		return nil
	}

	return errors.Join(primaryErr, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
