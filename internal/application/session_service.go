package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/harvestguru/hg-cli/internal/ports"
)

// SessionService owns the authentication lifecycle. It is the only
// writer of the shared credential holder and of the persisted
// credential store; all mutation happens through Login, Register,
// Resolve, and Logout.
type SessionService struct {
	gateway ports.Gateway
	store   ports.CredentialStore
	creds   *CredentialHolder

	mu      sync.Mutex
	session domain.Session
}

func NewSessionService(gateway ports.Gateway, store ports.CredentialStore, creds *CredentialHolder) *SessionService {
	if creds == nil {
		creds = NewCredentialHolder()
	}

	return &SessionService{
		gateway: gateway,
		store:   store,
		creds:   creds,
		session: domain.Session{Status: domain.SessionUnauthenticated},
	}
}

// Credentials exposes the holder so the gateway can be wired to read
// the latest token.
func (s *SessionService) Credentials() *CredentialHolder {
	return s.creds
}

// Current returns a snapshot of the session state.
func (s *SessionService) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Login exchanges credentials for a bearer token. On failure the prior
// session state is left untouched; there is no retry.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	token, user, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return s.Current(), fmt.Errorf("login: %w", err)
	}

	return s.adopt(ctx, token, user)
}

// Register provisions a new account and signs it in under the same
// contract as Login.
func (s *SessionService) Register(ctx context.Context, email, password, name, phone string) (domain.Session, error) {
	token, user, err := s.gateway.Register(ctx, email, password, name, phone)
	if err != nil {
		return s.Current(), fmt.Errorf("register: %w", err)
	}

	return s.adopt(ctx, token, user)
}

// Resolve restores a persisted credential at startup by fetching the
// current profile. Any failure clears the token and the persisted
// store: this is the only path that downgrades an apparently valid
// token.
func (s *SessionService) Resolve(ctx context.Context) (domain.Session, error) {
	token, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCredentialNotFound) {
			return s.setUnauthenticated(), nil
		}
		return s.setUnauthenticated(), fmt.Errorf("load persisted credential: %w", err)
	}
	if token == "" {
		return s.setUnauthenticated(), nil
	}

	s.mu.Lock()
	s.session = domain.Session{Token: token, Status: domain.SessionResolving}
	s.mu.Unlock()
	s.creds.Set(token)

	user, err := s.gateway.CurrentUser(ctx)
	if err != nil {
		// The token is now known bad. Mark the session invalid while it
		// is being torn down so concurrent readers never see it as
		// resolving, then settle on unauthenticated.
		s.mu.Lock()
		s.session = domain.Session{Token: token, Status: domain.SessionInvalid}
		s.mu.Unlock()

		s.creds.Clear()
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			err = errors.Join(err, clearErr)
		}
		session := s.setUnauthenticated()
		return session, fmt.Errorf("resolve session: %w", err)
	}

	s.mu.Lock()
	s.session = domain.Session{Token: token, User: &user, Status: domain.SessionAuthenticated}
	session := s.session
	s.mu.Unlock()

	return session, nil
}

// Logout clears the in-memory session, the shared credential, and the
// persisted store. It never fails: a store error only means the next
// Resolve will find a token the server no longer honors.
func (s *SessionService) Logout(ctx context.Context) {
	s.creds.Clear()
	_ = s.store.Clear(ctx)
	s.setUnauthenticated()
}

// adopt installs a freshly issued token. The credential holder is
// updated before the store write and before returning, so no request
// issued after adopt observes the old value.
func (s *SessionService) adopt(ctx context.Context, token string, user domain.User) (domain.Session, error) {
	s.creds.Set(token)

	s.mu.Lock()
	s.session = domain.Session{Token: token, User: &user, Status: domain.SessionAuthenticated}
	session := s.session
	s.mu.Unlock()

	if err := s.store.Save(ctx, token); err != nil {
		return session, fmt.Errorf("persist credential: %w", err)
	}

	return session, nil
}

func (s *SessionService) setUnauthenticated() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{Status: domain.SessionUnauthenticated}
	return s.session
}
