package ports

import "context"

// CredentialStore persists the single bearer credential between runs.
// Load returns domain.ErrCredentialNotFound when nothing is stored.
type CredentialStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
