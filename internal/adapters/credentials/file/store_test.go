package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "hg", "session.toml"))
	require.NoError(t, err)
	return store
}

func TestStoreSaveAndLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-123"))

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestStoreLoadMissingFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreSavePermissions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hg", "session.toml")
	store, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "tok-123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestStoreSaveOverwritesPrevious(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-old"))
	require.NoError(t, store.Save(ctx, "tok-new"))

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)
}

func TestStoreSaveRejectsBlankToken(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	err := store.Save(context.Background(), "   ")
	require.Error(t, err)
}

func TestStoreClearIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-123"))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreLoadRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 2\naccess_token = \"tok\"\n"), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported session schema version")
}

func TestStoreLoadEmptyTokenIsNotFound(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\naccess_token = \"\"\n"), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewStore("  ")
	require.Error(t, err)
}
