package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		entry: "harvestguru/session",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", "harvestguru/session"}, args)
			assert.Equal(t, "tok-123\n", input)
			return "", "", nil
		},
	}

	err := store.Save(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestStoreLoadUsesPassShowAndTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		entry: "harvestguru/session",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "harvestguru/session"}, args)
			assert.Empty(t, input)
			return "tok-123\n", "", nil
		},
	}

	token, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestStoreLoadMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		entry: "harvestguru/session",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: harvestguru/session is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreClearIgnoresMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		entry: "harvestguru/session",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", "harvestguru/session"}, args)
			return "", "Error: harvestguru/session is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Clear(context.Background()))
}

func TestStoreLoadReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		entry: "harvestguru/session",
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass load")
	assert.ErrorContains(t, err, "harvestguru/session")
	assert.ErrorContains(t, err, "gpg: decryption failed")
}

func TestStoreSaveRejectsBlankToken(t *testing.T) {
	t.Parallel()

	store := NewStore("")
	assert.Equal(t, defaultEntry, store.entry)

	err := store.Save(context.Background(), "  ")
	require.Error(t, err)
}
