package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	loadFn  func(ctx context.Context) (string, error)
	saveFn  func(ctx context.Context, token string) error
	clearFn func(ctx context.Context) error
}

func (s *stubStore) Load(ctx context.Context) (string, error) {
	if s.loadFn == nil {
		return "", errors.New("load not configured")
	}
	return s.loadFn(ctx)
}

func (s *stubStore) Save(ctx context.Context, token string) error {
	if s.saveFn == nil {
		return errors.New("save not configured")
	}
	return s.saveFn(ctx, token)
}

func (s *stubStore) Clear(ctx context.Context) error {
	if s.clearFn == nil {
		return errors.New("clear not configured")
	}
	return s.clearFn(ctx)
}

func TestStoreLoadUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	fallbackCalled := false
	store, err := NewStore(
		&stubStore{loadFn: func(context.Context) (string, error) { return "from-pass", nil }},
		&stubStore{loadFn: func(context.Context) (string, error) {
			fallbackCalled = true
			return "", nil
		}},
	)
	require.NoError(t, err)

	token, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-pass", token)
	assert.False(t, fallbackCalled)
}

func TestStoreLoadFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, err := NewStore(
		&stubStore{loadFn: func(context.Context) (string, error) { return "", errors.New("pass unavailable") }},
		&stubStore{loadFn: func(context.Context) (string, error) { return "from-file", nil }},
	)
	require.NoError(t, err)

	token, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-file", token)
}

func TestStoreLoadCombinesBothFailures(t *testing.T) {
	t.Parallel()

	store, err := NewStore(
		&stubStore{loadFn: func(context.Context) (string, error) { return "", errors.New("pass failed") }},
		&stubStore{loadFn: func(context.Context) (string, error) { return "", errors.New("file failed") }},
	)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStoreLoadMissingInBothBackendsIsNotFound(t *testing.T) {
	t.Parallel()

	store, err := NewStore(
		&stubStore{loadFn: func(context.Context) (string, error) { return "", domain.ErrCredentialNotFound }},
		&stubStore{loadFn: func(context.Context) (string, error) { return "", domain.ErrCredentialNotFound }},
	)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestStoreSaveFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	var saved string
	store, err := NewStore(
		&stubStore{saveFn: func(context.Context, string) error { return errors.New("pass failed") }},
		&stubStore{saveFn: func(_ context.Context, token string) error {
			saved = token
			return nil
		}},
	)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "tok-123"))
	assert.Equal(t, "tok-123", saved)
}

func TestStoreSaveSkipsFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	fallbackCalled := false
	store, err := NewStore(
		&stubStore{saveFn: func(context.Context, string) error { return nil }},
		&stubStore{saveFn: func(context.Context, string) error {
			fallbackCalled = true
			return nil
		}},
	)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "tok-123"))
	assert.False(t, fallbackCalled)
}

func TestStoreClearRemovesFromBothBackends(t *testing.T) {
	t.Parallel()

	var primaryCleared, fallbackCleared bool
	store, err := NewStore(
		&stubStore{clearFn: func(context.Context) error {
			primaryCleared = true
			return nil
		}},
		&stubStore{clearFn: func(context.Context) error {
			fallbackCleared = true
			return nil
		}},
	)
	require.NoError(t, err)

	require.NoError(t, store.Clear(context.Background()))
	assert.True(t, primaryCleared)
	assert.True(t, fallbackCleared)
}

func TestStoreClearStillClearsFallbackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	fallbackCleared := false
	store, err := NewStore(
		&stubStore{clearFn: func(context.Context) error { return errors.New("pass failed") }},
		&stubStore{clearFn: func(context.Context) error {
			fallbackCleared = true
			return nil
		}},
	)
	require.NoError(t, err)

	err = store.Clear(context.Background())
	require.Error(t, err)
	assert.True(t, fallbackCleared)
}

func TestStoreLoadDoesNotFallBackOnCanceledContext(t *testing.T) {
	t.Parallel()

	fallbackCalled := false
	store, err := NewStore(
		&stubStore{loadFn: func(context.Context) (string, error) { return "", context.Canceled }},
		&stubStore{loadFn: func(context.Context) (string, error) {
			fallbackCalled = true
			return "", nil
		}},
	)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, fallbackCalled)
}

func TestNewStoreRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, &stubStore{})
	require.Error(t, err)

	_, err = NewStore(&stubStore{}, nil)
	require.Error(t, err)
}
