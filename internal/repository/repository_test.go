package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/movie-space/internal/catalog"
	"github.com/Clark-Hu/movie-space/internal/domain"
	"github.com/Clark-Hu/movie-space/internal/store"
)

var _ catalog.CredentialStore = (*CredentialRepository)(nil)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func movies(ids ...int) []domain.MovieSummary {
	out := make([]domain.MovieSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.MovieSummary{ID: id, Title: fmt.Sprintf("Movie %d", id), GenreIDs: []int{}})
	}
	return out
}

func TestListRoundTripThroughFreshRepository(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()

	first := New(backend, quietLogger())
	require.NoError(t, first.Bookmarks.Save(ctx, movies(3, 1, 2)))
	require.NoError(t, first.History.Save(ctx, movies(9, 8)))

	second := New(backend, quietLogger())
	assert.Equal(t, movies(3, 1, 2), second.Bookmarks.Load(ctx))
	assert.Equal(t, movies(9, 8), second.History.Load(ctx))
}

func TestListLoadMissingIsEmpty(t *testing.T) {
	repo := New(store.NewMemory(), quietLogger())
	got := repo.Bookmarks.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListLoadCorruptIsEmpty(t *testing.T) {
	ctx := context.Background()
	tests := []string{`{not json`, `{"id":1}`, `"text"`, `null`}
	for _, payload := range tests {
		t.Run(payload, func(t *testing.T) {
			backend := store.NewMemory()
			require.NoError(t, backend.Put(ctx, KeyBookmarks, []byte(payload)))

			got := New(backend, quietLogger()).Bookmarks.Load(ctx)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestHistorySaveTrimsToLimit(t *testing.T) {
	ctx := context.Background()
	ids := make([]int, 0, domain.HistoryLimit+5)
	for i := 0; i < domain.HistoryLimit+5; i++ {
		ids = append(ids, i+1)
	}
	repo := New(store.NewMemory(), quietLogger())
	require.NoError(t, repo.History.Save(ctx, movies(ids...)))

	got := repo.History.Load(ctx)
	require.Len(t, got, domain.HistoryLimit)
	assert.Equal(t, 1, got[0].ID)
}

type failingBackend struct {
	store.Backend
	err error
}

func (f failingBackend) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingBackend) Put(context.Context, string, []byte) error  { return f.err }
func (f failingBackend) Delete(context.Context, string) error       { return f.err }

func TestBackendFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	repo := New(failingBackend{err: boom}, quietLogger())

	assert.Empty(t, repo.Bookmarks.Load(ctx))
	assert.ErrorIs(t, repo.Bookmarks.Save(ctx, movies(1)), boom)

	_, err := repo.Credential.Load(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, repo.Credential.Save(ctx, "k"), boom)
	assert.ErrorIs(t, repo.Credential.Clear(ctx), boom)
}

func TestCredentialRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	repo := New(backend, quietLogger())

	value, err := repo.Credential.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, repo.Credential.Save(ctx, "abc123"))
	value, err = New(backend, quietLogger()).Credential.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", value)

	require.NoError(t, repo.Credential.Clear(ctx))
	value, err = repo.Credential.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestCredentialsUseRepository(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	creds := catalog.NewCredentials(New(backend, quietLogger()).Credential, "builtin")
	require.NoError(t, creds.Load(ctx))
	assert.Equal(t, "builtin", creds.Value())

	require.NoError(t, creds.Set(ctx, "  user-key  "))
	reloaded := catalog.NewCredentials(New(backend, quietLogger()).Credential, "builtin")
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, "user-key", reloaded.Value())

	require.NoError(t, reloaded.Set(ctx, ""))
	assert.Equal(t, "builtin", reloaded.Value())
	_, err := backend.Get(ctx, KeyCredential)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
