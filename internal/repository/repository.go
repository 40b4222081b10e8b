package repository

import (
	"log"

	"github.com/Clark-Hu/movie-space/internal/domain"
	"github.com/Clark-Hu/movie-space/internal/store"
)

// Keys under which user state is persisted.
const (
	KeyBookmarks  = "bookmarks"
	KeyHistory    = "history"
	KeyCredential = "tmdb_api_key"
)

// Repository aggregates all user-state repositories.
type Repository struct {
	Bookmarks  *ListRepository
	History    *ListRepository
	Credential *CredentialRepository
}

// New constructs a Repository backed by the provided store.
func New(backend store.Backend, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.Default()
	}
	return &Repository{
		Bookmarks:  &ListRepository{backend: backend, key: KeyBookmarks, logger: logger},
		History:    &ListRepository{backend: backend, key: KeyHistory, limit: domain.HistoryLimit, logger: logger},
		Credential: &CredentialRepository{backend: backend, logger: logger},
	}
}
