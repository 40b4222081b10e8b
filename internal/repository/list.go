package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Clark-Hu/movie-space/internal/domain"
	"github.com/Clark-Hu/movie-space/internal/store"
)

// ListRepository persists one ordered movie list as a JSON array.
type ListRepository struct {
	backend store.Backend
	key     string
	limit   int
	logger  *log.Logger
}

// Load returns the stored list. Missing, unreadable and corrupt data all
// yield an empty list; the cause is logged.
func (r *ListRepository) Load(ctx context.Context) []domain.MovieSummary {
	raw, err := r.backend.Get(ctx, r.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.logger.Printf("repository: load %s: %v", r.key, err)
		}
		return []domain.MovieSummary{}
	}

	var items []domain.MovieSummary
	if err := json.Unmarshal(raw, &items); err != nil {
		r.logger.Printf("repository: %s is corrupt, starting empty: %v", r.key, err)
		return []domain.MovieSummary{}
	}
	if items == nil {
		items = []domain.MovieSummary{}
	}
	if r.limit > 0 && len(items) > r.limit {
		items = items[:r.limit]
	}
	return items
}

// Save overwrites the stored list.
func (r *ListRepository) Save(ctx context.Context, items []domain.MovieSummary) error {
	if items == nil {
		items = []domain.MovieSummary{}
	}
	if r.limit > 0 && len(items) > r.limit {
		items = items[:r.limit]
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.backend.Put(ctx, r.key, payload); err != nil {
		return fmt.Errorf("save %s: %w", r.key, err)
	}
	return nil
}
