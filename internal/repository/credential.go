package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Clark-Hu/movie-space/internal/store"
)

// CredentialRepository persists the user's API key override.
type CredentialRepository struct {
	backend store.Backend
	logger  *log.Logger
}

// Load returns the stored key, or "" when none is stored or the stored value
// cannot be decoded.
func (r *CredentialRepository) Load(ctx context.Context) (string, error) {
	raw, err := r.backend.Get(ctx, KeyCredential)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load credential: %w", err)
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		r.logger.Printf("repository: stored credential is corrupt, ignoring: %v", err)
		return "", nil
	}
	return value, nil
}

// Save stores the key.
func (r *CredentialRepository) Save(ctx context.Context, value string) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	if err := r.backend.Put(ctx, KeyCredential, payload); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Clear removes the stored key.
func (r *CredentialRepository) Clear(ctx context.Context) error {
	if err := r.backend.Delete(ctx, KeyCredential); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
