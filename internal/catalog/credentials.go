package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// CredentialStore persists the user supplied API key override.
type CredentialStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, value string) error
	Clear(ctx context.Context) error
}

// Credentials holds the API key shared by the client and the dashboard. The
// persisted override wins over the built-in default.
type Credentials struct {
	mu       sync.RWMutex
	store    CredentialStore
	fallback string
	override string
}

// NewCredentials returns credentials backed by store. A nil store keeps the
// override in memory only.
func NewCredentials(store CredentialStore, fallback string) *Credentials {
	return &Credentials{store: store, fallback: strings.TrimSpace(fallback)}
}

// Load reads the persisted override. It is called once at startup.
func (c *Credentials) Load(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	value, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	c.mu.Lock()
	c.override = strings.TrimSpace(value)
	c.mu.Unlock()
	return nil
}

// Value returns the key to send upstream, or "" when none is configured.
func (c *Credentials) Value() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.override != "" {
		return c.override
	}
	return c.fallback
}

// Available reports whether a key is configured.
func (c *Credentials) Available() bool {
	return c.Value() != ""
}

// Set stores a new override. A blank value clears it.
func (c *Credentials) Set(ctx context.Context, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return c.Clear(ctx)
	}
	if c.store != nil {
		if err := c.store.Save(ctx, value); err != nil {
			return fmt.Errorf("save credential: %w", err)
		}
	}
	c.mu.Lock()
	c.override = value
	c.mu.Unlock()
	return nil
}

// Clear drops the override so the built-in default applies again.
func (c *Credentials) Clear(ctx context.Context) error {
	if c.store != nil {
		if err := c.store.Clear(ctx); err != nil {
			return fmt.Errorf("clear credential: %w", err)
		}
	}
	c.mu.Lock()
	c.override = ""
	c.mu.Unlock()
	return nil
}
