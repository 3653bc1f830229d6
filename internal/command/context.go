package command

import (
	"context"
	"fmt"

	"github.com/n1rna/paramschema/internal/config"
	"github.com/n1rna/paramschema/internal/storage"
)

type (
	configKey       struct{}
	profileStoreKey struct{}
)

// WithConfig returns a new context with the loaded configuration
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the configuration from the context
func GetConfig(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return nil
}

// WithProfileStore returns a new context with the profile store instance
func WithProfileStore(ctx context.Context, store *storage.ProfileStore) context.Context {
	return context.WithValue(ctx, profileStoreKey{}, store)
}

// GetProfileStore retrieves the profile store from the context
func GetProfileStore(ctx context.Context) *storage.ProfileStore {
	if store, ok := ctx.Value(profileStoreKey{}).(*storage.ProfileStore); ok {
		return store
	}
	return nil
}

// RequireProfileStore retrieves the profile store and returns an error if not found
func RequireProfileStore(ctx context.Context) (*storage.ProfileStore, error) {
	store := GetProfileStore(ctx)
	if store == nil {
		return nil, fmt.Errorf("profile storage not initialized")
	}
	return store, nil
}
