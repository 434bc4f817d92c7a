// Package backend wires the relational store and the object bucket into the
// handle used by pages and admin actions.
package backend

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/config"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/storage"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

// Client is the privileged server-side handle. Public pages should go
// through Public().
type Client struct {
	Store  *store.Store
	Bucket storage.Bucket
}

// Open connects to the database, applies migrations and opens the bucket.
func Open(ctx context.Context, cfg *config.Config) (*Client, error) {
	db, err := store.NewStore(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	bucket, err := OpenBucket(ctx, cfg.Storage)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Client{Store: db, Bucket: bucket}, nil
}

func OpenBucket(ctx context.Context, cfg config.StorageConfig) (storage.Bucket, error) {
	switch cfg.Backend {
	case "local":
		return storage.NewLocalBucket(cfg.Dir, cfg.PublicURL)
	case "gcs":
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		return storage.NewGCSBucket(ctx, cfg.Bucket, cfg.PublicURL, opts...)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Public returns the anonymous read-only view.
func (c *Client) Public() *store.PublicView {
	return c.Store.Public()
}

func (c *Client) Close() error {
	return c.Store.Close()
}
