package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/freshbreeze-api/internal/application/ports"
	"github.com/jhoicas/freshbreeze-api/pkg/config"
)

var (
	_ ports.ObjectStorage = (*LocalStorage)(nil)
	_ ports.ObjectStorage = (*R2Storage)(nil)
)

// New elige el driver según STORAGE_DRIVER (local por defecto).
func New(ctx context.Context, cfg config.StorageConfig) (ports.ObjectStorage, error) {
	switch cfg.Driver {
	case "", "local":
		path := cfg.UploadsPath
		if path == "" {
			path = "./uploads"
		}
		return NewLocalStorage(path, "/uploads"), nil
	case "r2":
		return NewR2Storage(ctx, R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			Bucket:          cfg.R2Bucket,
			PublicURL:       cfg.R2PublicURL,
		})
	default:
		return nil, fmt.Errorf("storage: driver no soportado: %s", cfg.Driver)
	}
}
