package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/slashdevops/hwseed"
	"github.com/slashdevops/hwseed/internal/config"
	"github.com/slashdevops/hwseed/store/file"
	"github.com/slashdevops/hwseed/store/postgres"
	"github.com/slashdevops/hwseed/store/s3"
	"github.com/slashdevops/hwseed/store/sqlite"
)

// openStore builds the backend selected by cfg.
func openStore(ctx context.Context, cfg config.Config) (hwseed.Store, error) {
	switch strings.ToLower(cfg.Store) {
	case config.StoreMemory:
		return hwseed.NewMemoryStore(), nil
	case config.StoreFile:
		return file.New(cfg.StorePath)
	case config.StoreSQLite:
		return sqlite.New(ctx, cfg.StorePath)
	case config.StorePostgres:
		return postgres.New(ctx, cfg.PostgresDSN)
	case config.StoreS3:
		return s3.New(ctx, s3.Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Key:       cfg.S3Key,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unsupported store %q", cfg.Store)
	}
}
