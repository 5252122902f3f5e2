package importer

import (
	"context"
	"fmt"

	"github.com/yigit/unicatalog/internal/config"
	"github.com/yigit/unicatalog/internal/pkg/filestorage"
)

// NewStorage opens the import source selected by cfg.Importer.Source.
func NewStorage(ctx context.Context, cfg *config.Config) (filestorage.FileStorage, error) {
	switch cfg.Importer.Source {
	case config.SourceDir:
		return filestorage.NewLocalStorage(cfg.Importer.Dir)
	case config.SourceS3:
		s3cfg := cfg.Importer.S3
		return filestorage.NewS3Storage(ctx, filestorage.S3Config{
			Bucket:          s3cfg.Bucket,
			Prefix:          s3cfg.Prefix,
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			PathStyle:       s3cfg.PathStyle,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unsupported importer source %q", cfg.Importer.Source)
	}
}
