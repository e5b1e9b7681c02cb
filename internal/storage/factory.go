package storage

import (
	"context"
	"fmt"
)

type Config struct {
	Driver          string
	LocalDir        string
	LocalURLPrefix  string
	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

type FactoryResult struct {
	Driver  string
	Storage Storage
}

func FromConfig(ctx context.Context, cfg Config) (FactoryResult, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "local"
	}

	switch driver {
	case "local":
		baseDir := or(cfg.LocalDir, "./storage/uploads")
		urlPrefix := or(cfg.LocalURLPrefix, "/uploads")
		return FactoryResult{Driver: "local", Storage: NewLocal(baseDir, urlPrefix)}, nil

	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3PublicBaseURL == "" {
			return FactoryResult{}, fmt.Errorf("S3 config missing: S3_REGION, S3_BUCKET, S3_PUBLIC_BASE_URL required")
		}
		s, err := NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        or(cfg.S3Prefix, "uploads"),
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "s3", Storage: s}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown STORAGE_DRIVER: %s", driver)
	}
}

func or(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
