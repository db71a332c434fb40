package remote

import (
	"context"
	"fmt"

	"cathode/internal/config"
)

// Environment variables holding static S3 credentials.
const (
	EnvS3AccessKeyID     = "CATHODE_S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "CATHODE_S3_SECRET_ACCESS_KEY"
)

// NewRemoteFromConfig creates a Remote implementation based on the remote config type.
// getenv is consulted for credentials that do not belong in the config file.
func NewRemoteFromConfig(ctx context.Context, cfg config.RemoteConfig, getenv func(string) string) (Remote, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryRemote(cfg.Name), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem remote requires fs_root to be set")
		}
		r, err := NewFileSystemRemote(cfg.Name, cfg.FSRoot)
		if err != nil {
			return nil, err
		}
		return r, nil
	case "s3":
		r, err := NewS3Remote(ctx, cfg.Name, S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			Profile:         cfg.S3Profile,
			AccessKeyID:     getenv(EnvS3AccessKeyID),
			SecretAccessKey: getenv(EnvS3SecretAccessKey),
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown remote type: %s", cfg.Type)
	}
}
