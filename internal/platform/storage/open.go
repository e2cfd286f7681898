package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hrconnect/internal/platform/crypto"
	"hrconnect/internal/platform/db"
)

type Options struct {
	Backend     string
	FilePath    string
	Redis       RedisConfig
	DatabaseURL string
	// EncryptionKey, when set, seals every value at rest.
	EncryptionKey string
}

// Open builds the backend named by opts.Backend.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := openBackend(ctx, opts, logger)
	if err != nil || opts.EncryptionKey == "" {
		return store, err
	}
	sealer, err := crypto.NewSealer(opts.EncryptionKey)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("session encryption: %w", err)
	}
	return NewSealed(store, sealer), nil
}

func openBackend(ctx context.Context, opts Options, logger *zap.Logger) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(opts.FilePath)
	case BackendRedis:
		return NewRedis(ctx, opts.Redis, logger)
	case BackendPostgres:
		pool, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.Migrate(ctx, pool, logger.Named("migrate")); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		logger.Info("connected to postgres")
		return NewPostgres(pool), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
