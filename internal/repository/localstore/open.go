package localstore

import (
	"context"
	"fmt"
	"log"

	"balaji-storefront/internal/config"
	"balaji-storefront/internal/db"
)

// Open builds the Repository selected by cfg.StorageDriver. The returned
// close func releases any pooled connections.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (Repository, func(), error) {
	noop := func() {}
	switch cfg.StorageDriver {
	case "", "memory":
		return NewMemory(), noop, nil
	case "file":
		repo, err := NewFile(cfg.StorageDir)
		if err != nil {
			return nil, noop, err
		}
		return repo, noop, nil
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, noop, fmt.Errorf("connect to db: %w", err)
		}
		return NewPostgres(pool, logger), pool.Close, nil
	case "mongo":
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, noop, fmt.Errorf("connect to mongo: %w", err)
		}
		database := client.Database(cfg.MongoDatabase)
		if err := EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, noop, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return NewMongo(database, logger), closeFn, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
