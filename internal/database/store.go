package database

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/portfolio-backend/internal/config"
	"github.com/iliyamo/portfolio-backend/internal/repository"
)

// OpenStore opens the backend selected by cfg.Driver and prepares its
// indexes or tables. The caller owns the returned Store and must Close it.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (*repository.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := OpenMongo(ctx, cfg.MongoURL)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.DBName)
		ictx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := repository.NewMongoContactRepo(db).EnsureIndexes(ictx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return repository.NewMongoStore(client, db), nil

	case config.DriverMySQL:
		db, err := Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := repository.EnsureMySQLSchema(sctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure mysql schema: %w", err)
		}
		return repository.NewMySQLStore(db), nil

	case config.DriverMemory:
		return repository.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", repository.ErrUnknownDriver, cfg.Driver)
}
