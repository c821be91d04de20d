package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ashmit12092000/ems/internal/config"
	"github.com/Ashmit12092000/ems/internal/shared/connection"
	"github.com/Ashmit12092000/ems/internal/store"
	"github.com/Ashmit12092000/ems/internal/store/gormstore"
	"github.com/Ashmit12092000/ems/internal/store/sqlstore"

	"go.uber.org/zap"
)

// storage is the selected store adapter plus the *sql.DB services open
// transactions on.
type storage struct {
	db    *sql.DB
	store store.Store
	close func()
}

func openStorage(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*storage, error) {
	switch cfg.Driver {
	case config.DriverSQL:
		pool, err := connection.ConnectPGXWithRetry(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		db := sqlstore.OpenDB(pool)
		return &storage{
			db:    db,
			store: sqlstore.New(db),
			close: func() {
				_ = db.Close()
				pool.Close()
			},
		}, nil

	case config.DriverGORM:
		gormDB, err := connection.ConnectGORMWithRetry(cfg, logger)
		if err != nil {
			return nil, err
		}
		db, err := gormDB.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql.DB from gorm: %w", err)
		}
		return &storage{
			db:    db,
			store: gormstore.New(gormDB),
			close: func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

// openStorageMigrated opens storage and applies migrations when enabled.
func openStorageMigrated(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*storage, error) {
	s, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := store.RunMigrations(s.db, logger.Named("migrate")); err != nil {
			s.close()
			return nil, err
		}
	}
	return s, nil
}
