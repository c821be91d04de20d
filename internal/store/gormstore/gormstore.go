// Package gormstore implements store.Store with gorm on PostgreSQL.
package gormstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithTx returns a store whose statements run on tx. The session gets its
// own Statement so the parent handle keeps its pool.
func (s *Store) WithTx(tx *sql.Tx) store.Store {
	sess := s.db.Session(&gorm.Session{Context: context.Background(), NewDB: true})
	sess.Statement.ConnPool = tx
	return &Store{db: sess}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

// staleOrMissing tells a missing row apart from one whose guard column
// no longer matches.
func (s *Store) staleOrMissing(ctx context.Context, model any, where string, args ...any) error {
	var n int64
	if err := s.conn(ctx).Model(model).Where(where, args...).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return store.ErrStaleStatus
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
