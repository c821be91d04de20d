package gormstore

import (
	"context"
	"time"

	"github.com/Ashmit12092000/ems/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var rosterConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
	DoUpdates: clause.AssignmentColumns([]string{"shift_type"}),
}

func (s *Store) rosterQuery(ctx context.Context) *gorm.DB {
	return s.conn(ctx).
		Model(&domain.RosterEntry{}).
		Select("duty_roster.*, users.username AS username").
		Joins("JOIN users ON users.id = duty_roster.user_id")
}

func (s *Store) FindRosterEntry(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.RosterEntry, error) {
	var e domain.RosterEntry
	err := s.conn(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Take(&e).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (s *Store) ListRosterByDate(ctx context.Context, date time.Time) ([]domain.RosterEntry, error) {
	var out []domain.RosterEntry
	err := s.rosterQuery(ctx).
		Where("duty_roster.date = ?", date).
		Order("users.username ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ListRosterByRange(ctx context.Context, userID *uuid.UUID, from, to time.Time) ([]domain.RosterEntry, error) {
	q := s.rosterQuery(ctx).
		Where("duty_roster.date >= ? AND duty_roster.date <= ?", from, to).
		Order("duty_roster.date ASC, users.username ASC")
	if userID != nil {
		q = q.Where("duty_roster.user_id = ?", *userID)
	}

	var out []domain.RosterEntry
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpsertRosterEntry(ctx context.Context, e *domain.RosterEntry) error {
	return s.conn(ctx).Clauses(rosterConflict).Create(e).Error
}

// ReplaceRosterDay deletes every entry on date and writes entries. When the
// store is already bound to a transaction gorm nests with a savepoint.
func (s *Store) ReplaceRosterDay(ctx context.Context, date time.Time, entries []domain.RosterEntry) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date = ?", date).Delete(&domain.RosterEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		rows := make([]domain.RosterEntry, len(entries))
		for i, e := range entries {
			rows[i] = domain.RosterEntry{UserID: e.UserID, Date: date, ShiftType: e.ShiftType}
		}
		return tx.Clauses(rosterConflict).Create(&rows).Error
	})
}

func (s *Store) UpdateRosterShift(ctx context.Context, userID uuid.UUID, date time.Time, expectedShift, nextShift string) error {
	res := s.conn(ctx).Model(&domain.RosterEntry{}).
		Where("user_id = ? AND date = ? AND shift_type = ?", userID, date, expectedShift).
		Update("shift_type", nextShift)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.staleOrMissing(ctx, &domain.RosterEntry{}, "user_id = ? AND date = ?", userID, date)
	}
	return nil
}
