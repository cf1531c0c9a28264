package database

import (
	"time"

	"github.com/lockward/lockward/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a session id does not exist
var ErrNotFound = errors.New("lock session not found")

// Repository handles all database operations for lock history
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// StartSession inserts a new lock session
func (r *Repository) StartSession(session *models.LockSession) error {
	result := r.db.Create(session)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert lock session")
	}
	return nil
}

// MarkLocked records when the session started requiring a password. Only
// the first call has an effect.
func (r *Repository) MarkLocked(id uint, at time.Time) error {
	result := r.db.Model(&models.LockSession{}).
		Where("id = ? AND locked_at IS NULL", id).
		Update("locked_at", at)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark session locked")
	}
	return nil
}

// EndSession records when the session was unlocked
func (r *Repository) EndSession(id uint, at time.Time) error {
	result := r.db.Model(&models.LockSession{}).Where("id = ?", id).Update("ended_at", at)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to end session")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// EndDangling closes sessions left open by a previous run and returns how
// many there were
func (r *Repository) EndDangling(at time.Time) (int64, error) {
	result := r.db.Model(&models.LockSession{}).Where("ended_at IS NULL").Update("ended_at", at)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to end dangling sessions")
	}
	return result.RowsAffected, nil
}

// RecordAttempt stores an authentication outcome and counts failures on
// its session
func (r *Repository) RecordAttempt(attempt *models.AuthAttempt) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return errors.Wrap(err, "failed to insert auth attempt")
		}
		if attempt.Success || attempt.SessionID == 0 {
			return nil
		}
		err := tx.Model(&models.LockSession{}).
			Where("id = ?", attempt.SessionID).
			Update("failed_attempts", gorm.Expr("failed_attempts + 1")).Error
		return errors.Wrap(err, "failed to count failed attempt")
	})
}

// GetSession retrieves a lock session and its attempts
func (r *Repository) GetSession(id uint) (*models.LockSession, error) {
	var session models.LockSession
	result := r.db.Preload("Attempts").First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get lock session")
	}
	return &session, nil
}

// GetSessionsSince retrieves sessions started at or after since, plus a
// session still running from before it
func (r *Repository) GetSessionsSince(since time.Time) ([]*models.LockSession, error) {
	var sessions []*models.LockSession
	result := r.db.
		Where("started_at >= ? OR ended_at IS NULL OR ended_at >= ?", since, since).
		Order("started_at ASC").
		Find(&sessions)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query lock sessions")
	}

	return sessions, nil
}

// GetLatest retrieves the most recent lock session
func (r *Repository) GetLatest() (*models.LockSession, error) {
	var session models.LockSession
	result := r.db.Order("started_at DESC").First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest session")
	}
	return &session, nil
}

// CreateErrorLog inserts a new error log into the database
func (r *Repository) CreateErrorLog(errorLog *models.ErrorLog) error {
	result := r.db.Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// GetErrorsSince retrieves error logs since a given time
func (r *Repository) GetErrorsSince(since time.Time) ([]*models.ErrorLog, error) {
	var logs []*models.ErrorLog
	result := r.db.Where("timestamp >= ?", since).Order("timestamp ASC").Find(&logs)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query error logs")
	}
	return logs, nil
}

// Clear removes all lock history from the database
func (r *Repository) Clear() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM auth_attempts").Error; err != nil {
			return errors.Wrap(err, "failed to clear auth attempts")
		}
		if err := tx.Exec("DELETE FROM lock_sessions").Error; err != nil {
			return errors.Wrap(err, "failed to clear lock sessions")
		}
		return nil
	})
}
