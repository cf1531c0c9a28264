package models

import (
	"time"

	"gorm.io/gorm"
)

// Lock session triggers.
const (
	TriggerIdle    = "idle"
	TriggerLogind  = "logind"
	TriggerDBus    = "dbus"
	TriggerSignal  = "signal"
	TriggerSuspend = "suspend"
)

type LockSession struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	StartedAt      time.Time      `gorm:"not null;index" json:"started_at"`
	LockedAt       *time.Time     `json:"locked_at,omitempty"`
	EndedAt        *time.Time     `gorm:"index" json:"ended_at,omitempty"`
	Screens        int            `gorm:"not null;default:0" json:"screens"`
	FailedAttempts int            `gorm:"not null;default:0" json:"failed_attempts"`
	Trigger        string         `gorm:"not null;index" json:"trigger"`
	Attempts       []AuthAttempt  `gorm:"foreignKey:SessionID" json:"attempts,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// LockedDuration is the time the session spent locked, up to now when it
// has not ended yet.
func (s *LockSession) LockedDuration(now time.Time) time.Duration {
	if s.LockedAt == nil {
		return 0
	}
	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	if end.Before(*s.LockedAt) {
		return 0
	}
	return end.Sub(*s.LockedAt)
}

// AuthAttempt records the outcome of one password submission. The password
// itself is never stored.
type AuthAttempt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"index" json:"session_id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Success   bool      `gorm:"not null;default:false" json:"success"`
	Method    string    `json:"method,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // "day", "week", "month"
}

type TriggerSummary struct {
	Trigger  string `json:"trigger"`
	Sessions int    `json:"sessions"`
}

type Report struct {
	Period         ReportPeriod     `json:"period"`
	Sessions       int              `json:"sessions"`
	Locked         int              `json:"locked"`
	LockedSeconds  int64            `json:"locked_seconds"`
	LockedHours    float64          `json:"locked_hours"`
	FailedAttempts int              `json:"failed_attempts"`
	Triggers       []TriggerSummary `json:"triggers"`
	Longest        int64            `json:"longest_seconds"`
	GeneratedAt    time.Time        `json:"generated_at"`
}
