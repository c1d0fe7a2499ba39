package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Task is one generated suggestion for a (user, date) pair. A day's tasks are
// written as a single batch; the unique index on (user_id, date, position)
// rejects a second batch for the same key, which is how a racing generation
// loses cleanly at the persistence layer.
type Task struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                   `gorm:"not null;uniqueIndex:idx_task_user_date_position" json:"user_id"`
	User             *User                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Date             time.Time                   `gorm:"type:date;not null;uniqueIndex:idx_task_user_date_position" json:"date"`
	Position         int                         `gorm:"not null;uniqueIndex:idx_task_user_date_position" json:"position"`
	Slug             string                      `gorm:"column:slug" json:"slug"`
	Title            string                      `gorm:"not null;column:title" json:"title"`
	Description      string                      `gorm:"column:description" json:"description"`
	Tags             datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	EstimatedMinutes int                         `gorm:"not null;column:estimated_minutes" json:"estimated_minutes"`
	Completed        bool                        `gorm:"not null;default:false;column:completed" json:"completed"`
	CreatedAt        time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time                   `gorm:"not null" json:"updated_at"`
}

func (Task) TableName() string {
	return "task"
}

// DateOnly normalizes t to a midnight-UTC calendar date. Every Date stored on
// a Task goes through this so that equality checks against the unique index
// behave.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
