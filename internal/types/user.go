package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username          string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email             string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password          string    `gorm:"not null;column:password" json:"-"`
	FirstName         string    `gorm:"column:first_name" json:"first_name"`
	PreferredLanguage string    `gorm:"column:preferred_language" json:"preferred_language"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
