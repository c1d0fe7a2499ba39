package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	RatingMin = 1
	RatingMax = 5
)

// DailyState is one submission of the daily wellbeing survey. Users may
// submit more than once per day; the most recent submission wins when the
// pipeline resolves "today's state".
type DailyState struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"index;not null" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Satisfaction int       `gorm:"not null;column:satisfaction" json:"satisfaction"`
	Physical     int       `gorm:"not null;column:physical" json:"physical"`
	Motivation   int       `gorm:"not null;column:motivation" json:"motivation"`
	Focus        int       `gorm:"not null;column:focus" json:"focus"`
	Openness     int       `gorm:"not null;column:openness" json:"openness"`
	FilledAt     time.Time `gorm:"index;not null;column:filled_at" json:"filled_at"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (DailyState) TableName() string {
	return "daily_state"
}

// Ratings returns the five dimensions in a stable order, paired with the
// labels the prompt builder renders.
func (s *DailyState) Ratings() []Rating {
	return []Rating{
		{Label: "satisfaction", Value: s.Satisfaction},
		{Label: "physical condition", Value: s.Physical},
		{Label: "motivation", Value: s.Motivation},
		{Label: "focus", Value: s.Focus},
		{Label: "openness to explore", Value: s.Openness},
	}
}

type Rating struct {
	Label string
	Value int
}

// Validate rejects any rating outside the 1..5 scale. Enforced at survey
// submission; stored states are assumed in range.
func (s *DailyState) Validate() error {
	for _, r := range s.Ratings() {
		if r.Value < RatingMin || r.Value > RatingMax {
			return &RatingRangeError{Label: r.Label, Value: r.Value}
		}
	}
	return nil
}

type RatingRangeError struct {
	Label string
	Value int
}

func (e *RatingRangeError) Error() string {
	return fmt.Sprintf("rating %q must be between %d and %d, got %d", e.Label, RatingMin, RatingMax, e.Value)
}
