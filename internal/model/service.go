package model

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID              uuid.UUID `json:"id" db:"id"`
	FreelancerID    string    `json:"freelancer_id" db:"freelancer_id"`
	Title           string    `json:"title" db:"title"`
	Description     *string   `json:"description,omitempty" db:"description"`
	Category        string    `json:"category" db:"category"` // e.g. "batting-coach", "umpiring"
	Price           float64   `json:"price" db:"price"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
