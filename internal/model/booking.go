package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Booking struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	ServiceID       uuid.UUID     `json:"service_id" db:"service_id"`
	ClientID        string        `json:"client_id" db:"client_id"`
	FreelancerID    string        `json:"freelancer_id" db:"freelancer_id"`
	ScheduledAt     time.Time     `json:"scheduled_at" db:"scheduled_at"`
	DurationMinutes int           `json:"duration_minutes" db:"duration_minutes"`
	ServicePrice    float64       `json:"service_price" db:"service_price"`
	PlatformFee     float64       `json:"platform_fee" db:"platform_fee"`
	DiscountAmount  float64       `json:"discount_amount" db:"discount_amount"`
	TotalPrice      float64       `json:"total_price" db:"total_price"`
	PromoCodeID     *uuid.UUID    `json:"promo_code_id,omitempty" db:"promo_code_id"`
	Status          BookingStatus `json:"status" db:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// Legal status transitions. Terminal states have no outgoing edges.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransitionTo reports whether a booking may move from its current status to next.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, s := range bookingTransitions[b.Status] {
		if s == next {
			return true
		}
	}
	return false
}
