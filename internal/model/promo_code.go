package model

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE" // percentage of the order amount
	DiscountTypeFixed      DiscountType = "FIXED"      // flat amount off
)

type PromoCode struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	Code           string       `json:"code" db:"code"` // stored uppercase
	Description    *string      `json:"description,omitempty" db:"description"`
	DiscountType   DiscountType `json:"discount_type" db:"discount_type"`
	DiscountValue  float64      `json:"discount_value" db:"discount_value"`
	MaxDiscount    *float64     `json:"max_discount,omitempty" db:"max_discount"`
	MinOrderAmount *float64     `json:"min_order_amount,omitempty" db:"min_order_amount"`
	UsageLimit     *int         `json:"usage_limit,omitempty" db:"usage_limit"`
	UsedCount      int          `json:"used_count" db:"used_count"`
	PerUserLimit   *int         `json:"per_user_limit,omitempty" db:"per_user_limit"`
	IsActive       bool         `json:"is_active" db:"is_active"`
	StartsAt       time.Time    `json:"starts_at" db:"starts_at"`
	ExpiresAt      *time.Time   `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}

type PromoUsage struct {
	ID             uuid.UUID `json:"id" db:"id"`
	PromoCodeID    uuid.UUID `json:"promo_code_id" db:"promo_code_id"`
	UserID         string    `json:"user_id" db:"user_id"`
	BookingID      uuid.UUID `json:"booking_id" db:"booking_id"`
	OrderAmount    float64   `json:"order_amount" db:"order_amount"`
	DiscountAmount float64   `json:"discount_amount" db:"discount_amount"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// UsageExhausted reports whether the global usage cap has been reached.
func (p *PromoCode) UsageExhausted() bool {
	return p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit
}
