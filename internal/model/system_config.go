package model

import (
	"time"
)

type SystemConfig struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	ValueType *string   `json:"value_type,omitempty" db:"value_type"`
	Category  *string   `json:"category,omitempty" db:"category"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Well-known config keys.
const (
	ConfigKeyNextReferralSequence = "NEXT_REFERRAL_SEQUENCE"
	ConfigKeyCommissionRate       = "PLATFORM_COMMISSION_RATE"
)
