package model

import (
	"time"

	"github.com/google/uuid"
)

type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "superadmin"
)

type Admin struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Role      AdminRole `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	CreatedBy *string   `json:"created_by,omitempty" db:"created_by"`
}

type AdminLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AdminID   string    `json:"admin_id" db:"admin_id"`
	Action    string    `json:"action" db:"action"`
	TargetID  *string   `json:"target_id,omitempty" db:"target_id"`
	Details   []byte    `json:"details,omitempty" db:"details"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Admin action constants
const (
	AdminActionCreatePromoCode   = "create_promo_code"
	AdminActionDeactivatePromo   = "deactivate_promo_code"
	AdminActionSetCommissionRate = "set_commission_rate"
	AdminActionReferralBackfill  = "referral_backfill"
)
