package model

import (
	"time"
)

type UserRole string

const (
	UserRoleClient     UserRole = "client"
	UserRoleFreelancer UserRole = "freelancer"
)

type User struct {
	ID           string    `json:"id" db:"id"` // identity provider subject
	Email        string    `json:"email" db:"email"`
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL    *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	Location     *string   `json:"location,omitempty" db:"location"`
	Role         UserRole  `json:"role" db:"role"`
	ReferralCode *string   `json:"referral_code,omitempty" db:"referral_code"`
	ReferredBy   *string   `json:"referred_by,omitempty" db:"referred_by"` // referrer's code, not a FK
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type ReferralStats struct {
	ReferralCode  string `json:"referral_code"`
	TotalReferred int    `json:"total_referred"`
}
