package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
)

var (
	// ErrPromoUsageExhausted is returned by RecordPromoUsage when the
	// conditional increment finds the global usage limit already reached.
	ErrPromoUsageExhausted = errors.New("promo code usage limit reached")

	// ErrPromoPerUserLimit is returned by RecordPromoUsage when the guarded
	// insert finds the user already at their per-user cap.
	ErrPromoPerUserLimit = errors.New("promo code per-user limit reached")
)

// GetPromoCodeByCode retrieves a promo code by its (uppercase) code string
func (r *Repository) GetPromoCodeByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var promo model.PromoCode
	err := r.db.GetContext(ctx, &promo, `
		SELECT * FROM promo_codes WHERE code = $1`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &promo, err
}

// GetPromoCodeByID retrieves a promo code by ID
func (r *Repository) GetPromoCodeByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error) {
	var promo model.PromoCode
	err := r.db.GetContext(ctx, &promo, `
		SELECT * FROM promo_codes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &promo, err
}

// CountPromoUsages returns how many times a user has consumed a promo code.
func (r *Repository) CountPromoUsages(ctx context.Context, promoCodeID uuid.UUID, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM promo_usages
		WHERE promo_code_id = $1 AND user_id = $2`, promoCodeID, userID)
	return count, err
}

// RecordPromoUsage increments used_count and inserts the usage row in one
// transaction. Both caps are guarded inside it: the conditional increment
// carries the global usage limit, and the guarded insert carries the per-user
// limit. The row lock taken by the increment orders concurrent applies, so
// the count in the insert guard sees every prior committed usage.
func (r *Repository) RecordPromoUsage(ctx context.Context, usage *model.PromoUsage) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var perUserLimit *int
	err = tx.QueryRowxContext(ctx, `
		UPDATE promo_codes SET used_count = used_count + 1
		WHERE id = $1 AND (usage_limit IS NULL OR used_count < usage_limit)
		RETURNING per_user_limit`,
		usage.PromoCodeID,
	).Scan(&perUserLimit)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPromoUsageExhausted
	}
	if err != nil {
		return fmt.Errorf("failed to increment used count: %w", err)
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO promo_usages (promo_code_id, user_id, booking_id, order_amount, discount_amount)
		SELECT $1, $2, $3, $4, $5
		WHERE $6::int IS NULL
		   OR (SELECT COUNT(*) FROM promo_usages WHERE promo_code_id = $1 AND user_id = $2) < $6
		RETURNING id, created_at`,
		usage.PromoCodeID, usage.UserID, usage.BookingID, usage.OrderAmount, usage.DiscountAmount, perUserLimit,
	).Scan(&usage.ID, &usage.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPromoPerUserLimit
	}
	if err != nil {
		return fmt.Errorf("failed to record promo usage: %w", err)
	}

	return tx.Commit()
}

// CreatePromoCode creates a new promo code (for admin use)
func (r *Repository) CreatePromoCode(ctx context.Context, promo *model.PromoCode) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO promo_codes (code, description, discount_type, discount_value,
			max_discount, min_order_amount, usage_limit, per_user_limit,
			is_active, starts_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		promo.Code, promo.Description, promo.DiscountType, promo.DiscountValue,
		promo.MaxDiscount, promo.MinOrderAmount, promo.UsageLimit, promo.PerUserLimit,
		promo.IsActive, promo.StartsAt, promo.ExpiresAt,
	).Scan(&promo.ID, &promo.CreatedAt)
}

// ListPromoCodes lists all promo codes (for admin use)
func (r *Repository) ListPromoCodes(ctx context.Context, limit, offset int) ([]model.PromoCode, error) {
	var promos []model.PromoCode
	err := r.db.SelectContext(ctx, &promos, `
		SELECT * FROM promo_codes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	return promos, err
}

// DeactivatePromoCode deactivates a promo code
func (r *Repository) DeactivatePromoCode(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE promo_codes SET is_active = false WHERE id = $1`, id)
	return err
}
