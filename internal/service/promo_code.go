package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
)

var ErrPromoCodeNotFound = errors.New("promo code not found")

// Reasons reported to the user when a promo code fails validation.
const (
	ReasonInvalidCode       = "Invalid promo code"
	ReasonInactive          = "Promo code is inactive"
	ReasonNotYetActive      = "Promo code is not yet active"
	ReasonExpired           = "Promo code expired"
	ReasonUsageLimitReached = "Promo code usage limit reached"
	ReasonAlreadyUsed       = "You have already used this promo code"
)

// PromoStore is the datastore surface the promo engine needs.
type PromoStore interface {
	GetPromoCodeByCode(ctx context.Context, code string) (*model.PromoCode, error)
	GetPromoCodeByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error)
	CountPromoUsages(ctx context.Context, promoCodeID uuid.UUID, userID string) (int, error)
	RecordPromoUsage(ctx context.Context, usage *model.PromoUsage) error
	CreatePromoCode(ctx context.Context, promo *model.PromoCode) error
	ListPromoCodes(ctx context.Context, limit, offset int) ([]model.PromoCode, error)
	DeactivatePromoCode(ctx context.Context, id uuid.UUID) error
}

type PromoCodeService struct {
	store  PromoStore
	logger *zap.Logger
	now    func() time.Time
}

func NewPromoCodeService(store PromoStore, logger *zap.Logger) *PromoCodeService {
	return &PromoCodeService{store: store, logger: logger, now: time.Now}
}

// ValidationResult is what a validation call reports back. A failed check is
// not an error: Valid is false and Reason says why.
type ValidationResult struct {
	Valid         bool               `json:"valid"`
	Reason        string             `json:"reason,omitempty"`
	PromoCodeID   uuid.UUID          `json:"promo_code_id,omitempty"`
	Code          string             `json:"code,omitempty"`
	DiscountType  model.DiscountType `json:"discount_type,omitempty"`
	DiscountValue float64            `json:"discount_value,omitempty"`
	Discount      *float64           `json:"discount,omitempty"`
	FinalAmount   *float64           `json:"final_amount,omitempty"`
}

func invalid(reason string) *ValidationResult {
	return &ValidationResult{Valid: false, Reason: reason}
}

// ValidatePromoCode runs the gate chain for a code: lookup, status, validity
// window, global cap, minimum order, per-user cap. The first failing gate
// wins. orderAmount and userID are optional; gates needing an absent input
// are skipped, so a pre-checkout validation without an amount still reports
// whether the code is live.
func (s *PromoCodeService) ValidatePromoCode(ctx context.Context, code string, orderAmount *float64, userID *string) (*ValidationResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	promo, err := s.store.GetPromoCodeByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up promo code: %w", err)
	}
	if promo == nil {
		return invalid(ReasonInvalidCode), nil
	}

	if !promo.IsActive {
		return invalid(ReasonInactive), nil
	}

	now := s.now()
	if now.Before(promo.StartsAt) {
		return invalid(ReasonNotYetActive), nil
	}
	if promo.ExpiresAt != nil && now.After(*promo.ExpiresAt) {
		return invalid(ReasonExpired), nil
	}

	if promo.UsageExhausted() {
		return invalid(ReasonUsageLimitReached), nil
	}

	if promo.MinOrderAmount != nil && orderAmount != nil && *orderAmount < *promo.MinOrderAmount {
		return invalid(fmt.Sprintf("Minimum order of %.2f required", *promo.MinOrderAmount)), nil
	}

	if userID != nil && promo.PerUserLimit != nil {
		used, err := s.store.CountPromoUsages(ctx, promo.ID, *userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count promo usages: %w", err)
		}
		if used >= *promo.PerUserLimit {
			return invalid(ReasonAlreadyUsed), nil
		}
	}

	result := &ValidationResult{
		Valid:         true,
		PromoCodeID:   promo.ID,
		Code:          promo.Code,
		DiscountType:  promo.DiscountType,
		DiscountValue: promo.DiscountValue,
	}
	if orderAmount != nil {
		discount := computeDiscount(promo, *orderAmount)
		final := *orderAmount - discount
		result.Discount = &discount
		result.FinalAmount = &final
	}
	return result, nil
}

// computeDiscount returns the discount a promo grants on an order amount.
// Percentage discounts clamp to MaxDiscount; fixed discounts clamp to the
// order amount so a promo never discounts more than the order is worth.
func computeDiscount(promo *model.PromoCode, orderAmount float64) float64 {
	if promo.DiscountType == model.DiscountTypePercentage {
		discount := orderAmount * promo.DiscountValue / 100
		if promo.MaxDiscount != nil && discount > *promo.MaxDiscount {
			discount = *promo.MaxDiscount
		}
		return discount
	}

	discount := promo.DiscountValue
	if discount > orderAmount {
		discount = orderAmount
	}
	return discount
}

// ApplyPromoCode permanently records one consumption of a promo code on a
// completed order. The store does the used-count increment and the usage
// insert in one transaction, guarded by the usage limit and the per-user
// limit, so concurrent applies cannot overshoot either cap.
func (s *PromoCodeService) ApplyPromoCode(ctx context.Context, promoCodeID uuid.UUID, userID string, bookingID uuid.UUID, orderAmount, discountAmount float64) error {
	promo, err := s.store.GetPromoCodeByID(ctx, promoCodeID)
	if err != nil {
		return fmt.Errorf("failed to look up promo code: %w", err)
	}
	if promo == nil {
		return ErrPromoCodeNotFound
	}

	usage := &model.PromoUsage{
		PromoCodeID:    promoCodeID,
		UserID:         userID,
		BookingID:      bookingID,
		OrderAmount:    orderAmount,
		DiscountAmount: discountAmount,
	}
	if err := s.store.RecordPromoUsage(ctx, usage); err != nil {
		return err
	}

	s.logger.Info("promo code applied",
		zap.String("code", promo.Code),
		zap.String("user_id", userID),
		zap.Float64("discount", discountAmount))
	return nil
}

// CreatePromoCode creates a new promo code (admin function)
func (s *PromoCodeService) CreatePromoCode(ctx context.Context, promo *model.PromoCode) error {
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	if promo.StartsAt.IsZero() {
		promo.StartsAt = s.now()
	}
	return s.store.CreatePromoCode(ctx, promo)
}

// ListPromoCodes lists all promo codes (admin function)
func (s *PromoCodeService) ListPromoCodes(ctx context.Context, limit, offset int) ([]model.PromoCode, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.ListPromoCodes(ctx, limit, offset)
}

// DeactivatePromoCode deactivates a promo code (admin function)
func (s *PromoCodeService) DeactivatePromoCode(ctx context.Context, code string) error {
	promo, err := s.store.GetPromoCodeByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return err
	}
	if promo == nil {
		return ErrPromoCodeNotFound
	}
	return s.store.DeactivatePromoCode(ctx, promo.ID)
}
