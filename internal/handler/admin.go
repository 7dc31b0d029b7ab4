package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/middleware"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/service"
)

type AdminHandler struct {
	adminSvc     *service.AdminService
	promoCodeSvc *service.PromoCodeService
	referralSvc  *service.ReferralService
}

func NewAdminHandler(adminSvc *service.AdminService, promoCodeSvc *service.PromoCodeService, referralSvc *service.ReferralService) *AdminHandler {
	return &AdminHandler{
		adminSvc:     adminSvc,
		promoCodeSvc: promoCodeSvc,
		referralSvc:  referralSvc,
	}
}

type CreatePromoCodeRequest struct {
	Code           string             `json:"code"`
	Description    *string            `json:"description"`
	DiscountType   model.DiscountType `json:"discount_type"`
	DiscountValue  float64            `json:"discount_value"`
	MaxDiscount    *float64           `json:"max_discount"`
	MinOrderAmount *float64           `json:"min_order_amount"`
	UsageLimit     *int               `json:"usage_limit"`
	PerUserLimit   *int               `json:"per_user_limit"`
	StartsAt       *time.Time         `json:"starts_at"`
	ExpiresAt      *time.Time         `json:"expires_at"`
}

// CreatePromoCode creates a promo code
func (h *AdminHandler) CreatePromoCode(c *fiber.Ctx) error {
	var req CreatePromoCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.Code == "" || req.DiscountValue <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "code and a positive discount_value are required",
		})
	}
	if req.DiscountType != model.DiscountTypePercentage && req.DiscountType != model.DiscountTypeFixed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "discount_type must be PERCENTAGE or FIXED",
		})
	}

	promo := &model.PromoCode{
		Code:           req.Code,
		Description:    req.Description,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MaxDiscount:    req.MaxDiscount,
		MinOrderAmount: req.MinOrderAmount,
		UsageLimit:     req.UsageLimit,
		PerUserLimit:   req.PerUserLimit,
		IsActive:       true,
		ExpiresAt:      req.ExpiresAt,
	}
	if req.StartsAt != nil {
		promo.StartsAt = *req.StartsAt
	}

	if err := h.promoCodeSvc.CreatePromoCode(c.Context(), promo); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create promo code",
		})
	}

	h.adminSvc.LogAction(c.Context(), middleware.GetAdminID(c),
		model.AdminActionCreatePromoCode, &promo.Code, promo)

	return c.Status(fiber.StatusCreated).JSON(promo)
}

// ListPromoCodes lists promo codes
func (h *AdminHandler) ListPromoCodes(c *fiber.Ctx) error {
	promos, err := h.promoCodeSvc.ListPromoCodes(c.Context(),
		c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list promo codes",
		})
	}

	return c.JSON(fiber.Map{"promo_codes": promos})
}

type DeactivatePromoCodeRequest struct {
	Code string `json:"code"`
}

// DeactivatePromoCode deactivates a promo code by its code string
func (h *AdminHandler) DeactivatePromoCode(c *fiber.Ctx) error {
	var req DeactivatePromoCodeRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "code is required",
		})
	}

	if err := h.promoCodeSvc.DeactivatePromoCode(c.Context(), req.Code); err != nil {
		if errors.Is(err, service.ErrPromoCodeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to deactivate promo code",
		})
	}

	h.adminSvc.LogAction(c.Context(), middleware.GetAdminID(c),
		model.AdminActionDeactivatePromo, &req.Code, nil)

	return c.JSON(fiber.Map{"success": true})
}

// BackfillReferralCodes runs the referral assignment rule over all users
func (h *AdminHandler) BackfillReferralCodes(c *fiber.Ctx) error {
	report, err := h.referralSvc.AllocateReferralCodes(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "referral backfill failed",
		})
	}

	h.adminSvc.LogAction(c.Context(), middleware.GetAdminID(c),
		model.AdminActionReferralBackfill, nil, report)

	return c.JSON(report)
}

type SetCommissionRateRequest struct {
	Rate float64 `json:"rate"`
}

// SetCommissionRate updates the platform commission rate for new bookings
func (h *AdminHandler) SetCommissionRate(c *fiber.Ctx) error {
	var req SetCommissionRateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Rate < 0 || req.Rate >= 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "rate must be a fraction in [0, 1)",
		})
	}

	if err := h.adminSvc.SetCommissionRate(c.Context(), req.Rate); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to set commission rate",
		})
	}

	h.adminSvc.LogAction(c.Context(), middleware.GetAdminID(c),
		model.AdminActionSetCommissionRate, nil, req)

	return c.JSON(fiber.Map{"success": true})
}

// GetSettings returns all system config entries
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	entries, err := h.adminSvc.ListConfig(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list settings",
		})
	}

	return c.JSON(fiber.Map{"settings": entries})
}

// GetLogs returns recent admin audit entries
func (h *AdminHandler) GetLogs(c *fiber.Ctx) error {
	logs, err := h.adminSvc.ListLogs(c.Context(),
		c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list logs",
		})
	}

	return c.JSON(fiber.Map{"logs": logs})
}
