package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/middleware"
)

// ValidatePromoCode checks if a promo code is applicable without consuming it.
// The amount query parameter is optional; with it the response also carries
// the computed discount and final amount.
func (h *Handler) ValidatePromoCode(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "promo code is required",
		})
	}

	var orderAmount *float64
	if raw := c.Query("amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || amount < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid amount",
			})
		}
		orderAmount = &amount
	}

	userID := middleware.GetUserID(c)
	result, err := h.promoCodeSvc.ValidatePromoCode(c.Context(), code, orderAmount, &userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to validate promo code",
		})
	}

	return c.JSON(result)
}
