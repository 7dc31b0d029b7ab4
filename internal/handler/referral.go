package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/middleware"
)

// GetReferralStats returns the current user's referral code and referred count
func (h *Handler) GetReferralStats(c *fiber.Ctx) error {
	stats, err := h.referralSvc.GetReferralStats(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get referral stats",
		})
	}

	return c.JSON(stats)
}
