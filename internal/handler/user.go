package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/middleware"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/service"
)

type SyncUserRequest struct {
	FullName     *string        `json:"full_name"`
	Phone        *string        `json:"phone"`
	Bio          *string        `json:"bio"`
	AvatarURL    *string        `json:"avatar_url"`
	Location     *string        `json:"location"`
	Role         model.UserRole `json:"role"`
	ReferralCode string         `json:"referral_code"`
}

// SyncUser upserts the profile for the authenticated identity
func (h *Handler) SyncUser(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	email := middleware.GetUserEmail(c)

	var req SyncUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	user, err := h.userSvc.SyncUser(c.Context(), service.SyncInput{
		ID:           userID,
		Email:        email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Bio:          req.Bio,
		AvatarURL:    req.AvatarURL,
		Location:     req.Location,
		Role:         req.Role,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to sync user",
		})
	}

	return c.JSON(user)
}

// GetMe returns the current user along with their profile completion score
func (h *Handler) GetMe(c *fiber.Ctx) error {
	user, err := h.userSvc.GetUser(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	}

	return c.JSON(fiber.Map{
		"user":               user,
		"profile_completion": service.ProfileCompletion(user),
	})
}
