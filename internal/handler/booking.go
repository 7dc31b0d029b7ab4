package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/middleware"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/repository"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/service"
)

type CreateBookingRequest struct {
	ServiceID   string    `json:"service_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	PromoCode   string    `json:"promo_code"`
}

// CreateBooking creates a booking for the current user
func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid service id",
		})
	}
	if req.ScheduledAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "scheduled_at is required",
		})
	}

	booking, err := h.bookingSvc.CreateBooking(c.Context(), service.CreateBookingInput{
		ServiceID:   serviceID,
		ClientID:    middleware.GetUserID(c),
		ScheduledAt: req.ScheduledAt,
		PromoCode:   req.PromoCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrServiceNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrServiceUnavailable),
			errors.Is(err, service.ErrOwnServiceBooking),
			errors.Is(err, service.ErrPromoNotApplicable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create booking",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetBooking returns one booking owned by the current user
func (h *Handler) GetBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("booking_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid booking id",
		})
	}

	booking, err := h.bookingSvc.GetBooking(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get booking",
		})
	}

	userID := middleware.GetUserID(c)
	if booking.ClientID != userID && booking.FreelancerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	return c.JSON(booking)
}

// ListMyBookings lists the current user's bookings as a client
func (h *Handler) ListMyBookings(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	bookings, err := h.bookingSvc.ListClientBookings(c.Context(), middleware.GetUserID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list bookings",
		})
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

type UpdateBookingStatusRequest struct {
	Status model.BookingStatus `json:"status"`
}

// UpdateBookingStatus moves a booking along its lifecycle
func (h *Handler) UpdateBookingStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("booking_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid booking id",
		})
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status is required",
		})
	}

	booking, err := h.bookingSvc.GetBooking(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get booking",
		})
	}

	userID := middleware.GetUserID(c)
	if booking.ClientID != userID && booking.FreelancerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	updated, err := h.bookingSvc.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatusTransition) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update booking status",
		})
	}

	return c.JSON(updated)
}

// ListServices lists active cricket services, optionally filtered by category
func (h *Handler) ListServices(c *fiber.Ctx) error {
	services, err := h.catalogSvc.ListServices(c.Context(),
		c.Query("category"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list services",
		})
	}

	return c.JSON(fiber.Map{"services": services})
}
