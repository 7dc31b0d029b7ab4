package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/config"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/service"
)

type Handler struct {
	cfg          *config.Config
	userSvc      *service.UserService
	referralSvc  *service.ReferralService
	promoCodeSvc *service.PromoCodeService
	bookingSvc   *service.BookingService
	catalogSvc   *service.CatalogService
	adminSvc     *service.AdminService
}

func New(
	cfg *config.Config,
	userSvc *service.UserService,
	referralSvc *service.ReferralService,
	promoCodeSvc *service.PromoCodeService,
	bookingSvc *service.BookingService,
	catalogSvc *service.CatalogService,
	adminSvc *service.AdminService,
) *Handler {
	return &Handler{
		cfg:          cfg,
		userSvc:      userSvc,
		referralSvc:  referralSvc,
		promoCodeSvc: promoCodeSvc,
		bookingSvc:   bookingSvc,
		catalogSvc:   catalogSvc,
		adminSvc:     adminSvc,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
