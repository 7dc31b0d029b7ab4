package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/repository"
)

var (
	ErrServiceUnavailable      = errors.New("service is not available for booking")
	ErrOwnServiceBooking       = errors.New("cannot book your own service")
	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
	ErrPromoNotApplicable      = errors.New("promo code is not applicable to this booking")
)

// BookingStore is the datastore surface booking creation needs.
type BookingStore interface {
	GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
	CreateBooking(ctx context.Context, booking *model.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error
	ListBookingsByClient(ctx context.Context, clientID string, limit, offset int) ([]model.Booking, error)
	GetConfigFloat(ctx context.Context, key string) (float64, error)
}

type BookingService struct {
	store           BookingStore
	promoSvc        *PromoCodeService
	logger          *zap.Logger
	defaultCommRate float64
}

func NewBookingService(store BookingStore, promoSvc *PromoCodeService, logger *zap.Logger, defaultCommissionRate float64) *BookingService {
	return &BookingService{
		store:           store,
		promoSvc:        promoSvc,
		logger:          logger,
		defaultCommRate: defaultCommissionRate,
	}
}

// PriceBreakdown is the composed price stored on a booking.
type PriceBreakdown struct {
	ServicePrice float64 `json:"service_price"`
	PlatformFee  float64 `json:"platform_fee"`
	FinalPrice   float64 `json:"final_price"`
}

// ComposeBookingPrice computes the stored total for a booking. The fee is
// rounded before the addition, not after: 1200 at 5% is fee 60, total 1260.
func ComposeBookingPrice(servicePrice, commissionRate float64) PriceBreakdown {
	fee := math.Round(servicePrice * commissionRate)
	return PriceBreakdown{
		ServicePrice: servicePrice,
		PlatformFee:  fee,
		FinalPrice:   servicePrice + fee,
	}
}

// CommissionRate reads the platform commission rate from system config,
// falling back to the configured default when the key is absent.
func (s *BookingService) CommissionRate(ctx context.Context) (float64, error) {
	rate, err := s.store.GetConfigFloat(ctx, model.ConfigKeyCommissionRate)
	if err != nil {
		if errors.Is(err, repository.ErrConfigNotFound) {
			return s.defaultCommRate, nil
		}
		return 0, err
	}
	return rate, nil
}

type CreateBookingInput struct {
	ServiceID   uuid.UUID
	ClientID    string
	ScheduledAt time.Time
	PromoCode   string // optional
}

// CreateBooking composes the price from the service's base price and the
// current commission rate, applies an optional promo code, and persists the
// booking as pending. The commission rate is captured at creation time; later
// rate changes never retouch existing bookings.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	svc, err := s.store.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceUnavailable
	}
	if svc.FreelancerID == in.ClientID {
		return nil, ErrOwnServiceBooking
	}

	rate, err := s.CommissionRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read commission rate: %w", err)
	}
	price := ComposeBookingPrice(svc.Price, rate)

	booking := &model.Booking{
		ServiceID:       svc.ID,
		ClientID:        in.ClientID,
		FreelancerID:    svc.FreelancerID,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: svc.DurationMinutes,
		ServicePrice:    price.ServicePrice,
		PlatformFee:     price.PlatformFee,
		TotalPrice:      price.FinalPrice,
		Status:          model.BookingStatusPending,
		PaymentStatus:   model.PaymentStatusUnpaid,
	}

	if in.PromoCode != "" {
		orderAmount := price.FinalPrice
		result, err := s.promoSvc.ValidatePromoCode(ctx, in.PromoCode, &orderAmount, &in.ClientID)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, fmt.Errorf("%w: %s", ErrPromoNotApplicable, result.Reason)
		}
		booking.PromoCodeID = &result.PromoCodeID
		booking.DiscountAmount = *result.Discount
		booking.TotalPrice = *result.FinalAmount
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	// The usage row references the booking, so it is recorded after the
	// insert. A failure here leaves a discounted booking without a usage
	// row; it is logged rather than rolled back.
	if booking.PromoCodeID != nil {
		err := s.promoSvc.ApplyPromoCode(ctx, *booking.PromoCodeID, in.ClientID, booking.ID,
			price.FinalPrice, booking.DiscountAmount)
		if err != nil {
			s.logger.Error("failed to record promo usage for booking",
				zap.String("booking_id", booking.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("client_id", booking.ClientID),
		zap.Float64("total_price", booking.TotalPrice))

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.store.GetBooking(ctx, id)
}

func (s *BookingService) ListClientBookings(ctx context.Context, clientID string, limit, offset int) ([]model.Booking, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.ListBookingsByClient(ctx, clientID, limit, offset)
}

// UpdateStatus moves a booking along the legal status transitions.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, next model.BookingStatus) (*model.Booking, error) {
	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, booking.Status, next)
	}
	if err := s.store.UpdateBookingStatus(ctx, id, next); err != nil {
		return nil, err
	}
	booking.Status = next
	return booking, nil
}
