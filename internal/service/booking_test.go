package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
)

func newTestBookingService(store *fakeStore) *BookingService {
	promoSvc := newTestPromoService(store)
	return NewBookingService(store, promoSvc, zap.NewNop(), 0.05)
}

func TestComposeBookingPrice(t *testing.T) {
	tests := []struct {
		name         string
		servicePrice float64
		rate         float64
		wantFee      float64
		wantFinal    float64
	}{
		{"five percent of 1200", 1200, 0.05, 60, 1260},
		{"fee rounds before addition", 999, 0.05, 50, 1049},
		{"rounds down", 1010, 0.033, 33, 1043},
		{"zero rate", 800, 0, 0, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeBookingPrice(tt.servicePrice, tt.rate)
			if got.PlatformFee != tt.wantFee {
				t.Errorf("platform fee: expected %v, got %v", tt.wantFee, got.PlatformFee)
			}
			if got.FinalPrice != tt.wantFinal {
				t.Errorf("final price: expected %v, got %v", tt.wantFinal, got.FinalPrice)
			}
		})
	}
}

func TestCommissionRate_FallsBackToDefault(t *testing.T) {
	store := newFakeStore()
	svc := newTestBookingService(store)
	ctx := context.Background()

	rate, err := svc.CommissionRate(ctx)
	if err != nil {
		t.Fatalf("CommissionRate: %v", err)
	}
	if rate != 0.05 {
		t.Errorf("expected default 0.05, got %v", rate)
	}

	store.config[model.ConfigKeyCommissionRate] = "0.08"
	rate, err = svc.CommissionRate(ctx)
	if err != nil {
		t.Fatalf("CommissionRate: %v", err)
	}
	if rate != 0.08 {
		t.Errorf("expected configured 0.08, got %v", rate)
	}
}

func TestCreateBooking_ComposesPrice(t *testing.T) {
	store := newFakeStore()
	store.addUser("client", "client@x.com", nil)
	listing := store.addService("coach", 1200)
	svc := newTestBookingService(store)

	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		ServiceID:   listing.ID,
		ClientID:    "client",
		ScheduledAt: testNow.Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if booking.PlatformFee != 60 {
		t.Errorf("expected platform fee 60, got %v", booking.PlatformFee)
	}
	if booking.TotalPrice != 1260 {
		t.Errorf("expected total 1260, got %v", booking.TotalPrice)
	}
	if booking.Status != model.BookingStatusPending {
		t.Errorf("expected pending status, got %s", booking.Status)
	}
	if booking.PaymentStatus != model.PaymentStatusUnpaid {
		t.Errorf("expected unpaid, got %s", booking.PaymentStatus)
	}
}

func TestCreateBooking_PriceSurvivesRateChange(t *testing.T) {
	store := newFakeStore()
	listing := store.addService("coach", 1000)
	svc := newTestBookingService(store)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, CreateBookingInput{
		ServiceID: listing.ID, ClientID: "client", ScheduledAt: testNow,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Raising the rate later must not retouch the stored price.
	store.config[model.ConfigKeyCommissionRate] = "0.20"
	stored, err := svc.GetBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if stored.TotalPrice != 1050 {
		t.Errorf("stored price changed after rate update: %v", stored.TotalPrice)
	}
}

func TestCreateBooking_WithPromo(t *testing.T) {
	store := newFakeStore()
	listing := store.addService("coach", 1200)
	promo := activePromo("FLAT200")
	promo.DiscountType = model.DiscountTypeFixed
	promo.DiscountValue = 200
	store.addPromo(promo)
	svc := newTestBookingService(store)

	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		ServiceID:   listing.ID,
		ClientID:    "client",
		ScheduledAt: testNow,
		PromoCode:   "flat200",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if booking.DiscountAmount != 200 {
		t.Errorf("expected discount 200, got %v", booking.DiscountAmount)
	}
	if booking.TotalPrice != 1060 {
		t.Errorf("expected total 1060, got %v", booking.TotalPrice)
	}
	if booking.PromoCodeID == nil || *booking.PromoCodeID != promo.ID {
		t.Errorf("promo code id not stored")
	}
	if promo.UsedCount != 1 {
		t.Errorf("promo usage not recorded, used count %d", promo.UsedCount)
	}
	if len(store.usages) != 1 || store.usages[0].BookingID != booking.ID {
		t.Errorf("usage row missing or not tied to booking")
	}
}

func TestCreateBooking_RejectsInapplicablePromo(t *testing.T) {
	store := newFakeStore()
	listing := store.addService("coach", 1200)
	promo := activePromo("BIGONLY")
	promo.MinOrderAmount = floatPtr(5000)
	store.addPromo(promo)
	svc := newTestBookingService(store)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		ServiceID:   listing.ID,
		ClientID:    "client",
		ScheduledAt: testNow,
		PromoCode:   "BIGONLY",
	})
	if !errors.Is(err, ErrPromoNotApplicable) {
		t.Errorf("expected ErrPromoNotApplicable, got %v", err)
	}
	if len(store.bookings) != 0 {
		t.Error("booking should not be created when the promo is rejected")
	}
}

func TestCreateBooking_OwnService(t *testing.T) {
	store := newFakeStore()
	listing := store.addService("coach", 1200)
	svc := newTestBookingService(store)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		ServiceID: listing.ID, ClientID: "coach", ScheduledAt: testNow,
	})
	if !errors.Is(err, ErrOwnServiceBooking) {
		t.Errorf("expected ErrOwnServiceBooking, got %v", err)
	}
}

func TestCreateBooking_InactiveService(t *testing.T) {
	store := newFakeStore()
	listing := store.addService("coach", 1200)
	listing.IsActive = false
	svc := newTestBookingService(store)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		ServiceID: listing.ID, ClientID: "client", ScheduledAt: testNow,
	})
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	store := newFakeStore()
	listing := store.addService("coach", 1000)
	svc := newTestBookingService(store)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, CreateBookingInput{
		ServiceID: listing.ID, ClientID: "client", ScheduledAt: testNow,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	for _, next := range []model.BookingStatus{
		model.BookingStatusConfirmed,
		model.BookingStatusInProgress,
		model.BookingStatusCompleted,
	} {
		updated, err := svc.UpdateStatus(ctx, booking.ID, next)
		if err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
		if updated.Status != next {
			t.Errorf("expected status %s, got %s", next, updated.Status)
		}
	}

	// Completed is terminal.
	_, err = svc.UpdateStatus(ctx, booking.ID, model.BookingStatusCancelled)
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("expected ErrInvalidStatusTransition from completed, got %v", err)
	}
}

func TestUpdateStatus_NoSkipping(t *testing.T) {
	store := newFakeStore()
	listing := store.addService("coach", 1000)
	svc := newTestBookingService(store)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, CreateBookingInput{
		ServiceID: listing.ID, ClientID: "client", ScheduledAt: testNow,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	_, err = svc.UpdateStatus(ctx, booking.ID, model.BookingStatusCompleted)
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("expected ErrInvalidStatusTransition pending->completed, got %v", err)
	}
}
