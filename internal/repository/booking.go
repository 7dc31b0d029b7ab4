package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
)

var ErrBookingNotFound = errors.New("booking not found")

func (r *Repository) CreateBooking(ctx context.Context, booking *model.Booking) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO bookings (service_id, client_id, freelancer_id, scheduled_at,
			duration_minutes, service_price, platform_fee, discount_amount,
			total_price, promo_code_id, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		booking.ServiceID, booking.ClientID, booking.FreelancerID, booking.ScheduledAt,
		booking.DurationMinutes, booking.ServicePrice, booking.PlatformFee, booking.DiscountAmount,
		booking.TotalPrice, booking.PromoCodeID, booking.Status, booking.PaymentStatus,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *Repository) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, "SELECT * FROM bookings WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *Repository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE bookings SET status = $2, updated_at = NOW()
		WHERE id = $1`, id, status)
	return err
}

func (r *Repository) ListBookingsByClient(ctx context.Context, clientID string, limit, offset int) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.SelectContext(ctx, &bookings, `
		SELECT * FROM bookings
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, clientID, limit, offset)
	return bookings, err
}
