package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
)

var ErrServiceNotFound = errors.New("service not found")

func (r *Repository) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var svc model.Service
	err := r.db.GetContext(ctx, &svc, "SELECT * FROM services WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (r *Repository) ListActiveServices(ctx context.Context, category string, limit, offset int) ([]model.Service, error) {
	var services []model.Service
	if category != "" {
		err := r.db.SelectContext(ctx, &services, `
			SELECT * FROM services
			WHERE is_active = true AND category = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`, category, limit, offset)
		return services, err
	}
	err := r.db.SelectContext(ctx, &services, `
		SELECT * FROM services
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	return services, err
}

func (r *Repository) CreateService(ctx context.Context, svc *model.Service) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO services (freelancer_id, title, description, category, price, duration_minutes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		svc.FreelancerID, svc.Title, svc.Description, svc.Category,
		svc.Price, svc.DurationMinutes, svc.IsActive,
	).Scan(&svc.ID, &svc.CreatedAt)
}
