package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
)

// IsAdmin checks if a user is an admin
func (r *Repository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admins WHERE user_id = $1`, userID)
	return count > 0, err
}

// GetAdmin retrieves admin info by user ID
func (r *Repository) GetAdmin(ctx context.Context, userID string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, `SELECT * FROM admins WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &admin, err
}

// CreateAdminLog writes one audit row for an admin action
func (r *Repository) CreateAdminLog(ctx context.Context, entry *model.AdminLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_logs (admin_id, action, target_id, details)
		VALUES ($1, $2, $3, $4)`,
		entry.AdminID, entry.Action, entry.TargetID, entry.Details)
	return err
}

// ListAdminLogs lists recent audit entries, newest first
func (r *Repository) ListAdminLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error) {
	var logs []model.AdminLog
	err := r.db.SelectContext(ctx, &logs, `
		SELECT * FROM admin_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	return logs, err
}
