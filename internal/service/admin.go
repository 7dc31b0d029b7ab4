package service

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
)

// AdminStore is the datastore surface the admin back-office needs.
type AdminStore interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	CreateAdminLog(ctx context.Context, entry *model.AdminLog) error
	ListAdminLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error)
	SetConfigValue(ctx context.Context, key, value string) error
	ListConfig(ctx context.Context) ([]model.SystemConfig, error)
}

type AdminService struct {
	store  AdminStore
	logger *zap.Logger
}

func NewAdminService(store AdminStore, logger *zap.Logger) *AdminService {
	return &AdminService{store: store, logger: logger}
}

func (s *AdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.store.IsAdmin(ctx, userID)
}

// LogAction writes one audit row. Audit failures are logged, never surfaced:
// an admin action must not fail because its audit write did.
func (s *AdminService) LogAction(ctx context.Context, adminID, action string, targetID *string, details interface{}) {
	entry := &model.AdminLog{
		AdminID:  adminID,
		Action:   action,
		TargetID: targetID,
	}
	if details != nil {
		payload, err := json.Marshal(details)
		if err == nil {
			entry.Details = payload
		}
	}
	if err := s.store.CreateAdminLog(ctx, entry); err != nil {
		s.logger.Error("failed to write admin audit log",
			zap.String("admin_id", adminID), zap.String("action", action), zap.Error(err))
	}
}

func (s *AdminService) ListLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.ListAdminLogs(ctx, limit, offset)
}

func (s *AdminService) ListConfig(ctx context.Context) ([]model.SystemConfig, error) {
	return s.store.ListConfig(ctx)
}

// SetCommissionRate updates the platform fee fraction used for new bookings.
// Existing bookings keep the price composed at their creation time.
func (s *AdminService) SetCommissionRate(ctx context.Context, rate float64) error {
	return s.store.SetConfigValue(ctx, model.ConfigKeyCommissionRate,
		strconv.FormatFloat(rate, 'f', -1, 64))
}
