package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
)

var ErrConfigNotFound = errors.New("config key not found")

func (r *Repository) GetConfigValue(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM system_config WHERE key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrConfigNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *Repository) SetConfigValue(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO system_config (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`, key, value)
	return err
}

// AllocateReferralSequence claims the next referral sequence number. The read
// and the advance are a single statement, so concurrent claims always receive
// distinct values.
func (r *Repository) AllocateReferralSequence(ctx context.Context) (int, error) {
	var claimed int
	err := r.db.GetContext(ctx, &claimed, `
		INSERT INTO system_config (key, value, updated_at) VALUES ($1, '2', NOW())
		ON CONFLICT (key) DO UPDATE
			SET value = (system_config.value::int + 1)::text, updated_at = NOW()
		RETURNING value::int - 1
	`, model.ConfigKeyNextReferralSequence)
	return claimed, err
}

// AdvanceReferralSequence moves the referral counter to the given value unless
// it is already past it, so a stale writer can never pull the counter backward.
func (r *Repository) AdvanceReferralSequence(ctx context.Context, to int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO system_config (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
		WHERE system_config.value::int < $2::int
	`, model.ConfigKeyNextReferralSequence, strconv.Itoa(to))
	return err
}

func (r *Repository) GetConfigFloat(ctx context.Context, key string) (float64, error) {
	value, err := r.GetConfigValue(ctx, key)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(value, 64)
}

func (r *Repository) ListConfig(ctx context.Context) ([]model.SystemConfig, error) {
	var entries []model.SystemConfig
	err := r.db.SelectContext(ctx, &entries, "SELECT * FROM system_config ORDER BY key ASC")
	return entries, err
}
