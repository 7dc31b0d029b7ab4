package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

func (r *Repository) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpsertUser creates the user on first sync and refreshes profile fields after
// that. The identity provider owns id and email; referral columns are never
// touched here.
func (r *Repository) UpsertUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, full_name, phone, bio, avatar_url, location, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			bio = EXCLUDED.bio,
			avatar_url = EXCLUDED.avatar_url,
			location = EXCLUDED.location,
			updated_at = NOW()
		RETURNING created_at, updated_at, referral_code, referred_by`

	return r.db.QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		user.FullName,
		user.Phone,
		user.Bio,
		user.AvatarURL,
		user.Location,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt, &user.ReferralCode, &user.ReferredBy)
}

// ListUsersByCreation returns every user ordered by signup time ascending.
func (r *Repository) ListUsersByCreation(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY created_at ASC, id ASC")
	return users, err
}

func (r *Repository) GetUserByReferralCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE referral_code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UpdateReferralCode(ctx context.Context, userID, code string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET referral_code = $2, updated_at = NOW()
		WHERE id = $1`, userID, code)
	return err
}

// SetReferredBy records who referred a user. The WHERE guard makes the write
// set-once: a second call for the same user affects no rows.
func (r *Repository) SetReferredBy(ctx context.Context, userID, referrerCode string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET referred_by = $2, updated_at = NOW()
		WHERE id = $1 AND referred_by IS NULL`, userID, referrerCode)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// CountReferredUsers counts users who signed up with the given referral code.
func (r *Repository) CountReferredUsers(ctx context.Context, code string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM users WHERE referred_by = $1`, code)
	return count, err
}
