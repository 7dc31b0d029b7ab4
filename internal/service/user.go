package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
)

// UserStore is the datastore surface user sync needs.
type UserStore interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpsertUser(ctx context.Context, user *model.User) error
}

type UserService struct {
	store       UserStore
	referralSvc *ReferralService
	logger      *zap.Logger
}

func NewUserService(store UserStore, referralSvc *ReferralService, logger *zap.Logger) *UserService {
	return &UserService{store: store, referralSvc: referralSvc, logger: logger}
}

// SyncInput carries the profile fields a client may push on sync, plus the
// identity the auth middleware extracted from the provider token.
type SyncInput struct {
	ID           string
	Email        string
	FullName     *string
	Phone        *string
	Bio          *string
	AvatarURL    *string
	Location     *string
	Role         model.UserRole
	ReferralCode string // code of the referrer, optional, honored on first sync only
}

// SyncUser upserts the user row for the authenticated identity. On first sync
// it assigns the user their own referral code and, when a referrer's code was
// supplied, links it. Both referral steps are best-effort: a failure is
// logged and the sync still succeeds.
func (s *UserService) SyncUser(ctx context.Context, in SyncInput) (*model.User, error) {
	if in.Role == "" {
		in.Role = model.UserRoleClient
	}
	user := &model.User{
		ID:        in.ID,
		Email:     in.Email,
		FullName:  in.FullName,
		Phone:     in.Phone,
		Bio:       in.Bio,
		AvatarURL: in.AvatarURL,
		Location:  in.Location,
		Role:      in.Role,
	}
	if err := s.store.UpsertUser(ctx, user); err != nil {
		return nil, err
	}

	if user.ReferralCode == nil {
		code, err := s.referralSvc.AssignNextCode(ctx, user.ID, user.Email)
		if err != nil {
			s.logger.Error("failed to assign referral code at signup",
				zap.String("user_id", user.ID), zap.Error(err))
		} else {
			user.ReferralCode = &code
		}
	}

	if in.ReferralCode != "" && user.ReferredBy == nil {
		err := s.referralSvc.LinkReferral(ctx, user.ID, in.ReferralCode)
		switch {
		case err == nil:
			code := strings.ToUpper(strings.TrimSpace(in.ReferralCode))
			user.ReferredBy = &code
		case errors.Is(err, ErrReferralCodeNotFound),
			errors.Is(err, ErrSelfReferral),
			errors.Is(err, ErrAlreadyReferred):
			s.logger.Warn("referral code not linked",
				zap.String("user_id", user.ID), zap.Error(err))
		default:
			return nil, err
		}
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.store.GetUser(ctx, id)
}

// ProfileCompletion scores how filled-in a profile is, as a 0-100 percentage.
// Each optional profile field contributes an equal share.
func ProfileCompletion(user *model.User) int {
	fields := []*string{user.FullName, user.Phone, user.Bio, user.AvatarURL, user.Location}
	filled := 0
	for _, f := range fields {
		if f != nil && *f != "" {
			filled++
		}
	}
	return filled * 100 / len(fields)
}
