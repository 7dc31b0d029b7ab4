package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/repository"
)

var (
	ErrReferralCodeNotFound = errors.New("referral code not found")
	ErrSelfReferral         = errors.New("cannot use your own referral code")
	ErrAlreadyReferred      = errors.New("referral code already applied")
	ErrReservedSetExhausted = errors.New("reserved sequence set blocks all candidate values")
)

// ReferralStore is the datastore surface the referral rules need.
type ReferralStore interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsersByCreation(ctx context.Context) ([]model.User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*model.User, error)
	UpdateReferralCode(ctx context.Context, userID, code string) error
	SetReferredBy(ctx context.Context, userID, referrerCode string) (bool, error)
	CountReferredUsers(ctx context.Context, code string) (int, error)
	AllocateReferralSequence(ctx context.Context) (int, error)
	AdvanceReferralSequence(ctx context.Context, to int) error
}

type ReferralService struct {
	store  ReferralStore
	logger *zap.Logger
	prefix string
	// reserved maps lowercase email -> sequence number pinned to that account.
	reserved map[string]int
}

func NewReferralService(store ReferralStore, logger *zap.Logger, prefix string, reserved map[string]int) *ReferralService {
	if reserved == nil {
		reserved = map[string]int{}
	}
	return &ReferralService{store: store, logger: logger, prefix: prefix, reserved: reserved}
}

// AllocationFailure records one user the backfill could not update.
type AllocationFailure struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

// AllocationReport summarizes one backfill run.
type AllocationReport struct {
	AssignedCount int                 `json:"assigned_count"`
	NextSequence  int                 `json:"next_sequence"`
	Failed        []AllocationFailure `json:"failed,omitempty"`
}

// AllocateReferralCodes walks every user in signup order and assigns canonical
// referral codes. Accounts named in the reserved map keep their pinned code;
// everyone else gets sequential codes that skip the reserved values. Re-running
// on an already-assigned population is a no-op that lands on the same counter.
func (s *ReferralService) AllocateReferralCodes(ctx context.Context) (*AllocationReport, error) {
	users, err := s.store.ListUsersByCreation(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	reservedValues := make(map[int]bool, len(s.reserved))
	for _, seq := range s.reserved {
		reservedValues[seq] = true
	}

	// Pass 1: pin reservation holders. Email matches claim first, then users
	// already carrying a reserved code claim whatever is left unclaimed.
	claimed := make(map[int]string) // sequence -> user id
	holders := make(map[string]int) // user id -> sequence
	for _, u := range users {
		seq, ok := s.reserved[strings.ToLower(u.Email)]
		if !ok {
			continue
		}
		if _, taken := claimed[seq]; taken {
			continue
		}
		claimed[seq] = u.ID
		holders[u.ID] = seq
	}
	for _, u := range users {
		if _, isHolder := holders[u.ID]; isHolder || u.ReferralCode == nil {
			continue
		}
		seq, ok := s.sequenceOf(*u.ReferralCode)
		if !ok || !reservedValues[seq] {
			continue
		}
		if _, taken := claimed[seq]; taken {
			continue
		}
		claimed[seq] = u.ID
		holders[u.ID] = seq
	}

	report := &AllocationReport{}

	for _, u := range users {
		seq, isHolder := holders[u.ID]
		if !isHolder {
			continue
		}
		code := s.prefix + strconv.Itoa(seq)
		if u.ReferralCode != nil && *u.ReferralCode == code {
			continue
		}
		if err := s.store.UpdateReferralCode(ctx, u.ID, code); err != nil {
			s.logger.Error("failed to assign reserved referral code",
				zap.String("user_id", u.ID), zap.String("code", code), zap.Error(err))
			report.Failed = append(report.Failed, AllocationFailure{UserID: u.ID, Reason: err.Error()})
			continue
		}
		report.AssignedCount++
	}

	// Pass 2: sequential codes for everyone else. The counter advances even
	// when the user already holds the candidate code, so a re-run derives the
	// same assignment and the same final counter.
	counter := 1
	for _, u := range users {
		if _, isHolder := holders[u.ID]; isHolder {
			continue
		}
		counter, err = nextAvailableSequence(counter, reservedValues)
		if err != nil {
			return nil, err
		}
		code := s.prefix + strconv.Itoa(counter)
		counter++

		if u.ReferralCode != nil && *u.ReferralCode == code {
			continue
		}
		if err := s.store.UpdateReferralCode(ctx, u.ID, code); err != nil {
			s.logger.Error("failed to assign referral code",
				zap.String("user_id", u.ID), zap.String("code", code), zap.Error(err))
			report.Failed = append(report.Failed, AllocationFailure{UserID: u.ID, Reason: err.Error()})
			continue
		}
		report.AssignedCount++
	}

	// Skip trailing reserved values so the persisted counter points at the
	// next value actually assignable. The advance only ever moves the counter
	// forward: a signup that claimed a higher value mid-run is not undone.
	counter, err = nextAvailableSequence(counter, reservedValues)
	if err != nil {
		return nil, err
	}
	if err := s.store.AdvanceReferralSequence(ctx, counter); err != nil {
		return nil, fmt.Errorf("failed to persist referral sequence counter: %w", err)
	}
	report.NextSequence = counter

	s.logger.Info("referral backfill finished",
		zap.Int("assigned", report.AssignedCount),
		zap.Int("next_sequence", report.NextSequence),
		zap.Int("failed", len(report.Failed)))

	return report, nil
}

// AssignNextCode gives a single user their code at signup so new accounts do
// not wait for a backfill run. Accounts named in the reserved map get their
// pinned code without touching the counter. Everyone else claims sequence
// values through the store, where each claim reads and advances the counter
// in one statement, so concurrent signups never land on the same value.
func (s *ReferralService) AssignNextCode(ctx context.Context, userID, email string) (string, error) {
	if seq, ok := s.reserved[strings.ToLower(email)]; ok {
		code := s.prefix + strconv.Itoa(seq)
		if err := s.store.UpdateReferralCode(ctx, userID, code); err != nil {
			return "", fmt.Errorf("failed to assign reserved referral code: %w", err)
		}
		return code, nil
	}

	reservedValues := make(map[int]bool, len(s.reserved))
	for _, seq := range s.reserved {
		reservedValues[seq] = true
	}

	for i := 0; i <= len(reservedValues); i++ {
		seq, err := s.store.AllocateReferralSequence(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to claim referral sequence: %w", err)
		}
		if reservedValues[seq] {
			continue
		}
		code := s.prefix + strconv.Itoa(seq)
		if err := s.store.UpdateReferralCode(ctx, userID, code); err != nil {
			return "", fmt.Errorf("failed to assign referral code: %w", err)
		}
		return code, nil
	}
	return "", ErrReservedSetExhausted
}

// LinkReferral records which code referred a user. The link is set-once: a
// second code for the same user is rejected.
func (s *ReferralService) LinkReferral(ctx context.Context, userID, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	referrer, err := s.store.GetUserByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrReferralCodeNotFound
		}
		return err
	}
	if referrer.ID == userID {
		return ErrSelfReferral
	}

	set, err := s.store.SetReferredBy(ctx, userID, code)
	if err != nil {
		return err
	}
	if !set {
		return ErrAlreadyReferred
	}
	return nil
}

func (s *ReferralService) GetReferralStats(ctx context.Context, userID string) (*model.ReferralStats, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &model.ReferralStats{}
	if user.ReferralCode == nil {
		return stats, nil
	}
	stats.ReferralCode = *user.ReferralCode

	count, err := s.store.CountReferredUsers(ctx, *user.ReferralCode)
	if err != nil {
		return nil, err
	}
	stats.TotalReferred = count
	return stats, nil
}

// sequenceOf extracts the numeric suffix of a canonical code, e.g. "BAILS7" -> 7.
func (s *ReferralService) sequenceOf(code string) (int, bool) {
	if !strings.HasPrefix(code, s.prefix) {
		return 0, false
	}
	seq, err := strconv.Atoi(code[len(s.prefix):])
	if err != nil || seq < 1 {
		return 0, false
	}
	return seq, true
}

// nextAvailableSequence returns the smallest value >= n not in reserved.
// Each skip consumes a distinct reserved value, so len(reserved)+1 steps
// always suffice; running past that means the set is malformed.
func nextAvailableSequence(n int, reserved map[int]bool) (int, error) {
	for i := 0; i <= len(reserved); i++ {
		if !reserved[n] {
			return n, nil
		}
		n++
	}
	return 0, ErrReservedSetExhausted
}
