package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/repository"
)

// fakeStore is an in-memory stand-in for *repository.Repository. It
// implements every store interface the services consume.
type fakeStore struct {
	users    []*model.User
	config   map[string]string
	promos   map[uuid.UUID]*model.PromoCode
	usages   []model.PromoUsage
	services map[uuid.UUID]*model.Service
	bookings map[uuid.UUID]*model.Booking
	admins   map[string]bool
	logs     []model.AdminLog

	// failCodeUpdate injects a write error for specific user ids.
	failCodeUpdate map[string]error
	// onCodeUpdate, when set, runs before a referral code write lands.
	onCodeUpdate func(userID string)

	nextCreatedAt time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		config:         make(map[string]string),
		promos:         make(map[uuid.UUID]*model.PromoCode),
		services:       make(map[uuid.UUID]*model.Service),
		bookings:       make(map[uuid.UUID]*model.Booking),
		admins:         make(map[string]bool),
		failCodeUpdate: make(map[string]error),
		nextCreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) addUser(id, email string, referralCode *string) *model.User {
	u := &model.User{
		ID:           id,
		Email:        email,
		Role:         model.UserRoleClient,
		ReferralCode: referralCode,
		CreatedAt:    f.nextCreatedAt,
	}
	f.nextCreatedAt = f.nextCreatedAt.Add(time.Minute)
	f.users = append(f.users, u)
	return u
}

func (f *fakeStore) addPromo(promo *model.PromoCode) *model.PromoCode {
	if promo.ID == uuid.Nil {
		promo.ID = uuid.New()
	}
	f.promos[promo.ID] = promo
	return promo
}

func (f *fakeStore) addService(freelancerID string, price float64) *model.Service {
	svc := &model.Service{
		ID:              uuid.New(),
		FreelancerID:    freelancerID,
		Title:           "Net practice session",
		Category:        "batting-coach",
		Price:           price,
		DurationMinutes: 60,
		IsActive:        true,
	}
	f.services[svc.ID] = svc
	return svc
}

// UserStore / ReferralStore

func (f *fakeStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) UpsertUser(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.ID == user.ID {
			u.Email = user.Email
			u.FullName = user.FullName
			u.Phone = user.Phone
			u.Bio = user.Bio
			u.AvatarURL = user.AvatarURL
			u.Location = user.Location
			user.CreatedAt = u.CreatedAt
			user.ReferralCode = u.ReferralCode
			user.ReferredBy = u.ReferredBy
			return nil
		}
	}
	created := f.addUser(user.ID, user.Email, nil)
	created.FullName = user.FullName
	created.Role = user.Role
	user.CreatedAt = created.CreatedAt
	return nil
}

func (f *fakeStore) ListUsersByCreation(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, len(f.users))
	for i, u := range f.users {
		out[i] = *u
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) GetUserByReferralCode(ctx context.Context, code string) (*model.User, error) {
	for _, u := range f.users {
		if u.ReferralCode != nil && *u.ReferralCode == code {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) UpdateReferralCode(ctx context.Context, userID, code string) error {
	if err, ok := f.failCodeUpdate[userID]; ok {
		return err
	}
	if f.onCodeUpdate != nil {
		f.onCodeUpdate(userID)
	}
	for _, u := range f.users {
		if u.ID == userID {
			c := code
			u.ReferralCode = &c
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (f *fakeStore) SetReferredBy(ctx context.Context, userID, referrerCode string) (bool, error) {
	for _, u := range f.users {
		if u.ID == userID {
			if u.ReferredBy != nil {
				return false, nil
			}
			c := referrerCode
			u.ReferredBy = &c
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CountReferredUsers(ctx context.Context, code string) (int, error) {
	count := 0
	for _, u := range f.users {
		if u.ReferredBy != nil && *u.ReferredBy == code {
			count++
		}
	}
	return count, nil
}

// SystemConfig

func (f *fakeStore) GetConfigValue(ctx context.Context, key string) (string, error) {
	value, ok := f.config[key]
	if !ok {
		return "", repository.ErrConfigNotFound
	}
	return value, nil
}

func (f *fakeStore) SetConfigValue(ctx context.Context, key, value string) error {
	f.config[key] = value
	return nil
}

func (f *fakeStore) AllocateReferralSequence(ctx context.Context) (int, error) {
	claimed := 1
	if v, ok := f.config[model.ConfigKeyNextReferralSequence]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, err
		}
		claimed = n
	}
	f.config[model.ConfigKeyNextReferralSequence] = strconv.Itoa(claimed + 1)
	return claimed, nil
}

func (f *fakeStore) AdvanceReferralSequence(ctx context.Context, to int) error {
	if v, ok := f.config[model.ConfigKeyNextReferralSequence]; ok {
		cur, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		if cur >= to {
			return nil
		}
	}
	f.config[model.ConfigKeyNextReferralSequence] = strconv.Itoa(to)
	return nil
}

func (f *fakeStore) GetConfigFloat(ctx context.Context, key string) (float64, error) {
	value, err := f.GetConfigValue(ctx, key)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(value, 64)
}

func (f *fakeStore) ListConfig(ctx context.Context) ([]model.SystemConfig, error) {
	var out []model.SystemConfig
	for k, v := range f.config {
		out = append(out, model.SystemConfig{Key: k, Value: v})
	}
	return out, nil
}

// PromoStore

func (f *fakeStore) GetPromoCodeByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	for _, p := range f.promos {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetPromoCodeByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error) {
	p, ok := f.promos[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (f *fakeStore) CountPromoUsages(ctx context.Context, promoCodeID uuid.UUID, userID string) (int, error) {
	count := 0
	for _, u := range f.usages {
		if u.PromoCodeID == promoCodeID && u.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) RecordPromoUsage(ctx context.Context, usage *model.PromoUsage) error {
	promo, ok := f.promos[usage.PromoCodeID]
	if !ok {
		return repository.ErrPromoUsageExhausted
	}
	if promo.UsageLimit != nil && promo.UsedCount >= *promo.UsageLimit {
		return repository.ErrPromoUsageExhausted
	}
	if promo.PerUserLimit != nil {
		count, _ := f.CountPromoUsages(ctx, usage.PromoCodeID, usage.UserID)
		if count >= *promo.PerUserLimit {
			return repository.ErrPromoPerUserLimit
		}
	}
	promo.UsedCount++
	usage.ID = uuid.New()
	usage.CreatedAt = time.Now()
	f.usages = append(f.usages, *usage)
	return nil
}

func (f *fakeStore) CreatePromoCode(ctx context.Context, promo *model.PromoCode) error {
	promo.ID = uuid.New()
	promo.CreatedAt = time.Now()
	f.promos[promo.ID] = promo
	return nil
}

func (f *fakeStore) ListPromoCodes(ctx context.Context, limit, offset int) ([]model.PromoCode, error) {
	var out []model.PromoCode
	for _, p := range f.promos {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) DeactivatePromoCode(ctx context.Context, id uuid.UUID) error {
	if p, ok := f.promos[id]; ok {
		p.IsActive = false
	}
	return nil
}

// BookingStore / CatalogStore

func (f *fakeStore) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, repository.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeStore) ListActiveServices(ctx context.Context, category string, limit, offset int) ([]model.Service, error) {
	var out []model.Service
	for _, s := range f.services {
		if s.IsActive && (category == "" || s.Category == category) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateService(ctx context.Context, svc *model.Service) error {
	svc.ID = uuid.New()
	svc.CreatedAt = time.Now()
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeStore) CreateBooking(ctx context.Context, booking *model.Booking) error {
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeStore) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeStore) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeStore) ListBookingsByClient(ctx context.Context, clientID string, limit, offset int) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

// AdminStore

func (f *fakeStore) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return f.admins[userID], nil
}

func (f *fakeStore) CreateAdminLog(ctx context.Context, entry *model.AdminLog) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakeStore) ListAdminLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error) {
	out := make([]model.AdminLog, len(f.logs))
	copy(out, f.logs)
	return out, nil
}
