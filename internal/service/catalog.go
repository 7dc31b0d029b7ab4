package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/model"
)

// CatalogStore is the datastore surface for service listings.
type CatalogStore interface {
	GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
	ListActiveServices(ctx context.Context, category string, limit, offset int) ([]model.Service, error)
	CreateService(ctx context.Context, svc *model.Service) error
}

type CatalogService struct {
	store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return s.store.GetService(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context, category string, limit, offset int) ([]model.Service, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.ListActiveServices(ctx, category, limit, offset)
}

func (s *CatalogService) CreateService(ctx context.Context, svc *model.Service) error {
	svc.IsActive = true
	return s.store.CreateService(ctx, svc)
}
