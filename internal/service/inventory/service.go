package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/storemanager/internal/domain/models"
)

// Store is the authoritative item collection. Implementations live under
// internal/repository.
type Store interface {
	List(ctx context.Context) ([]models.Item, error)
	Create(ctx context.Context, input models.ItemInput) (models.Item, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context, items []models.Item) error
}

// ItemService is what the HTTP layer needs from the inventory.
type ItemService interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	CreateItem(ctx context.Context, input models.ItemInput) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// Service owns the store for the lifetime of the backend process.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new inventory service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Bootstrap loads the fixed seed catalogue into an empty store.
func (s *Service) Bootstrap(ctx context.Context) error {
	if err := s.store.Seed(ctx, models.SeedItems()); err != nil {
		return fmt.Errorf("seed inventory: %w", err)
	}
	s.logger.Info("inventory seeded")
	return nil
}

// ListItems returns all items in insertion order.
func (s *Service) ListItems(ctx context.Context) ([]models.Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// CreateItem stores input as a new item.
func (s *Service) CreateItem(ctx context.Context, input models.ItemInput) (models.Item, error) {
	item, err := s.store.Create(ctx, input)
	if err != nil {
		return models.Item{}, fmt.Errorf("create item: %w", err)
	}
	s.logger.Debug("item created", zap.String("id", item.ID), zap.Any("name", item.Name))
	return item, nil
}

// DeleteItem removes the item with id, if any.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	s.logger.Debug("item deleted", zap.String("id", id))
	return nil
}
