package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/storemanager/internal/domain/models"
	repo "github.com/mamadbah2/storemanager/internal/repository/sheets"
)

// ItemLister is the read side of the inventory.
type ItemLister interface {
	ListItems(ctx context.Context) ([]models.Item, error)
}

// Service builds inventory snapshots and exports them to a spreadsheet.
type Service struct {
	items  ItemLister
	repo   repo.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(items ItemLister, repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{items: items, repo: repository, logger: logger}
}

// BuildSnapshot aggregates the current inventory. Quantities and prices that
// are not numbers are parsed leniently; anything unparsable counts as zero.
func (s *Service) BuildSnapshot(ctx context.Context, at time.Time) (models.InventorySnapshot, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return models.InventorySnapshot{}, fmt.Errorf("load items: %w", err)
	}

	snap := models.InventorySnapshot{
		TakenAt:   at,
		ItemCount: len(items),
		Lines:     make([]models.SnapshotLine, 0, len(items)),
	}

	for _, item := range items {
		qty, err := parseFloat(item.Quantity)
		if err != nil {
			s.logger.Debug("quantity not numeric, counted as zero", zap.String("id", item.ID), zap.Any("value", item.Quantity), zap.Error(err))
			qty = 0
		}
		price, err := parseFloat(item.Price)
		if err != nil {
			s.logger.Debug("price not numeric, counted as zero", zap.String("id", item.ID), zap.Any("value", item.Price), zap.Error(err))
			price = 0
		}

		value := roundTwoDecimals(qty * price)
		snap.Lines = append(snap.Lines, models.SnapshotLine{
			Item:      item,
			Quantity:  qty,
			UnitPrice: price,
			Value:     value,
		})
		snap.TotalUnits += qty
		snap.TotalValue += value
	}
	snap.TotalValue = roundTwoDecimals(snap.TotalValue)

	return snap, nil
}

// ExportSnapshot builds a snapshot and appends it to the spreadsheet.
func (s *Service) ExportSnapshot(ctx context.Context, at time.Time) (models.InventorySnapshot, error) {
	snap, err := s.BuildSnapshot(ctx, at)
	if err != nil {
		return models.InventorySnapshot{}, err
	}

	if err := s.repo.AppendSnapshot(ctx, snap); err != nil {
		return models.InventorySnapshot{}, fmt.Errorf("export snapshot: %w", err)
	}

	s.logger.Info("inventory snapshot exported",
		zap.Int("items", snap.ItemCount),
		zap.Float64("total_units", snap.TotalUnits),
		zap.Float64("total_value", snap.TotalValue))
	return snap, nil
}

func parseFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, fmt.Errorf("empty numeric value")
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}

	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(strings.ReplaceAll(str, ",", "."), 64)
}

func roundTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}
