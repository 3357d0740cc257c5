package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/storemanager/internal/config"
	"github.com/mamadbah2/storemanager/internal/domain/models"
)

// Tabs the snapshot export writes to. Inventory gets one row per item,
// Snapshots a single totals row per run.
const (
	InventoryRange = "Inventory!A:F"
	SnapshotsRange = "Snapshots!A:D"

	stampLayout = "2006-01-02 15:04"
)

// Repository persists inventory snapshots into a spreadsheet.
type Repository interface {
	AppendSnapshot(ctx context.Context, snap models.InventorySnapshot) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSnapshot writes the item lines first and the totals row last, so a
// totals row only shows up once its lines are in the sheet.
func (r *GoogleSheetRepository) AppendSnapshot(ctx context.Context, snap models.InventorySnapshot) error {
	if lines := inventoryRows(snap); len(lines) > 0 {
		if err := r.append(ctx, InventoryRange, lines); err != nil {
			return fmt.Errorf("write inventory rows: %w", err)
		}
	}

	if err := r.append(ctx, SnapshotsRange, [][]interface{}{summaryRow(snap)}); err != nil {
		return fmt.Errorf("write snapshot summary: %w", err)
	}

	r.logger.Debug("snapshot appended to sheet",
		zap.String("taken_at", snap.TakenAt.Format(stampLayout)),
		zap.Int("lines", len(snap.Lines)))
	return nil
}

func (r *GoogleSheetRepository) append(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	payload := &sheetsapi.ValueRange{Values: rows}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", sheetRange, err)
	}
	return nil
}

// inventoryRows lays out one row per line:
// taken at | id | name | quantity | unit price | value.
func inventoryRows(snap models.InventorySnapshot) [][]interface{} {
	stamp := snap.TakenAt.Format(stampLayout)
	rows := make([][]interface{}, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		rows = append(rows, []interface{}{
			stamp,
			line.Item.ID,
			nameCell(line.Item.Name),
			line.Quantity,
			line.UnitPrice,
			line.Value,
		})
	}
	return rows
}

// summaryRow is taken at | item count | total units | total value.
func summaryRow(snap models.InventorySnapshot) []interface{} {
	return []interface{}{
		snap.TakenAt.Format(stampLayout),
		snap.ItemCount,
		snap.TotalUnits,
		snap.TotalValue,
	}
}

// Names are free-form; a missing name is left blank rather than "<nil>".
func nameCell(name any) string {
	if name == nil {
		return ""
	}
	return fmt.Sprint(name)
}
