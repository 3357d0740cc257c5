package models

import "time"

// InventorySnapshot aggregates the store contents at a point in time.
type InventorySnapshot struct {
	TakenAt    time.Time      `json:"taken_at"`
	ItemCount  int            `json:"item_count"`
	TotalUnits float64        `json:"total_units"`
	TotalValue float64        `json:"total_value"`
	Lines      []SnapshotLine `json:"lines"`
}

// SnapshotLine is one item of a snapshot with its numeric fields resolved.
type SnapshotLine struct {
	Item      Item    `json:"item"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Value     float64 `json:"value"`
}
