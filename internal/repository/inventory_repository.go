package repository

import (
	"context"
	"time"

	"github.com/estoquelab/stocklens/internal/domain"
)

// InventoryRepository loads raw inventory snapshots. The engine never
// touches storage itself; this is its only upstream.
type InventoryRepository interface {
	// GetSnapshot returns the raw records of one snapshot date. An
	// empty snapshotDate means the most recent snapshot.
	GetSnapshot(ctx context.Context, snapshotDate string) ([]domain.RawRecord, error)

	// GetAvailableDates lists the most recent snapshot dates, newest first.
	GetAvailableDates(ctx context.Context, limit int) ([]time.Time, error)
}
