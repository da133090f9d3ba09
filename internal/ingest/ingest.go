package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"

	"github.com/estoquelab/stocklens/internal/engine"
	"github.com/estoquelab/stocklens/internal/snapshot"
)

// Processor loads snapshot CSV exports into the daily_inventory table.
// Rows are stored normalized so the analytics queries and the engine
// see the same numbers regardless of the export's locale quirks.
type Processor struct {
	db *sql.DB
}

func NewProcessor(db *sql.DB) *Processor {
	return &Processor{db: db}
}

// ProcessFile reads one snapshot CSV and upserts its rows for the
// given snapshot date. Rows without a SKU id are skipped, matching the
// engine's own exclusion rule.
func (p *Processor) ProcessFile(ctx context.Context, filePath string, snapshotDate time.Time) (int, error) {
	records, err := snapshot.ReadFile(filePath)
	if err != nil {
		return 0, err
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO daily_inventory (
            time, sku_id, description,
            quantity_on_hand, unit_cost, unit_price,
            avg_daily_sales, coverage_days,
            transit_quantity, adjusted_suggested_purchase_qty, monthly_turnover,
            rupture_status, abc_class, trend, stock_alert, purchase_priority,
            updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW()
        )
        ON CONFLICT (time, sku_id)
        DO UPDATE SET
            description = EXCLUDED.description,
            quantity_on_hand = EXCLUDED.quantity_on_hand,
            unit_cost = EXCLUDED.unit_cost,
            unit_price = EXCLUDED.unit_price,
            avg_daily_sales = EXCLUDED.avg_daily_sales,
            coverage_days = EXCLUDED.coverage_days,
            transit_quantity = EXCLUDED.transit_quantity,
            adjusted_suggested_purchase_qty = EXCLUDED.adjusted_suggested_purchase_qty,
            monthly_turnover = EXCLUDED.monthly_turnover,
            rupture_status = EXCLUDED.rupture_status,
            abc_class = EXCLUDED.abc_class,
            trend = EXCLUDED.trend,
            stock_alert = EXCLUDED.stock_alert,
            purchase_priority = EXCLUDED.purchase_priority,
            updated_at = NOW()
    `

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	processedCount := 0
	for _, raw := range records {
		rec, ok := engine.NormalizeRecord(raw)
		if !ok {
			log.Warn().Str("file", filePath).Msg("skipping record without SKU id")
			continue
		}

		if _, err := stmt.ExecContext(ctx,
			snapshotDate,
			rec.SKUID,
			rec.Description,
			rec.QuantityOnHand,
			rec.UnitCost,
			rec.UnitPrice,
			rec.AvgDailySales,
			rec.CoverageDays,
			rec.TransitQuantity,
			rec.AdjustedQty,
			rec.MonthlyTurnover,
			rec.Status,
			rec.ABCClass,
			rec.Trend,
			rec.Alert,
			rec.Priority,
		); err != nil {
			return processedCount, fmt.Errorf("failed to insert record %s: %w", rec.SKUID, err)
		}

		processedCount++
	}

	if err := tx.Commit(); err != nil {
		return processedCount, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info().Int("count", processedCount).Str("file", filePath).Msg("snapshot ingested")

	return processedCount, nil
}
