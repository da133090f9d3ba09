package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/estoquelab/stocklens/internal/domain"
)

// SnapshotRepository reads daily inventory snapshots from Postgres.
// Rows come back loosely typed on purpose: the nullable columns map to
// nil in the raw record and the engine's normalizer handles the rest.
type SnapshotRepository struct {
	db *DB
}

func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

type snapshotRow struct {
	SKUID            string          `db:"sku_id"`
	Description      sql.NullString  `db:"description"`
	QuantityOnHand   sql.NullFloat64 `db:"quantity_on_hand"`
	UnitCost         sql.NullFloat64 `db:"unit_cost"`
	UnitPrice        sql.NullFloat64 `db:"unit_price"`
	AvgDailySales    sql.NullFloat64 `db:"avg_daily_sales"`
	CoverageDays     sql.NullFloat64 `db:"coverage_days"`
	TransitQuantity  sql.NullFloat64 `db:"transit_quantity"`
	AdjustedQty      sql.NullFloat64 `db:"adjusted_suggested_purchase_qty"`
	MonthlyTurnover  sql.NullFloat64 `db:"monthly_turnover"`
	RuptureStatus    sql.NullString  `db:"rupture_status"`
	ABCClass         sql.NullString  `db:"abc_class"`
	Trend            sql.NullString  `db:"trend"`
	StockAlert       sql.NullString  `db:"stock_alert"`
	PurchasePriority sql.NullString  `db:"purchase_priority"`
}

func (r *SnapshotRepository) GetSnapshot(ctx context.Context, snapshotDate string) ([]domain.RawRecord, error) {
	release, err := r.db.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	query := `
		SELECT
			sku_id, description,
			quantity_on_hand, unit_cost, unit_price,
			avg_daily_sales, coverage_days,
			transit_quantity, adjusted_suggested_purchase_qty, monthly_turnover,
			rupture_status, abc_class, trend, stock_alert, purchase_priority
		FROM daily_inventory
		WHERE time = COALESCE(NULLIF($1, '')::date, (SELECT MAX(time) FROM daily_inventory))
		ORDER BY sku_id`

	var rows []snapshotRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, snapshotDate); err != nil {
		return nil, fmt.Errorf("select inventory snapshot: %w", err)
	}

	records := make([]domain.RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.RawRecord{
			SKUID:            row.SKUID,
			Description:      row.Description.String,
			QuantityOnHand:   nullableFloat(row.QuantityOnHand),
			UnitCost:         nullableFloat(row.UnitCost),
			UnitPrice:        nullableFloat(row.UnitPrice),
			AvgDailySales:    nullableFloat(row.AvgDailySales),
			CoverageDays:     nullableFloat(row.CoverageDays),
			TransitQuantity:  nullableFloat(row.TransitQuantity),
			AdjustedQty:      nullableFloat(row.AdjustedQty),
			MonthlyTurnover:  nullableFloat(row.MonthlyTurnover),
			RuptureStatus:    row.RuptureStatus.String,
			ABCClass:         row.ABCClass.String,
			Trend:            row.Trend.String,
			StockAlert:       row.StockAlert.String,
			PurchasePriority: row.PurchasePriority.String,
		})
	}

	return records, nil
}

func (r *SnapshotRepository) GetAvailableDates(ctx context.Context, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `SELECT DISTINCT time FROM daily_inventory ORDER BY time DESC LIMIT $1`

	var dates []time.Time
	if err := sqlx.SelectContext(ctx, r.db, &dates, query, limit); err != nil {
		return nil, fmt.Errorf("select snapshot dates: %w", err)
	}

	return dates, nil
}

func nullableFloat(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}
