package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/estoquelab/stocklens/internal/domain"
)

// Reader loads inventory snapshot CSVs exported by the upstream
// dashboard. Headers vary between exports, so columns are matched by
// normalized name with a few known aliases per field. Cell values stay
// raw strings; the engine's normalizer owns all parsing.

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	return columnNameSanitizer.Replace(strings.TrimSpace(strings.ToLower(name)))
}

// ReadFile reads a snapshot CSV from disk.
func ReadFile(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses snapshot CSV rows into raw records.
func Read(r io.Reader) ([]domain.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}

	colIndex := func(names ...string) int {
		targets := make(map[string]struct{}, len(names))
		for _, name := range names {
			targets[normalizeColumnName(name)] = struct{}{}
		}
		for i, h := range header {
			if _, ok := targets[normalizeColumnName(h)]; ok {
				return i
			}
		}
		return -1
	}

	idxSKU := colIndex("sku_id", "sku")
	idxDescription := colIndex("description", "product name", "nama")
	idxQty := colIndex("quantity_on_hand", "stock", "qty")
	idxUnitCost := colIndex("unit_cost", "cost")
	idxUnitPrice := colIndex("unit_price", "price")
	idxDailySales := colIndex("avg_daily_sales", "daily sales")
	idxCoverage := colIndex("coverage_days", "days of cover")
	idxTransit := colIndex("transit_quantity", "in transit")
	idxAdjusted := colIndex("adjusted_suggested_purchase_qty", "adjusted qty")
	idxTurnover := colIndex("monthly_turnover", "turnover")
	idxStatus := colIndex("rupture_status", "status")
	idxABC := colIndex("abc_class", "abc")
	idxTrend := colIndex("trend")
	idxAlert := colIndex("stock_alert", "alert")
	idxPriority := colIndex("purchase_priority", "priority")

	var records []domain.RawRecord
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read snapshot row: %w", err)
		}

		get := func(idx int) string {
			if idx < 0 || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		// Absent numeric columns become nil so the engine can tell
		// "missing" apart from an explicit zero.
		getNumeric := func(idx int) any {
			if idx < 0 || idx >= len(row) {
				return nil
			}
			v := strings.TrimSpace(row[idx])
			if v == "" {
				return nil
			}
			return v
		}

		records = append(records, domain.RawRecord{
			SKUID:            get(idxSKU),
			Description:      get(idxDescription),
			QuantityOnHand:   getNumeric(idxQty),
			UnitCost:         getNumeric(idxUnitCost),
			UnitPrice:        getNumeric(idxUnitPrice),
			AvgDailySales:    getNumeric(idxDailySales),
			CoverageDays:     getNumeric(idxCoverage),
			TransitQuantity:  getNumeric(idxTransit),
			AdjustedQty:      getNumeric(idxAdjusted),
			MonthlyTurnover:  getNumeric(idxTurnover),
			RuptureStatus:    get(idxStatus),
			ABCClass:         get(idxABC),
			Trend:            get(idxTrend),
			StockAlert:       get(idxAlert),
			PurchasePriority: get(idxPriority),
		})
	}

	return records, nil
}
