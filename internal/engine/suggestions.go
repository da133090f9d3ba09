package engine

import (
	"math"
	"sort"

	"github.com/estoquelab/stocklens/internal/domain"
)

// DefaultTargetCoverageDays is the standard replenishment horizon.
// The extended horizon used by the long-cycle report is 60.
const (
	DefaultTargetCoverageDays  = 45
	ExtendedTargetCoverageDays = 60
)

// GeneratePurchaseSuggestions produces one target-coverage purchase or
// liquidation recommendation per SKU, ordered most actionable first:
// descending action weight, ties broken by descending purchase cost.
// targetCoverageDays <= 0 is not rejected; it simply degenerates to
// zero-quantity suggestions.
func GeneratePurchaseSuggestions(raw []domain.RawRecord, targetCoverageDays float64) []domain.PurchaseSuggestion {
	records := NormalizeRecords(raw)

	suggestions := make([]domain.PurchaseSuggestion, 0, len(records))
	for _, rec := range records {
		suggestions = append(suggestions, suggestForRecord(rec, targetCoverageDays))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		wi, wj := domain.ActionWeight(suggestions[i].Action), domain.ActionWeight(suggestions[j].Action)
		if wi != wj {
			return wi > wj
		}
		return suggestions[i].PurchaseCost > suggestions[j].PurchaseCost
	})

	return suggestions
}

func suggestForRecord(rec domain.Record, targetCoverageDays float64) domain.PurchaseSuggestion {
	requiredStock := rec.AvgDailySales * targetCoverageDays
	qty := int(math.Ceil(requiredStock - rec.QuantityOnHand))
	if qty < 0 {
		qty = 0
	}

	// The action ladder is ordered; the first match wins.
	var action string
	switch {
	case rec.Status == domain.StatusRupture || rec.CoverageDays <= 0:
		action = domain.ActionUrgentBuy
	case rec.CoverageDays < 15:
		action = domain.ActionBuy
	case rec.Status == domain.StatusExcess || rec.CoverageDays > 90:
		action = domain.ActionLiquidate
		// An excess SKU must never be recommended for purchase, even
		// when a stale coverage figure made the raw arithmetic positive.
		qty = 0
	default:
		action = domain.ActionHold
	}

	return domain.PurchaseSuggestion{
		SKUID:         rec.SKUID,
		Description:   rec.Description,
		Action:        action,
		SuggestedQty:  qty,
		PurchaseCost:  float64(qty) * rec.UnitCost,
		CoverageDays:  rec.CoverageDays,
		AvgDailySales: rec.AvgDailySales,
		Status:        rec.Status,
	}
}
