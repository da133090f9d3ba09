package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoquelab/stocklens/internal/domain"
	"github.com/estoquelab/stocklens/internal/engine"
)

func TestComputeDashboardMetricsEmpty(t *testing.T) {
	m := engine.ComputeDashboardMetrics(nil)

	assert.Zero(t, m.TotalItems)
	assert.Zero(t, m.TotalInventoryValue)
	assert.Zero(t, m.TotalRevenuePotential)
	assert.Zero(t, m.ProjectedProfit)
	assert.Zero(t, m.AverageMargin)
	assert.Zero(t, m.AverageTurnover)
	assert.Zero(t, m.RuptureShare)
	assert.Zero(t, m.HealthyShare)
	assert.Empty(t, m.RuptureMovers)
	assert.Empty(t, m.ExcessMovers)
	assert.Empty(t, m.PriorityActions)

	for _, band := range m.CoverageHistogram {
		assert.Zero(t, band.Value)
	}
}

func TestComputeDashboardMetricsFinancials(t *testing.T) {
	records := []domain.RawRecord{
		{SKUID: "A-1", QuantityOnHand: 10, UnitCost: 5, UnitPrice: 8, RuptureStatus: "healthy"},
		{SKUID: "A-2", QuantityOnHand: 4, UnitCost: "2,50", UnitPrice: 5, RuptureStatus: "healthy"},
		{SKUID: "", QuantityOnHand: 1000, UnitCost: 1000}, // excluded: no SKU id
	}

	m := engine.ComputeDashboardMetrics(records)

	assert.Equal(t, 2, m.TotalItems)
	assert.InDelta(t, 60, m.TotalInventoryValue, 1e-9)    // 10*5 + 4*2.5
	assert.InDelta(t, 100, m.TotalRevenuePotential, 1e-9) // 10*8 + 4*5
	assert.InDelta(t, 40, m.ProjectedProfit, 1e-9)
	assert.InDelta(t, 40, m.AverageMargin, 1e-9)
	assert.InDelta(t, 100, m.HealthyShare, 1e-9)
}

func TestAverageMarginZeroRevenue(t *testing.T) {
	m := engine.ComputeDashboardMetrics([]domain.RawRecord{
		{SKUID: "A-1", QuantityOnHand: 10, UnitCost: 5, UnitPrice: 0},
	})

	assert.Zero(t, m.AverageMargin)
}

func TestAverageTurnoverExcludesZeroTurnoverSKUs(t *testing.T) {
	m := engine.ComputeDashboardMetrics([]domain.RawRecord{
		{SKUID: "A-1", MonthlyTurnover: 2},
		{SKUID: "A-2", MonthlyTurnover: 4},
		{SKUID: "A-3", MonthlyTurnover: 0},
		{SKUID: "A-4"},
	})

	// Never-sold SKUs stay out of the denominator
	assert.InDelta(t, 3, m.AverageTurnover, 1e-9)
}

func TestRuptureCountMergesCriticalAndIgnoresDecoration(t *testing.T) {
	plain := engine.ComputeDashboardMetrics([]domain.RawRecord{
		{SKUID: "A-1", RuptureStatus: "rupture"},
		{SKUID: "A-2", RuptureStatus: "critical"},
		{SKUID: "A-3", RuptureStatus: "healthy"},
	})
	decorated := engine.ComputeDashboardMetrics([]domain.RawRecord{
		{SKUID: "A-1", RuptureStatus: "\U0001F534 RUPTURE"},
		{SKUID: "A-2", RuptureStatus: "\U0001F7E0 Critical"},
		{SKUID: "A-3", RuptureStatus: "✅ Healthy"},
	})

	assert.Equal(t, 2, plain.RuptureCount)
	assert.Equal(t, plain.RuptureCount, decorated.RuptureCount)
	assert.Equal(t, plain.StatusBreakdown[domain.StatusRupture], decorated.StatusBreakdown[domain.StatusRupture])
	assert.InDelta(t, 100.0*2/3, plain.RuptureShare, 1e-9)
}

func TestStatusFallbackAppearsVerbatimInBuckets(t *testing.T) {
	m := engine.ComputeDashboardMetrics([]domain.RawRecord{
		{SKUID: "A-1", RuptureStatus: "backorder"},
	})

	assert.Equal(t, 1, m.StatusBreakdown["backorder"])
	assert.Zero(t, m.RuptureCount)
}

func TestRuptureMoversRankedByDailyLoss(t *testing.T) {
	records := make([]domain.RawRecord, 0, 8)
	for i := 1; i <= 7; i++ {
		records = append(records, domain.RawRecord{
			SKUID:         fmt.Sprintf("R-%d", i),
			RuptureStatus: "rupture",
			AvgDailySales: float64(i),
			UnitPrice:     10,
		})
	}
	records = append(records, domain.RawRecord{
		SKUID: "H-1", RuptureStatus: "healthy", AvgDailySales: 100, UnitPrice: 100,
	})

	m := engine.ComputeDashboardMetrics(records)

	require.Len(t, m.RuptureMovers, 5)
	assert.Equal(t, "R-7", m.RuptureMovers[0].SKUID)
	assert.InDelta(t, 70, m.RuptureMovers[0].Value, 1e-9)
	assert.Equal(t, "Est. Daily Loss", m.RuptureMovers[0].ValueLabel)
	for i := 1; i < len(m.RuptureMovers); i++ {
		assert.GreaterOrEqual(t, m.RuptureMovers[i-1].Value, m.RuptureMovers[i].Value)
	}
	for _, mover := range m.RuptureMovers {
		assert.NotEqual(t, "H-1", mover.SKUID)
	}
}

func TestExcessMoversRankedByCapitalTiedUp(t *testing.T) {
	m := engine.ComputeDashboardMetrics([]domain.RawRecord{
		{SKUID: "E-1", RuptureStatus: "excess", QuantityOnHand: 1000, UnitCost: 10, CoverageDays: 200},
		{SKUID: "E-2", RuptureStatus: "excess", QuantityOnHand: 50, UnitCost: 10, CoverageDays: 120},
		{SKUID: "H-1", RuptureStatus: "healthy", QuantityOnHand: 9999, UnitCost: 10},
	})

	require.Len(t, m.ExcessMovers, 2)
	assert.Equal(t, "E-1", m.ExcessMovers[0].SKUID)
	assert.InDelta(t, 10000, m.ExcessMovers[0].Value, 1e-9)
	assert.Equal(t, "Capital Tied Up", m.ExcessMovers[0].ValueLabel)
	assert.Equal(t, 2, m.ExcessCount)
}

func TestCoverageHistogramBands(t *testing.T) {
	m := engine.ComputeDashboardMetrics([]domain.RawRecord{
		{SKUID: "B-1", QuantityOnHand: 1, UnitCost: 100, CoverageDays: 7},
		{SKUID: "B-2", QuantityOnHand: 1, UnitCost: 200, CoverageDays: 7.5},
		{SKUID: "B-3", QuantityOnHand: 1, UnitCost: 300, CoverageDays: 15},
		{SKUID: "B-4", QuantityOnHand: 1, UnitCost: 400, CoverageDays: 30},
		{SKUID: "B-5", QuantityOnHand: 1, UnitCost: 500, CoverageDays: 60},
		{SKUID: "B-6", QuantityOnHand: 1, UnitCost: 600, CoverageDays: 61},
		{SKUID: "B-7", QuantityOnHand: 0, UnitCost: 999, CoverageDays: 3}, // zero stock: no band
	})

	require.Len(t, m.CoverageHistogram, 5)
	assert.InDelta(t, 100, m.CoverageHistogram[0].Value, 1e-9)
	assert.InDelta(t, 500, m.CoverageHistogram[1].Value, 1e-9) // 200 + 300
	assert.InDelta(t, 400, m.CoverageHistogram[2].Value, 1e-9)
	assert.InDelta(t, 500, m.CoverageHistogram[3].Value, 1e-9)
	assert.InDelta(t, 600, m.CoverageHistogram[4].Value, 1e-9)
}

func TestAlertBreakdownCountsAndValues(t *testing.T) {
	m := engine.ComputeDashboardMetrics([]domain.RawRecord{
		{SKUID: "A-1", StockAlert: "dead stock", QuantityOnHand: 10, UnitCost: 5},
		{SKUID: "A-2", StockAlert: "liquidate", QuantityOnHand: 2, UnitCost: 25},
		{SKUID: "A-3", QuantityOnHand: 1, UnitCost: 1},
	})

	require.Len(t, m.AlertBreakdown, 5)
	byTag := make(map[string]domain.AlertBucket)
	for _, bucket := range m.AlertBreakdown {
		byTag[bucket.Tag] = bucket
	}

	assert.Equal(t, 1, byTag[domain.AlertDead].Count)
	assert.InDelta(t, 50, byTag[domain.AlertDead].Value, 1e-9)
	assert.Equal(t, 1, byTag[domain.AlertLiquidate].Count)
	assert.InDelta(t, 50, byTag[domain.AlertLiquidate].Value, 1e-9)
	assert.Equal(t, 1, byTag[domain.AlertOK].Count)
}

func TestABCAndTrendBreakdowns(t *testing.T) {
	m := engine.ComputeDashboardMetrics([]domain.RawRecord{
		{SKUID: "A-1", ABCClass: "A", Trend: "rising", QuantityOnHand: 1, UnitCost: 100},
		{SKUID: "A-2", ABCClass: "x", Trend: "falling"},
		{SKUID: "A-3", Trend: ""},
		{SKUID: "A-4", ABCClass: "B", Trend: "new"},
	})

	require.Len(t, m.ABCBreakdown, 3)
	assert.Equal(t, "A", m.ABCBreakdown[0].Class)
	assert.Equal(t, 1, m.ABCBreakdown[0].Count)
	assert.InDelta(t, 100, m.ABCBreakdown[0].Value, 1e-9)
	assert.InDelta(t, 25, m.ABCBreakdown[0].Share, 1e-9)
	assert.Equal(t, 2, m.ABCBreakdown[2].Count) // invalid and missing fall back to C

	require.Len(t, m.TrendBreakdown, 3)
	assert.Equal(t, 2, m.TrendBreakdown[0].Count) // rising + new
	assert.Equal(t, 1, m.TrendBreakdown[1].Count)
	assert.Equal(t, 1, m.TrendBreakdown[2].Count)
	assert.InDelta(t, 50, m.TrendBreakdown[0].Share, 1e-9)
}

func TestPriorityActionsRankingAndCap(t *testing.T) {
	records := make([]domain.RawRecord, 0, 60)
	for i := 0; i < 55; i++ {
		records = append(records, domain.RawRecord{
			SKUID:            fmt.Sprintf("P-%02d", i),
			PurchasePriority: "High",
			QuantityOnHand:   float64(i + 1),
			UnitCost:         10,
		})
	}
	records = append(records,
		domain.RawRecord{SKUID: "U-1", PurchasePriority: "urgent", QuantityOnHand: 1, UnitCost: 1},
		domain.RawRecord{SKUID: "N-1", PurchasePriority: "none", QuantityOnHand: 9999, UnitCost: 100},
		domain.RawRecord{SKUID: "X-1", QuantityOnHand: 9999, UnitCost: 100},
	)

	m := engine.ComputeDashboardMetrics(records)

	require.Len(t, m.PriorityActions, 50)
	assert.Equal(t, "U-1", m.PriorityActions[0].SKUID) // urgent outranks high regardless of value
	assert.Equal(t, "P-54", m.PriorityActions[1].SKUID)
	for i := 2; i < len(m.PriorityActions); i++ {
		assert.GreaterOrEqual(t, m.PriorityActions[i-1].StockValue, m.PriorityActions[i].StockValue)
	}
	for _, action := range m.PriorityActions {
		assert.NotEqual(t, "N-1", action.SKUID)
		assert.NotEqual(t, "X-1", action.SKUID)
	}
}

func TestTransitAndAdjustedValues(t *testing.T) {
	m := engine.ComputeDashboardMetrics([]domain.RawRecord{
		{SKUID: "A-1", TransitQuantity: 10, AdjustedQty: 4, UnitCost: 3},
		{SKUID: "A-2", TransitQuantity: "2", AdjustedQty: "1,5", UnitCost: 10},
	})

	assert.InDelta(t, 50, m.TotalTransitValue, 1e-9)      // 10*3 + 2*10
	assert.InDelta(t, 27, m.TotalAdjustedSuggValue, 1e-9) // 4*3 + 1.5*10
}
