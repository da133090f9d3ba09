package engine

import (
	"sort"

	"github.com/estoquelab/stocklens/internal/domain"
)

const (
	topMoverLimit       = 5
	priorityActionLimit = 50

	ruptureMoverLabel = "Est. Daily Loss"
	excessMoverLabel  = "Capital Tied Up"
)

// coverageBands are the fixed days-of-cover bands of the histogram, in
// display order. A negative max marks the open-ended last band.
var coverageBands = []struct {
	label string
	min   float64
	max   float64
}{
	{"0-7d", 0, 7},
	{"8-15d", 7, 15},
	{"16-30d", 15, 30},
	{"31-60d", 30, 60},
	{"60d+", 60, -1},
}

// accumulator carries the running sums of one aggregation pass. It is
// local to a single ComputeDashboardMetrics call; nothing survives the
// call.
type accumulator struct {
	inventoryValue   float64
	revenuePotential float64
	transitValue     float64
	adjustedValue    float64

	turnoverSum   float64
	turnoverCount int

	statusCounts map[string]int
	alertCounts  map[string]int
	alertValues  map[string]float64
	abcCounts    map[string]int
	abcValues    map[string]float64
	trendCounts  map[string]int

	bandValues []float64
}

func newAccumulator() *accumulator {
	return &accumulator{
		statusCounts: make(map[string]int),
		alertCounts:  make(map[string]int),
		alertValues:  make(map[string]float64),
		abcCounts:    make(map[string]int),
		abcValues:    make(map[string]float64),
		trendCounts:  make(map[string]int),
		bandValues:   make([]float64, len(coverageBands)),
	}
}

func (a *accumulator) add(rec domain.Record) {
	stockValue := rec.StockValue()

	a.inventoryValue += stockValue
	a.revenuePotential += rec.RevenuePotential()
	a.transitValue += rec.TransitQuantity * rec.UnitCost
	a.adjustedValue += rec.AdjustedQty * rec.UnitCost

	if rec.MonthlyTurnover > 0 {
		a.turnoverSum += rec.MonthlyTurnover
		a.turnoverCount++
	}

	a.statusCounts[rec.Status]++
	a.alertCounts[rec.Alert]++
	a.alertValues[rec.Alert] += stockValue
	a.abcCounts[rec.ABCClass]++
	a.abcValues[rec.ABCClass] += stockValue
	a.trendCounts[rec.Trend]++

	// A coverage figure is meaningless at zero stock, so zero-stock
	// SKUs stay out of the histogram entirely.
	if rec.QuantityOnHand > 0 {
		a.bandValues[bandIndex(rec.CoverageDays)] += stockValue
	}
}

func bandIndex(coverageDays float64) int {
	for i, band := range coverageBands {
		if band.max < 0 || coverageDays <= band.max {
			return i
		}
	}

	return len(coverageBands) - 1
}

// ComputeDashboardMetrics derives the full dashboard metrics object
// from a raw snapshot. Records without a SKU id are excluded; every
// division special-cases a zero denominator to exactly 0.
func ComputeDashboardMetrics(raw []domain.RawRecord) domain.DashboardMetrics {
	records := NormalizeRecords(raw)

	acc := newAccumulator()
	for _, rec := range records {
		acc.add(rec)
	}

	total := len(records)
	m := domain.DashboardMetrics{
		TotalItems:             total,
		TotalInventoryValue:    acc.inventoryValue,
		TotalRevenuePotential:  acc.revenuePotential,
		ProjectedProfit:        acc.revenuePotential - acc.inventoryValue,
		TotalTransitValue:      acc.transitValue,
		TotalAdjustedSuggValue: acc.adjustedValue,
		StatusBreakdown:        acc.statusCounts,
	}

	if acc.revenuePotential > 0 {
		m.AverageMargin = m.ProjectedProfit / acc.revenuePotential * 100
	}
	if acc.turnoverCount > 0 {
		m.AverageTurnover = acc.turnoverSum / float64(acc.turnoverCount)
	}

	// RUPTURE and CRITICAL both mean actively losing sales, so risk
	// reporting merges them. Status buckets keep them distinct.
	m.RuptureCount = acc.statusCounts[domain.StatusRupture] + acc.statusCounts[domain.StatusCritical]
	m.ExcessCount = acc.statusCounts[domain.StatusExcess]
	m.HealthyCount = acc.statusCounts[domain.StatusHealthy]
	if total > 0 {
		m.RuptureShare = float64(m.RuptureCount) / float64(total) * 100
		m.HealthyShare = float64(m.HealthyCount) / float64(total) * 100
	}

	m.AlertBreakdown = make([]domain.AlertBucket, 0, len(domain.AlertTags))
	for _, tag := range domain.AlertTags {
		m.AlertBreakdown = append(m.AlertBreakdown, domain.AlertBucket{
			Tag:   tag,
			Count: acc.alertCounts[tag],
			Value: acc.alertValues[tag],
		})
	}

	m.ABCBreakdown = make([]domain.ABCBucket, 0, len(domain.ABCClasses))
	for _, class := range domain.ABCClasses {
		bucket := domain.ABCBucket{
			Class: class,
			Count: acc.abcCounts[class],
			Value: acc.abcValues[class],
		}
		if total > 0 {
			bucket.Share = float64(bucket.Count) / float64(total) * 100
		}
		m.ABCBreakdown = append(m.ABCBreakdown, bucket)
	}

	m.TrendBreakdown = make([]domain.TrendBucket, 0, len(domain.Trends))
	for _, trend := range domain.Trends {
		bucket := domain.TrendBucket{
			Trend: trend,
			Count: acc.trendCounts[trend],
		}
		if total > 0 {
			bucket.Share = float64(bucket.Count) / float64(total) * 100
		}
		m.TrendBreakdown = append(m.TrendBreakdown, bucket)
	}

	m.CoverageHistogram = make([]domain.CoverageBand, 0, len(coverageBands))
	for i, band := range coverageBands {
		m.CoverageHistogram = append(m.CoverageHistogram, domain.CoverageBand{
			Label:   band.label,
			MinDays: band.min,
			MaxDays: band.max,
			Value:   acc.bandValues[i],
		})
	}

	m.RuptureMovers = topMovers(records,
		func(r domain.Record) bool {
			return r.Status == domain.StatusRupture || r.Status == domain.StatusCritical
		},
		func(r domain.Record) float64 { return r.AvgDailySales * r.UnitPrice },
		ruptureMoverLabel,
	)
	m.ExcessMovers = topMovers(records,
		func(r domain.Record) bool { return r.Status == domain.StatusExcess },
		func(r domain.Record) float64 { return r.StockValue() },
		excessMoverLabel,
	)
	m.PriorityActions = priorityActions(records)

	return m
}

// topMovers filters and ranks records descending by value, keeping the
// top five. Ties keep the original snapshot order.
func topMovers(records []domain.Record, match func(domain.Record) bool, value func(domain.Record) float64, label string) []domain.TopMover {
	movers := make([]domain.TopMover, 0)
	for _, rec := range records {
		if !match(rec) {
			continue
		}
		movers = append(movers, domain.TopMover{
			SKUID:       rec.SKUID,
			Description: rec.Description,
			Value:       value(rec),
			ValueLabel:  label,
			Status:      rec.Status,
			ABCClass:    rec.ABCClass,
			Alert:       rec.Alert,
		})
	}

	sort.SliceStable(movers, func(i, j int) bool {
		return movers[i].Value > movers[j].Value
	})

	if len(movers) > topMoverLimit {
		movers = movers[:topMoverLimit]
	}

	return movers
}

// priorityActions ranks records with an assigned purchase priority by
// tier (ascending) then stock value (descending), capped at 50.
func priorityActions(records []domain.Record) []domain.PriorityAction {
	lowest := domain.PriorityTierRank("none")

	actions := make([]domain.PriorityAction, 0)
	for _, rec := range records {
		if rec.Priority == "" {
			continue
		}
		rank := domain.PriorityTierRank(rec.Priority)
		if rank >= lowest {
			continue
		}
		actions = append(actions, domain.PriorityAction{
			SKUID:       rec.SKUID,
			Description: rec.Description,
			Priority:    rec.Priority,
			TierRank:    rank,
			StockValue:  rec.StockValue(),
		})
	}

	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].TierRank != actions[j].TierRank {
			return actions[i].TierRank < actions[j].TierRank
		}
		return actions[i].StockValue > actions[j].StockValue
	})

	if len(actions) > priorityActionLimit {
		actions = actions[:priorityActionLimit]
	}

	return actions
}
