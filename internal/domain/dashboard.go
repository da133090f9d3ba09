package domain

// DashboardMetrics is the full portfolio picture derived from one
// inventory snapshot. Every field is computed in a single aggregation
// call; nothing here is ever constructed or mutated independently.
type DashboardMetrics struct {
	TotalItems int `json:"total_items"`

	// Financials
	TotalInventoryValue    float64 `json:"total_inventory_value"`
	TotalRevenuePotential  float64 `json:"total_revenue_potential"`
	ProjectedProfit        float64 `json:"projected_profit"`
	AverageMargin          float64 `json:"average_margin"`
	AverageTurnover        float64 `json:"average_turnover"`
	TotalTransitValue      float64 `json:"total_transit_value"`
	TotalAdjustedSuggValue float64 `json:"total_adjusted_suggestion_value"`

	// Risk
	RuptureCount int     `json:"rupture_count"`
	ExcessCount  int     `json:"excess_count"`
	HealthyCount int     `json:"healthy_count"`
	RuptureShare float64 `json:"rupture_share"`
	HealthyShare float64 `json:"healthy_share"`

	// Breakdowns
	StatusBreakdown   map[string]int `json:"status_breakdown"`
	AlertBreakdown    []AlertBucket  `json:"alert_breakdown"`
	ABCBreakdown      []ABCBucket    `json:"abc_breakdown"`
	TrendBreakdown    []TrendBucket  `json:"trend_breakdown"`
	CoverageHistogram []CoverageBand `json:"coverage_histogram"`

	// Rankings
	RuptureMovers   []TopMover       `json:"rupture_movers"`
	ExcessMovers    []TopMover       `json:"excess_movers"`
	PriorityActions []PriorityAction `json:"priority_actions"`
}

// AlertBucket accumulates count and stock value per stock alert tag.
type AlertBucket struct {
	Tag   string  `json:"tag"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// ABCBucket accumulates count, share and stock value per ABC class.
type ABCBucket struct {
	Class string  `json:"class"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
	Value float64 `json:"value"`
}

// TrendBucket accumulates count and share per sales trend.
type TrendBucket struct {
	Trend string  `json:"trend"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// CoverageBand holds the stock value sitting inside one fixed
// days-of-cover band. MaxDays < 0 marks an unbounded upper band.
type CoverageBand struct {
	Label   string  `json:"label"`
	MinDays float64 `json:"min_days"`
	MaxDays float64 `json:"max_days"`
	Value   float64 `json:"value"`
}

// TopMover is one entry of a ranked rupture or excess list. Value is
// the ranking figure and ValueLabel names it for display.
type TopMover struct {
	SKUID       string  `json:"sku_id"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	ValueLabel  string  `json:"value_label"`
	Status      string  `json:"status"`
	ABCClass    string  `json:"abc_class"`
	Alert       string  `json:"alert"`
}

// PriorityAction is one entry of the ranked purchase-priority queue.
type PriorityAction struct {
	SKUID       string  `json:"sku_id"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	TierRank    int     `json:"tier_rank"`
	StockValue  float64 `json:"stock_value"`
}
