package domain

// RawRecord is a single per-SKU inventory row as it arrives from the
// upstream snapshot. Numeric fields are `any` on purpose: the source
// mixes JSON numbers, locale-formatted strings ("1.234,56") and nulls,
// and the engine normalizes them itself. Callers never pre-clean.
type RawRecord struct {
	SKUID            string `json:"sku_id"`
	Description      string `json:"description"`
	QuantityOnHand   any    `json:"quantity_on_hand"`
	UnitCost         any    `json:"unit_cost"`
	UnitPrice        any    `json:"unit_price"`
	AvgDailySales    any    `json:"avg_daily_sales"`
	CoverageDays     any    `json:"coverage_days"`
	TransitQuantity  any    `json:"transit_quantity"`
	AdjustedQty      any    `json:"adjusted_suggested_purchase_qty"`
	MonthlyTurnover  any    `json:"monthly_turnover"`
	RuptureStatus    string `json:"rupture_status"`
	ABCClass         string `json:"abc_class"`
	Trend            string `json:"trend"`
	StockAlert       string `json:"stock_alert"`
	PurchasePriority string `json:"purchase_priority"`
}

// Record is the strict internal shape every computation runs on.
// All numeric fields are non-negative, all enum fields hold one of the
// canonical values from status.go (Status may carry an unrecognized
// source string verbatim; downstream bucket maps tolerate that).
type Record struct {
	SKUID           string
	Description     string
	QuantityOnHand  float64
	UnitCost        float64
	UnitPrice       float64
	AvgDailySales   float64
	CoverageDays    float64
	TransitQuantity float64
	AdjustedQty     float64
	MonthlyTurnover float64

	Status   string
	ABCClass string
	Trend    string
	Alert    string
	Priority string
}

// StockValue is the capital currently tied up in this SKU.
func (r Record) StockValue() float64 {
	return r.QuantityOnHand * r.UnitCost
}

// RevenuePotential is the sell-through value of the stock on hand.
func (r Record) RevenuePotential() float64 {
	return r.QuantityOnHand * r.UnitPrice
}
