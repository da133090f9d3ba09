package domain

// PurchaseSuggestion is the per-SKU replenishment (or liquidation)
// recommendation. It is a derived, disposable value: the whole list is
// recomputed from scratch on every call.
type PurchaseSuggestion struct {
	SKUID         string  `json:"sku_id"`
	Description   string  `json:"description"`
	Action        string  `json:"action"`
	SuggestedQty  int     `json:"suggested_qty"`
	PurchaseCost  float64 `json:"purchase_cost"`
	CoverageDays  float64 `json:"coverage_days"`
	AvgDailySales float64 `json:"avg_daily_sales"`
	Status        string  `json:"status"`
}
