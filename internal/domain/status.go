package domain

import "strings"

// Canonical rupture status values, from worst to best.
const (
	StatusRupture   = "RUPTURE"
	StatusCritical  = "CRITICAL"
	StatusAttention = "ATTENTION"
	StatusHealthy   = "HEALTHY"
	StatusExcess    = "EXCESS"
	StatusUnknown   = "UNKNOWN"
)

// Canonical sales trend values.
const (
	TrendRising  = "RISING"
	TrendStable  = "STABLE"
	TrendFalling = "FALLING"
)

// Canonical stock alert tags, in match-precedence order.
const (
	AlertDead      = "DEAD"
	AlertLiquidate = "LIQUIDATE"
	AlertEvaluate  = "EVALUATE"
	AlertAttention = "ATTENTION"
	AlertOK        = "OK"
)

// AlertTags lists every alert bucket in reporting order.
var AlertTags = []string{AlertDead, AlertLiquidate, AlertEvaluate, AlertAttention, AlertOK}

// ABCClasses lists the value classes in reporting order.
var ABCClasses = []string{"A", "B", "C"}

// Trends lists the trend buckets in reporting order.
var Trends = []string{TrendRising, TrendStable, TrendFalling}

// Suggestion action labels.
const (
	ActionUrgentBuy = "Urgent Buy"
	ActionBuy       = "Buy"
	ActionLiquidate = "Liquidate"
	ActionHold      = "Hold"
)

var actionWeights = map[string]int{
	ActionUrgentBuy: 4,
	ActionBuy:       3,
	ActionLiquidate: 2,
	ActionHold:      1,
}

// ActionWeight returns the urgency weight for a suggestion action
// (higher sorts first). Unknown actions weigh 0.
func ActionWeight(action string) int {
	return actionWeights[action]
}

var priorityTierRanks = map[string]int{
	"urgent": 1,
	"high":   2,
	"medium": 3,
	"low":    4,
	"none":   5,
}

// PriorityTierRank returns the rank of an externally assigned purchase
// priority tag, lower meaning more urgent. Absent or unrecognized tags
// rank as the lowest tier.
func PriorityTierRank(tag string) int {
	if rank, ok := priorityTierRanks[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return rank
	}

	return priorityTierRanks["none"]
}
