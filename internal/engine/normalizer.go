package engine

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/estoquelab/stocklens/internal/domain"
)

// The normalizer is the only place in the engine that touches raw
// upstream values. Every function here is total: malformed input
// degrades to zero/UNKNOWN instead of failing, so one bad cell never
// takes down a whole aggregation.

// ParseNumber converts any scalar snapshot value to a float64.
// Strings are parsed with a locale heuristic: when both '.' and ','
// appear and the comma is rightmost, the value is read as Brazilian
// format ("1.234,56" -> 1234.56); a lone comma is a decimal separator
// ("1,5" -> 1.5). Anything unparseable yields 0.
func ParseNumber(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseDecimalString(v)
	default:
		return 0
	}
}

func parseDecimalString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// Brazilian: dots are thousands separators, comma is decimal
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return f
}

// statusMatchers is checked in order; RUPTURE must win over CRITICAL
// when a decorated string could match both.
var statusMatchers = []struct {
	needle string
	status string
}{
	{"rupture", domain.StatusRupture},
	{"critical", domain.StatusCritical},
	{"attention", domain.StatusAttention},
	{"excess", domain.StatusExcess},
	{"health", domain.StatusHealthy},
}

// NormalizeStatus maps a free-text, possibly emoji-decorated status to
// one of the canonical values. Unrecognized non-empty strings are
// returned verbatim so they stay visible in bucket keys downstream.
func NormalizeStatus(text string) string {
	if strings.TrimSpace(text) == "" {
		return domain.StatusUnknown
	}

	lower := strings.ToLower(text)
	for _, m := range statusMatchers {
		if strings.Contains(lower, m.needle) {
			return m.status
		}
	}

	return text
}

// NormalizeTrend maps free-text trend tags to RISING/STABLE/FALLING.
// "new" SKUs count as rising.
func NormalizeTrend(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "rising"), strings.Contains(lower, "new"):
		return domain.TrendRising
	case strings.Contains(lower, "falling"):
		return domain.TrendFalling
	default:
		return domain.TrendStable
	}
}

// alertMatchers is checked in order: DEAD > LIQUIDATE > EVALUATE > ATTENTION.
var alertMatchers = []struct {
	needle string
	tag    string
}{
	{"dead", domain.AlertDead},
	{"liquidate", domain.AlertLiquidate},
	{"evaluate", domain.AlertEvaluate},
	{"attention", domain.AlertAttention},
}

// NormalizeAlert maps free-text stock alert tags to the canonical set,
// defaulting to OK.
func NormalizeAlert(text string) string {
	lower := strings.ToLower(text)
	for _, m := range alertMatchers {
		if strings.Contains(lower, m.needle) {
			return m.tag
		}
	}

	return domain.AlertOK
}

// NormalizeABCClass maps to A/B/C, defaulting to C for anything else.
func NormalizeABCClass(text string) string {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "A":
		return "A"
	case "B":
		return "B"
	default:
		return "C"
	}
}

// CleanDisplayText strips decorative glyphs (emoji, symbols) and
// surrounding whitespace. It is used for labels only; classification
// always runs on the normalized enums.
func CleanDisplayText(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSymbol(r) || unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
			return -1
		}
		return r
	}, text)

	return strings.TrimSpace(cleaned)
}

// NormalizeRecord converts a raw snapshot row into the strict internal
// shape. The second return is false when the record has no SKU id and
// must be excluded from every computation.
func NormalizeRecord(raw domain.RawRecord) (domain.Record, bool) {
	sku := strings.TrimSpace(raw.SKUID)
	if sku == "" {
		return domain.Record{}, false
	}

	rec := domain.Record{
		SKUID:           sku,
		Description:     CleanDisplayText(raw.Description),
		QuantityOnHand:  nonNegative(ParseNumber(raw.QuantityOnHand)),
		UnitCost:        nonNegative(ParseNumber(raw.UnitCost)),
		UnitPrice:       nonNegative(ParseNumber(raw.UnitPrice)),
		AvgDailySales:   nonNegative(ParseNumber(raw.AvgDailySales)),
		CoverageDays:    nonNegative(ParseNumber(raw.CoverageDays)),
		TransitQuantity: nonNegative(ParseNumber(raw.TransitQuantity)),
		AdjustedQty:     nonNegative(ParseNumber(raw.AdjustedQty)),
		MonthlyTurnover: nonNegative(ParseNumber(raw.MonthlyTurnover)),
		Status:          NormalizeStatus(raw.RuptureStatus),
		ABCClass:        NormalizeABCClass(raw.ABCClass),
		Trend:           NormalizeTrend(raw.Trend),
		Alert:           NormalizeAlert(raw.StockAlert),
		Priority:        strings.TrimSpace(raw.PurchasePriority),
	}

	// Derive coverage when the snapshot did not supply it
	if raw.CoverageDays == nil && rec.AvgDailySales > 0 {
		rec.CoverageDays = rec.QuantityOnHand / rec.AvgDailySales
	}

	return rec, true
}

// NormalizeRecords filters out rows without a SKU id and normalizes
// the rest, preserving input order.
func NormalizeRecords(raw []domain.RawRecord) []domain.Record {
	records := make([]domain.Record, 0, len(raw))
	for _, r := range raw {
		if rec, ok := NormalizeRecord(r); ok {
			records = append(records, rec)
		}
	}

	return records
}

func nonNegative(v float64) float64 {
	return math.Max(0, v)
}
