package tracker

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NoActivitiesMessage is rendered when there is nothing to format.
const NoActivitiesMessage = "No activities logged yet."

// LineItem is a loosely typed activity line, as it arrives from a fresh
// parser response or a table row. Quantity tolerates strings, integers
// and json.Number values; anything non-numeric renders as 0.0.
type LineItem struct {
	Activity string
	Quantity any
	Unit     string
}

// LineItemFromRecord adapts a cleaned record for formatting.
func LineItemFromRecord(r Record) LineItem {
	return LineItem{Activity: r.Activity, Quantity: r.Quantity, Unit: r.Unit}
}

// FormatActivityLines renders one "- {activity}: {quantity} {unit}" line
// per item, quantity to one decimal place, trimming the trailing space
// when the unit is empty.
func FormatActivityLines(items []LineItem) string {
	if len(items) == 0 {
		return NoActivitiesMessage
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := fmt.Sprintf("- %s: %.1f %s", item.Activity, coerceQuantity(item.Quantity), item.Unit)
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return strings.Join(lines, "\n")
}

func coerceQuantity(v any) float64 {
	switch q := v.(type) {
	case float64:
		return q
	case float32:
		return float64(q)
	case int:
		return float64(q)
	case int64:
		return float64(q)
	case json.Number:
		f, err := q.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
