package sped

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// formatDate renders a date the way the layouts expect: ddMMyyyy.
func formatDate(t time.Time) string {
	return t.UTC().Format("02012006")
}

// formatAmount renders a monetary amount with two decimal places and a comma
// separator.
func formatAmount(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// formatRate renders a percentage rate with four decimal places and a comma
// separator.
func formatRate(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(4), ".", ",", 1)
}

// movementIndicator is "0" when a block carries data and "1" when it is
// intentionally empty.
func movementIndicator(hasData bool) string {
	if hasData {
		return "0"
	}
	return "1"
}
