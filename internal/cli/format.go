// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatMoney renders an amount with thousands separators. Whole amounts
// drop the cents: 1250 -> "1,250", 1250.5 -> "1,250.50".
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg())
	}
	whole := d.Truncate(0)
	out := FormatNumber(whole.IntPart())
	if frac := d.Sub(whole); !frac.IsZero() {
		cents := frac.Round(2).StringFixed(2) // "0.xx"
		if cents == "1.00" {
			return FormatMoney(whole.Add(decimal.NewFromInt(1)))
		}
		out += cents[1:]
	}
	return out
}

// FormatAllocation renders a month's amount for a goal, "-" when unfunded.
func FormatAllocation(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return FormatMoney(d)
}

// FormatPercent formats a whole-number percentage.
func FormatPercent(pct int) string {
	return fmt.Sprintf("%d%%", pct)
}

// FormatMonths formats a month count: 1 -> "1 month", 14 -> "14 months".
func FormatMonths(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}
