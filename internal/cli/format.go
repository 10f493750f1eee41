// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats a decimal-string amount with thousands separators
// and its currency code. Amounts arrive as strings from the API and are
// never recomputed client-side.
// e.g., ("500000.00", "COP") -> "$500,000 COP", ("12.50", "USD") -> "$12.50 USD"
func FormatMoney(amount, currency string) string {
	intPart := amount
	fracPart := ""
	if i := strings.IndexByte(amount, '.'); i >= 0 {
		intPart = amount[:i]
		fracPart = amount[i+1:]
	}

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// Unparseable amounts are displayed verbatim.
		return amount + " " + currency
	}

	formatted := "$" + groupThousands(n)
	if fracPart != "" && fracPart != strings.Repeat("0", len(fracPart)) {
		formatted += "." + fracPart
	}
	if currency != "" {
		formatted += " " + currency
	}
	return formatted
}

// groupThousands adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func groupThousands(n int64) string {
	if n < 0 {
		return "-" + groupThousands(-n)
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

// FormatPercent formats a 0-100 percentage value.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDate renders an ISO date (2006-01-02) as "Jan 2, 2006".
// Unparseable dates are returned verbatim.
func FormatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}

// FormatStatus returns a display label for a server-computed budget status.
func FormatStatus(status string) string {
	switch status {
	case "good":
		return "OK"
	case "warning":
		return "WARN"
	case "exceeded":
		return "OVER"
	default:
		return strings.ToUpper(status)
	}
}

// FormatDaysRemaining renders a SOAT countdown.
// e.g., 45 -> "45 days", 1 -> "1 day", 0 -> "expires today", -3 -> "expired 3 days ago"
func FormatDaysRemaining(days int) string {
	switch {
	case days > 1:
		return fmt.Sprintf("%d days", days)
	case days == 1:
		return "1 day"
	case days == 0:
		return "expires today"
	case days == -1:
		return "expired 1 day ago"
	default:
		return fmt.Sprintf("expired %d days ago", -days)
	}
}
