package common

import (
	"fmt"
	"strings"
)

// NotAvailable is the rendering for metrics that could not be computed.
const NotAvailable = "not available"

// FormatMoney renders a rupee amount with thousand separators, no decimals.
func FormatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.0f", v)
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-₹" + sb.String()
	}
	return "₹" + sb.String()
}

// FormatSignedMoney renders a rupee amount with an explicit sign.
func FormatSignedMoney(v float64) string {
	if v >= 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatPct renders a percentage with one decimal place.
func FormatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatSignedPct renders a percentage with an explicit sign.
func FormatSignedPct(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// FormatOptionalPct renders a percentage pointer, or "not available".
func FormatOptionalPct(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return FormatPct(*v)
}
