package utils

import (
	"strconv"
	"strings"
)

// FormatEUR formats an amount in cents as a string like "12,50 €".
// Uses comma as decimal separator and a narrow space before the symbol,
// matching how prices are shown in the storefront.
func FormatEUR(cents int) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	euros := cents / 100
	rem := cents % 100

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.Itoa(euros))
	b.WriteByte(',')
	if rem < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(rem))
	b.WriteString(" €")
	return b.String()
}

// ParsePriceCents parses a spreadsheet price cell into cents. Accepts both
// "19,90" and "19.90", optional currency symbol and surrounding spaces.
// Returns -1 when the cell does not contain a usable non-negative price.
func ParsePriceCents(cell string) int {
	s := strings.TrimSpace(cell)
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimPrefix(s, "€")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return -1
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return -1
	}
	return int(f*100 + 0.5)
}
