package utils

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseNumber reads a spreadsheet number written in either European ("1.234,56")
// or plain ("1234.56") notation. Anything it cannot read is 0.
//
// A lone "." followed by exactly three digits is taken as a thousands
// separator, so "12.345" reads as 12345 and never as 12.345.
func ParseNumber(val string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if r == '€' || r == '%' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, val)
	if cleaned == "" {
		return 0
	}

	hasDot := strings.Contains(cleaned, ".")
	hasComma := strings.Contains(cleaned, ",")
	switch {
	case hasDot && hasComma:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case hasComma:
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case hasDot:
		if isThousandsGrouped(cleaned) {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// isThousandsGrouped reports whether every group after the first "." has
// exactly three digits.
func isThousandsGrouped(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// ParseBool accepts "true", "yes" and "1" in any case.
func ParseBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "yes", "1":
		return true
	}
	return false
}
