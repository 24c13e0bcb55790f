package utils_test

import (
	"testing"

	"estate/src/utils"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.234,56", 1234.56},
		{"1234,56", 1234.56},
		{"1.234", 1234},
		{"12.34", 12.34},
		{"1.234.567", 1234567},
		{"1.234.567,89", 1234567.89},
		{"44.319 €", 44319},
		{"€ 1.500,00", 1500},
		{"3,5%", 3.5},
		{"-2.500,75", -2500.75},
		{"1234", 1234},
		{"0.5", 0.5},
		{"", 0},
		{"   ", 0},
		{"n/a", 0},
		{"12.34.5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, utils.ParseNumber(tt.in), 1e-9)
		})
	}
}

func TestParseNumberAmbiguousThreeDecimals(t *testing.T) {
	// Three digits after a lone dot always read as thousands.
	assert.Equal(t, 12345.0, utils.ParseNumber("12.345"))
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "Yes", "1", " yes "} {
		assert.True(t, utils.ParseBool(v), v)
	}
	for _, v := range []string{"", "false", "no", "0", "si", "paid"} {
		assert.False(t, utils.ParseBool(v), v)
	}
}
