package services_test

import (
	"testing"

	"estate/src/schemas"
	"estate/src/services"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestClassifyYield(t *testing.T) {
	tests := []struct {
		in   float64
		want schemas.Tier
	}{
		{0.15, schemas.TierHigh},
		{0.12, schemas.TierHigh},
		{0.10, schemas.TierMedium},
		{0.099999, schemas.TierLow},
		{0, schemas.TierLow},
		{-0.05, schemas.TierLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, services.ClassifyYield(tt.in), "yield %v", tt.in)
	}
}

func TestClassifyCoC(t *testing.T) {
	assert.Equal(t, schemas.TierHigh, services.ClassifyCoC(0.12))
	assert.Equal(t, schemas.TierMedium, services.ClassifyCoC(0.08))
	assert.Equal(t, schemas.TierMedium, services.ClassifyCoC(0.1199))
	assert.Equal(t, schemas.TierLow, services.ClassifyCoC(0.0799))
}

func TestClassifyDSCR(t *testing.T) {
	assert.Equal(t, schemas.TierNeutral, services.ClassifyDSCR(nil))
	assert.Equal(t, schemas.TierHigh, services.ClassifyDSCR(ptr(1.25)))
	assert.Equal(t, schemas.TierMedium, services.ClassifyDSCR(ptr(1.0)))
	assert.Equal(t, schemas.TierMedium, services.ClassifyDSCR(ptr(1.2499)))
	assert.Equal(t, schemas.TierLow, services.ClassifyDSCR(ptr(0.99)))
	assert.Equal(t, schemas.TierLow, services.ClassifyDSCR(ptr(0)))
}

func TestClassifyLTV(t *testing.T) {
	assert.Equal(t, schemas.TierNeutral, services.ClassifyLTV(0))
	assert.Equal(t, schemas.TierHigh, services.ClassifyLTV(0.30))
	assert.Equal(t, schemas.TierHigh, services.ClassifyLTV(0.60))
	assert.Equal(t, schemas.TierMedium, services.ClassifyLTV(0.6001))
	assert.Equal(t, schemas.TierMedium, services.ClassifyLTV(0.75))
	assert.Equal(t, schemas.TierLow, services.ClassifyLTV(0.7501))
}
