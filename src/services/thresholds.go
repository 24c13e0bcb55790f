package services

import "estate/src/schemas"

// Tier cutoffs. Every comparison is inclusive at the cutoff.
const (
	yieldHigh   = 0.12
	yieldMedium = 0.10
	cocHigh     = 0.12
	cocMedium   = 0.08
	dscrHigh    = 1.25
	dscrMedium  = 1.0
	ltvHigh     = 0.60
	ltvMedium   = 0.75
)

func ClassifyYield(v float64) schemas.Tier {
	switch {
	case v >= yieldHigh:
		return schemas.TierHigh
	case v >= yieldMedium:
		return schemas.TierMedium
	}
	return schemas.TierLow
}

func ClassifyCoC(v float64) schemas.Tier {
	switch {
	case v >= cocHigh:
		return schemas.TierHigh
	case v >= cocMedium:
		return schemas.TierMedium
	}
	return schemas.TierLow
}

// ClassifyDSCR is neutral for unleveraged assets.
func ClassifyDSCR(v *float64) schemas.Tier {
	switch {
	case v == nil:
		return schemas.TierNeutral
	case *v >= dscrHigh:
		return schemas.TierHigh
	case *v >= dscrMedium:
		return schemas.TierMedium
	}
	return schemas.TierLow
}

// ClassifyLTV ranks lower leverage higher.
func ClassifyLTV(v float64) schemas.Tier {
	switch {
	case v == 0:
		return schemas.TierNeutral
	case v <= ltvHigh:
		return schemas.TierHigh
	case v <= ltvMedium:
		return schemas.TierMedium
	}
	return schemas.TierLow
}
