package money

import (
	"math"

	"github.com/WeBoost/aurora-backend/internal/errs"
)

// MoneySplit is the platform/business division of a gross payment
// amount. Amounts are integer minor currency units.
type MoneySplit struct {
	Gross          int64   `json:"gross"`
	CommissionRate float64 `json:"commission_rate"`
	PlatformAmount int64   `json:"platform_amount"`
	BusinessAmount int64   `json:"business_amount"`
}

// Split computes the commission split for a gross amount. The platform
// share is floored and the business share is derived as the remainder,
// so PlatformAmount+BusinessAmount always equals Gross. Computing both
// shares independently would let rounding leak currency and is not
// allowed.
func Split(gross int64, commissionRate float64) (MoneySplit, error) {
	if gross < 0 {
		return MoneySplit{}, errs.InvalidArgumentf("gross must be non-negative, got %d", gross)
	}
	if math.IsNaN(commissionRate) || commissionRate < 0 || commissionRate > 100 {
		return MoneySplit{}, errs.InvalidArgumentf("commission rate must be in [0,100], got %v", commissionRate)
	}
	platform := int64(math.Floor(float64(gross) * commissionRate / 100))
	return MoneySplit{
		Gross:          gross,
		CommissionRate: commissionRate,
		PlatformAmount: platform,
		BusinessAmount: gross - platform,
	}, nil
}
