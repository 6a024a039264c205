// Package service implements advertising pricing and placement booking.
package service

import (
	"math"

	"github.com/judgefinder/platform/internal/advertising/domain"
	"github.com/judgefinder/platform/pkg/money"
	"github.com/judgefinder/platform/pkg/result"
)

// Flat-rate model. The tiered multipliers were retired; every placement
// starts from the same monthly base.
const (
	baseMonthlyDollars  = 500.0
	exclusiveMultiplier = 1.5

	minBundleSize     = 1
	maxBundleSize     = 50
	minDurationMonths = 1
	maxDurationMonths = 36

	// Annual prepay waives two months out of twelve.
	annualDiscountRate  = 2.0 / 12.0
	combinedDiscountCap = 0.35
)

type pricingService struct{}

// NewPricingService returns the flat-rate pricing calculator.
func NewPricingService() domain.PricingService {
	return &pricingService{}
}

func (s *pricingService) CalculatePricing(factors domain.PricingFactors) result.Result[domain.PricingBreakdown] {
	if factors.BundleSize < minBundleSize || factors.BundleSize > maxBundleSize {
		return result.Err[domain.PricingBreakdown](result.NewValidationError(
			"pricing_bundle_size_out_of_range", "bundle size must be between 1 and 50",
			map[string]any{"bundle_size": factors.BundleSize}))
	}
	if factors.DurationMonths < minDurationMonths || factors.DurationMonths > maxDurationMonths {
		return result.Err[domain.PricingBreakdown](result.NewValidationError(
			"pricing_duration_out_of_range", "duration must be between 1 and 36 months",
			map[string]any{"duration_months": factors.DurationMonths}))
	}

	multiplier := 1.0
	if factors.Exclusive {
		multiplier = exclusiveMultiplier
	}

	volumeDiscount := volumeDiscountFor(factors.BundleSize)
	annualDiscount := 0.0
	if factors.DurationMonths >= 12 {
		annualDiscount = annualDiscountRate
	}
	combinedDiscount := math.Min(volumeDiscount+annualDiscount, combinedDiscountCap)

	base := money.FromDollars(baseMonthlyDollars)
	subtotal := result.FlatMap(base, func(b money.Money) result.Result[money.Money] {
		return b.Multiply(multiplier)
	})
	subtotal = result.FlatMap(subtotal, func(m money.Money) result.Result[money.Money] {
		return m.Multiply(float64(factors.BundleSize))
	})
	subtotal = result.FlatMap(subtotal, func(m money.Money) result.Result[money.Money] {
		return m.Multiply(float64(factors.DurationMonths))
	})
	finalPrice := result.FlatMap(subtotal, func(m money.Money) result.Result[money.Money] {
		return m.ApplyDiscount(combinedDiscount * 100)
	})
	savings := result.FlatMap(subtotal, func(sub money.Money) result.Result[money.Money] {
		return result.FlatMap(finalPrice, sub.Subtract)
	})
	perMonth := result.FlatMap(finalPrice, func(m money.Money) result.Result[money.Money] {
		return m.Divide(float64(factors.DurationMonths))
	})

	if err := firstError(base.Error(), subtotal.Error(), finalPrice.Error(), savings.Error(), perMonth.Error()); err != nil {
		return result.Err[domain.PricingBreakdown](err)
	}

	return result.Ok(domain.PricingBreakdown{
		BasePrice:           base.Unwrap(),
		ExclusiveMultiplier: multiplier,
		Subtotal:            subtotal.Unwrap(),
		VolumeDiscount:      volumeDiscount,
		AnnualDiscount:      annualDiscount,
		CombinedDiscount:    combinedDiscount,
		FinalPrice:          finalPrice.Unwrap(),
		PricePerMonth:       perMonth.Unwrap(),
		Savings:             savings.Unwrap(),
	})
}

// EstimateAnnualSavings compares twelve single-month bookings against one
// twelve-month booking for the same configuration.
func (s *pricingService) EstimateAnnualSavings(tier domain.Tier, courtLevel domain.CourtLevel, exclusive bool) result.Result[money.Money] {
	monthly := s.CalculatePricing(domain.PricingFactors{
		Tier:           tier,
		CourtLevel:     courtLevel,
		Exclusive:      exclusive,
		BundleSize:     1,
		DurationMonths: 1,
	})
	annual := s.CalculatePricing(domain.PricingFactors{
		Tier:           tier,
		CourtLevel:     courtLevel,
		Exclusive:      exclusive,
		BundleSize:     1,
		DurationMonths: 12,
	})

	return result.FlatMap(monthly, func(m domain.PricingBreakdown) result.Result[money.Money] {
		return result.FlatMap(annual, func(a domain.PricingBreakdown) result.Result[money.Money] {
			yearAtMonthlyRate := m.FinalPrice.Multiply(12)
			return result.FlatMap(yearAtMonthlyRate, func(year money.Money) result.Result[money.Money] {
				diff := year.Subtract(a.FinalPrice)
				return result.Map(diff, func(d money.Money) money.Money {
					if d.IsNegative() {
						return money.Zero()
					}
					return d
				})
			})
		})
	})
}

// CalculateROIThreshold returns the minimum client conversions needed to
// cover the final price.
func (s *pricingService) CalculateROIThreshold(pricing domain.PricingBreakdown, averageClientValue float64) result.Result[int] {
	if math.IsNaN(averageClientValue) || math.IsInf(averageClientValue, 0) || averageClientValue <= 0 {
		return result.Err[int](result.NewValidationError(
			"pricing_client_value_invalid", "average client value must be positive",
			map[string]any{"average_client_value": averageClientValue}))
	}
	return result.Ok(int(math.Ceil(pricing.FinalPrice.Dollars() / averageClientValue)))
}

// RecommendTier is a compatibility shim from the tiered model; flat-rate
// pricing has exactly one tier to recommend.
func (s *pricingService) RecommendTier(factors domain.PricingFactors) result.Result[domain.TierQuote] {
	factors.Tier = domain.TierStandard
	return result.Map(s.CalculatePricing(factors), func(breakdown domain.PricingBreakdown) domain.TierQuote {
		return domain.TierQuote{
			Tier:          domain.TierStandard,
			Breakdown:     breakdown,
			Recommended:   true,
			Justification: "flat-rate pricing offers a single standard tier",
		}
	})
}

// CompareTiers is a compatibility shim; see RecommendTier.
func (s *pricingService) CompareTiers(factors domain.PricingFactors) result.Result[[]domain.TierQuote] {
	return result.Map(s.RecommendTier(factors), func(quote domain.TierQuote) []domain.TierQuote {
		return []domain.TierQuote{quote}
	})
}

// volumeDiscountFor picks the first matching threshold, largest first.
func volumeDiscountFor(bundleSize int) float64 {
	switch {
	case bundleSize >= 10:
		return 0.20
	case bundleSize >= 5:
		return 0.15
	case bundleSize >= 3:
		return 0.10
	default:
		return 0
	}
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
