package service

import (
	"math"
	"testing"

	"github.com/judgefinder/platform/internal/advertising/domain"
	"github.com/judgefinder/platform/pkg/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factors(exclusive bool, bundle, months int) domain.PricingFactors {
	return domain.PricingFactors{
		Tier:           domain.TierStandard,
		CourtLevel:     domain.CourtLevelState,
		Exclusive:      exclusive,
		BundleSize:     bundle,
		DurationMonths: months,
	}
}

func TestCalculatePricingSingleMonth(t *testing.T) {
	svc := NewPricingService()

	b, err := svc.CalculatePricing(factors(false, 1, 1)).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(50000), b.BasePrice.Cents())
	assert.Equal(t, 1.0, b.ExclusiveMultiplier)
	assert.Equal(t, int64(50000), b.Subtotal.Cents())
	assert.Zero(t, b.VolumeDiscount)
	assert.Zero(t, b.AnnualDiscount)
	assert.Equal(t, int64(50000), b.FinalPrice.Cents())
	assert.Equal(t, int64(50000), b.PricePerMonth.Cents())
	assert.True(t, b.Savings.IsZero())
}

func TestCalculatePricingExclusive(t *testing.T) {
	svc := NewPricingService()

	b, err := svc.CalculatePricing(factors(true, 1, 1)).Value()
	require.NoError(t, err)
	assert.Equal(t, 1.5, b.ExclusiveMultiplier)
	assert.Equal(t, int64(75000), b.FinalPrice.Cents())
}

func TestCalculatePricingBundleAndAnnualDiscounts(t *testing.T) {
	svc := NewPricingService()

	// Five judges for a year: 15% volume plus two months off twelve.
	b, err := svc.CalculatePricing(factors(false, 5, 12)).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(3_000_000), b.Subtotal.Cents())
	assert.Equal(t, 0.15, b.VolumeDiscount)
	assert.InDelta(t, 2.0/12.0, b.AnnualDiscount, 1e-12)
	assert.InDelta(t, 0.15+2.0/12.0, b.CombinedDiscount, 1e-12)
	assert.Equal(t, int64(2_050_000), b.FinalPrice.Cents())
	assert.Equal(t, "$20,500.00", b.FinalPrice.Format())
	assert.Equal(t, int64(950_000), b.Savings.Cents())
	assert.Equal(t, int64(170_833), b.PricePerMonth.Cents())
}

func TestCalculatePricingCombinedDiscountCap(t *testing.T) {
	svc := NewPricingService()

	// 20% volume plus the annual discount would exceed the cap.
	b, err := svc.CalculatePricing(factors(false, 10, 12)).Value()
	require.NoError(t, err)
	assert.Equal(t, 0.20, b.VolumeDiscount)
	assert.Equal(t, 0.35, b.CombinedDiscount)
	assert.Equal(t, int64(3_900_000), b.FinalPrice.Cents())
}

func TestCalculatePricingVolumeThresholds(t *testing.T) {
	svc := NewPricingService()
	cases := []struct {
		bundle   int
		discount float64
	}{
		{1, 0}, {2, 0}, {3, 0.10}, {4, 0.10}, {5, 0.15}, {9, 0.15}, {10, 0.20}, {50, 0.20},
	}
	for _, tc := range cases {
		b, err := svc.CalculatePricing(factors(false, tc.bundle, 1)).Value()
		require.NoError(t, err)
		assert.Equal(t, tc.discount, b.VolumeDiscount, "bundle %d", tc.bundle)
	}
}

func TestCalculatePricingRejectsOutOfRangeInput(t *testing.T) {
	svc := NewPricingService()

	for _, f := range []domain.PricingFactors{
		factors(false, 0, 1),
		factors(false, 51, 1),
		factors(false, 1, 0),
		factors(false, 1, 37),
	} {
		r := svc.CalculatePricing(f)
		require.True(t, r.IsErr())
		assert.True(t, result.IsKind(r.Error(), result.KindValidation))
	}

	// Boundary values are accepted.
	assert.True(t, svc.CalculatePricing(factors(false, 1, 36)).IsOk())
	assert.True(t, svc.CalculatePricing(factors(false, 50, 1)).IsOk())
}

func TestEstimateAnnualSavings(t *testing.T) {
	svc := NewPricingService()

	// Twelve months at $500 versus one annual booking at $5,000.
	savings, err := svc.EstimateAnnualSavings(domain.TierStandard, domain.CourtLevelState, false).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), savings.Cents())

	exclusive, err := svc.EstimateAnnualSavings(domain.TierStandard, domain.CourtLevelState, true).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(150_000), exclusive.Cents())
}

func TestCalculateROIThreshold(t *testing.T) {
	svc := NewPricingService()
	b, err := svc.CalculatePricing(factors(false, 5, 12)).Value()
	require.NoError(t, err)

	n, err := svc.CalculateROIThreshold(b, 5000).Value()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = svc.CalculateROIThreshold(b, 20500).Value()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for _, bad := range []float64{0, -100, math.NaN(), math.Inf(1)} {
		r := svc.CalculateROIThreshold(b, bad)
		require.True(t, r.IsErr())
		assert.True(t, result.IsKind(r.Error(), result.KindValidation))
	}
}

func TestRecommendAndCompareTiers(t *testing.T) {
	svc := NewPricingService()

	quote, err := svc.RecommendTier(factors(false, 1, 1)).Value()
	require.NoError(t, err)
	assert.Equal(t, domain.TierStandard, quote.Tier)
	assert.True(t, quote.Recommended)
	assert.Equal(t, int64(50000), quote.Breakdown.FinalPrice.Cents())

	quotes, err := svc.CompareTiers(factors(false, 1, 1)).Value()
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, quote.Tier, quotes[0].Tier)
}
