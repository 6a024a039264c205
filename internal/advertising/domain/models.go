// Package domain defines attorney advertising pricing and placement types.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/judgefinder/platform/pkg/money"
)

// Tier is the placement tier an attorney books. Pricing is flat-rate, so the
// tier no longer affects price; premium still gates on judge profile.
type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

func ParseTier(raw string) (Tier, bool) {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case TierStandard, "":
		return TierStandard, true
	case TierPremium:
		return TierPremium, true
	default:
		return "", false
	}
}

// CourtLevel mirrors the jurisdiction hierarchy for pricing requests. The
// flat-rate model ignores it; it is carried for API compatibility.
type CourtLevel string

const (
	CourtLevelFederal CourtLevel = "federal"
	CourtLevelState   CourtLevel = "state"
	CourtLevelCounty  CourtLevel = "county"
)

func ParseCourtLevel(raw string) (CourtLevel, bool) {
	switch CourtLevel(strings.ToLower(strings.TrimSpace(raw))) {
	case CourtLevelFederal:
		return CourtLevelFederal, true
	case CourtLevelState, "":
		return CourtLevelState, true
	case CourtLevelCounty:
		return CourtLevelCounty, true
	default:
		return "", false
	}
}

// PricingFactors are the inputs to a pricing computation.
type PricingFactors struct {
	Tier           Tier
	CourtLevel     CourtLevel
	Exclusive      bool
	BundleSize     int
	DurationMonths int
}

// PricingBreakdown is the computed output, every multiplier made visible so
// quotes are explainable line by line.
type PricingBreakdown struct {
	BasePrice           money.Money `json:"base_price"`
	ExclusiveMultiplier float64     `json:"exclusive_multiplier"`
	Subtotal            money.Money `json:"subtotal"`
	VolumeDiscount      float64     `json:"volume_discount"`
	AnnualDiscount      float64     `json:"annual_discount"`
	CombinedDiscount    float64     `json:"combined_discount"`
	FinalPrice          money.Money `json:"final_price"`
	PricePerMonth       money.Money `json:"price_per_month"`
	Savings             money.Money `json:"savings"`
}

// TierQuote pairs a tier with its computed price for comparison output.
type TierQuote struct {
	Tier          Tier             `json:"tier"`
	Breakdown     PricingBreakdown `json:"breakdown"`
	Recommended   bool             `json:"recommended"`
	Justification string           `json:"justification,omitempty"`
}

// PlacementStatus tracks a booking through its lifecycle.
type PlacementStatus string

const (
	PlacementActive    PlacementStatus = "active"
	PlacementCancelled PlacementStatus = "cancelled"
	PlacementExpired   PlacementStatus = "expired"
)

// Placement is a booked attorney ad slot against a judge profile.
type Placement struct {
	ID             snowflake.ID
	JudgeID        snowflake.ID
	AttorneyName   string
	BarNumber      string
	Tier           Tier
	Exclusive      bool
	BundleSize     int
	DurationMonths int
	FinalPrice     money.Money
	Status         PlacementStatus
	StartsAt       time.Time
	CreatedAt      time.Time
}
