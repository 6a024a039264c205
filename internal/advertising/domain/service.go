package domain

import (
	"context"
	"errors"
	"time"

	"github.com/judgefinder/platform/pkg/db/pagination"
	"github.com/judgefinder/platform/pkg/money"
	"github.com/judgefinder/platform/pkg/result"
)

// PricingService computes advertising quotes. Pure computation, no I/O.
type PricingService interface {
	CalculatePricing(factors PricingFactors) result.Result[PricingBreakdown]
	EstimateAnnualSavings(tier Tier, courtLevel CourtLevel, exclusive bool) result.Result[money.Money]
	CalculateROIThreshold(pricing PricingBreakdown, averageClientValue float64) result.Result[int]
	RecommendTier(factors PricingFactors) result.Result[TierQuote]
	CompareTiers(factors PricingFactors) result.Result[[]TierQuote]
}

type CreatePlacementRequest struct {
	JudgeID        string
	AttorneyName   string
	BarState       string
	BarNumber      string
	Tier           string
	Exclusive      bool
	BundleSize     int
	DurationMonths int
	StartsAt       time.Time
}

type GetPlacementRequest struct {
	ID string
}

type ListPlacementRequest struct {
	PageToken string
	PageSize  int32
	JudgeID   string
	Status    string
}

type ListPlacementResponse struct {
	pagination.PageInfo
	Placements []PlacementResponse `json:"placements"`
}

type PlacementResponse struct {
	ID             string           `json:"id"`
	JudgeID        string           `json:"judge_id"`
	AttorneyName   string           `json:"attorney_name"`
	BarNumber      string           `json:"bar_number"`
	Tier           Tier             `json:"tier"`
	Exclusive      bool             `json:"exclusive"`
	BundleSize     int              `json:"bundle_size"`
	DurationMonths int              `json:"duration_months"`
	FinalPrice     money.Money      `json:"final_price"`
	Status         PlacementStatus  `json:"status"`
	StartsAt       time.Time        `json:"starts_at"`
	CreatedAt      time.Time        `json:"created_at"`
	Breakdown      PricingBreakdown `json:"breakdown"`
}

// PlacementService books and lists attorney ad placements.
type PlacementService interface {
	Create(context.Context, CreatePlacementRequest) (*PlacementResponse, error)
	GetByID(context.Context, GetPlacementRequest) (*PlacementResponse, error)
	List(context.Context, ListPlacementRequest) (*ListPlacementResponse, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidTier     = errors.New("invalid_tier")
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrNotFound        = errors.New("not_found")
	ErrJudgeNotFound   = errors.New("judge_not_found")
	ErrJudgeIneligible = errors.New("judge_ineligible")
)
