package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/judgefinder/platform/internal/advertising/domain"
	"github.com/judgefinder/platform/internal/clock"
	judgedomain "github.com/judgefinder/platform/internal/judge/domain"
	"github.com/judgefinder/platform/internal/judge/specification"
	"github.com/judgefinder/platform/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PlacementParams struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Judges  judgedomain.Repository
	Pricing domain.PricingService
	Clock   clock.Clock
}

type placementService struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	judges  judgedomain.Repository
	pricing domain.PricingService
	clock   clock.Clock
}

func NewPlacementService(p PlacementParams) domain.PlacementService {
	return &placementService{
		db:      p.DB,
		log:     p.Log.Named("advertising.placement.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		judges:  p.Judges,
		pricing: p.Pricing,
		clock:   p.Clock,
	}
}

func (s *placementService) Create(ctx context.Context, req domain.CreatePlacementRequest) (*domain.PlacementResponse, error) {
	judgeID, err := snowflake.ParseString(strings.TrimSpace(req.JudgeID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	tier, ok := domain.ParseTier(req.Tier)
	if !ok {
		return nil, domain.ErrInvalidTier
	}
	if strings.TrimSpace(req.AttorneyName) == "" {
		return nil, domain.ErrInvalidRequest
	}

	barNumber, err := judgedomain.NewBarNumber(req.BarState, req.BarNumber).Value()
	if err != nil {
		return nil, err
	}

	judge, err := s.judges.FindByID(ctx, s.db, judgeID)
	if err != nil {
		return nil, err
	}
	if judge == nil {
		return nil, domain.ErrJudgeNotFound
	}

	if !specification.NewAdvertisingEligibility().IsSatisfiedBy(judge) {
		return nil, domain.ErrJudgeIneligible
	}
	if tier == domain.TierPremium && !specification.NewHighProfileJudge().IsSatisfiedBy(judge) {
		return nil, domain.ErrJudgeIneligible
	}

	breakdown, err := s.pricing.CalculatePricing(domain.PricingFactors{
		Tier:           tier,
		CourtLevel:     courtLevelFor(judge),
		Exclusive:      req.Exclusive,
		BundleSize:     req.BundleSize,
		DurationMonths: req.DurationMonths,
	}).Value()
	if err != nil {
		return nil, err
	}

	startsAt := req.StartsAt
	if startsAt.IsZero() {
		startsAt = s.clock.Now()
	}

	placement := &domain.Placement{
		ID:             s.genID.Generate(),
		JudgeID:        judgeID,
		AttorneyName:   strings.TrimSpace(req.AttorneyName),
		BarNumber:      barNumber.String(),
		Tier:           tier,
		Exclusive:      req.Exclusive,
		BundleSize:     req.BundleSize,
		DurationMonths: req.DurationMonths,
		FinalPrice:     breakdown.FinalPrice,
		Status:         domain.PlacementActive,
		StartsAt:       startsAt,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, placement); err != nil {
		return nil, err
	}

	s.log.Info("placement booked",
		zap.String("placement_id", placement.ID.String()),
		zap.String("judge_id", judgeID.String()),
		zap.String("tier", string(tier)),
		zap.Bool("exclusive", req.Exclusive),
		zap.Int64("final_price_cents", breakdown.FinalPrice.Cents()),
	)

	resp := toPlacementResponse(placement)
	resp.Breakdown = breakdown
	return resp, nil
}

func (s *placementService) GetByID(ctx context.Context, req domain.GetPlacementRequest) (*domain.PlacementResponse, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	placement, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if placement == nil {
		return nil, domain.ErrNotFound
	}
	resp := toPlacementResponse(placement)
	s.attachBreakdown(resp, placement)
	return resp, nil
}

func (s *placementService) List(ctx context.Context, req domain.ListPlacementRequest) (*domain.ListPlacementResponse, error) {
	filter := domain.ListFilter{Status: domain.PlacementStatus(strings.ToLower(strings.TrimSpace(req.Status)))}
	if judgeID := strings.TrimSpace(req.JudgeID); judgeID != "" {
		parsed, err := snowflake.ParseString(judgeID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		filter.JudgeID = &parsed
	}

	placements, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(req.PageSize),
	})
	if err != nil {
		return nil, err
	}

	resp := &domain.ListPlacementResponse{Placements: make([]domain.PlacementResponse, 0, len(placements))}
	for _, placement := range placements {
		item := toPlacementResponse(placement)
		s.attachBreakdown(item, placement)
		resp.Placements = append(resp.Placements, *item)
	}
	if len(placements) > 0 {
		last := placements[len(placements)-1]
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: last.ID.String()})
		if err == nil {
			resp.NextPageToken = token
		}
		resp.HasMore = int32(len(placements)) >= req.PageSize && req.PageSize > 0
	}
	return resp, nil
}

// attachBreakdown recomputes the quote from stored factors; the breakdown is
// derived data and is not persisted.
func (s *placementService) attachBreakdown(resp *domain.PlacementResponse, placement *domain.Placement) {
	breakdown, err := s.pricing.CalculatePricing(domain.PricingFactors{
		Tier:           placement.Tier,
		Exclusive:      placement.Exclusive,
		BundleSize:     placement.BundleSize,
		DurationMonths: placement.DurationMonths,
	}).Value()
	if err != nil {
		return
	}
	resp.Breakdown = breakdown
}

func courtLevelFor(judge *judgedomain.Judge) domain.CourtLevel {
	switch judge.Jurisdiction().Level() {
	case judgedomain.LevelFederal:
		return domain.CourtLevelFederal
	case judgedomain.LevelCounty:
		return domain.CourtLevelCounty
	default:
		return domain.CourtLevelState
	}
}

func toPlacementResponse(p *domain.Placement) *domain.PlacementResponse {
	return &domain.PlacementResponse{
		ID:             p.ID.String(),
		JudgeID:        p.JudgeID.String(),
		AttorneyName:   p.AttorneyName,
		BarNumber:      p.BarNumber,
		Tier:           p.Tier,
		Exclusive:      p.Exclusive,
		BundleSize:     p.BundleSize,
		DurationMonths: p.DurationMonths,
		FinalPrice:     p.FinalPrice,
		Status:         p.Status,
		StartsAt:       p.StartsAt,
		CreatedAt:      p.CreatedAt,
	}
}
