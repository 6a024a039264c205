package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/judgefinder/platform/internal/clock"
	"github.com/judgefinder/platform/internal/events"
	"github.com/judgefinder/platform/internal/judge/assignment"
	"github.com/judgefinder/platform/internal/judge/domain"
	"github.com/judgefinder/platform/internal/judge/specification"
	"github.com/judgefinder/platform/pkg/db"
	"github.com/judgefinder/platform/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	Publisher   events.Publisher
	Assignments *assignment.Service
	Clock       clock.Clock
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	publisher   events.Publisher
	assignments *assignment.Service
	clock       clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("judge.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		publisher:   p.Publisher,
		assignments: p.Assignments,
		clock:       p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateJudgeRequest) (*domain.JudgeResponse, error) {
	jur, err := domain.ParseJurisdiction(req.JurisdictionLevel, req.State, req.County).Value()
	if err != nil {
		return nil, err
	}

	id := s.genID.Generate()
	judge, err := domain.NewJudge(id, req.Name, slug.Make(req.Name), jur, req.TotalCases).Value()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, judge); err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Slug collision with an existing judge of the same name.
			judge = domain.Rehydrate(id, judge.Name(),
				fmt.Sprintf("%s-%s", judge.Slug(), id.String()),
				jur, judge.TotalCases(), nil, nil)
			err = s.repo.Insert(ctx, s.db, judge)
		}
		if err != nil {
			return nil, err
		}
	}

	s.log.Info("judge created",
		zap.String("judge_id", id.String()),
		zap.String("slug", judge.Slug()),
	)
	return toResponse(judge), nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetJudgeRequest) (*domain.JudgeResponse, error) {
	judge, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}
	return toResponse(judge), nil
}

func (s *Service) List(ctx context.Context, req domain.ListJudgeRequest) (*domain.ListJudgeResponse, error) {
	filter := domain.ListFilter{
		State:      strings.TrimSpace(req.State),
		ActiveOnly: req.ActiveOnly,
	}
	if courtID := strings.TrimSpace(req.CourtID); courtID != "" {
		parsed, err := snowflake.ParseString(courtID)
		if err != nil {
			return nil, domain.ErrInvalidCourt
		}
		filter.CourtID = &parsed
	}

	judges, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(req.PageSize),
	})
	if err != nil {
		return nil, err
	}

	resp := &domain.ListJudgeResponse{Judges: make([]domain.JudgeResponse, 0, len(judges))}
	for _, judge := range judges {
		resp.Judges = append(resp.Judges, *toResponse(judge))
	}
	if len(judges) > 0 {
		last := judges[len(judges)-1]
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: last.ID().String()})
		if err == nil {
			resp.NextPageToken = token
		}
		resp.HasMore = int32(len(judges)) >= req.PageSize && req.PageSize > 0
	}
	return resp, nil
}

func (s *Service) AssignToCourt(ctx context.Context, req domain.AssignToCourtRequest) (*domain.JudgeResponse, error) {
	judge, err := s.load(ctx, domain.GetJudgeRequest{ID: req.JudgeID})
	if err != nil {
		return nil, err
	}

	assignReq, err := s.buildAssignmentRequest(req.CourtID, req.AssignmentType, req.StartDate, req.EndDate, req.CourtName, req.JurisdictionLevel, req.State, req.County)
	if err != nil {
		return nil, err
	}

	validation := s.assignments.ValidateAssignment(judge, assignReq).Unwrap()
	for _, warning := range validation.Warnings {
		s.log.Warn("assignment warning",
			zap.String("judge_id", judge.ID().String()),
			zap.String("warning", warning),
		)
	}

	position, err := judge.AssignToCourt(s.genID.Generate(), assignReq, s.clock.Now()).Value()
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, judge); err != nil {
		return nil, err
	}

	s.log.Info("judge assigned to court",
		zap.String("judge_id", judge.ID().String()),
		zap.String("court_id", position.CourtID.String()),
		zap.String("assignment_type", string(position.AssignmentType)),
		zap.Bool("requires_approval", s.assignments.RequiresApproval(position.AssignmentType)),
	)
	return toResponse(judge), nil
}

func (s *Service) RecordBiasMetrics(ctx context.Context, req domain.RecordBiasMetricsRequest) (*domain.JudgeResponse, error) {
	judge, err := s.load(ctx, domain.GetJudgeRequest{ID: req.JudgeID})
	if err != nil {
		return nil, err
	}

	metrics := domain.BiasMetrics{
		ConsistencyScore:     req.ConsistencyScore,
		SpeedScore:           req.SpeedScore,
		SettlementPreference: req.SettlementPreference,
		RiskTolerance:        req.RiskTolerance,
		PredictabilityScore:  req.PredictabilityScore,
	}
	if _, err := judge.CalculateBiasMetrics(metrics, s.clock.Now()).Value(); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, judge); err != nil {
		return nil, err
	}
	return toResponse(judge), nil
}

func (s *Service) Retire(ctx context.Context, req domain.RetireJudgeRequest) (*domain.JudgeResponse, error) {
	judge, err := s.load(ctx, domain.GetJudgeRequest{ID: req.JudgeID})
	if err != nil {
		return nil, err
	}

	effective := req.EffectiveDate
	if effective.IsZero() {
		effective = s.clock.Now()
	}
	if _, err := judge.Retire(s.genID.Generate(), effective, s.clock.Now()).Value(); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, judge); err != nil {
		return nil, err
	}

	s.log.Info("judge retired", zap.String("judge_id", judge.ID().String()))
	return toResponse(judge), nil
}

func (s *Service) CheckEligibility(ctx context.Context, req domain.EligibilityRequest) (*domain.EligibilityResponse, error) {
	judge, err := s.load(ctx, domain.GetJudgeRequest{ID: req.JudgeID})
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case domain.EligibilityBias:
		status := specification.NewBiasAnalysisEligibility().Status(judge)
		return &domain.EligibilityResponse{Kind: req.Kind, Eligible: status.Eligible, Reasons: status.Reasons}, nil
	case domain.EligibilityAdvertising:
		status := specification.NewAdvertisingEligibility().Status(judge)
		return &domain.EligibilityResponse{Kind: req.Kind, Eligible: status.Eligible, Reasons: status.Reasons}, nil
	case domain.EligibilityPremium:
		spec := specification.NewHighProfileJudge()
		resp := &domain.EligibilityResponse{Kind: req.Kind, Eligible: spec.IsSatisfiedBy(judge)}
		if !resp.Eligible {
			resp.Reasons = premiumReasons(spec, judge)
		}
		return resp, nil
	case domain.EligibilitySenior:
		spec := specification.NewSeniorStatusEligibility(s.clock.Now)
		resp := &domain.EligibilityResponse{Kind: req.Kind, Eligible: spec.IsSatisfiedBy(judge)}
		if !resp.Eligible {
			resp.Reasons = []string{"judge has not served the minimum years in a primary position"}
		}
		return resp, nil
	default:
		return nil, domain.ErrInvalidKind
	}
}

func (s *Service) AssignmentConflicts(ctx context.Context, req domain.ConflictCheckRequest) ([]domain.ConflictResponse, error) {
	judge, err := s.load(ctx, domain.GetJudgeRequest{ID: req.JudgeID})
	if err != nil {
		return nil, err
	}

	// Conflict detection reuses the judge's own jurisdiction: the check is
	// about dates and primaries, not about where the court sits.
	assignReq, err := s.buildAssignmentRequest(req.CourtID, req.AssignmentType, req.StartDate, req.EndDate, req.CourtName,
		string(judge.Jurisdiction().Level()), judge.Jurisdiction().State(), judge.Jurisdiction().County())
	if err != nil {
		return nil, err
	}

	conflicts := s.assignments.DetectConflicts(judge, assignReq)
	out := make([]domain.ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		resp := domain.ConflictResponse{
			Type:     string(c.Type),
			Severity: string(c.Severity),
			Message:  c.Message,
		}
		if c.Existing != nil {
			pos := toPositionResponse(*c.Existing)
			resp.Existing = &pos
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *Service) load(ctx context.Context, req domain.GetJudgeRequest) (*domain.Judge, error) {
	if slugValue := strings.TrimSpace(req.Slug); slugValue != "" {
		judge, err := s.repo.FindBySlug(ctx, s.db, slugValue)
		if err != nil {
			return nil, err
		}
		if judge == nil {
			return nil, domain.ErrNotFound
		}
		return judge, nil
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	judge, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if judge == nil {
		return nil, domain.ErrNotFound
	}
	return judge, nil
}

func (s *Service) buildAssignmentRequest(courtID, assignmentType string, start time.Time, end *time.Time, courtName, level, state, county string) (domain.AssignmentRequest, error) {
	parsedCourt, err := snowflake.ParseString(strings.TrimSpace(courtID))
	if err != nil {
		return domain.AssignmentRequest{}, domain.ErrInvalidCourt
	}
	kind, ok := domain.ParseAssignmentType(assignmentType)
	if !ok {
		return domain.AssignmentRequest{}, domain.ErrInvalidRequest
	}
	jur, err := domain.ParseJurisdiction(level, state, county).Value()
	if err != nil {
		return domain.AssignmentRequest{}, err
	}
	return domain.AssignmentRequest{
		CourtID:      parsedCourt,
		CourtName:    strings.TrimSpace(courtName),
		Type:         kind,
		StartDate:    start,
		EndDate:      end,
		Jurisdiction: jur,
	}, nil
}

func (s *Service) persist(ctx context.Context, judge *domain.Judge) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, judge); err != nil {
			return err
		}
		return s.publisher.Publish(ctx, tx, judge.CollectDomainEvents()...)
	})
}

func premiumReasons(spec specification.HighProfileJudge, judge *domain.Judge) []string {
	var reasons []string
	if judge.TotalCases() < spec.MinCases {
		reasons = append(reasons, "judge has fewer decided cases than the premium minimum")
	}
	if !judge.IsActive() {
		reasons = append(reasons, "judge has no active court position")
	}
	if spec.RequireBiasMetrics && judge.BiasMetrics() == nil {
		reasons = append(reasons, "bias metrics have not been calculated")
	}
	return reasons
}

func toResponse(judge *domain.Judge) *domain.JudgeResponse {
	positions := judge.Positions()
	resp := &domain.JudgeResponse{
		ID:           judge.ID().String(),
		Name:         judge.Name(),
		Slug:         judge.Slug(),
		Jurisdiction: judge.Jurisdiction().String(),
		TotalCases:   judge.TotalCases(),
		IsActive:     judge.IsActive(),
		Positions:    make([]domain.PositionResponse, 0, len(positions)),
		BiasMetrics:  judge.BiasMetrics(),
	}
	for _, p := range positions {
		resp.Positions = append(resp.Positions, toPositionResponse(p))
	}
	return resp
}

func toPositionResponse(p domain.CourtPosition) domain.PositionResponse {
	return domain.PositionResponse{
		ID:             p.ID.String(),
		CourtID:        p.CourtID.String(),
		CourtName:      p.CourtName,
		AssignmentType: string(p.AssignmentType),
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		IsActive:       p.IsActive,
		Jurisdiction:   p.Jurisdiction.String(),
	}
}
