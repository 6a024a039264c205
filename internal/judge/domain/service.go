package domain

import (
	"context"
	"errors"
	"time"

	"github.com/judgefinder/platform/pkg/db/pagination"
)

type CreateJudgeRequest struct {
	Name              string
	JurisdictionLevel string
	State             string
	County            string
	TotalCases        int64
}

type GetJudgeRequest struct {
	ID   string
	Slug string
}

type ListJudgeRequest struct {
	PageToken  string
	PageSize   int32
	State      string
	CourtID    string
	ActiveOnly bool
}

type ListJudgeResponse struct {
	pagination.PageInfo
	Judges []JudgeResponse `json:"judges"`
}

type AssignToCourtRequest struct {
	JudgeID           string
	CourtID           string
	CourtName         string
	AssignmentType    string
	StartDate         time.Time
	EndDate           *time.Time
	JurisdictionLevel string
	State             string
	County            string
}

type RecordBiasMetricsRequest struct {
	JudgeID              string
	ConsistencyScore     float64
	SpeedScore           float64
	SettlementPreference float64
	RiskTolerance        float64
	PredictabilityScore  float64
}

type RetireJudgeRequest struct {
	JudgeID       string
	EffectiveDate time.Time
}

// EligibilityKind selects which specification bundle to evaluate.
type EligibilityKind string

const (
	EligibilityBias        EligibilityKind = "bias"
	EligibilityAdvertising EligibilityKind = "advertising"
	EligibilityPremium     EligibilityKind = "premium"
	EligibilitySenior      EligibilityKind = "senior"
)

type EligibilityRequest struct {
	JudgeID string
	Kind    EligibilityKind
}

type EligibilityResponse struct {
	Kind     EligibilityKind `json:"kind"`
	Eligible bool            `json:"eligible"`
	Reasons  []string        `json:"reasons,omitempty"`
}

type ConflictCheckRequest struct {
	JudgeID        string
	CourtID        string
	CourtName      string
	AssignmentType string
	StartDate      time.Time
	EndDate        *time.Time
}

type PositionResponse struct {
	ID             string     `json:"id"`
	CourtID        string     `json:"court_id"`
	CourtName      string     `json:"court_name"`
	AssignmentType string     `json:"assignment_type"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	IsActive       bool       `json:"is_active"`
	Jurisdiction   string     `json:"jurisdiction"`
}

type JudgeResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Jurisdiction string             `json:"jurisdiction"`
	TotalCases   int64              `json:"total_cases"`
	IsActive     bool               `json:"is_active"`
	Positions    []PositionResponse `json:"positions"`
	BiasMetrics  *BiasMetrics       `json:"bias_metrics,omitempty"`
}

type Service interface {
	Create(context.Context, CreateJudgeRequest) (*JudgeResponse, error)
	GetByID(context.Context, GetJudgeRequest) (*JudgeResponse, error)
	List(context.Context, ListJudgeRequest) (*ListJudgeResponse, error)
	AssignToCourt(context.Context, AssignToCourtRequest) (*JudgeResponse, error)
	RecordBiasMetrics(context.Context, RecordBiasMetricsRequest) (*JudgeResponse, error)
	Retire(context.Context, RetireJudgeRequest) (*JudgeResponse, error)
	CheckEligibility(context.Context, EligibilityRequest) (*EligibilityResponse, error)
	AssignmentConflicts(context.Context, ConflictCheckRequest) ([]ConflictResponse, error)
}

// ConflictResponse mirrors assignment.AssignmentConflict for API surfacing.
type ConflictResponse struct {
	Type     string            `json:"type"`
	Severity string            `json:"severity"`
	Message  string            `json:"message"`
	Existing *PositionResponse `json:"existing_position,omitempty"`
}

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidCourt   = errors.New("invalid_court")
	ErrInvalidKind    = errors.New("invalid_kind")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)
