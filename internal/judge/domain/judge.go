// Package domain holds the judge aggregate, its value objects and the
// business rules governing court assignments and bias-metric eligibility.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/judgefinder/platform/pkg/result"
)

// MinCasesForBiasMetrics is the statistical-confidence floor set by the
// business. It is a hard constant, not configurable per call.
const MinCasesForBiasMetrics = 500

// BiasMetrics are the statistical indicators computed from a judge's case
// history. The domain stores them; computing them happens upstream.
type BiasMetrics struct {
	ConsistencyScore     float64   `json:"consistency_score"`
	SpeedScore           float64   `json:"speed_score"`
	SettlementPreference float64   `json:"settlement_preference"`
	RiskTolerance        float64   `json:"risk_tolerance"`
	PredictabilityScore  float64   `json:"predictability_score"`
	SampleSize           int64     `json:"sample_size"`
	CalculatedAt         time.Time `json:"calculated_at"`
}

// AssignmentRequest carries the parameters of a proposed court assignment.
type AssignmentRequest struct {
	CourtID      snowflake.ID
	CourtName    string
	Type         AssignmentType
	StartDate    time.Time
	EndDate      *time.Time
	Jurisdiction Jurisdiction
}

// Judge is the aggregate root. All mutations go through its methods, which
// enforce the invariants and record domain events for the caller to drain.
type Judge struct {
	id           snowflake.ID
	name         string
	slug         string
	jurisdiction Jurisdiction
	totalCases   int64
	positions    []CourtPosition
	biasMetrics  *BiasMetrics
	events       []Event
}

// NewJudge creates a fresh aggregate with no positions.
func NewJudge(id snowflake.ID, name, slug string, jurisdiction Jurisdiction, totalCases int64) result.Result[*Judge] {
	name = strings.TrimSpace(name)
	if name == "" {
		return result.Err[*Judge](result.NewValidationError(
			"judge_name_required", "judge name must not be empty", nil))
	}
	if totalCases < 0 {
		return result.Err[*Judge](result.NewValidationError(
			"judge_total_cases_negative", "total cases must not be negative",
			map[string]any{"total_cases": totalCases}))
	}
	return result.Ok(&Judge{
		id:           id,
		name:         name,
		slug:         slug,
		jurisdiction: jurisdiction,
		totalCases:   totalCases,
	})
}

// Rehydrate rebuilds an aggregate from persisted state. Field mapping only;
// the stored state is trusted to have been produced by the aggregate itself.
func Rehydrate(id snowflake.ID, name, slug string, jurisdiction Jurisdiction, totalCases int64, positions []CourtPosition, metrics *BiasMetrics) *Judge {
	return &Judge{
		id:           id,
		name:         name,
		slug:         slug,
		jurisdiction: jurisdiction,
		totalCases:   totalCases,
		positions:    positions,
		biasMetrics:  metrics,
	}
}

func (j *Judge) ID() snowflake.ID           { return j.id }
func (j *Judge) Name() string               { return j.name }
func (j *Judge) Slug() string               { return j.slug }
func (j *Judge) Jurisdiction() Jurisdiction { return j.jurisdiction }
func (j *Judge) TotalCases() int64          { return j.totalCases }

// Positions returns a copy; the aggregate's slice stays private.
func (j *Judge) Positions() []CourtPosition {
	out := make([]CourtPosition, len(j.positions))
	copy(out, j.positions)
	return out
}

// BiasMetrics returns the stored metrics, nil when never calculated.
func (j *Judge) BiasMetrics() *BiasMetrics {
	if j.biasMetrics == nil {
		return nil
	}
	m := *j.biasMetrics
	return &m
}

// IsActive reports whether any non-retired position is currently active.
func (j *Judge) IsActive() bool {
	for _, p := range j.positions {
		if p.IsActive && p.AssignmentType != AssignmentRetired {
			return true
		}
	}
	return false
}

// PrimaryCourt returns the active primary position, nil when absent.
func (j *Judge) PrimaryCourt() *CourtPosition {
	for i := range j.positions {
		p := j.positions[i]
		if p.IsActive && p.AssignmentType == AssignmentPrimary {
			return &p
		}
	}
	return nil
}

// ActivePositions returns every position still marked active.
func (j *Judge) ActivePositions() []CourtPosition {
	var out []CourtPosition
	for _, p := range j.positions {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

// HasRetired reports whether a retired position exists. Retirement is
// terminal: once present, no non-retired position may be added.
func (j *Judge) HasRetired() bool {
	for _, p := range j.positions {
		if p.AssignmentType == AssignmentRetired {
			return true
		}
	}
	return false
}

// JurisdictionCompatible reports whether a court's jurisdiction can host
// this judge: either side contains the other.
func (j *Judge) JurisdictionCompatible(court Jurisdiction) bool {
	return court.IsWithin(j.jurisdiction) || j.jurisdiction.IsWithin(court)
}

// AssignToCourt validates and applies a new court assignment. On success the
// new position is appended, any prior same-court position is superseded and
// a JudgeAssignedToCourt event is recorded.
func (j *Judge) AssignToCourt(positionID snowflake.ID, req AssignmentRequest, now time.Time) result.Result[CourtPosition] {
	if _, ok := ParseAssignmentType(string(req.Type)); !ok {
		return result.Err[CourtPosition](result.NewValidationError(
			"assignment_type_unknown", "assignment type is not recognized",
			map[string]any{"assignment_type": string(req.Type)}))
	}
	if req.StartDate.IsZero() {
		return result.Err[CourtPosition](result.NewValidationError(
			"assignment_start_required", "start date is required", nil))
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return result.Err[CourtPosition](result.NewValidationError(
			"assignment_end_before_start", "end date must not precede start date", nil))
	}

	if !j.JurisdictionCompatible(req.Jurisdiction) {
		return result.Err[CourtPosition](result.NewBusinessRuleViolation(
			"assignment_jurisdiction_mismatch", "court jurisdiction is outside the judge's jurisdiction",
			map[string]any{"judge": j.jurisdiction.String(), "court": req.Jurisdiction.String()}))
	}

	if j.HasRetired() && req.Type != AssignmentRetired {
		return result.Err[CourtPosition](result.NewBusinessRuleViolation(
			"assignment_after_retirement", "a retired judge cannot take a new position", nil))
	}

	if req.Type == AssignmentPrimary {
		if existing := j.PrimaryCourt(); existing != nil {
			return result.Err[CourtPosition](result.NewBusinessRuleViolation(
				"assignment_duplicate_primary", "judge already holds an active primary position",
				map[string]any{"existing_court_id": existing.CourtID.String(), "existing_court": existing.CourtName}))
		}
	}

	for _, p := range j.positions {
		if p.CourtID == req.CourtID && p.Overlaps(req.StartDate, req.EndDate) {
			return result.Err[CourtPosition](result.NewBusinessRuleViolation(
				"assignment_overlap", "date range overlaps an existing position at this court",
				map[string]any{"court_id": req.CourtID.String(), "existing_position_id": p.ID.String()}))
		}
	}

	// Supersede the prior assignment at this court, if one is still active.
	for i := range j.positions {
		if j.positions[i].CourtID == req.CourtID && j.positions[i].IsActive {
			j.positions[i].IsActive = false
		}
	}

	position := CourtPosition{
		ID:             positionID,
		CourtID:        req.CourtID,
		CourtName:      req.CourtName,
		AssignmentType: req.Type,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsActive:       true,
		Jurisdiction:   req.Jurisdiction,
	}
	j.positions = append(j.positions, position)

	j.record(JudgeAssignedToCourt{
		JudgeID:        j.id,
		CourtID:        req.CourtID,
		CourtName:      req.CourtName,
		AssignmentType: req.Type,
		StartDate:      req.StartDate,
		At:             now,
	})

	return result.Ok(position)
}

// CanCalculateBiasMetrics checks the eligibility gate without mutating.
func (j *Judge) CanCalculateBiasMetrics() bool {
	return j.totalCases >= MinCasesForBiasMetrics && j.IsActive()
}

// CalculateBiasMetrics stores the metrics when the judge clears the gate.
// Callers must not compute and attach metrics around this method.
func (j *Judge) CalculateBiasMetrics(metrics BiasMetrics, now time.Time) result.Result[BiasMetrics] {
	var reasons []string
	if j.totalCases < MinCasesForBiasMetrics {
		reasons = append(reasons, "insufficient case history")
	}
	if !j.IsActive() {
		reasons = append(reasons, "no active court position")
	}
	if len(reasons) > 0 {
		return result.Err[BiasMetrics](result.NewBusinessRuleViolation(
			"bias_metrics_ineligible", "judge is not eligible for bias analysis",
			map[string]any{
				"reasons":        reasons,
				"total_cases":    j.totalCases,
				"required_cases": MinCasesForBiasMetrics,
			}))
	}

	metrics.SampleSize = j.totalCases
	metrics.CalculatedAt = now
	j.biasMetrics = &metrics

	j.record(BiasMetricsCalculated{JudgeID: j.id, Metrics: metrics, At: now})
	return result.Ok(metrics)
}

// Retire closes every active position and appends a terminal retired
// position at the judge's primary (or last active) court.
func (j *Judge) Retire(positionID snowflake.ID, effectiveDate time.Time, now time.Time) result.Result[CourtPosition] {
	if j.HasRetired() {
		return result.Err[CourtPosition](result.NewBusinessRuleViolation(
			"judge_already_retired", "judge is already retired", nil))
	}
	active := j.ActivePositions()
	if len(active) == 0 {
		return result.Err[CourtPosition](result.NewBusinessRuleViolation(
			"judge_not_active", "judge has no active position to retire from", nil))
	}

	court := active[len(active)-1]
	if primary := j.PrimaryCourt(); primary != nil {
		court = *primary
	}

	end := effectiveDate
	for i := range j.positions {
		if j.positions[i].IsActive {
			j.positions[i].IsActive = false
			if j.positions[i].EndDate == nil {
				j.positions[i].EndDate = &end
			}
		}
	}

	retired := CourtPosition{
		ID:             positionID,
		CourtID:        court.CourtID,
		CourtName:      court.CourtName,
		AssignmentType: AssignmentRetired,
		StartDate:      effectiveDate,
		IsActive:       true,
		Jurisdiction:   court.Jurisdiction,
	}
	j.positions = append(j.positions, retired)

	j.record(JudgeRetired{JudgeID: j.id, CourtID: court.CourtID, EffectiveDate: effectiveDate, At: now})
	return result.Ok(retired)
}

// CollectDomainEvents drains and returns the pending events.
func (j *Judge) CollectDomainEvents() []Event {
	events := j.events
	j.events = nil
	return events
}

func (j *Judge) record(e Event) {
	j.events = append(j.events, e)
}
