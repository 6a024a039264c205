// Package assignment implements the court-assignment domain service: a
// stateless rules engine answering validation questions about proposed
// assignments without mutating the aggregate.
package assignment

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/judgefinder/platform/internal/judge/domain"
	"github.com/judgefinder/platform/pkg/result"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type ConflictType string

const (
	ConflictTemporalOverlap      ConflictType = "temporal_overlap"
	ConflictDuplicatePrimary     ConflictType = "duplicate_primary"
	ConflictJurisdictionMismatch ConflictType = "jurisdiction_mismatch"
	ConflictRetiredReactivation  ConflictType = "retired_reactivation"
)

// AssignmentValidation reports blocking errors and advisory warnings. The
// Result wrapper around it never fails; failures live in the payload.
type AssignmentValidation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// AssignmentConflict points an operator at the specific record in the way.
type AssignmentConflict struct {
	Type     ConflictType             `json:"type"`
	Existing *domain.CourtPosition    `json:"existing_position,omitempty"`
	Proposed domain.AssignmentRequest `json:"-"`
	Severity Severity                 `json:"severity"`
	Message  string                   `json:"message"`
}

// WorkloadShare is the fixed workload percentage one position contributes.
type WorkloadShare struct {
	CourtID        snowflake.ID          `json:"court_id"`
	CourtName      string                `json:"court_name"`
	AssignmentType domain.AssignmentType `json:"assignment_type"`
	Percent        int                   `json:"percent"`
}

type Service struct{}

func New() *Service { return &Service{} }

// ValidateAssignment checks a proposed assignment against the judge's
// current positions. Always returns Ok; rule outcomes are in the payload.
//
// Retirement is only a warning here, deliberately looser than the
// aggregate's own transition rule, which blocks it outright.
func (s *Service) ValidateAssignment(judge *domain.Judge, req domain.AssignmentRequest) result.Result[AssignmentValidation] {
	v := AssignmentValidation{Errors: []string{}, Warnings: []string{}}

	if !judge.JurisdictionCompatible(req.Jurisdiction) {
		v.Errors = append(v.Errors, fmt.Sprintf(
			"court jurisdiction %s is outside the judge's jurisdiction %s",
			req.Jurisdiction.String(), judge.Jurisdiction().String()))
	}

	if req.Type == domain.AssignmentPrimary {
		if existing := judge.PrimaryCourt(); existing != nil {
			v.Errors = append(v.Errors, fmt.Sprintf(
				"judge already holds an active primary position at %s", existing.CourtName))
		}
	}

	for _, p := range judge.Positions() {
		if p.CourtID == req.CourtID && p.Overlaps(req.StartDate, req.EndDate) {
			v.Errors = append(v.Errors, fmt.Sprintf(
				"proposed dates overlap an existing position at %s", p.CourtName))
			break
		}
	}

	if judge.HasRetired() && req.Type != domain.AssignmentRetired {
		v.Warnings = append(v.Warnings,
			"judge has a retired position; assigning a new position will be blocked by the aggregate")
	}

	if s.previouslyLeft(judge, req.CourtID) {
		v.Warnings = append(v.Warnings,
			"judge previously held and left a position at this court")
	}

	v.Valid = len(v.Errors) == 0
	return result.Ok(v)
}

// DetectConflicts runs the same checks as ValidateAssignment but returns the
// conflicting records themselves, for UI surfacing.
func (s *Service) DetectConflicts(judge *domain.Judge, req domain.AssignmentRequest) []AssignmentConflict {
	var conflicts []AssignmentConflict

	if !judge.JurisdictionCompatible(req.Jurisdiction) {
		conflicts = append(conflicts, AssignmentConflict{
			Type:     ConflictJurisdictionMismatch,
			Proposed: req,
			Severity: SeverityError,
			Message: fmt.Sprintf("court jurisdiction %s is outside the judge's jurisdiction %s",
				req.Jurisdiction.String(), judge.Jurisdiction().String()),
		})
	}

	if req.Type == domain.AssignmentPrimary {
		if existing := judge.PrimaryCourt(); existing != nil {
			p := *existing
			conflicts = append(conflicts, AssignmentConflict{
				Type:     ConflictDuplicatePrimary,
				Existing: &p,
				Proposed: req,
				Severity: SeverityError,
				Message:  fmt.Sprintf("active primary position already exists at %s", p.CourtName),
			})
		}
	}

	for _, p := range judge.Positions() {
		if p.CourtID == req.CourtID && p.Overlaps(req.StartDate, req.EndDate) {
			existing := p
			conflicts = append(conflicts, AssignmentConflict{
				Type:     ConflictTemporalOverlap,
				Existing: &existing,
				Proposed: req,
				Severity: SeverityError,
				Message:  fmt.Sprintf("dates overlap an existing position at %s", p.CourtName),
			})
		}
	}

	if judge.HasRetired() && req.Type != domain.AssignmentRetired {
		conflicts = append(conflicts, AssignmentConflict{
			Type:     ConflictRetiredReactivation,
			Proposed: req,
			Severity: SeverityWarning,
			Message:  "judge has a retired position on record",
		})
	}

	return conflicts
}

// ValidateTransition rules on an assignment-type change. Retired never
// reactivates; temporary-to-primary is treated as an error here even though
// the aggregate itself only warns about it.
func (s *Service) ValidateTransition(from, to domain.AssignmentType) result.Result[domain.AssignmentType] {
	if domain.RuleTransition(from, to) == domain.TransitionBlocked {
		return result.Err[domain.AssignmentType](result.NewBusinessRuleViolation(
			"transition_retired_terminal", "a retired position cannot transition to an active one",
			map[string]any{"from": string(from), "to": string(to)}))
	}
	if from == domain.AssignmentTemporary && to == domain.AssignmentPrimary {
		return result.Err[domain.AssignmentType](result.NewBusinessRuleViolation(
			"transition_temporary_to_primary", "temporary positions should not convert directly to primary",
			map[string]any{"from": string(from), "to": string(to)}))
	}
	return result.Ok(to)
}

var workloadByType = map[domain.AssignmentType]int{
	domain.AssignmentPrimary:   100,
	domain.AssignmentTemporary: 50,
	domain.AssignmentVisiting:  25,
	domain.AssignmentRetired:   0,
}

// WorkloadDistribution maps each active position to a fixed percentage by
// assignment type. A simplification; not based on actual caseload data.
func (s *Service) WorkloadDistribution(positions []domain.CourtPosition) []WorkloadShare {
	var shares []WorkloadShare
	for _, p := range positions {
		if !p.IsActive {
			continue
		}
		shares = append(shares, WorkloadShare{
			CourtID:        p.CourtID,
			CourtName:      p.CourtName,
			AssignmentType: p.AssignmentType,
			Percent:        workloadByType[p.AssignmentType],
		})
	}
	return shares
}

// ValidateWorkloadCapacity fails when the summed shares exceed 100%.
func (s *Service) ValidateWorkloadCapacity(positions []domain.CourtPosition) result.Result[int] {
	total := 0
	for _, share := range s.WorkloadDistribution(positions) {
		total += share.Percent
	}
	if total > 100 {
		return result.Err[int](result.NewBusinessRuleViolation(
			"workload_over_capacity", "combined workload exceeds full capacity",
			map[string]any{"total_percent": total}))
	}
	return result.Ok(total)
}

// RecommendEndDate suggests a term length: six months for visiting, one
// year for temporary, open-ended otherwise.
func (s *Service) RecommendEndDate(t domain.AssignmentType, start time.Time) *time.Time {
	switch t {
	case domain.AssignmentVisiting:
		end := start.AddDate(0, 6, 0)
		return &end
	case domain.AssignmentTemporary:
		end := start.AddDate(1, 0, 0)
		return &end
	default:
		return nil
	}
}

// RequiresApproval reports whether the assignment needs confirmation.
// Only primary judicial appointments do.
func (s *Service) RequiresApproval(t domain.AssignmentType) bool {
	return t == domain.AssignmentPrimary
}

func (s *Service) previouslyLeft(judge *domain.Judge, courtID snowflake.ID) bool {
	for _, p := range judge.Positions() {
		if p.CourtID == courtID && !p.IsActive {
			return true
		}
	}
	return false
}
