package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// AssignmentType classifies a judge's relationship to a court.
type AssignmentType string

const (
	AssignmentPrimary   AssignmentType = "primary"
	AssignmentVisiting  AssignmentType = "visiting"
	AssignmentTemporary AssignmentType = "temporary"
	AssignmentRetired   AssignmentType = "retired"
)

// ParseAssignmentType normalizes raw input to a known assignment type.
func ParseAssignmentType(raw string) (AssignmentType, bool) {
	switch AssignmentType(raw) {
	case AssignmentPrimary, AssignmentVisiting, AssignmentTemporary, AssignmentRetired:
		return AssignmentType(raw), true
	default:
		return "", false
	}
}

// openEnded stands in for a missing end date in overlap arithmetic.
var openEnded = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// CourtPosition is one assignment of a judge to a court. Positions are never
// deleted, only superseded, so history stays available for conflict checks.
type CourtPosition struct {
	ID             snowflake.ID
	CourtID        snowflake.ID
	CourtName      string
	AssignmentType AssignmentType
	StartDate      time.Time
	EndDate        *time.Time
	IsActive       bool
	Jurisdiction   Jurisdiction
}

func (p CourtPosition) effectiveEnd() time.Time {
	if p.EndDate == nil {
		return openEnded
	}
	return *p.EndDate
}

// Overlaps reports whether two date ranges at the same court intersect.
// Missing end dates are treated as open-ended.
func (p CourtPosition) Overlaps(start time.Time, end *time.Time) bool {
	proposedEnd := openEnded
	if end != nil {
		proposedEnd = *end
	}
	return !start.After(p.effectiveEnd()) && !proposedEnd.Before(p.StartDate)
}
