package domain

import (
	"strings"

	"github.com/judgefinder/platform/pkg/result"
)

// JurisdictionLevel is the hierarchy tier a court or judge belongs to.
type JurisdictionLevel string

const (
	LevelFederal JurisdictionLevel = "federal"
	LevelState   JurisdictionLevel = "state"
	LevelCounty  JurisdictionLevel = "county"
)

// Jurisdiction is an immutable hierarchical value: federal > state > county.
type Jurisdiction struct {
	level  JurisdictionLevel
	state  string
	county string
}

// FederalJurisdiction returns the top of the hierarchy.
func FederalJurisdiction() Jurisdiction {
	return Jurisdiction{level: LevelFederal}
}

// StateJurisdiction validates and builds a state-level jurisdiction.
func StateJurisdiction(state string) result.Result[Jurisdiction] {
	state = strings.TrimSpace(state)
	if state == "" {
		return result.Err[Jurisdiction](result.NewValidationError(
			"jurisdiction_state_required", "state name must not be empty", nil))
	}
	return result.Ok(Jurisdiction{level: LevelState, state: state})
}

// CountyJurisdiction validates and builds a county-level jurisdiction.
func CountyJurisdiction(state, county string) result.Result[Jurisdiction] {
	state = strings.TrimSpace(state)
	county = strings.TrimSpace(county)
	if state == "" {
		return result.Err[Jurisdiction](result.NewValidationError(
			"jurisdiction_state_required", "state name must not be empty", nil))
	}
	if county == "" {
		return result.Err[Jurisdiction](result.NewValidationError(
			"jurisdiction_county_required", "county name must not be empty", nil))
	}
	return result.Ok(Jurisdiction{level: LevelCounty, state: state, county: county})
}

// ParseJurisdiction rebuilds a jurisdiction from persisted parts.
func ParseJurisdiction(level, state, county string) result.Result[Jurisdiction] {
	switch JurisdictionLevel(strings.ToLower(strings.TrimSpace(level))) {
	case LevelFederal:
		return result.Ok(FederalJurisdiction())
	case LevelState:
		return StateJurisdiction(state)
	case LevelCounty:
		return CountyJurisdiction(state, county)
	default:
		return result.Err[Jurisdiction](result.NewValidationError(
			"jurisdiction_level_unknown", "jurisdiction level must be federal, state or county",
			map[string]any{"level": level}))
	}
}

func (j Jurisdiction) Level() JurisdictionLevel { return j.level }
func (j Jurisdiction) State() string            { return j.state }
func (j Jurisdiction) County() string           { return j.county }

// Equal compares structurally, case-insensitive on names.
func (j Jurisdiction) Equal(other Jurisdiction) bool {
	return j.level == other.level &&
		strings.EqualFold(j.state, other.state) &&
		strings.EqualFold(j.county, other.county)
}

// IsWithin reports containment: a county lies within its state, every state
// lies within federal, and federal lies within nothing but itself.
func (j Jurisdiction) IsWithin(other Jurisdiction) bool {
	if j.Equal(other) {
		return true
	}
	switch other.level {
	case LevelFederal:
		return true
	case LevelState:
		return j.level == LevelCounty && strings.EqualFold(j.state, other.state)
	default:
		return false
	}
}

func (j Jurisdiction) String() string {
	switch j.level {
	case LevelFederal:
		return "Federal"
	case LevelCounty:
		return j.county + ", " + j.state
	default:
		return j.state
	}
}
