// Package specification provides composable predicates over judge
// aggregates: one reusable business rule per spec, combinable with
// And/Or/Not.
package specification

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/judgefinder/platform/internal/judge/domain"
)

// Specification is a single reusable eligibility rule.
type Specification interface {
	IsSatisfiedBy(judge *domain.Judge) bool
}

type andSpec struct{ specs []Specification }

func (s andSpec) IsSatisfiedBy(j *domain.Judge) bool {
	for _, spec := range s.specs {
		if !spec.IsSatisfiedBy(j) {
			return false
		}
	}
	return true
}

type orSpec struct{ specs []Specification }

func (s orSpec) IsSatisfiedBy(j *domain.Judge) bool {
	for _, spec := range s.specs {
		if spec.IsSatisfiedBy(j) {
			return true
		}
	}
	return false
}

type notSpec struct{ spec Specification }

func (s notSpec) IsSatisfiedBy(j *domain.Judge) bool {
	return !s.spec.IsSatisfiedBy(j)
}

func And(specs ...Specification) Specification { return andSpec{specs: specs} }
func Or(specs ...Specification) Specification  { return orSpec{specs: specs} }
func Not(spec Specification) Specification     { return notSpec{spec: spec} }

// MinimumCases requires a floor on total case history.
type MinimumCases struct{ Min int64 }

func (s MinimumCases) IsSatisfiedBy(j *domain.Judge) bool {
	return j.TotalCases() >= s.Min
}

// ActivePosition requires at least one active, non-retired position.
type ActivePosition struct{}

func (ActivePosition) IsSatisfiedBy(j *domain.Judge) bool {
	return j.IsActive()
}

// PrimaryPosition requires an active primary court.
type PrimaryPosition struct{}

func (PrimaryPosition) IsSatisfiedBy(j *domain.Judge) bool {
	return j.PrimaryCourt() != nil
}

// JurisdictionMatch compares the judge's jurisdiction rendering,
// case-insensitively, against a target string.
type JurisdictionMatch struct{ Target string }

func (s JurisdictionMatch) IsSatisfiedBy(j *domain.Judge) bool {
	return strings.EqualFold(strings.TrimSpace(j.Jurisdiction().String()), strings.TrimSpace(s.Target))
}

// BiasMetricsAvailable requires that metrics were already calculated.
type BiasMetricsAvailable struct{}

func (BiasMetricsAvailable) IsSatisfiedBy(j *domain.Judge) bool {
	return j.BiasMetrics() != nil
}

// CourtAssignment requires an active position at a specific court.
type CourtAssignment struct{ CourtID snowflake.ID }

func (s CourtAssignment) IsSatisfiedBy(j *domain.Judge) bool {
	for _, p := range j.ActivePositions() {
		if p.CourtID == s.CourtID {
			return true
		}
	}
	return false
}

// EligibilityStatus pairs the verdict with a human-readable reason per
// unmet sub-rule.
type EligibilityStatus struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons,omitempty"`
}

// BiasAnalysisEligibility gates bias analysis behind the case-count floor
// and an active position.
type BiasAnalysisEligibility struct{ MinCases int64 }

// NewBiasAnalysisEligibility applies the business's 500-case floor.
func NewBiasAnalysisEligibility() BiasAnalysisEligibility {
	return BiasAnalysisEligibility{MinCases: domain.MinCasesForBiasMetrics}
}

func (s BiasAnalysisEligibility) IsSatisfiedBy(j *domain.Judge) bool {
	return And(MinimumCases{Min: s.MinCases}, ActivePosition{}).IsSatisfiedBy(j)
}

// Status explains which sub-rules fail, for actionable messaging.
func (s BiasAnalysisEligibility) Status(j *domain.Judge) EligibilityStatus {
	var reasons []string
	if !(MinimumCases{Min: s.MinCases}).IsSatisfiedBy(j) {
		reasons = append(reasons, "judge has fewer decided cases than the statistical minimum")
	}
	if !(ActivePosition{}).IsSatisfiedBy(j) {
		reasons = append(reasons, "judge has no active court position")
	}
	return EligibilityStatus{Eligible: len(reasons) == 0, Reasons: reasons}
}

// AdvertisingEligibility uses a lower case-count floor for ad placements.
type AdvertisingEligibility struct{ MinCases int64 }

func NewAdvertisingEligibility() AdvertisingEligibility {
	return AdvertisingEligibility{MinCases: 100}
}

func (s AdvertisingEligibility) IsSatisfiedBy(j *domain.Judge) bool {
	return And(MinimumCases{Min: s.MinCases}, ActivePosition{}).IsSatisfiedBy(j)
}

func (s AdvertisingEligibility) Status(j *domain.Judge) EligibilityStatus {
	var reasons []string
	if !(MinimumCases{Min: s.MinCases}).IsSatisfiedBy(j) {
		reasons = append(reasons, "judge has fewer decided cases than the advertising minimum")
	}
	if !(ActivePosition{}).IsSatisfiedBy(j) {
		reasons = append(reasons, "judge has no active court position")
	}
	return EligibilityStatus{Eligible: len(reasons) == 0, Reasons: reasons}
}

// HighProfileJudge gates premium-tier advertising.
type HighProfileJudge struct {
	MinCases           int64
	RequireBiasMetrics bool
}

func NewHighProfileJudge() HighProfileJudge {
	return HighProfileJudge{MinCases: 1000, RequireBiasMetrics: true}
}

func (s HighProfileJudge) IsSatisfiedBy(j *domain.Judge) bool {
	specs := []Specification{MinimumCases{Min: s.MinCases}, ActivePosition{}}
	if s.RequireBiasMetrics {
		specs = append(specs, BiasMetricsAvailable{})
	}
	return And(specs...).IsSatisfiedBy(j)
}

// SeniorStatusEligibility checks years of service from the primary position
// start date. The aggregate does not model age, so only years of service
// are evaluated; the age floor is recorded but unused until birth dates
// exist in the data model.
type SeniorStatusEligibility struct {
	MinYears int
	MinAge   int
	Now      func() time.Time
}

func NewSeniorStatusEligibility(now func() time.Time) SeniorStatusEligibility {
	return SeniorStatusEligibility{MinYears: 15, MinAge: 65, Now: now}
}

func (s SeniorStatusEligibility) IsSatisfiedBy(j *domain.Judge) bool {
	primary := j.PrimaryCourt()
	if primary == nil {
		return false
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return now.Sub(primary.StartDate) >= time.Duration(s.MinYears)*365*24*time.Hour
}
