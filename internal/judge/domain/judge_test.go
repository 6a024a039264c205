package domain

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/judgefinder/platform/pkg/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestJudge(t *testing.T, totalCases int64, jur Jurisdiction) *Judge {
	t.Helper()
	j, err := NewJudge(snowflake.ID(1), "Hon. Test Judge", "hon-test-judge", jur, totalCases).Value()
	require.NoError(t, err)
	return j
}

func assignPrimary(t *testing.T, j *Judge, positionID, courtID int64, jur Jurisdiction) CourtPosition {
	t.Helper()
	pos, err := j.AssignToCourt(snowflake.ID(positionID), AssignmentRequest{
		CourtID:      snowflake.ID(courtID),
		CourtName:    "Test Court",
		Type:         AssignmentPrimary,
		StartDate:    testNow.AddDate(-1, 0, 0),
		Jurisdiction: jur,
	}, testNow).Value()
	require.NoError(t, err)
	return pos
}

func TestNewJudgeValidation(t *testing.T) {
	assert.True(t, NewJudge(1, "  ", "slug", FederalJurisdiction(), 0).IsErr())
	assert.True(t, NewJudge(1, "Hon. A", "slug", FederalJurisdiction(), -1).IsErr())

	j, err := NewJudge(1, "  Hon. A  ", "slug", FederalJurisdiction(), 10).Value()
	require.NoError(t, err)
	assert.Equal(t, "Hon. A", j.Name())
	assert.False(t, j.IsActive())
	assert.Nil(t, j.PrimaryCourt())
}

func TestAssignToCourtRecordsEvent(t *testing.T) {
	j := newTestJudge(t, 100, FederalJurisdiction())
	pos := assignPrimary(t, j, 10, 20, FederalJurisdiction())

	assert.True(t, pos.IsActive)
	assert.True(t, j.IsActive())
	require.NotNil(t, j.PrimaryCourt())
	assert.Equal(t, pos.ID, j.PrimaryCourt().ID)

	events := j.CollectDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventJudgeAssignedToCourt, events[0].EventType())
	assert.Equal(t, j.ID(), events[0].AggregateID())

	// Drained once; a second collect is empty.
	assert.Empty(t, j.CollectDomainEvents())
}

func TestAssignToCourtRejectsSecondActivePrimary(t *testing.T) {
	j := newTestJudge(t, 100, FederalJurisdiction())
	assignPrimary(t, j, 10, 20, FederalJurisdiction())

	r := j.AssignToCourt(11, AssignmentRequest{
		CourtID:      21,
		CourtName:    "Another Court",
		Type:         AssignmentPrimary,
		StartDate:    testNow,
		Jurisdiction: FederalJurisdiction(),
	}, testNow)
	require.True(t, r.IsErr())
	assert.True(t, result.IsKind(r.Error(), result.KindBusinessRule))

	de := result.AsDomainError(r.Error())
	require.NotNil(t, de)
	assert.Equal(t, "assignment_duplicate_primary", de.Code)
}

func TestAssignToCourtValidatesDates(t *testing.T) {
	j := newTestJudge(t, 100, FederalJurisdiction())

	r := j.AssignToCourt(10, AssignmentRequest{
		CourtID: 20, CourtName: "C", Type: AssignmentVisiting,
		Jurisdiction: FederalJurisdiction(),
	}, testNow)
	assert.True(t, result.IsKind(r.Error(), result.KindValidation))

	end := testNow.AddDate(0, -1, 0)
	r = j.AssignToCourt(10, AssignmentRequest{
		CourtID: 20, CourtName: "C", Type: AssignmentVisiting,
		StartDate: testNow, EndDate: &end,
		Jurisdiction: FederalJurisdiction(),
	}, testNow)
	assert.True(t, result.IsKind(r.Error(), result.KindValidation))

	r = j.AssignToCourt(10, AssignmentRequest{
		CourtID: 20, CourtName: "C", Type: AssignmentType("adjunct"),
		StartDate:    testNow,
		Jurisdiction: FederalJurisdiction(),
	}, testNow)
	assert.True(t, result.IsKind(r.Error(), result.KindValidation))
}

func TestAssignToCourtJurisdictionCompatibility(t *testing.T) {
	texas := mustState(t, "TX")
	travis := mustCounty(t, "TX", "Travis")
	california := mustState(t, "CA")

	j := newTestJudge(t, 100, texas)

	// A county court inside the judge's state is fine.
	r := j.AssignToCourt(10, AssignmentRequest{
		CourtID: 20, CourtName: "Travis County Court", Type: AssignmentVisiting,
		StartDate: testNow, Jurisdiction: travis,
	}, testNow)
	assert.True(t, r.IsOk())

	// A court in another state is not.
	r = j.AssignToCourt(11, AssignmentRequest{
		CourtID: 21, CourtName: "CA Court", Type: AssignmentVisiting,
		StartDate: testNow, Jurisdiction: california,
	}, testNow)
	require.True(t, r.IsErr())
	assert.Equal(t, "assignment_jurisdiction_mismatch", result.AsDomainError(r.Error()).Code)
}

func TestAssignToCourtOverlapAtSameCourt(t *testing.T) {
	j := newTestJudge(t, 100, FederalJurisdiction())

	end := testNow.AddDate(0, 6, 0)
	_, err := j.AssignToCourt(10, AssignmentRequest{
		CourtID: 20, CourtName: "C", Type: AssignmentVisiting,
		StartDate: testNow, EndDate: &end,
		Jurisdiction: FederalJurisdiction(),
	}, testNow).Value()
	require.NoError(t, err)

	// Overlapping window at the same court is rejected.
	r := j.AssignToCourt(11, AssignmentRequest{
		CourtID: 20, CourtName: "C", Type: AssignmentTemporary,
		StartDate:    testNow.AddDate(0, 3, 0),
		Jurisdiction: FederalJurisdiction(),
	}, testNow)
	require.True(t, r.IsErr())
	assert.Equal(t, "assignment_overlap", result.AsDomainError(r.Error()).Code)

	// A window after the existing one ends is accepted, and the prior
	// position at the court is superseded.
	r = j.AssignToCourt(12, AssignmentRequest{
		CourtID: 20, CourtName: "C", Type: AssignmentTemporary,
		StartDate:    end.AddDate(0, 0, 1),
		Jurisdiction: FederalJurisdiction(),
	}, testNow)
	require.True(t, r.IsOk())

	active := j.ActivePositions()
	require.Len(t, active, 1)
	assert.Equal(t, snowflake.ID(12), active[0].ID)
}

func TestOpenEndedPositionsAlwaysOverlapLaterStarts(t *testing.T) {
	j := newTestJudge(t, 100, FederalJurisdiction())

	_, err := j.AssignToCourt(10, AssignmentRequest{
		CourtID: 20, CourtName: "C", Type: AssignmentVisiting,
		StartDate:    testNow,
		Jurisdiction: FederalJurisdiction(),
	}, testNow).Value()
	require.NoError(t, err)

	r := j.AssignToCourt(11, AssignmentRequest{
		CourtID: 20, CourtName: "C", Type: AssignmentTemporary,
		StartDate:    testNow.AddDate(5, 0, 0),
		Jurisdiction: FederalJurisdiction(),
	}, testNow)
	require.True(t, r.IsErr())
	assert.Equal(t, "assignment_overlap", result.AsDomainError(r.Error()).Code)
}

func TestRetirementIsTerminal(t *testing.T) {
	j := newTestJudge(t, 100, FederalJurisdiction())
	assignPrimary(t, j, 10, 20, FederalJurisdiction())
	j.CollectDomainEvents()

	effective := testNow.AddDate(0, 1, 0)
	retired, err := j.Retire(11, effective, testNow).Value()
	require.NoError(t, err)
	assert.Equal(t, AssignmentRetired, retired.AssignmentType)
	assert.Equal(t, snowflake.ID(20), retired.CourtID)
	assert.True(t, j.HasRetired())
	assert.False(t, j.IsActive())

	events := j.CollectDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventJudgeRetired, events[0].EventType())

	// Closed positions get the effective date as their end date.
	for _, p := range j.Positions() {
		if p.AssignmentType != AssignmentRetired {
			assert.False(t, p.IsActive)
			require.NotNil(t, p.EndDate)
			assert.True(t, p.EndDate.Equal(effective))
		}
	}

	// No further retirement, no new assignments.
	r := j.Retire(12, effective, testNow)
	assert.Equal(t, "judge_already_retired", result.AsDomainError(r.Error()).Code)

	r2 := j.AssignToCourt(13, AssignmentRequest{
		CourtID: 30, CourtName: "New Court", Type: AssignmentVisiting,
		StartDate: testNow, Jurisdiction: FederalJurisdiction(),
	}, testNow)
	assert.Equal(t, "assignment_after_retirement", result.AsDomainError(r2.Error()).Code)
}

func TestRetireRequiresActivePosition(t *testing.T) {
	j := newTestJudge(t, 100, FederalJurisdiction())
	r := j.Retire(10, testNow, testNow)
	require.True(t, r.IsErr())
	assert.Equal(t, "judge_not_active", result.AsDomainError(r.Error()).Code)
}

func TestBiasMetricsGate(t *testing.T) {
	metrics := BiasMetrics{
		ConsistencyScore:     0.8,
		SpeedScore:           0.7,
		SettlementPreference: 0.4,
		RiskTolerance:        0.5,
		PredictabilityScore:  0.9,
	}

	// 600 cases and an active position clears the gate.
	j := newTestJudge(t, 600, FederalJurisdiction())
	assignPrimary(t, j, 10, 20, FederalJurisdiction())
	assert.True(t, j.CanCalculateBiasMetrics())

	stored, err := j.CalculateBiasMetrics(metrics, testNow).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(600), stored.SampleSize)
	assert.True(t, stored.CalculatedAt.Equal(testNow))
	require.NotNil(t, j.BiasMetrics())

	// Exactly at the floor still qualifies.
	atFloor := newTestJudge(t, MinCasesForBiasMetrics, FederalJurisdiction())
	assignPrimary(t, atFloor, 10, 20, FederalJurisdiction())
	assert.True(t, atFloor.CanCalculateBiasMetrics())

	// Below the floor is rejected with the shortfall in metadata.
	few := newTestJudge(t, 499, FederalJurisdiction())
	assignPrimary(t, few, 10, 20, FederalJurisdiction())
	r := few.CalculateBiasMetrics(metrics, testNow)
	require.True(t, r.IsErr())
	de := result.AsDomainError(r.Error())
	assert.Equal(t, "bias_metrics_ineligible", de.Code)
	assert.Equal(t, int64(499), de.Metadata["total_cases"])

	// Inactive judges are rejected even with enough cases.
	inactive := newTestJudge(t, 600, FederalJurisdiction())
	assert.False(t, inactive.CanCalculateBiasMetrics())
	assert.True(t, inactive.CalculateBiasMetrics(metrics, testNow).IsErr())
}

func TestRuleTransition(t *testing.T) {
	assert.Equal(t, TransitionBlocked, RuleTransition(AssignmentRetired, AssignmentPrimary))
	assert.Equal(t, TransitionBlocked, RuleTransition(AssignmentRetired, AssignmentVisiting))
	assert.Equal(t, TransitionAllowed, RuleTransition(AssignmentRetired, AssignmentRetired))
	assert.Equal(t, TransitionWarned, RuleTransition(AssignmentTemporary, AssignmentPrimary))
	assert.Equal(t, TransitionWarned, RuleTransition(AssignmentVisiting, AssignmentPrimary))
	assert.Equal(t, TransitionAllowed, RuleTransition(AssignmentPrimary, AssignmentVisiting))
}
