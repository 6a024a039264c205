package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/judgefinder/platform/internal/clock"
	"github.com/judgefinder/platform/internal/events"
	"github.com/judgefinder/platform/internal/judge/assignment"
	"github.com/judgefinder/platform/internal/judge/domain"
	"github.com/judgefinder/platform/internal/judge/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	svc   domain.Service
	db    *gorm.DB
	clock *clock.FakeClock
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&repository.JudgeRecord{},
		&repository.CourtPositionRecord{},
		&events.DomainEvent{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(testNow)
	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		Publisher:   events.NewOutboxPublisher(node),
		Assignments: assignment.New(),
		Clock:       fake,
	})
	return testEnv{svc: svc, db: db, clock: fake}
}

func createJudge(t *testing.T, env testEnv, name string, totalCases int64) *domain.JudgeResponse {
	t.Helper()
	resp, err := env.svc.Create(context.Background(), domain.CreateJudgeRequest{
		Name:              name,
		JurisdictionLevel: "state",
		State:             "CA",
		TotalCases:        totalCases,
	})
	require.NoError(t, err)
	return resp
}

func assign(t *testing.T, env testEnv, judgeID, courtID, assignmentType string) *domain.JudgeResponse {
	t.Helper()
	resp, err := env.svc.AssignToCourt(context.Background(), domain.AssignToCourtRequest{
		JudgeID:           judgeID,
		CourtID:           courtID,
		CourtName:         "Superior Court",
		AssignmentType:    assignmentType,
		StartDate:         testNow.AddDate(-1, 0, 0),
		JurisdictionLevel: "state",
		State:             "CA",
	})
	require.NoError(t, err)
	return resp
}

func TestCreateAndGetBySlug(t *testing.T) {
	env := newTestEnv(t)

	created := createJudge(t, env, "Hon. Miriam Delgado", 600)
	assert.Equal(t, "hon-miriam-delgado", created.Slug)
	assert.Equal(t, "CA", created.Jurisdiction)
	assert.False(t, created.IsActive)

	bySlug, err := env.svc.GetByID(context.Background(), domain.GetJudgeRequest{Slug: "hon-miriam-delgado"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	byID, err := env.svc.GetByID(context.Background(), domain.GetJudgeRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.Slug, byID.Slug)
}

func TestCreateDuplicateNameGetsSuffixedSlug(t *testing.T) {
	env := newTestEnv(t)

	first := createJudge(t, env, "Hon. Robert Kwan", 100)
	second := createJudge(t, env, "Hon. Robert Kwan", 200)

	assert.Equal(t, "hon-robert-kwan", first.Slug)
	assert.Equal(t, "hon-robert-kwan-"+second.ID, second.Slug)
}

func TestGetByIDErrors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.GetByID(context.Background(), domain.GetJudgeRequest{ID: "not-a-number"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = env.svc.GetByID(context.Background(), domain.GetJudgeRequest{ID: "123456789"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.svc.GetByID(context.Background(), domain.GetJudgeRequest{Slug: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignToCourtPersistsPositionAndOutboxEvent(t *testing.T) {
	env := newTestEnv(t)
	created := createJudge(t, env, "Hon. Alice Thornton", 600)

	resp := assign(t, env, created.ID, "9001", "primary")
	require.Len(t, resp.Positions, 1)
	assert.Equal(t, "primary", resp.Positions[0].AssignmentType)
	assert.True(t, resp.IsActive)

	var rows []events.DomainEvent
	require.NoError(t, env.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.EventJudgeAssignedToCourt, rows[0].EventType)
	assert.Equal(t, created.ID, rows[0].AggregateID.String())
}

func TestAssignToCourtRejectsSecondPrimary(t *testing.T) {
	env := newTestEnv(t)
	created := createJudge(t, env, "Hon. Alice Thornton", 600)
	assign(t, env, created.ID, "9001", "primary")

	_, err := env.svc.AssignToCourt(context.Background(), domain.AssignToCourtRequest{
		JudgeID:           created.ID,
		CourtID:           "9002",
		CourtName:         "Appellate Court",
		AssignmentType:    "primary",
		StartDate:         testNow,
		JurisdictionLevel: "state",
		State:             "CA",
	})
	require.Error(t, err)
}

func TestRecordBiasMetricsGate(t *testing.T) {
	env := newTestEnv(t)

	eligible := createJudge(t, env, "Hon. Eligible Judge", 600)
	assign(t, env, eligible.ID, "9001", "primary")

	resp, err := env.svc.RecordBiasMetrics(context.Background(), domain.RecordBiasMetricsRequest{
		JudgeID:          eligible.ID,
		ConsistencyScore: 0.8,
		SpeedScore:       0.7,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.BiasMetrics)
	assert.Equal(t, int64(600), resp.BiasMetrics.SampleSize)
	assert.True(t, resp.BiasMetrics.CalculatedAt.Equal(testNow))

	ineligible := createJudge(t, env, "Hon. New Judge", 100)
	assign(t, env, ineligible.ID, "9002", "primary")
	_, err = env.svc.RecordBiasMetrics(context.Background(), domain.RecordBiasMetricsRequest{
		JudgeID: ineligible.ID,
	})
	require.Error(t, err)
}

func TestRetireDefaultsEffectiveDateToClock(t *testing.T) {
	env := newTestEnv(t)
	created := createJudge(t, env, "Hon. Alice Thornton", 600)
	assign(t, env, created.ID, "9001", "primary")

	resp, err := env.svc.Retire(context.Background(), domain.RetireJudgeRequest{JudgeID: created.ID})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	var retired domain.PositionResponse
	for _, p := range resp.Positions {
		if p.AssignmentType == "retired" {
			retired = p
		}
	}
	assert.True(t, retired.StartDate.Equal(testNow))

	// Terminal: assignments and a second retirement both fail now.
	_, err = env.svc.Retire(context.Background(), domain.RetireJudgeRequest{JudgeID: created.ID})
	require.Error(t, err)
}

func TestCheckEligibilityKinds(t *testing.T) {
	env := newTestEnv(t)
	created := createJudge(t, env, "Hon. Alice Thornton", 600)
	assign(t, env, created.ID, "9001", "primary")
	ctx := context.Background()

	bias, err := env.svc.CheckEligibility(ctx, domain.EligibilityRequest{JudgeID: created.ID, Kind: domain.EligibilityBias})
	require.NoError(t, err)
	assert.True(t, bias.Eligible)

	ads, err := env.svc.CheckEligibility(ctx, domain.EligibilityRequest{JudgeID: created.ID, Kind: domain.EligibilityAdvertising})
	require.NoError(t, err)
	assert.True(t, ads.Eligible)

	// Premium needs 1000 cases and stored bias metrics.
	premium, err := env.svc.CheckEligibility(ctx, domain.EligibilityRequest{JudgeID: created.ID, Kind: domain.EligibilityPremium})
	require.NoError(t, err)
	assert.False(t, premium.Eligible)
	assert.NotEmpty(t, premium.Reasons)

	senior, err := env.svc.CheckEligibility(ctx, domain.EligibilityRequest{JudgeID: created.ID, Kind: domain.EligibilitySenior})
	require.NoError(t, err)
	assert.False(t, senior.Eligible)

	_, err = env.svc.CheckEligibility(ctx, domain.EligibilityRequest{JudgeID: created.ID, Kind: "unknown"})
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
}

func TestAssignmentConflicts(t *testing.T) {
	env := newTestEnv(t)
	created := createJudge(t, env, "Hon. Alice Thornton", 600)
	assign(t, env, created.ID, "9001", "primary")

	conflicts, err := env.svc.AssignmentConflicts(context.Background(), domain.ConflictCheckRequest{
		JudgeID:        created.ID,
		CourtID:        "9001",
		CourtName:      "Superior Court",
		AssignmentType: "primary",
		StartDate:      testNow,
	})
	require.NoError(t, err)
	require.Len(t, conflicts, 2)
	for _, c := range conflicts {
		assert.Equal(t, "error", c.Severity)
		require.NotNil(t, c.Existing)
	}
}

func TestListPagination(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"Hon. Judge One", "Hon. Judge Two", "Hon. Judge Three"} {
		createJudge(t, env, name, 100)
	}
	ctx := context.Background()

	page, err := env.svc.List(ctx, domain.ListJudgeRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Judges, 2)
	assert.True(t, page.HasMore)
	require.NotEmpty(t, page.NextPageToken)

	rest, err := env.svc.List(ctx, domain.ListJudgeRequest{PageSize: 2, PageToken: page.NextPageToken})
	require.NoError(t, err)
	require.Len(t, rest.Judges, 1)

	filtered, err := env.svc.List(ctx, domain.ListJudgeRequest{PageSize: 10, State: "NV"})
	require.NoError(t, err)
	assert.Empty(t, filtered.Judges)
}
