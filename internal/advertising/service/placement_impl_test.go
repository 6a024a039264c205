package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/judgefinder/platform/internal/advertising/domain"
	advertisingrepo "github.com/judgefinder/platform/internal/advertising/repository"
	"github.com/judgefinder/platform/internal/clock"
	judgedomain "github.com/judgefinder/platform/internal/judge/domain"
	judgerepo "github.com/judgefinder/platform/internal/judge/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var placementNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type placementEnv struct {
	svc    domain.PlacementService
	db     *gorm.DB
	judges judgedomain.Repository
	node   *snowflake.Node
}

func newPlacementEnv(t *testing.T) placementEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&judgerepo.JudgeRecord{},
		&judgerepo.CourtPositionRecord{},
		&advertisingrepo.PlacementRecord{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	judges := judgerepo.Provide()
	svc := NewPlacementService(PlacementParams{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    advertisingrepo.Provide(),
		Judges:  judges,
		Pricing: NewPricingService(),
		Clock:   clock.NewFakeClock(placementNow),
	})
	return placementEnv{svc: svc, db: db, judges: judges, node: node}
}

// seedJudge stores an active judge eligible for standard advertising.
func seedJudge(t *testing.T, env placementEnv, totalCases int64, withMetrics bool) snowflake.ID {
	t.Helper()

	jur, err := judgedomain.StateJurisdiction("CA").Value()
	require.NoError(t, err)

	id := env.node.Generate()
	judge, err := judgedomain.NewJudge(id, "Hon. Test Judge", "hon-test-judge-"+id.String(), jur, totalCases).Value()
	require.NoError(t, err)
	_, err = judge.AssignToCourt(env.node.Generate(), judgedomain.AssignmentRequest{
		CourtID:      env.node.Generate(),
		CourtName:    "Superior Court",
		Type:         judgedomain.AssignmentPrimary,
		StartDate:    placementNow.AddDate(-2, 0, 0),
		Jurisdiction: jur,
	}, placementNow).Value()
	require.NoError(t, err)
	if withMetrics {
		_, err = judge.CalculateBiasMetrics(judgedomain.BiasMetrics{ConsistencyScore: 0.8}, placementNow).Value()
		require.NoError(t, err)
	}
	judge.CollectDomainEvents()
	require.NoError(t, env.judges.Insert(context.Background(), env.db, judge))
	return id
}

func validRequest(judgeID snowflake.ID) domain.CreatePlacementRequest {
	return domain.CreatePlacementRequest{
		JudgeID:        judgeID.String(),
		AttorneyName:   "Dana Wells",
		BarState:       "CA",
		BarNumber:      "123456",
		Tier:           "standard",
		BundleSize:     1,
		DurationMonths: 12,
	}
}

func TestCreatePlacement(t *testing.T) {
	env := newPlacementEnv(t)
	judgeID := seedJudge(t, env, 600, false)

	resp, err := env.svc.Create(context.Background(), validRequest(judgeID))
	require.NoError(t, err)
	assert.Equal(t, "CA-123456", resp.BarNumber)
	assert.Equal(t, domain.TierStandard, resp.Tier)
	assert.Equal(t, domain.PlacementActive, resp.Status)
	// One judge for a year: annual discount only.
	assert.Equal(t, int64(500_000), resp.FinalPrice.Cents())
	assert.Equal(t, resp.FinalPrice.Cents(), resp.Breakdown.FinalPrice.Cents())
	assert.True(t, resp.StartsAt.Equal(placementNow))
}

func TestCreatePlacementValidation(t *testing.T) {
	env := newPlacementEnv(t)
	judgeID := seedJudge(t, env, 600, false)
	ctx := context.Background()

	bad := validRequest(judgeID)
	bad.JudgeID = "not-an-id"
	_, err := env.svc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	bad = validRequest(judgeID)
	bad.Tier = "platinum"
	_, err = env.svc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidTier)

	bad = validRequest(judgeID)
	bad.AttorneyName = "  "
	_, err = env.svc.Create(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	bad = validRequest(judgeID)
	bad.BarNumber = "12345678901"
	_, err = env.svc.Create(ctx, bad)
	require.Error(t, err)

	missing := validRequest(env.node.Generate())
	_, err = env.svc.Create(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrJudgeNotFound)
}

func TestCreatePlacementEligibilityGates(t *testing.T) {
	env := newPlacementEnv(t)
	ctx := context.Background()

	// Below the 100-case advertising floor.
	lowProfile := seedJudge(t, env, 50, false)
	_, err := env.svc.Create(ctx, validRequest(lowProfile))
	assert.ErrorIs(t, err, domain.ErrJudgeIneligible)

	// Premium needs 1000 cases plus stored bias metrics.
	standardOnly := seedJudge(t, env, 600, false)
	premiumReq := validRequest(standardOnly)
	premiumReq.Tier = "premium"
	_, err = env.svc.Create(ctx, premiumReq)
	assert.ErrorIs(t, err, domain.ErrJudgeIneligible)

	highProfile := seedJudge(t, env, 1500, true)
	premiumReq = validRequest(highProfile)
	premiumReq.Tier = "premium"
	resp, err := env.svc.Create(ctx, premiumReq)
	require.NoError(t, err)
	assert.Equal(t, domain.TierPremium, resp.Tier)
}

func TestGetAndListPlacements(t *testing.T) {
	env := newPlacementEnv(t)
	judgeID := seedJudge(t, env, 600, false)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, validRequest(judgeID))
	require.NoError(t, err)

	got, err := env.svc.GetByID(ctx, domain.GetPlacementRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.FinalPrice.Cents(), got.FinalPrice.Cents())
	assert.Equal(t, created.FinalPrice.Cents(), got.Breakdown.FinalPrice.Cents())

	_, err = env.svc.GetByID(ctx, domain.GetPlacementRequest{ID: env.node.Generate().String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := env.svc.List(ctx, domain.ListPlacementRequest{PageSize: 10, JudgeID: judgeID.String()})
	require.NoError(t, err)
	require.Len(t, list.Placements, 1)

	other, err := env.svc.List(ctx, domain.ListPlacementRequest{PageSize: 10, Status: "cancelled"})
	require.NoError(t, err)
	assert.Empty(t, other.Placements)
}
