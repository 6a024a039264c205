// Package server exposes the HTTP API over gin: judge directory endpoints,
// advertising pricing quotes and placement bookings.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/judgefinder/platform/internal/advertising"
	advertisingdomain "github.com/judgefinder/platform/internal/advertising/domain"
	"github.com/judgefinder/platform/internal/clock"
	"github.com/judgefinder/platform/internal/config"
	"github.com/judgefinder/platform/internal/events"
	"github.com/judgefinder/platform/internal/judge"
	judgedomain "github.com/judgefinder/platform/internal/judge/domain"
	"github.com/judgefinder/platform/internal/observability"
	obsmiddleware "github.com/judgefinder/platform/internal/observability/logger"
	obsmetrics "github.com/judgefinder/platform/internal/observability/metrics"
	obstracing "github.com/judgefinder/platform/internal/observability/tracing"
	"github.com/judgefinder/platform/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	clock.Module,
	events.Module,
	judge.Module,
	advertising.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(httpMetrics.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	judgeSvc     judgedomain.Service
	pricingSvc   advertisingdomain.PricingService
	placementSvc advertisingdomain.PlacementService
	obsMetrics   *obsmetrics.Metrics
	quoteLimiter *ratelimit.QuoteLimiter
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	JudgeSvc     judgedomain.Service
	PricingSvc   advertisingdomain.PricingService
	PlacementSvc advertisingdomain.PlacementService
	ObsMetrics   *obsmetrics.Metrics     `optional:"true"`
	QuoteLimiter *ratelimit.QuoteLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		judgeSvc:     p.JudgeSvc,
		pricingSvc:   p.PricingSvc,
		placementSvc: p.PlacementSvc,
		obsMetrics:   p.ObsMetrics,
		quoteLimiter: p.QuoteLimiter,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")

	judges := api.Group("/judges")
	judges.POST("", s.CreateJudge)
	judges.GET("", s.ListJudges)
	judges.GET("/:id", s.GetJudge)
	judges.POST("/:id/assignments", s.AssignJudgeToCourt)
	judges.POST("/:id/assignments/conflicts", s.CheckAssignmentConflicts)
	judges.POST("/:id/bias-metrics", s.RecordBiasMetrics)
	judges.GET("/:id/eligibility", s.CheckEligibility)
	judges.POST("/:id/retire", s.RetireJudge)

	pricing := api.Group("/pricing")
	pricing.POST("/quote", s.QuotePricing)
	pricing.GET("/tiers", s.CompareTiers)
	pricing.GET("/annual-savings", s.EstimateAnnualSavings)
	pricing.POST("/roi-threshold", s.CalculateROIThreshold)

	placements := api.Group("/placements")
	placements.POST("", s.CreatePlacement)
	placements.GET("", s.ListPlacements)
	placements.GET("/:id", s.GetPlacement)
}
