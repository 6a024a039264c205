package server

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	advertisingdomain "github.com/judgefinder/platform/internal/advertising/domain"
)

type pricingQuoteRequest struct {
	Tier           string `json:"tier"`
	CourtLevel     string `json:"court_level"`
	Exclusive      bool   `json:"exclusive"`
	BundleSize     int    `json:"bundle_size"`
	DurationMonths int    `json:"duration_months"`
}

func (s *Server) QuotePricing(c *gin.Context) {
	if s.quoteLimiter.Enabled() {
		allowed, retryAfter, err := s.quoteLimiter.Allow(c.Request.Context(), c.ClientIP())
		if err == nil && !allowed {
			if s.obsMetrics != nil {
				s.obsMetrics.RecordRateLimitDenied(c.Request.Context(), "/api/pricing/quote", "token_bucket")
			}
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			AbortWithError(c, ErrRateLimited)
			return
		}
		if err == nil && s.obsMetrics != nil {
			s.obsMetrics.RecordRateLimitAllowed(c.Request.Context(), "/api/pricing/quote")
		}
	}

	var req pricingQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	factors, err := pricingFactorsFrom(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	breakdown, err := s.pricingSvc.CalculatePricing(factors).Value()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordPricingQuote(c.Request.Context(), string(factors.Tier))
	}

	c.JSON(http.StatusOK, gin.H{"data": breakdown})
}

func (s *Server) CompareTiers(c *gin.Context) {
	factors, err := pricingFactorsFrom(pricingQuoteRequest{
		Tier:           c.Query("tier"),
		CourtLevel:     c.Query("court_level"),
		Exclusive:      strings.EqualFold(c.Query("exclusive"), "true"),
		BundleSize:     intQuery(c, "bundle_size", 1),
		DurationMonths: intQuery(c, "duration_months", 1),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	quotes, err := s.pricingSvc.CompareTiers(factors).Value()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"tiers": quotes}})
}

func (s *Server) EstimateAnnualSavings(c *gin.Context) {
	tier, ok := advertisingdomain.ParseTier(c.Query("tier"))
	if !ok {
		AbortWithError(c, advertisingdomain.ErrInvalidTier)
		return
	}
	courtLevel, ok := advertisingdomain.ParseCourtLevel(c.Query("court_level"))
	if !ok {
		AbortWithError(c, invalidRequestError())
		return
	}
	exclusive := strings.EqualFold(c.Query("exclusive"), "true")

	savings, err := s.pricingSvc.EstimateAnnualSavings(tier, courtLevel, exclusive).Value()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"annual_savings": savings}})
}

type roiThresholdRequest struct {
	pricingQuoteRequest
	AvgClientValue float64 `json:"avg_client_value"`
}

func (s *Server) CalculateROIThreshold(c *gin.Context) {
	var req roiThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	factors, err := pricingFactorsFrom(req.pricingQuoteRequest)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	breakdown, err := s.pricingSvc.CalculatePricing(factors).Value()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	threshold, err := s.pricingSvc.CalculateROIThreshold(breakdown, req.AvgClientValue).Value()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"breakdown":     breakdown,
		"roi_threshold": threshold,
	}})
}

func pricingFactorsFrom(req pricingQuoteRequest) (advertisingdomain.PricingFactors, error) {
	tier, ok := advertisingdomain.ParseTier(req.Tier)
	if !ok {
		return advertisingdomain.PricingFactors{}, advertisingdomain.ErrInvalidTier
	}
	courtLevel, ok := advertisingdomain.ParseCourtLevel(req.CourtLevel)
	if !ok {
		return advertisingdomain.PricingFactors{}, ErrInvalidRequest
	}
	return advertisingdomain.PricingFactors{
		Tier:           tier,
		CourtLevel:     courtLevel,
		Exclusive:      req.Exclusive,
		BundleSize:     req.BundleSize,
		DurationMonths: req.DurationMonths,
	}, nil
}
