package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	judgedomain "github.com/judgefinder/platform/internal/judge/domain"
	"github.com/judgefinder/platform/pkg/db/pagination"
)

type createJudgeRequest struct {
	Name              string `json:"name"`
	JurisdictionLevel string `json:"jurisdiction_level"`
	State             string `json:"state"`
	County            string `json:"county"`
	TotalCases        int64  `json:"total_cases"`
}

func (s *Server) CreateJudge(c *gin.Context) {
	var req createJudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.judgeSvc.Create(c.Request.Context(), judgedomain.CreateJudgeRequest{
		Name:              strings.TrimSpace(req.Name),
		JurisdictionLevel: strings.TrimSpace(req.JurisdictionLevel),
		State:             strings.TrimSpace(req.State),
		County:            strings.TrimSpace(req.County),
		TotalCases:        req.TotalCases,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListJudges(c *gin.Context) {
	var query struct {
		pagination.Pagination
		State      string `form:"state"`
		CourtID    string `form:"court_id"`
		ActiveOnly string `form:"active_only"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	activeOnly, err := parseOptionalBool(query.ActiveOnly)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.judgeSvc.List(c.Request.Context(), judgedomain.ListJudgeRequest{
		PageToken:  query.PageToken,
		PageSize:   int32(query.PageSize),
		State:      strings.TrimSpace(query.State),
		CourtID:    strings.TrimSpace(query.CourtID),
		ActiveOnly: activeOnly != nil && *activeOnly,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// GetJudge resolves either a snowflake ID or a profile slug.
func (s *Server) GetJudge(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	req := judgedomain.GetJudgeRequest{ID: id}
	if !isSnowflakeID(id) {
		req = judgedomain.GetJudgeRequest{Slug: id}
	}

	resp, err := s.judgeSvc.GetByID(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type assignJudgeRequest struct {
	CourtID           string `json:"court_id"`
	CourtName         string `json:"court_name"`
	AssignmentType    string `json:"assignment_type"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	JurisdictionLevel string `json:"jurisdiction_level"`
	State             string `json:"state"`
	County            string `json:"county"`
}

func (s *Server) AssignJudgeToCourt(c *gin.Context) {
	var req assignJudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalTime(req.StartDate, false)
	if err != nil || startDate == nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	endDate, err := parseOptionalTime(req.EndDate, true)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.judgeSvc.AssignToCourt(c.Request.Context(), judgedomain.AssignToCourtRequest{
		JudgeID:           strings.TrimSpace(c.Param("id")),
		CourtID:           strings.TrimSpace(req.CourtID),
		CourtName:         strings.TrimSpace(req.CourtName),
		AssignmentType:    strings.TrimSpace(req.AssignmentType),
		StartDate:         *startDate,
		EndDate:           endDate,
		JurisdictionLevel: strings.TrimSpace(req.JurisdictionLevel),
		State:             strings.TrimSpace(req.State),
		County:            strings.TrimSpace(req.County),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordCourtAssignment(c.Request.Context(), req.AssignmentType)
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CheckAssignmentConflicts(c *gin.Context) {
	var req assignJudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalTime(req.StartDate, false)
	if err != nil || startDate == nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	endDate, err := parseOptionalTime(req.EndDate, true)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	conflicts, err := s.judgeSvc.AssignmentConflicts(c.Request.Context(), judgedomain.ConflictCheckRequest{
		JudgeID:        strings.TrimSpace(c.Param("id")),
		CourtID:        strings.TrimSpace(req.CourtID),
		CourtName:      strings.TrimSpace(req.CourtName),
		AssignmentType: strings.TrimSpace(req.AssignmentType),
		StartDate:      *startDate,
		EndDate:        endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"conflicts": conflicts}})
}

type recordBiasMetricsRequest struct {
	ConsistencyScore     float64 `json:"consistency_score"`
	SpeedScore           float64 `json:"speed_score"`
	SettlementPreference float64 `json:"settlement_preference"`
	RiskTolerance        float64 `json:"risk_tolerance"`
	PredictabilityScore  float64 `json:"predictability_score"`
}

func (s *Server) RecordBiasMetrics(c *gin.Context) {
	var req recordBiasMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.judgeSvc.RecordBiasMetrics(c.Request.Context(), judgedomain.RecordBiasMetricsRequest{
		JudgeID:              strings.TrimSpace(c.Param("id")),
		ConsistencyScore:     req.ConsistencyScore,
		SpeedScore:           req.SpeedScore,
		SettlementPreference: req.SettlementPreference,
		RiskTolerance:        req.RiskTolerance,
		PredictabilityScore:  req.PredictabilityScore,
	})
	if s.obsMetrics != nil {
		outcome := "recorded"
		if err != nil {
			outcome = "rejected"
		}
		s.obsMetrics.RecordBiasCalculation(c.Request.Context(), outcome)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CheckEligibility(c *gin.Context) {
	kind := strings.TrimSpace(c.Query("kind"))
	if kind == "" {
		kind = string(judgedomain.EligibilityBias)
	}

	resp, err := s.judgeSvc.CheckEligibility(c.Request.Context(), judgedomain.EligibilityRequest{
		JudgeID: strings.TrimSpace(c.Param("id")),
		Kind:    judgedomain.EligibilityKind(kind),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type retireJudgeRequest struct {
	EffectiveDate string `json:"effective_date"`
}

func (s *Server) RetireJudge(c *gin.Context) {
	var req retireJudgeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	effective, err := parseOptionalTime(req.EffectiveDate, false)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	retireReq := judgedomain.RetireJudgeRequest{JudgeID: strings.TrimSpace(c.Param("id"))}
	if effective != nil {
		retireReq.EffectiveDate = *effective
	}

	resp, err := s.judgeSvc.Retire(c.Request.Context(), retireReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
