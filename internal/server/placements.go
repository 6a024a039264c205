package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	advertisingdomain "github.com/judgefinder/platform/internal/advertising/domain"
	"github.com/judgefinder/platform/pkg/db/pagination"
)

type createPlacementRequest struct {
	JudgeID        string `json:"judge_id"`
	AttorneyName   string `json:"attorney_name"`
	BarState       string `json:"bar_state"`
	BarNumber      string `json:"bar_number"`
	Tier           string `json:"tier"`
	Exclusive      bool   `json:"exclusive"`
	BundleSize     int    `json:"bundle_size"`
	DurationMonths int    `json:"duration_months"`
	StartsAt       string `json:"starts_at"`
}

func (s *Server) CreatePlacement(c *gin.Context) {
	var req createPlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startsAt, err := parseOptionalTime(req.StartsAt, false)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	createReq := advertisingdomain.CreatePlacementRequest{
		JudgeID:        strings.TrimSpace(req.JudgeID),
		AttorneyName:   strings.TrimSpace(req.AttorneyName),
		BarState:       strings.TrimSpace(req.BarState),
		BarNumber:      strings.TrimSpace(req.BarNumber),
		Tier:           strings.TrimSpace(req.Tier),
		Exclusive:      req.Exclusive,
		BundleSize:     req.BundleSize,
		DurationMonths: req.DurationMonths,
	}
	if startsAt != nil {
		createReq.StartsAt = *startsAt
	}

	resp, err := s.placementSvc.Create(c.Request.Context(), createReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordPlacement(c.Request.Context(), string(resp.Tier))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPlacements(c *gin.Context) {
	var query struct {
		pagination.Pagination
		JudgeID string `form:"judge_id"`
		Status  string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.placementSvc.List(c.Request.Context(), advertisingdomain.ListPlacementRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		JudgeID:   strings.TrimSpace(query.JudgeID),
		Status:    strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPlacement(c *gin.Context) {
	resp, err := s.placementSvc.GetByID(c.Request.Context(), advertisingdomain.GetPlacementRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
