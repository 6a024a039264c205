package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	advertisingdomain "github.com/judgefinder/platform/internal/advertising/domain"
	judgedomain "github.com/judgefinder/platform/internal/judge/domain"
	"github.com/judgefinder/platform/pkg/result"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type     string         `json:"type"`
	Code     string         `json:"code,omitempty"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrRateLimited    = errors.New("rate_limited")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return ErrInvalidRequest
}

// mapError translates domain failures to HTTP statuses: validation errors are
// caller-fixable (400), business rule violations need a different scenario
// (409), invariant violations mean corrupted state (500).
func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if domainErr := result.AsDomainError(err); domainErr != nil {
		payload := errorPayload{
			Type:     string(domainErr.Kind),
			Code:     domainErr.Code,
			Message:  domainErr.Message,
			Metadata: domainErr.Metadata,
		}
		switch domainErr.Kind {
		case result.KindValidation:
			return http.StatusBadRequest, payload
		case result.KindBusinessRule:
			return http.StatusConflict, payload
		default:
			return http.StatusInternalServerError, payload
		}
	}

	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Code:    err.Error(),
			Message: "invalid request",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests",
		}
	case errors.Is(err, advertisingdomain.ErrJudgeIneligible):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Code:    "judge_ineligible",
			Message: "judge is not eligible for this placement",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, judgedomain.ErrInvalidID),
		errors.Is(err, judgedomain.ErrInvalidCourt),
		errors.Is(err, judgedomain.ErrInvalidKind),
		errors.Is(err, judgedomain.ErrInvalidRequest),
		errors.Is(err, advertisingdomain.ErrInvalidID),
		errors.Is(err, advertisingdomain.ErrInvalidTier),
		errors.Is(err, advertisingdomain.ErrInvalidRequest):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, judgedomain.ErrNotFound),
		errors.Is(err, advertisingdomain.ErrNotFound),
		errors.Is(err, advertisingdomain.ErrJudgeNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// classifyErrorForLog labels the request log line with an error type/code.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	if domainErr := result.AsDomainError(err); domainErr != nil {
		switch domainErr.Kind {
		case result.KindValidation:
			return "validation_error", domainErr.Code
		case result.KindBusinessRule:
			return "business_rule_violation", domainErr.Code
		default:
			return "invariant_violation", domainErr.Code
		}
	}
	switch {
	case isValidationError(err):
		return "validation_error", err.Error()
	case isNotFoundError(err):
		return "not_found", err.Error()
	case errors.Is(err, ErrRateLimited):
		return "rate_limited", "rate_limited"
	default:
		return "internal_error", ""
	}
}
