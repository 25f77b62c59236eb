package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pathwise-labs/insights-service/internal/services"
)

func parseUintParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
		})
		return 0
	}
	return uint(id)
}

// parseSubjectQuery interprets the subject_id query parameter. Absent
// or "all" means no subject filter; anything else must be a positive
// integer. The bool return is false when a response was already sent.
func parseSubjectQuery(c *gin.Context) (*uint, bool) {
	raw := c.Query("subject_id")
	if raw == "" || raw == "all" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid subject_id",
			Details: `must be a positive integer or "all"`,
		})
		return nil, false
	}
	subjectID := uint(id)
	return &subjectID, true
}

func parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// handleServiceError maps service errors onto HTTP status codes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: err.Error(),
		})
	case services.IsGenerationFailure(err):
		h.LogError(c, err, "Content generation failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Message: "Remedial content generation failed, please retry",
			Code:    "generation_failed",
		})
	case services.IsPersistenceFailure(err):
		h.LogError(c, err, "Persistence failed after generation")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to save the analysis result",
			Code:    "persistence_failed",
		})
	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
