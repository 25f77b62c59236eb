package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/pathwise-labs/insights-service/internal/services"
	"github.com/pathwise-labs/insights-service/internal/utils"
)

type AnalysisHandler struct {
	BaseHandler
	analysisService services.AnalysisService
	historyService  services.LessonHistoryService
	exportService   services.ExportService
}

func NewAnalysisHandler(
	analysisService services.AnalysisService,
	historyService services.LessonHistoryService,
	exportService services.ExportService,
	logger utils.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		BaseHandler:     NewBaseHandler(logger),
		analysisService: analysisService,
		historyService:  historyService,
		exportService:   exportService,
	}
}

// GenerateAnalysis runs a cumulative weak-topic analysis for a subject
// @Summary Generate weak-topic analysis
// @Description Analyzes the full attempt history of the subject and generates remedial content for weak topics
// @Tags analysis
// @Produce json
// @Param subject_id path uint true "Subject ID"
// @Success 200 {object} SuccessResponse{data=services.GenerationOutcome}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /analysis/subjects/{subject_id}/generate [post]
func (h *AnalysisHandler) GenerateAnalysis(c *gin.Context) {
	subjectID := parseUintParam(c, "subject_id")
	if subjectID == 0 {
		return
	}
	userID := h.RequireUserID(c)
	if userID == "" {
		return
	}

	h.LogRequest(c, "Generating weak-topic analysis", "subject_id", subjectID)

	outcome, err := h.analysisService.Generate(c.Request.Context(), userID, subjectID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, outcome.Message, outcome)
}

// RegenerateAnalysis re-runs the analysis over each topic's latest attempt
// @Summary Regenerate weak-topic analysis
// @Description Analyzes only the most recent attempt per topic, so retakes immediately change the picture
// @Tags analysis
// @Produce json
// @Param subject_id path uint true "Subject ID"
// @Success 200 {object} SuccessResponse{data=services.GenerationOutcome}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /analysis/subjects/{subject_id}/regenerate [post]
func (h *AnalysisHandler) RegenerateAnalysis(c *gin.Context) {
	subjectID := parseUintParam(c, "subject_id")
	if subjectID == 0 {
		return
	}
	userID := h.RequireUserID(c)
	if userID == "" {
		return
	}

	h.LogRequest(c, "Regenerating weak-topic analysis", "subject_id", subjectID)

	outcome, err := h.analysisService.Regenerate(c.Request.Context(), userID, subjectID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, outcome.Message, outcome)
}

type historyEntry struct {
	RecordID  uint                    `json:"record_id"`
	SubjectID uint                    `json:"subject_id"`
	CreatedAt time.Time               `json:"created_at"`
	Payload   *models.AnalysisPayload `json:"payload"`
}

// GetHistory lists the user's analysis records
// @Summary List analysis history
// @Description Returns the append-only analysis history, oldest first, optionally filtered by subject
// @Tags analysis
// @Produce json
// @Param subject_id query string false "Subject ID or 'all'"
// @Success 200 {object} SuccessResponse{data=[]historyEntry}
// @Failure 400 {object} ErrorResponse
// @Router /analysis/history [get]
func (h *AnalysisHandler) GetHistory(c *gin.Context) {
	userID := h.RequireUserID(c)
	if userID == "" {
		return
	}
	subjectID, ok := parseSubjectQuery(c)
	if !ok {
		return
	}

	records, err := h.historyService.History(c.Request.Context(), userID, subjectID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	entries := make([]historyEntry, 0, len(records))
	for _, record := range records {
		payload, err := record.DecodePayload()
		if err != nil {
			h.LogWarn(c, "Skipping record with unreadable payload", "record_id", record.ID)
			continue
		}
		entries = append(entries, historyEntry{
			RecordID:  record.ID,
			SubjectID: record.SubjectID,
			CreatedAt: record.CreatedAt,
			Payload:   payload,
		})
	}

	h.RespondWithSuccess(c, http.StatusOK, "Analysis history", entries)
}

// GetLatestAnalysis returns the most recent analysis for a subject
// @Summary Latest analysis
// @Description Returns the newest persisted analysis snapshot for the subject
// @Tags analysis
// @Produce json
// @Param subject_id query uint true "Subject ID"
// @Success 200 {object} SuccessResponse{data=models.AnalysisPayload}
// @Failure 404 {object} ErrorResponse
// @Router /analysis/history/latest [get]
func (h *AnalysisHandler) GetLatestAnalysis(c *gin.Context) {
	userID := h.RequireUserID(c)
	if userID == "" {
		return
	}
	subjectPtr, ok := parseSubjectQuery(c)
	if !ok {
		return
	}
	if subjectPtr == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid subject_id",
			Details: "latest analysis requires a specific subject",
		})
		return
	}

	payload, err := h.analysisService.LatestAnalysis(c.Request.Context(), userID, *subjectPtr)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if payload == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "No analysis has been generated for this subject yet",
		})
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Latest analysis", payload)
}

// ExportHistory downloads the analysis history as an Excel workbook
// @Summary Export analysis history
// @Description Streams the user's analysis history as an xlsx file
// @Tags analysis
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param subject_id query string false "Subject ID or 'all'"
// @Success 200 {file} binary
// @Router /analysis/history/export [get]
func (h *AnalysisHandler) ExportHistory(c *gin.Context) {
	userID := h.RequireUserID(c)
	if userID == "" {
		return
	}
	subjectID, ok := parseSubjectQuery(c)
	if !ok {
		return
	}

	data, err := h.exportService.ExportHistoryToExcel(c.Request.Context(), userID, subjectID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("analysis-history-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
