package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/pathwise-labs/insights-service/internal/repositories"
	"github.com/pathwise-labs/insights-service/internal/services"
	"github.com/pathwise-labs/insights-service/internal/utils"
)

type GameHandler struct {
	BaseHandler
	gameService services.GameTraitService
}

func NewGameHandler(gameService services.GameTraitService, logger utils.Logger) *GameHandler {
	return &GameHandler{
		BaseHandler: NewBaseHandler(logger),
		gameService: gameService,
	}
}

// AnalyzeSession estimates cognitive traits from game telemetry
// @Summary Analyze game session
// @Description Computes cognitive load, focus and attention scores from a finished mini-game session and stores the result
// @Tags games
// @Accept json
// @Produce json
// @Param session body models.GameSessionTelemetry true "Session telemetry"
// @Success 201 {object} SuccessResponse{data=models.GameSession}
// @Failure 400 {object} ErrorResponse
// @Router /games/sessions/analyze [post]
func (h *GameHandler) AnalyzeSession(c *gin.Context) {
	var telemetry models.GameSessionTelemetry
	if err := c.ShouldBindJSON(&telemetry); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID := h.RequireUserID(c)
	if userID == "" {
		return
	}

	h.LogRequest(c, "Analyzing game session", "game_name", telemetry.GameName)

	session, err := h.gameService.AnalyzeSession(c.Request.Context(), userID, &telemetry)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Game session analyzed", session)
}

// ListSessions lists the user's analyzed game sessions
// @Summary List game sessions
// @Description Returns analyzed sessions with their trait scores, newest last
// @Tags games
// @Produce json
// @Param game_name query string false "Filter by game name"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} SuccessResponse{data=[]models.GameSession}
// @Router /games/sessions [get]
func (h *GameHandler) ListSessions(c *gin.Context) {
	userID := h.RequireUserID(c)
	if userID == "" {
		return
	}

	filters := repositories.GameSessionFilters{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if name := c.Query("game_name"); name != "" {
		filters.GameName = &name
	}

	sessions, err := h.gameService.ListSessions(c.Request.Context(), userID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Game sessions", sessions)
}
