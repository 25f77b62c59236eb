package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pathwise-labs/insights-service/internal/services"
	"github.com/pathwise-labs/insights-service/internal/utils"
)

type HandlerManager struct {
	analysisHandler *AnalysisHandler
	gameHandler     *GameHandler
}

func NewHandlerManager(
	analysisService services.AnalysisService,
	historyService services.LessonHistoryService,
	exportService services.ExportService,
	gameService services.GameTraitService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		analysisHandler: NewAnalysisHandler(analysisService, historyService, exportService, logger),
		gameHandler:     NewGameHandler(gameService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "insights-service",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(UserIdentityMiddleware())
	{
		analysis := v1.Group("/analysis")
		{
			analysis.POST("/subjects/:subject_id/generate", hm.analysisHandler.GenerateAnalysis)
			analysis.POST("/subjects/:subject_id/regenerate", hm.analysisHandler.RegenerateAnalysis)
			analysis.GET("/history", hm.analysisHandler.GetHistory)
			analysis.GET("/history/latest", hm.analysisHandler.GetLatestAnalysis)
			analysis.GET("/history/export", hm.analysisHandler.ExportHistory)
		}

		games := v1.Group("/games")
		{
			games.POST("/sessions/analyze", hm.gameHandler.AnalyzeSession)
			games.GET("/sessions", hm.gameHandler.ListSessions)
		}
	}
}

// UserIdentityMiddleware resolves the caller identity set by the API
// gateway. Missing identity is handled per-handler by RequireUserID.
func UserIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
