package handlers

import (
	"net/http"

	"github.com/PathFinder-2025/discovery-service/internal/services"
	"github.com/PathFinder-2025/discovery-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	assessmentHandler *AssessmentHandler
	sessionHandler    *SessionHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		assessmentHandler: NewAssessmentHandler(
			serviceManager.Assessment(),
			serviceManager.Mission(),
			serviceManager.Response(),
			serviceManager.Import(),
			logger,
		),
		sessionHandler: NewSessionHandler(
			serviceManager.Response(),
			serviceManager.Export(),
			logger,
		),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	assessments := router.Group("/api/assessments")
	{
		assessments.GET("", hm.assessmentHandler.GetAssessments)
		assessments.GET("/version", hm.assessmentHandler.GetVersion)
		assessments.GET("/tests", hm.assessmentHandler.ListTests)
		assessments.GET("/questions", hm.assessmentHandler.GetQuestions)
		assessments.POST("/responses", hm.assessmentHandler.SubmitResponses)
		assessments.POST("/import", hm.assessmentHandler.ImportWorkbook)

		assessments.GET("/session/:id", hm.sessionHandler.GetSession)
		assessments.GET("/session/:id/export", hm.sessionHandler.ExportSession)
		assessments.GET("/user/:user_id/sessions", hm.sessionHandler.GetUserSessions)
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
