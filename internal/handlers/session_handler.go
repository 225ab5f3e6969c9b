package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"github.com/PathFinder-2025/discovery-service/internal/services"
	"github.com/PathFinder-2025/discovery-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// SessionHandler serves stored sessions, their exports, and per-user
// session history.
type SessionHandler struct {
	BaseHandler
	response services.ResponseService
	export   services.ExportService
}

func NewSessionHandler(
	response services.ResponseService,
	export services.ExportService,
	logger utils.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		response:    response,
		export:      export,
	}
}

// GetSession returns a session with its scores and pathway report.
// GET /api/assessments/session/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")

	details, err := h.response.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, details)
}

// ExportSession streams a session's responses and scores as xlsx.
// GET /api/assessments/session/:id/export
func (h *SessionHandler) ExportSession(c *gin.Context) {
	sessionID := c.Param("id")

	data, err := h.export.ExportSessionToExcel(c.Request.Context(), sessionID)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("session-%s.xlsx", sessionID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GetUserSessions lists a user's submitted sessions, newest first.
// GET /api/assessments/user/:user_id/sessions
func (h *SessionHandler) GetUserSessions(c *gin.Context) {
	userID := c.Param("user_id")

	filters := repositories.SessionFilters{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}

	sessions, total, err := h.response.GetUserSessions(c.Request.Context(), userID, filters)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, gin.H{
		"sessions": sessions,
		"total":    total,
	})
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
