package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/services"
	"github.com/PathFinder-2025/discovery-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// AssessmentHandler serves question sets, version tokens, and bulk
// submission.
type AssessmentHandler struct {
	BaseHandler
	assessment services.AssessmentService
	mission    services.MissionService
	response   services.ResponseService
	importer   services.ImportService
}

func NewAssessmentHandler(
	assessment services.AssessmentService,
	mission services.MissionService,
	response services.ResponseService,
	importer services.ImportService,
	logger utils.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler: NewBaseHandler(logger),
		assessment:  assessment,
		mission:     mission,
		response:    response,
		importer:    importer,
	}
}

// GetAssessments returns both question sets (general and missions).
// GET /api/assessments
func (h *AssessmentHandler) GetAssessments(c *gin.Context) {
	sets, err := h.assessment.GetTestSets(c.Request.Context())
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, sets)
}

// GetVersion returns the current version tokens per test type.
// GET /api/assessments/version
func (h *AssessmentHandler) GetVersion(c *gin.Context) {
	version, err := h.assessment.GetVersion(c.Request.Context())
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, version)
}

// ListTests returns deployed test metadata without question payloads.
// GET /api/assessments/tests
func (h *AssessmentHandler) ListTests(c *gin.Context) {
	tests, err := h.assessment.ListTests(c.Request.Context())
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, tests)
}

// GetQuestions returns one question set selected by ?type=general|missions.
// The missions set is returned in its paired primary/secondary form.
// GET /api/assessments/questions
func (h *AssessmentHandler) GetQuestions(c *gin.Context) {
	testType := models.TestType(c.DefaultQuery("type", string(models.TestTypeGeneral)))

	switch testType {
	case models.TestTypeGeneral:
		set, err := h.assessment.GetQuestionSet(c.Request.Context(), testType)
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		h.RespondWithSuccess(c, http.StatusOK, set)
	case models.TestTypeMissions:
		set, err := h.mission.GetMissionSet(c.Request.Context())
		if err != nil {
			h.RespondWithServiceError(c, err)
			return
		}
		h.RespondWithSuccess(c, http.StatusOK, set)
	default:
		h.RespondWithError(c, http.StatusBadRequest, "unknown test type", nil, string(testType))
	}
}

// SubmitResponses accepts a bulk submission and returns the scored session.
// POST /api/assessments/responses
func (h *AssessmentHandler) SubmitResponses(c *gin.Context) {
	var req services.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.response.Submit(c.Request.Context(), &req)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ImportWorkbook seeds question sets from an uploaded xlsx workbook.
// POST /api/assessments/import
func (h *AssessmentHandler) ImportWorkbook(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "file is required", err)
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		h.RespondWithError(c, http.StatusBadRequest, "unsupported file format", nil, ext)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "failed to read file", err)
		return
	}
	defer file.Close()

	result, err := h.importer.ImportWorkbook(c.Request.Context(), file)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, result)
}
