package services

import (
	"log/slog"

	"github.com/PathFinder-2025/discovery-service/internal/cache"
	"github.com/PathFinder-2025/discovery-service/internal/events"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"github.com/PathFinder-2025/discovery-service/internal/utils"
)

// ServiceManager exposes every domain service behind a single wiring point.
type ServiceManager interface {
	Assessment() AssessmentService
	Response() ResponseService
	Scoring() ScoringService
	Mission() MissionService
	Export() ExportService
	Import() ImportService
}

type serviceManager struct {
	assessment AssessmentService
	response   ResponseService
	scoring    ScoringService
	mission    MissionService
	export     ExportService
	importer   ImportService
}

func NewServiceManager(
	repo repositories.Repository,
	questionCache cache.QuestionCache,
	publisher events.EventPublisher,
	validator *utils.Validator,
	logger *slog.Logger,
) ServiceManager {
	scoring := NewScoringService(repo, logger)
	return &serviceManager{
		assessment: NewAssessmentService(repo, questionCache, logger),
		response:   NewResponseService(repo, scoring, publisher, validator, logger),
		scoring:    scoring,
		mission:    NewMissionService(repo, logger),
		export:     NewExportService(repo, logger),
		importer:   NewImportService(repo, questionCache, validator, logger),
	}
}

func (m *serviceManager) Assessment() AssessmentService { return m.assessment }
func (m *serviceManager) Response() ResponseService     { return m.response }
func (m *serviceManager) Scoring() ScoringService       { return m.scoring }
func (m *serviceManager) Mission() MissionService       { return m.mission }
func (m *serviceManager) Export() ExportService         { return m.export }
func (m *serviceManager) Import() ImportService         { return m.importer }
