package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PathFinder-2025/discovery-service/internal/cache"
	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"github.com/PathFinder-2025/discovery-service/internal/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

// Workbook sheet names the importer understands. Tests and Questions are
// required; Missions and Answer Keys are optional.
const (
	sheetTests      = "Tests"
	sheetQuestions  = "Questions"
	sheetMissions   = "Missions"
	sheetAnswerKeys = "Answer Keys"
)

// ImportValidationError pinpoints one rejected workbook cell.
type ImportValidationError struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ImportResult summarizes a workbook import. Valid rows are imported even
// when other rows fail; Errors lists every rejected row.
type ImportResult struct {
	Tests      int                     `json:"tests"`
	Questions  int                     `json:"questions"`
	Missions   int                     `json:"missions"`
	AnswerKeys int                     `json:"answerKeys"`
	ErrorCount int                     `json:"errorCount"`
	Errors     []ImportValidationError `json:"errors,omitempty"`
}

type ImportService interface {
	// ImportWorkbook seeds tests, questions, missions, and answer keys from
	// an xlsx workbook. All valid rows land in one transaction; caches for
	// the touched test types are invalidated afterwards.
	ImportWorkbook(ctx context.Context, reader io.Reader) (*ImportResult, error)
}

type importService struct {
	repo      repositories.Repository
	cache     cache.QuestionCache
	validator *utils.Validator
	logger    *slog.Logger
}

func NewImportService(repo repositories.Repository, questionCache cache.QuestionCache, validator *utils.Validator, logger *slog.Logger) ImportService {
	return &importService{
		repo:      repo,
		cache:     questionCache,
		validator: validator,
		logger:    logger,
	}
}

func (s *importService) ImportWorkbook(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	clusters, err := s.knownClusters(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}

	tests, err := s.parseTests(f, result)
	if err != nil {
		return nil, err
	}
	workbookTests := make(map[string]bool, len(tests))
	for _, t := range tests {
		workbookTests[t.TestID] = true
	}
	questions, err := s.parseQuestions(ctx, f, workbookTests, clusters, result)
	if err != nil {
		return nil, err
	}
	missions := s.parseMissions(f, result)
	keys := s.parseAnswerKeys(f, result)

	if len(tests) == 0 && len(questions) == 0 {
		return nil, ValidationErrors{{Field: "file", Message: "workbook has no importable rows"}}
	}

	err = s.repo.WithTransaction(ctx, func(repo repositories.Repository) error {
		for _, t := range tests {
			if err := repo.Test().Create(ctx, t); err != nil {
				return fmt.Errorf("failed to create test %s: %w", t.TestID, err)
			}
		}
		if len(questions) > 0 {
			if err := repo.Test().CreateQuestions(ctx, questions); err != nil {
				return fmt.Errorf("failed to create questions: %w", err)
			}
		}
		for _, m := range missions {
			if err := repo.Mission().Create(ctx, m); err != nil {
				return fmt.Errorf("failed to create mission %s: %w", m.MissionID, err)
			}
		}
		for _, k := range keys {
			if err := repo.AnswerKey().Upsert(ctx, k); err != nil {
				return fmt.Errorf("failed to upsert answer key %s: %w", k.QuestionID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Imported sets supersede whatever is cached for their type.
	for _, t := range tests {
		if err := s.cache.Invalidate(ctx, t.Type); err != nil {
			s.logger.Warn("Failed to invalidate question cache after import",
				"test_type", t.Type, "error", err)
		}
	}

	result.Tests = len(tests)
	result.Questions = len(questions)
	result.Missions = len(missions)
	result.AnswerKeys = len(keys)
	result.ErrorCount = len(result.Errors)

	s.logger.Info("Workbook import completed",
		"tests", result.Tests,
		"questions", result.Questions,
		"missions", result.Missions,
		"answer_keys", result.AnswerKeys,
		"error_count", result.ErrorCount)

	return result, nil
}

// knownClusters returns the set of cluster ids questions may reference.
func (s *importService) knownClusters(ctx context.Context) (map[string]bool, error) {
	rows, err := s.repo.Pathway().GetClusters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load clusters: %w", err)
	}
	known := make(map[string]bool, len(rows))
	for _, c := range rows {
		known[c.ClusterID] = true
	}
	return known, nil
}

// sheetRecords reads one sheet into data records plus a lowercased header
// index. A missing sheet returns nil records.
func sheetRecords(f *excelize.File, sheet string) ([][]string, map[string]int, error) {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil, nil
	}
	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = i
	}
	return rows[1:], headerMap, nil
}

func getColumn(record []string, headerMap map[string]int, name string) string {
	if index, exists := headerMap[name]; exists && index < len(record) {
		return strings.TrimSpace(record[index])
	}
	return ""
}

func (s *importService) parseTests(f *excelize.File, result *ImportResult) ([]*models.Test, error) {
	records, headerMap, err := sheetRecords(f, sheetTests)
	if err != nil {
		return nil, err
	}

	var tests []*models.Test
	for i, record := range records {
		rowNum := i + 2
		version := 1
		if raw := getColumn(record, headerMap, "version"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 1 {
				result.Errors = append(result.Errors, ImportValidationError{
					Sheet: sheetTests, Row: rowNum, Column: "version",
					Message: "must be a positive integer", Value: raw,
				})
				continue
			}
			version = v
		}

		test := &models.Test{
			TestID:  getColumn(record, headerMap, "test_id"),
			Name:    getColumn(record, headerMap, "name"),
			Type:    models.TestType(getColumn(record, headerMap, "type")),
			Version: version,
			Active:  true,
		}
		if desc := getColumn(record, headerMap, "description"); desc != "" {
			test.Description = &desc
		}
		if test.TestID == "" {
			result.Errors = append(result.Errors, ImportValidationError{
				Sheet: sheetTests, Row: rowNum, Column: "test_id", Message: "required field",
			})
			continue
		}
		if err := s.validator.Validate(test); err != nil {
			result.Errors = append(result.Errors, ImportValidationError{
				Sheet: sheetTests, Row: rowNum, Column: "type",
				Message: err.Error(), Value: string(test.Type),
			})
			continue
		}
		tests = append(tests, test)
	}
	return tests, nil
}

func (s *importService) parseQuestions(ctx context.Context, f *excelize.File, workbookTests, clusters map[string]bool, result *ImportResult) ([]*models.Question, error) {
	records, headerMap, err := sheetRecords(f, sheetQuestions)
	if err != nil {
		return nil, err
	}

	// Questions may target a test defined in this workbook or one already
	// deployed; anything else is rejected.
	deployed := make(map[string]bool)
	testExists := func(testID string) (bool, error) {
		if workbookTests[testID] {
			return true, nil
		}
		if exists, checked := deployed[testID]; checked {
			return exists, nil
		}
		_, err := s.repo.Test().GetByTestID(ctx, testID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return false, fmt.Errorf("failed to check test %s: %w", testID, err)
		}
		deployed[testID] = err == nil
		return err == nil, nil
	}

	var questions []*models.Question
	for i, record := range records {
		rowNum := i + 2

		question := &models.Question{
			QuestionID: getColumn(record, headerMap, "question_id"),
			TestID:     getColumn(record, headerMap, "test_id"),
			Type:       getColumn(record, headerMap, "type"),
			Content:    datatypes.JSON(getColumn(record, headerMap, "content")),
		}
		if question.QuestionID == "" || question.TestID == "" {
			result.Errors = append(result.Errors, ImportValidationError{
				Sheet: sheetQuestions, Row: rowNum, Column: "question_id",
				Message: "question_id and test_id are required",
			})
			continue
		}
		exists, err := testExists(question.TestID)
		if err != nil {
			return nil, err
		}
		if !exists {
			result.Errors = append(result.Errors, ImportValidationError{
				Sheet: sheetQuestions, Row: rowNum, Column: "test_id",
				Message: "unknown test", Value: question.TestID,
			})
			continue
		}
		if raw := getColumn(record, headerMap, "display_order"); raw != "" {
			order, err := strconv.Atoi(raw)
			if err != nil {
				result.Errors = append(result.Errors, ImportValidationError{
					Sheet: sheetQuestions, Row: rowNum, Column: "display_order",
					Message: "must be an integer", Value: raw,
				})
				continue
			}
			question.DisplayOrder = order
		}
		if clusterID := getColumn(record, headerMap, "cluster_id"); clusterID != "" {
			if !clusters[clusterID] {
				result.Errors = append(result.Errors, ImportValidationError{
					Sheet: sheetQuestions, Row: rowNum, Column: "cluster_id",
					Message: "unknown cluster", Value: clusterID,
				})
				continue
			}
			question.ClusterID = &clusterID
		}

		// The payload must materialize into a valid working question, or
		// grading and delivery would both choke on it later.
		if _, err := question.ToQuizQuestion(); err != nil {
			result.Errors = append(result.Errors, ImportValidationError{
				Sheet: sheetQuestions, Row: rowNum, Column: "content",
				Message: err.Error(),
			})
			continue
		}
		questions = append(questions, question)
	}
	return questions, nil
}

func (s *importService) parseMissions(f *excelize.File, result *ImportResult) []*models.Mission {
	records, headerMap, err := sheetRecords(f, sheetMissions)
	if err != nil {
		result.Errors = append(result.Errors, ImportValidationError{
			Sheet: sheetMissions, Row: 1, Message: err.Error(),
		})
		return nil
	}

	var missions []*models.Mission
	for i, record := range records {
		rowNum := i + 2
		mission := &models.Mission{
			MissionID:         getColumn(record, headerMap, "mission_id"),
			TestID:            getColumn(record, headerMap, "test_id"),
			Title:             getColumn(record, headerMap, "title"),
			PrimaryQuestionID: getColumn(record, headerMap, "primary_question_id"),
		}
		if raw := getColumn(record, headerMap, "display_order"); raw != "" {
			if order, err := strconv.Atoi(raw); err == nil {
				mission.DisplayOrder = order
			}
		}
		if secondary := getColumn(record, headerMap, "secondary_question_id"); secondary != "" {
			mission.SecondaryQuestionID = &secondary
		}
		if mission.MissionID == "" || mission.TestID == "" || mission.PrimaryQuestionID == "" {
			result.Errors = append(result.Errors, ImportValidationError{
				Sheet: sheetMissions, Row: rowNum, Column: "mission_id",
				Message: "mission_id, test_id, and primary_question_id are required",
			})
			continue
		}
		missions = append(missions, mission)
	}
	return missions
}

func (s *importService) parseAnswerKeys(f *excelize.File, result *ImportResult) []*models.CorrectAnswer {
	records, headerMap, err := sheetRecords(f, sheetAnswerKeys)
	if err != nil {
		result.Errors = append(result.Errors, ImportValidationError{
			Sheet: sheetAnswerKeys, Row: 1, Message: err.Error(),
		})
		return nil
	}

	var keys []*models.CorrectAnswer
	for i, record := range records {
		rowNum := i + 2
		key := &models.CorrectAnswer{
			QuestionID: getColumn(record, headerMap, "question_id"),
			Answer:     getColumn(record, headerMap, "answer"),
		}
		if key.QuestionID == "" || key.Answer == "" {
			result.Errors = append(result.Errors, ImportValidationError{
				Sheet: sheetAnswerKeys, Row: rowNum, Column: "question_id",
				Message: "question_id and answer are required",
			})
			continue
		}
		keys = append(keys, key)
	}
	return keys
}
