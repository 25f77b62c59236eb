package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/pathwise-labs/insights-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService renders a user's analysis history as a spreadsheet for
// teachers and parents.
type ExportService interface {
	ExportHistoryToExcel(ctx context.Context, userID string, subjectID *uint) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportHistoryToExcel(ctx context.Context, userID string, subjectID *uint) ([]byte, error) {
	records, err := s.repo.WeakLesson().ListByUser(ctx, userID, repositories.WeakLessonFilters{SubjectID: subjectID})
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis history: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Analysis History"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Record ID", "Subject ID", "Generated At", "Mode",
		"Topics", "Attempted", "Weak", "Overall %", "Weak Topics",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, record := range records {
		payload, err := record.DecodePayload()
		if err != nil {
			s.logger.Warn("Skipping record with unreadable payload", "record_id", record.ID, "error", err)
			continue
		}
		row := historyRow(record, payload)
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func historyRow(record *models.WeakLessonRecord, payload *models.AnalysisPayload) []interface{} {
	weakTitles := make([]string, 0, len(payload.WeakTopics))
	for _, topic := range payload.WeakTopics {
		weakTitles = append(weakTitles, topic.Title)
	}
	return []interface{}{
		record.ID,
		record.SubjectID,
		payload.GeneratedAt.Format(time.RFC3339),
		string(payload.AnalysisMode),
		payload.TotalTopicCount,
		payload.AttemptedTopicCount,
		payload.WeakTopicCount,
		fmt.Sprintf("%.2f", payload.AverageOverallPercentage),
		strings.Join(weakTitles, ", "),
	}
}
