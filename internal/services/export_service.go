package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/edupanel/student-portal/internal/repositories"
)

const exportSheetName = "Students"

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportStudents writes the current student list (same filtering and order
// as the list view) into an xlsx workbook.
func (s *exportService) ExportStudents(ctx context.Context, search string) (*bytes.Buffer, error) {
	students, err := s.repo.Student().List(ctx, repositories.StudentFilters{Search: search})
	if err != nil {
		return nil, fmt.Errorf("export students: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("rename export sheet: %w", err)
	}

	headers := []string{"ID", "Name", "Email", "Phone"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, student := range students {
		values := []any{student.ID, student.Name, student.Email, student.Phone}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("Exported students", "count", len(students), "search", search)
	return buf, nil
}
