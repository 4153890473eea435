package services

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportStudents(t *testing.T) {
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	studentSvc := newTestStudentService(repo, nil)
	ctx := context.Background()

	if _, err := studentSvc.Add(ctx, "admin", StudentForm{Name: "Ana Souza", Email: "ana@example.com", Phone: "111"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := studentSvc.Add(ctx, "admin", StudentForm{Name: "Bruno Lima", Email: "bruno@example.com", Phone: "222"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	service := NewExportService(repo, logger)
	buf, err := service.ExportStudents(ctx, "")
	if err != nil {
		t.Fatalf("ExportStudents: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 records", len(rows))
	}
	if rows[0][1] != "Name" {
		t.Fatalf("header row = %v", rows[0])
	}
	// Export mirrors the list view ordering: newest id first.
	if rows[1][1] != "Bruno Lima" || rows[2][1] != "Ana Souza" {
		t.Fatalf("data rows out of order: %v", rows[1:])
	}
}

func TestExportService_EmptySet(t *testing.T) {
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewExportService(repo, logger)

	buf, err := service.ExportStudents(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ExportStudents: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want header only", len(rows))
	}
}
