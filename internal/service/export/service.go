package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tritonmech/fieldforms-backend-go/internal/domain/record"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/timesheet"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/user"
	"github.com/tritonmech/fieldforms-backend-go/internal/service/file"
)

// ExportService renders time sheets and form records as PDFs.
type ExportService interface {
	TimeSheetPDF(ctx context.Context, actorID string, actorRole user.Role, id string) ([]byte, string, error)
	RecordPDF(ctx context.Context, actorID string, actorRole user.Role, id string) ([]byte, string, error)
}

type exportServiceImpl struct {
	sheets      timesheet.TimeSheetRepository
	records     record.RecordRepository
	fileService file.FileService
}

func NewExportService(sheets timesheet.TimeSheetRepository, records record.RecordRepository, fileService file.FileService) ExportService {
	return &exportServiceImpl{
		sheets:      sheets,
		records:     records,
		fileService: fileService,
	}
}

// archive keeps a copy of the rendered document in the owner's exports
// folder. Failing to archive never blocks the download.
func (s *exportServiceImpl) archive(ctx context.Context, ownerID string, content []byte, filename string) {
	if _, err := s.fileService.UploadExport(ctx, ownerID, content, filename); err != nil {
		slog.Warn("Failed to archive exported PDF", "filename", filename, "error", err)
	}
}

// TimeSheetPDF implements ExportService. Returns the document bytes and a
// suggested filename.
func (s *exportServiceImpl) TimeSheetPDF(ctx context.Context, actorID string, actorRole user.Role, id string) ([]byte, string, error) {
	sheet, err := s.sheets.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if sheet.OwnerID != actorID && actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		return nil, "", timesheet.ErrUnauthorized
	}

	content, err := BuildTimeSheetPDF(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render time sheet PDF: %w", err)
	}

	filename := fmt.Sprintf("daily-time-sheet-%s.pdf", sheet.ID)
	s.archive(ctx, sheet.OwnerID, content, filename)
	return content, filename, nil
}

// RecordPDF implements ExportService.
func (s *exportServiceImpl) RecordPDF(ctx context.Context, actorID string, actorRole user.Role, id string) ([]byte, string, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if rec.OwnerID != actorID && actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		return nil, "", record.ErrUnauthorized
	}

	content, err := BuildRecordPDF(rec)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render record PDF: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.pdf", rec.FormType, rec.ID)
	s.archive(ctx, rec.OwnerID, content, filename)
	return content, filename, nil
}
