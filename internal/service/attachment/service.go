package attachment

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/attachment"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/timesheet"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/user"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/database"
	"github.com/tritonmech/fieldforms-backend-go/internal/repository/postgresql"
	"github.com/tritonmech/fieldforms-backend-go/internal/service/file"
)

type AttachmentService interface {
	List(ctx context.Context, actorID string, actorRole user.Role, timeSheetID string) (attachment.ListAttachmentsResponse, error)
	Save(ctx context.Context, actorID string, actorRole user.Role, req attachment.SaveAttachmentsRequest) (attachment.ListAttachmentsResponse, error)
}

type attachmentServiceImpl struct {
	db          *database.DB
	repo        attachment.AttachmentRepository
	sheets      timesheet.TimeSheetRepository
	fileService file.FileService
}

func NewAttachmentService(db *database.DB, repo attachment.AttachmentRepository, sheets timesheet.TimeSheetRepository, fileService file.FileService) AttachmentService {
	return &attachmentServiceImpl{
		db:          db,
		repo:        repo,
		sheets:      sheets,
		fileService: fileService,
	}
}

func (s *attachmentServiceImpl) checkAccess(ctx context.Context, actorID string, actorRole user.Role, timeSheetID string) (timesheet.TimeSheet, error) {
	sheet, err := s.sheets.GetByID(ctx, timeSheetID)
	if err != nil {
		return timesheet.TimeSheet{}, err
	}
	if sheet.OwnerID != actorID && actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		return timesheet.TimeSheet{}, timesheet.ErrUnauthorized
	}
	return sheet, nil
}

// List implements AttachmentService.
func (s *attachmentServiceImpl) List(ctx context.Context, actorID string, actorRole user.Role, timeSheetID string) (attachment.ListAttachmentsResponse, error) {
	if _, err := s.checkAccess(ctx, actorID, actorRole, timeSheetID); err != nil {
		return attachment.ListAttachmentsResponse{}, err
	}

	attachments, err := s.repo.ListByTimeSheet(ctx, timeSheetID)
	if err != nil {
		return attachment.ListAttachmentsResponse{}, err
	}

	return s.toListResponse(ctx, timeSheetID, attachments)
}

// Save implements AttachmentService. The whole reconciliation payload is
// applied inside one transaction: deletes first, then caption edits, then
// new uploads. A failure anywhere rolls the persisted set back so the
// client can resubmit the same payload.
func (s *attachmentServiceImpl) Save(ctx context.Context, actorID string, actorRole user.Role, req attachment.SaveAttachmentsRequest) (attachment.ListAttachmentsResponse, error) {
	if _, err := s.checkAccess(ctx, actorID, actorRole, req.TimeSheetID); err != nil {
		return attachment.ListAttachmentsResponse{}, err
	}

	// Replay the client's changes against the stored set through a ledger:
	// deletes of unknown or already-deleted IDs are no-ops, caption edits
	// must hit a kept attachment, and uploads are checked before storage.
	stored, err := s.repo.ListByTimeSheet(ctx, req.TimeSheetID)
	if err != nil {
		return attachment.ListAttachmentsResponse{}, err
	}
	ledger := attachment.NewLedger(stored)
	for _, id := range req.AttachmentsToDelete {
		ledger.MarkDelete(id)
	}
	for _, kept := range req.ExistingAttachments {
		if !ledger.EditCaption(kept.ID, kept.Description) {
			return attachment.ListAttachmentsResponse{}, attachment.ErrUnknownAttachment
		}
	}
	for _, upload := range req.NewFiles {
		err := ledger.Add(attachment.Upload{
			FileName:    upload.Header.Filename,
			Size:        upload.Header.Size,
			Description: upload.Description,
		})
		if err != nil {
			return attachment.ListAttachmentsResponse{}, err
		}
	}
	resolved := ledger.Reconcile(req.TimeSheetID)
	resolved.NewFiles = req.NewFiles

	var uploadedPaths []string
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.repo.Delete(txCtx, resolved.TimeSheetID, resolved.AttachmentsToDelete); err != nil {
			return err
		}

		for _, existing := range resolved.ExistingAttachments {
			if err := s.repo.UpdateDescription(txCtx, resolved.TimeSheetID, existing.ID, existing.Description); err != nil {
				if err == attachment.ErrAttachmentNotFound {
					return attachment.ErrUnknownAttachment
				}
				return err
			}
		}

		for _, upload := range resolved.NewFiles {
			path, _, err := s.fileService.UploadAttachmentPhoto(txCtx, req.TimeSheetID, upload.File, upload.Header.Filename)
			if err != nil {
				return err
			}
			uploadedPaths = append(uploadedPaths, path)

			_, err = s.repo.Create(txCtx, attachment.Attachment{
				TimeSheetID: req.TimeSheetID,
				FileURL:     path,
				FileName:    filepath.Base(upload.Header.Filename),
				FileType:    strings.TrimPrefix(filepath.Ext(path), "."),
				Description: upload.Description,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		// The DB rolled back; remove any files stored during the attempt
		for _, path := range uploadedPaths {
			_ = s.fileService.DeleteFile(ctx, path)
		}
		return attachment.ListAttachmentsResponse{}, err
	}

	attachments, err := s.repo.ListByTimeSheet(ctx, req.TimeSheetID)
	if err != nil {
		return attachment.ListAttachmentsResponse{}, err
	}

	return s.toListResponse(ctx, req.TimeSheetID, attachments)
}

func (s *attachmentServiceImpl) toListResponse(ctx context.Context, timeSheetID string, attachments []attachment.Attachment) (attachment.ListAttachmentsResponse, error) {
	resp := attachment.ListAttachmentsResponse{
		TimeSheetID: timeSheetID,
		Attachments: make([]attachment.AttachmentResponse, 0, len(attachments)),
	}
	for _, att := range attachments {
		url, err := s.fileService.GetFileURL(ctx, att.FileURL, 24*time.Hour)
		if err != nil {
			return attachment.ListAttachmentsResponse{}, fmt.Errorf("failed to build attachment URL: %w", err)
		}
		resp.Attachments = append(resp.Attachments, attachment.AttachmentResponse{
			ID:          att.ID,
			TimeSheetID: att.TimeSheetID,
			FileURL:     url,
			FileName:    att.FileName,
			FileType:    att.FileType,
			Description: att.Description,
			CreatedAt:   att.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   att.UpdatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}
