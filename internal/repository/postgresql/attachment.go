package postgresql

import (
	"context"
	"fmt"

	"github.com/tritonmech/fieldforms-backend-go/internal/domain/attachment"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/database"
)

type attachmentRepository struct {
	db *database.DB
}

func NewAttachmentRepository(db *database.DB) attachment.AttachmentRepository {
	return &attachmentRepository{db: db}
}

// Create implements attachment.AttachmentRepository.
func (r *attachmentRepository) Create(ctx context.Context, att attachment.Attachment) (attachment.Attachment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attachments (time_sheet_id, file_url, file_name, file_type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.TimeSheetID,
		att.FileURL,
		att.FileName,
		att.FileType,
		att.Description,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attachment.Attachment{}, fmt.Errorf("failed to create attachment: %w", err)
	}

	return att, nil
}

// ListByTimeSheet implements attachment.AttachmentRepository.
func (r *attachmentRepository) ListByTimeSheet(ctx context.Context, timeSheetID string) ([]attachment.Attachment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, time_sheet_id, file_url, file_name, file_type, description, created_at, updated_at
		FROM attachments
		WHERE time_sheet_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, timeSheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	var attachments []attachment.Attachment
	for rows.Next() {
		var att attachment.Attachment
		err := rows.Scan(
			&att.ID, &att.TimeSheetID, &att.FileURL, &att.FileName, &att.FileType,
			&att.Description, &att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, att)
	}

	return attachments, nil
}

// UpdateDescription implements attachment.AttachmentRepository.
func (r *attachmentRepository) UpdateDescription(ctx context.Context, timeSheetID, id, description string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attachments
		SET description = $1, updated_at = NOW()
		WHERE id = $2 AND time_sheet_id = $3
	`
	tag, err := q.Exec(ctx, query, description, id, timeSheetID)
	if err != nil {
		return fmt.Errorf("failed to update attachment description: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attachment.ErrAttachmentNotFound
	}
	return nil
}

// Delete implements attachment.AttachmentRepository.
func (r *attachmentRepository) Delete(ctx context.Context, timeSheetID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM attachments
		WHERE time_sheet_id = $1 AND id = ANY($2)
	`
	_, err := q.Exec(ctx, query, timeSheetID, ids)
	if err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	return nil
}
