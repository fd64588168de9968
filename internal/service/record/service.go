package record

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/record"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/user"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/database"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/validator"
	"github.com/tritonmech/fieldforms-backend-go/internal/repository/postgresql"
)

type RecordService interface {
	Create(ctx context.Context, actorID string, actorRole user.Role, req record.SaveRecordRequest) (record.RecordResponse, error)
	Get(ctx context.Context, actorID string, actorRole user.Role, id string) (record.RecordResponse, error)
	Update(ctx context.Context, actorID string, actorRole user.Role, req record.SaveRecordRequest) (record.RecordResponse, error)
	List(ctx context.Context, actorID string, actorRole user.Role, filter record.RecordFilter) (record.ListRecordResponse, error)
	Delete(ctx context.Context, actorID string, actorRole user.Role, id string) error
	Folders(ctx context.Context, actorID string, actorRole user.Role) ([]record.FolderResponse, error)
}

type recordServiceImpl struct {
	db   *database.DB
	repo record.RecordRepository
}

func NewRecordService(db *database.DB, repo record.RecordRepository) RecordService {
	return &recordServiceImpl{db: db, repo: repo}
}

func buildSignatories(inputs []record.SignatoryInput) []record.Signatory {
	signatories := make([]record.Signatory, 0, len(inputs))
	for _, input := range inputs {
		signatories = append(signatories, record.Signatory{
			Name:         input.Name,
			RoleLabel:    input.RoleLabel,
			SignatureURL: input.SignatureURL,
		})
	}
	return signatories
}

func parseReportDate(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	if parsed, valid := validator.IsValidDate(*raw); valid {
		return &parsed
	}
	return nil
}

// Create implements RecordService.
func (s *recordServiceImpl) Create(ctx context.Context, actorID string, actorRole user.Role, req record.SaveRecordRequest) (record.RecordResponse, error) {
	status := record.StatusDraft
	if req.Status != nil {
		status = strings.ToLower(*req.Status)
	}
	if status == record.StatusApproved && actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		return record.RecordResponse{}, record.ErrUnauthorized
	}

	rec := record.Record{
		OwnerID:       actorID,
		FormType:      req.FormType,
		CustomerName:  req.CustomerName,
		EquipmentName: req.EquipmentName,
		SerialNumber:  req.SerialNumber,
		JobOrder:      req.JobOrder,
		ReportDate:    parseReportDate(req.ReportDate),
		Status:        status,
		Sections:      req.Sections,
		Signatories:   buildSignatories(req.Signatories),
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return record.RecordResponse{}, fmt.Errorf("failed to create record: %w", err)
	}

	return toResponse(created), nil
}

// Get implements RecordService.
func (s *recordServiceImpl) Get(ctx context.Context, actorID string, actorRole user.Role, id string) (record.RecordResponse, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return record.RecordResponse{}, err
	}

	if rec.OwnerID != actorID && actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		return record.RecordResponse{}, record.ErrUnauthorized
	}

	return toResponse(rec), nil
}

// Update implements RecordService. The form type of an existing record is
// fixed; sections and signatories are replaced wholesale.
func (s *recordServiceImpl) Update(ctx context.Context, actorID string, actorRole user.Role, req record.SaveRecordRequest) (record.RecordResponse, error) {
	existing, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return record.RecordResponse{}, err
	}

	supervisor := actorRole == user.RoleSupervisor || actorRole == user.RoleAdmin
	if existing.OwnerID != actorID && !supervisor {
		return record.RecordResponse{}, record.ErrUnauthorized
	}
	if existing.Status == record.StatusApproved && !supervisor {
		return record.RecordResponse{}, record.ErrAlreadyApproved
	}

	// Sections were validated against the submitted form type; the stored
	// type wins when they disagree.
	if req.FormType != existing.FormType {
		if err := record.ValidateSections(existing.FormType, req.Sections); err != nil {
			return record.RecordResponse{}, err
		}
	}

	status := existing.Status
	if req.Status != nil {
		status = strings.ToLower(*req.Status)
	}
	if status == record.StatusApproved && existing.Status != record.StatusApproved && !supervisor {
		return record.RecordResponse{}, record.ErrUnauthorized
	}

	updated := existing
	updated.CustomerName = req.CustomerName
	updated.EquipmentName = req.EquipmentName
	updated.SerialNumber = req.SerialNumber
	updated.JobOrder = req.JobOrder
	updated.ReportDate = parseReportDate(req.ReportDate)
	updated.Status = status
	updated.Sections = req.Sections
	updated.Signatories = buildSignatories(req.Signatories)

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return s.repo.Update(txCtx, updated)
	})
	if err != nil {
		return record.RecordResponse{}, fmt.Errorf("failed to update record: %w", err)
	}

	saved, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return record.RecordResponse{}, err
	}

	return toResponse(saved), nil
}

// List implements RecordService. Technicians only see their own records.
func (s *recordServiceImpl) List(ctx context.Context, actorID string, actorRole user.Role, filter record.RecordFilter) (record.ListRecordResponse, error) {
	if actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		filter.OwnerID = &actorID
	}

	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return record.ListRecordResponse{}, err
	}

	resp := record.ListRecordResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Records:    make([]record.RecordResponse, 0, len(records)),
	}
	if filter.Limit > 0 {
		resp.TotalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, toResponse(rec))
	}

	return resp, nil
}

// Delete implements RecordService. Supervisors and admins only.
func (s *recordServiceImpl) Delete(ctx context.Context, actorID string, actorRole user.Role, id string) error {
	if actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		return record.ErrUnauthorized
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return s.repo.Delete(txCtx, id)
	})
}

// Folders implements RecordService: every form type as a folder with its
// record count, scoped to the actor's visibility.
func (s *recordServiceImpl) Folders(ctx context.Context, actorID string, actorRole user.Role) ([]record.FolderResponse, error) {
	var ownerID *string
	if actorRole != user.RoleSupervisor && actorRole != user.RoleAdmin {
		ownerID = &actorID
	}

	counts, err := s.repo.CountByFormType(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Stable folder order regardless of counts
	order := []string{
		record.FormTypeEngineInspection,
		record.FormTypePumpCommissioning,
		record.FormTypeMotorTeardown,
		record.FormTypeServiceReport,
	}
	folders := make([]record.FolderResponse, 0, len(order))
	for _, formType := range order {
		folders = append(folders, record.FolderResponse{
			FormType:    formType,
			Label:       record.FolderLabels[formType],
			RecordCount: counts[formType],
		})
	}

	return folders, nil
}

func toResponse(rec record.Record) record.RecordResponse {
	resp := record.RecordResponse{
		ID:            rec.ID,
		OwnerID:       rec.OwnerID,
		FormType:      rec.FormType,
		CustomerName:  rec.CustomerName,
		EquipmentName: rec.EquipmentName,
		SerialNumber:  rec.SerialNumber,
		JobOrder:      rec.JobOrder,
		Status:        rec.Status,
		Sections:      rec.Sections,
		Signatories:   rec.Signatories,
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     rec.UpdatedAt.Format(time.RFC3339),
	}
	if rec.OwnerName != nil {
		resp.OwnerName = *rec.OwnerName
	}
	if rec.ReportDate != nil {
		formatted := rec.ReportDate.Format("2006-01-02")
		resp.ReportDate = &formatted
	}
	if resp.Sections == nil {
		resp.Sections = []record.Section{}
	}
	if resp.Signatories == nil {
		resp.Signatories = []record.Signatory{}
	}
	return resp
}
