package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/record"
	"github.com/tritonmech/fieldforms-backend-go/internal/pkg/database"
)

type recordRepository struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) record.RecordRepository {
	return &recordRepository{db: db}
}

// Sections and signatories are stored as jsonb; their shape is enforced
// by the form registry before anything reaches the repository.
func marshalRecordJSON(rec record.Record) ([]byte, []byte, error) {
	sections, err := json.Marshal(rec.Sections)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal sections: %w", err)
	}
	signatories, err := json.Marshal(rec.Signatories)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal signatories: %w", err)
	}
	return sections, signatories, nil
}

func unmarshalRecordJSON(rec *record.Record, sections, signatories []byte) error {
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &rec.Sections); err != nil {
			return fmt.Errorf("failed to unmarshal sections: %w", err)
		}
	}
	if len(signatories) > 0 {
		if err := json.Unmarshal(signatories, &rec.Signatories); err != nil {
			return fmt.Errorf("failed to unmarshal signatories: %w", err)
		}
	}
	return nil
}

// Create implements record.RecordRepository.
func (r *recordRepository) Create(ctx context.Context, rec record.Record) (record.Record, error) {
	q := GetQuerier(ctx, r.db)

	sections, signatories, err := marshalRecordJSON(rec)
	if err != nil {
		return record.Record{}, err
	}

	query := `
		INSERT INTO records (
			owner_id, form_type, customer_name, equipment_name, serial_number,
			job_order, report_date, status, sections, signatories
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		rec.OwnerID,
		rec.FormType,
		rec.CustomerName,
		rec.EquipmentName,
		rec.SerialNumber,
		rec.JobOrder,
		rec.ReportDate,
		rec.Status,
		sections,
		signatories,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return record.Record{}, fmt.Errorf("failed to create record: %w", err)
	}

	return rec, nil
}

// GetByID implements record.RecordRepository.
func (r *recordRepository) GetByID(ctx context.Context, id string) (record.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.owner_id, r.form_type, r.customer_name, r.equipment_name, r.serial_number,
			   r.job_order, r.report_date, r.status, r.sections, r.signatories,
			   r.created_at, r.updated_at,
			   u.full_name AS owner_name
		FROM records r
		LEFT JOIN users u ON u.id = r.owner_id
		WHERE r.id = $1
	`

	var rec record.Record
	var sections, signatories []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.OwnerID, &rec.FormType, &rec.CustomerName, &rec.EquipmentName, &rec.SerialNumber,
		&rec.JobOrder, &rec.ReportDate, &rec.Status, &sections, &signatories,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.OwnerName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return record.Record{}, record.ErrRecordNotFound
		}
		return record.Record{}, fmt.Errorf("failed to get record: %w", err)
	}

	if err := unmarshalRecordJSON(&rec, sections, signatories); err != nil {
		return record.Record{}, err
	}

	return rec, nil
}

// Update implements record.RecordRepository.
func (r *recordRepository) Update(ctx context.Context, rec record.Record) error {
	q := GetQuerier(ctx, r.db)

	sections, signatories, err := marshalRecordJSON(rec)
	if err != nil {
		return err
	}

	query := `
		UPDATE records
		SET customer_name = $1, equipment_name = $2, serial_number = $3, job_order = $4,
			report_date = $5, status = $6, sections = $7, signatories = $8, updated_at = NOW()
		WHERE id = $9
	`
	tag, err := q.Exec(ctx, query,
		rec.CustomerName,
		rec.EquipmentName,
		rec.SerialNumber,
		rec.JobOrder,
		rec.ReportDate,
		rec.Status,
		sections,
		signatories,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrRecordNotFound
	}
	return nil
}

// List implements record.RecordRepository.
func (r *recordRepository) List(ctx context.Context, filter record.RecordFilter) ([]record.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.OwnerID != nil && *filter.OwnerID != "" {
		baseWhere += fmt.Sprintf(" AND r.owner_id = $%d", argIdx)
		args = append(args, *filter.OwnerID)
		argIdx++
	}
	if filter.FormType != nil && *filter.FormType != "" {
		baseWhere += fmt.Sprintf(" AND r.form_type = $%d", argIdx)
		args = append(args, *filter.FormType)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND r.report_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND r.report_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM records r WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	// Build ORDER BY
	orderByField := "r.created_at"
	switch filter.SortBy {
	case "report_date":
		orderByField = "r.report_date"
	case "customer_name":
		orderByField = "r.customer_name"
	case "status":
		orderByField = "r.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT r.id, r.owner_id, r.form_type, r.customer_name, r.equipment_name, r.serial_number,
			   r.job_order, r.report_date, r.status, r.sections, r.signatories,
			   r.created_at, r.updated_at,
			   u.full_name AS owner_name
		FROM records r
		LEFT JOIN users u ON u.id = r.owner_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []record.Record
	for rows.Next() {
		var rec record.Record
		var sections, signatories []byte
		err := rows.Scan(
			&rec.ID, &rec.OwnerID, &rec.FormType, &rec.CustomerName, &rec.EquipmentName, &rec.SerialNumber,
			&rec.JobOrder, &rec.ReportDate, &rec.Status, &sections, &signatories,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.OwnerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan record: %w", err)
		}
		if err := unmarshalRecordJSON(&rec, sections, signatories); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// Delete implements record.RecordRepository.
func (r *recordRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrRecordNotFound
	}
	return nil
}

// CountByFormType implements record.RecordRepository.
func (r *recordRepository) CountByFormType(ctx context.Context, ownerID *string) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT form_type, COUNT(*) FROM records`
	args := []interface{}{}
	if ownerID != nil && *ownerID != "" {
		query += ` WHERE owner_id = $1`
		args = append(args, *ownerID)
	}
	query += ` GROUP BY form_type`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count records by form type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var formType string
		var count int64
		if err := rows.Scan(&formType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan record count: %w", err)
		}
		counts[formType] = count
	}

	return counts, nil
}
