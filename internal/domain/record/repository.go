package record

import (
	"context"
)

// RecordRepository defines data access for form records. Sections and
// signatories are stored with the record and replaced wholesale on update.
type RecordRepository interface {
	// Create inserts a record with its sections and signatories
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByID retrieves a single record
	GetByID(ctx context.Context, id string) (Record, error)

	// Update replaces the record's fields, sections, and signatories
	Update(ctx context.Context, rec Record) error

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)

	// Delete removes the record
	Delete(ctx context.Context, id string) error

	// CountByFormType returns record counts per form type, for folders
	CountByFormType(ctx context.Context, ownerID *string) (map[string]int64, error)
}
