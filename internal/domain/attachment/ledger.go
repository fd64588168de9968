package attachment

import (
	"path/filepath"
	"strings"
)

// MaxUploadSize is the hard ceiling for a single attachment. Oversized
// images below this limit are downscaled before storage, never rejected;
// anything above it is refused outright.
const MaxUploadSize = 10 << 20 // 10MB

// Upload is a file queued for storage together with its caption.
type Upload struct {
	FileName    string
	Size        int64
	Description string
}

// Ledger tracks pending attachment changes for one record being edited:
// server-known attachments with editable captions, IDs marked for
// deletion, and new uploads not yet stored. On save the three collections
// reconcile into the record's next persisted set in a single step.
type Ledger struct {
	existing []Attachment
	deleted  map[string]struct{}
	// deletedOrder preserves mark order so payloads are stable
	deletedOrder []string
	added        []Upload
}

// NewLedger seeds a ledger with the attachments the server already knows.
func NewLedger(existing []Attachment) *Ledger {
	l := &Ledger{
		existing: make([]Attachment, len(existing)),
		deleted:  make(map[string]struct{}),
	}
	copy(l.existing, existing)
	return l
}

// Existing returns the attachments still visible (not marked for deletion).
func (l *Ledger) Existing() []Attachment {
	return l.existing
}

// Added returns the uploads queued since the ledger was created.
func (l *Ledger) Added() []Upload {
	return l.added
}

// Deleted returns the IDs marked for deletion, in mark order.
func (l *Ledger) Deleted() []string {
	ids := make([]string, 0, len(l.deletedOrder))
	ids = append(ids, l.deletedOrder...)
	return ids
}

// MarkDelete moves an existing attachment into the delete set and removes
// it from the visible list. Marking the same ID twice is a no-op; the
// delete set holds it exactly once.
func (l *Ledger) MarkDelete(id string) {
	if _, ok := l.deleted[id]; ok {
		return
	}
	for i, att := range l.existing {
		if att.ID == id {
			l.existing = append(l.existing[:i], l.existing[i+1:]...)
			l.deleted[id] = struct{}{}
			l.deletedOrder = append(l.deletedOrder, id)
			return
		}
	}
}

// Add queues a new upload after validating it is an image within the size
// ceiling. Downscaling of large-but-acceptable images happens at storage
// time, not here.
func (l *Ledger) Add(up Upload) error {
	ext := strings.ToLower(filepath.Ext(up.FileName))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return ErrNotAnImage
	}
	if up.Size > MaxUploadSize {
		return ErrFileTooLarge
	}
	l.added = append(l.added, up)
	return nil
}

// EditCaption updates the caption of a visible existing attachment in place.
func (l *Ledger) EditCaption(id string, caption string) bool {
	for i := range l.existing {
		if l.existing[i].ID == id {
			l.existing[i].Description = caption
			return true
		}
	}
	return false
}

// EditAddedCaption updates the caption of a queued upload by index.
func (l *Ledger) EditAddedCaption(index int, caption string) bool {
	if index < 0 || index >= len(l.added) {
		return false
	}
	l.added[index].Description = caption
	return true
}

// Reconcile assembles the single save payload: the IDs to delete, the
// kept existing attachments with captions as edited, and the queued
// uploads. The caller applies it atomically.
func (l *Ledger) Reconcile(timeSheetID string) SaveAttachmentsRequest {
	req := SaveAttachmentsRequest{
		TimeSheetID:         timeSheetID,
		AttachmentsToDelete: l.Deleted(),
	}
	for _, att := range l.existing {
		req.ExistingAttachments = append(req.ExistingAttachments, ExistingAttachmentInput{
			ID:          att.ID,
			Description: att.Description,
		})
	}
	return req
}
