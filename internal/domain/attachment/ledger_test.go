package attachment

import (
	"testing"
)

func seedLedger() *Ledger {
	return NewLedger([]Attachment{
		{ID: "a1", FileName: "pump.jpg", Description: "pump housing"},
		{ID: "a2", FileName: "motor.png", Description: "motor bearing"},
		{ID: "a3", FileName: "valve.jpeg", Description: "valve seat"},
	})
}

func TestLedgerMarkDelete(t *testing.T) {
	l := seedLedger()

	l.MarkDelete("a2")

	if len(l.Existing()) != 2 {
		t.Errorf("Existing() = %d attachments, want 2", len(l.Existing()))
	}
	for _, att := range l.Existing() {
		if att.ID == "a2" {
			t.Error("deleted attachment still visible")
		}
	}
	if got := l.Deleted(); len(got) != 1 || got[0] != "a2" {
		t.Errorf("Deleted() = %v, want [a2]", got)
	}
}

func TestLedgerMarkDeleteIdempotent(t *testing.T) {
	l := seedLedger()

	l.MarkDelete("a1")
	l.MarkDelete("a1")
	l.MarkDelete("a1")

	if got := l.Deleted(); len(got) != 1 {
		t.Errorf("Deleted() holds %d ids after repeated marks, want 1", len(got))
	}
	if len(l.Existing()) != 2 {
		t.Errorf("Existing() = %d attachments, want 2", len(l.Existing()))
	}
}

func TestLedgerMarkDeleteUnknownID(t *testing.T) {
	l := seedLedger()

	l.MarkDelete("nope")

	if len(l.Deleted()) != 0 {
		t.Error("unknown id landed in delete set")
	}
	if len(l.Existing()) != 3 {
		t.Error("visible list changed for unknown id")
	}
}

func TestLedgerAdd(t *testing.T) {
	tests := []struct {
		name    string
		upload  Upload
		wantErr error
	}{
		{"valid jpg", Upload{FileName: "site.jpg", Size: 1 << 20}, nil},
		{"valid png", Upload{FileName: "gauge.PNG", Size: 5 << 20}, nil},
		{"exactly at limit", Upload{FileName: "panel.jpeg", Size: MaxUploadSize}, nil},
		{"over limit", Upload{FileName: "huge.jpg", Size: MaxUploadSize + 1}, ErrFileTooLarge},
		{"not an image", Upload{FileName: "report.pdf", Size: 1024}, ErrNotAnImage},
		{"no extension", Upload{FileName: "photo", Size: 1024}, ErrNotAnImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := seedLedger()
			err := l.Add(tt.upload)
			if err != tt.wantErr {
				t.Errorf("Add(%q) error = %v, want %v", tt.upload.FileName, err, tt.wantErr)
			}
			wantAdded := 0
			if tt.wantErr == nil {
				wantAdded = 1
			}
			if len(l.Added()) != wantAdded {
				t.Errorf("Added() = %d uploads, want %d", len(l.Added()), wantAdded)
			}
		})
	}
}

func TestLedgerEditCaption(t *testing.T) {
	l := seedLedger()

	if !l.EditCaption("a1", "pump housing, north side") {
		t.Fatal("EditCaption returned false for known id")
	}
	if got := l.Existing()[0].Description; got != "pump housing, north side" {
		t.Errorf("caption = %q after edit", got)
	}

	if l.EditCaption("missing", "x") {
		t.Error("EditCaption returned true for unknown id")
	}

	// Captions of deleted attachments are no longer editable.
	l.MarkDelete("a3")
	if l.EditCaption("a3", "x") {
		t.Error("EditCaption returned true for deleted attachment")
	}
}

func TestLedgerReconcile(t *testing.T) {
	l := seedLedger()
	l.MarkDelete("a2")
	l.EditCaption("a1", "updated caption")
	if err := l.Add(Upload{FileName: "new.jpg", Size: 2048, Description: "new photo"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	req := l.Reconcile("b5fabe3d-70a1-4dbf-b05f-f63a12cbe376")

	if req.TimeSheetID != "b5fabe3d-70a1-4dbf-b05f-f63a12cbe376" {
		t.Errorf("TimeSheetID = %q", req.TimeSheetID)
	}
	if len(req.AttachmentsToDelete) != 1 || req.AttachmentsToDelete[0] != "a2" {
		t.Errorf("AttachmentsToDelete = %v, want [a2]", req.AttachmentsToDelete)
	}
	if len(req.ExistingAttachments) != 2 {
		t.Fatalf("ExistingAttachments = %d, want 2", len(req.ExistingAttachments))
	}
	if req.ExistingAttachments[0].ID != "a1" || req.ExistingAttachments[0].Description != "updated caption" {
		t.Errorf("kept attachment = %+v, edited caption missing", req.ExistingAttachments[0])
	}
	if len(l.Added()) != 1 {
		t.Errorf("Added() = %d uploads, want 1", len(l.Added()))
	}
}
