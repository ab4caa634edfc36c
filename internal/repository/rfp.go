package repository

import (
	"context"

	"rfpapi/internal/model"
)

// RFPRepository defines data access for uploaded RFPs using SQL queries only.
// Every read and write is scoped to an owner: a row belonging to another user
// behaves exactly like a row that does not exist (sql.ErrNoRows).
type RFPRepository interface {
	// Create inserts a new RFP record and returns the stored row, including
	// values set by the DB (id, created_at).
	Create(ctx context.Context, rfp *model.RFP) (*model.RFP, error)

	// FindByIDAndOwner returns the RFP with the given id owned by ownerID.
	// sql.ErrNoRows passes through for missing or foreign rows.
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.RFP, error)

	// ListByOwner returns all RFPs owned by ownerID, ordered by id.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.RFP, error)

	// UpdateDraft stores the generated draft text on the RFP.
	// Returns sql.ErrNoRows when no owned row matched.
	UpdateDraft(ctx context.Context, id, ownerID int64, draft string) error

	// UpdateEditable overwrites the user-editable fields (draft text, company
	// name, document type, submission date) from the given RFP, scoped to its
	// ID and UserID. Returns sql.ErrNoRows when no owned row matched.
	UpdateEditable(ctx context.Context, rfp *model.RFP) error
}
