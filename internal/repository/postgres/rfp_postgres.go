package postgres

import (
	"context"
	"database/sql"

	"rfpapi/internal/model"
	"rfpapi/internal/repository"
)

// RFPPostgres is a PostgreSQL implementation of repository.RFPRepository.
// Ownership scoping happens in the queries themselves: every statement
// matches on user_id, so a foreign row and a missing row are
// indistinguishable to callers.
type RFPPostgres struct {
	db *sql.DB
}

// NewRFPPostgres creates a new RFPPostgres repository.
func NewRFPPostgres(db *sql.DB) *RFPPostgres {
	return &RFPPostgres{db: db}
}

var _ repository.RFPRepository = (*RFPPostgres)(nil)

const rfpColumns = `id, title, filename, storage_key, draft_text, company_name, document_type, submission_date, user_id, created_at`

// Create inserts a new RFP row and returns the stored record.
func (r *RFPPostgres) Create(ctx context.Context, rfp *model.RFP) (*model.RFP, error) {
	const q = `
		INSERT INTO rfps (title, filename, storage_key, company_name, document_type, submission_date, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + rfpColumns
	row := r.db.QueryRowContext(ctx, q,
		rfp.Title,
		rfp.Filename,
		rfp.StorageKey,
		rfp.CompanyName,
		rfp.DocumentType,
		rfp.SubmissionDate,
		rfp.UserID,
	)

	var out model.RFP
	if err := scanRFP(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByIDAndOwner fetches a single RFP scoped to its owner.
// sql.ErrNoRows passes through for missing or foreign rows.
func (r *RFPPostgres) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.RFP, error) {
	const q = `
		SELECT ` + rfpColumns + `
		FROM rfps
		WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRowContext(ctx, q, id, ownerID)

	var out model.RFP
	if err := scanRFP(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByOwner returns every RFP owned by ownerID, ordered by id.
func (r *RFPPostgres) ListByOwner(ctx context.Context, ownerID int64) ([]model.RFP, error) {
	const q = `
		SELECT ` + rfpColumns + `
		FROM rfps
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RFP, 0)
	for rows.Next() {
		var rfp model.RFP
		if err := scanRFP(rows, &rfp); err != nil {
			return nil, err
		}
		items = append(items, rfp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateDraft stores the generated draft text on an owned RFP.
func (r *RFPPostgres) UpdateDraft(ctx context.Context, id, ownerID int64, draft string) error {
	const q = `UPDATE rfps SET draft_text = $1 WHERE id = $2 AND user_id = $3`
	res, err := r.db.ExecContext(ctx, q, draft, id, ownerID)
	if err != nil {
		return err
	}
	return requireRowMatched(res)
}

// UpdateEditable overwrites the user-editable fields of an owned RFP.
func (r *RFPPostgres) UpdateEditable(ctx context.Context, rfp *model.RFP) error {
	const q = `
		UPDATE rfps
		SET draft_text = $1, company_name = $2, document_type = $3, submission_date = $4
		WHERE id = $5 AND user_id = $6
	`
	res, err := r.db.ExecContext(ctx, q,
		rfp.DraftText,
		rfp.CompanyName,
		rfp.DocumentType,
		rfp.SubmissionDate,
		rfp.ID,
		rfp.UserID,
	)
	if err != nil {
		return err
	}
	return requireRowMatched(res)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRFP(s scanner, out *model.RFP) error {
	return s.Scan(
		&out.ID,
		&out.Title,
		&out.Filename,
		&out.StorageKey,
		&out.DraftText,
		&out.CompanyName,
		&out.DocumentType,
		&out.SubmissionDate,
		&out.UserID,
		&out.CreatedAt,
	)
}

// requireRowMatched turns a zero-row UPDATE into sql.ErrNoRows so the service
// layer can treat unowned and missing rows the same way.
func requireRowMatched(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
