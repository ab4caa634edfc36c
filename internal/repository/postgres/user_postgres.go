package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"rfpapi/internal/model"
	"rfpapi/internal/repository"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts a new user row and returns the stored record, with the
// column defaults (company name, document type, is_active, created_at)
// filled in by the DB.
func (r *UserPostgres) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, default_company_name, default_document_type, default_submission_date, is_active, created_at
	`
	row := r.db.QueryRowContext(ctx, q, user.Email, user.PasswordHash)

	var out model.User
	if err := row.Scan(
		&out.ID,
		&out.Email,
		&out.PasswordHash,
		&out.DefaultCompanyName,
		&out.DefaultDocumentType,
		&out.DefaultSubmissionDate,
		&out.IsActive,
		&out.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, err
	}
	return &out, nil
}

// FindByEmail fetches a single user by email. sql.ErrNoRows passes through.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT id, email, password_hash, default_company_name, default_document_type, default_submission_date, is_active, created_at
		FROM users
		WHERE email = $1
	`
	row := r.db.QueryRowContext(ctx, q, email)

	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.DefaultCompanyName,
		&u.DefaultDocumentType,
		&u.DefaultSubmissionDate,
		&u.IsActive,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
