package repository

import (
	"context"

	"rfpapi/internal/model"
)

// UserRepository defines data access for user accounts using SQL queries only.
// No business logic here — strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user record. Fields with schema defaults (company
	// name, document type, is_active, created_at) are filled by the DB and
	// returned in the stored user. A unique constraint violation on email
	// returns ErrDuplicateEmail.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByEmail returns the user with the given email.
	// sql.ErrNoRows passes through when no account exists.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
