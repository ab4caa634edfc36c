package model

import "time"

// User is an account that owns uploaded RFPs. Email doubles as the token
// subject, so it is unique and compared case-sensitively. The password hash
// is deliberately excluded from JSON.
type User struct {
	ID                    int64     `json:"id"`
	Email                 string    `json:"email"`
	PasswordHash          string    `json:"-"`
	DefaultCompanyName    string    `json:"default_company_name"`
	DefaultDocumentType   string    `json:"default_document_type"`
	DefaultSubmissionDate *Date     `json:"default_submission_date"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
}
