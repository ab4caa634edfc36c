package model

import "time"

// RFP is an uploaded request-for-proposal document together with its
// generated draft and cover-page fields. Filename is the name the user
// uploaded (display only); StorageKey is the collision-free object store
// key and stays internal. DraftText and SubmissionDate are nil until set.
type RFP struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Filename       string    `json:"filename"`
	StorageKey     string    `json:"-"`
	DraftText      *string   `json:"draft_text"`
	CompanyName    string    `json:"company_name"`
	DocumentType   string    `json:"document_type"`
	SubmissionDate *Date     `json:"submission_date"`
	UserID         int64     `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}
