package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"rfpapi/internal/completion"
	"rfpapi/internal/extract"
	"rfpapi/internal/model"
	"rfpapi/internal/repository"
	"rfpapi/internal/storage"
)

var (
	ErrNotFound    = errors.New("rfp not found")
	ErrReaderNil   = errors.New("reader is nil")
	ErrInvalidFile = errors.New("only PDF files are supported")
	ErrInvalidDate = errors.New("invalid submission date")
	ErrGeneration  = errors.New("draft generation failed")
)

const (
	systemPrompt     = "You are a proposal writer."
	userPromptPrefix = "You are a government proposal writer. Based on the RFP text below, generate a high-level executive summary or introduction for a proposal.\n\nRFP TEXT:\n"

	// maxPromptChars bounds how much extracted text goes into the prompt.
	// Plain character count, deliberately not token-aware.
	maxPromptChars = 4000
)

// UpdateRFPInput carries the full replacement values for the editable fields
// of an RFP. All fields overwrite; there is no partial update.
type UpdateRFPInput struct {
	DraftText      string `json:"draft_text"`
	CompanyName    string `json:"company_name"`
	DocumentType   string `json:"document_type"`
	SubmissionDate string `json:"submission_date"`
}

// RFPService defines the use cases for handling RFP documents. Every
// operation is scoped to the owning user: an RFP belonging to someone else
// is reported as ErrNotFound, never as a permission error.
type RFPService interface {
	// Upload streams the file to object storage under a generated key, then
	// records the RFP row. If the row insert fails the object is deleted.
	Upload(ctx context.Context, ownerID int64, title string, r io.Reader, originalFilename string, contentType string, size int64) (*model.RFP, error)

	// List returns all RFPs owned by ownerID in insertion order.
	List(ctx context.Context, ownerID int64) ([]model.RFP, error)

	// Get returns a single owned RFP.
	Get(ctx context.Context, ownerID, id int64) (*model.RFP, error)

	// GenerateDraft extracts the stored document's text, asks the completion
	// backend for an executive summary, and persists it as the draft.
	GenerateDraft(ctx context.Context, ownerID, id int64) (*model.RFP, error)

	// Update overwrites the editable fields of an owned RFP.
	Update(ctx context.Context, ownerID, id int64, in UpdateRFPInput) (*model.RFP, error)
}

// rfpService is a concrete implementation of RFPService.
type rfpService struct {
	repo      repository.RFPRepository
	store     storage.Storage
	extractor extract.Extractor
	completer completion.Completer
}

// NewRFPService constructs a new RFPService.
func NewRFPService(repo repository.RFPRepository, store storage.Storage, extractor extract.Extractor, completer completion.Completer) RFPService {
	return &rfpService{repo: repo, store: store, extractor: extractor, completer: completer}
}

func (s *rfpService) Upload(ctx context.Context, ownerID int64, title string, r io.Reader, originalFilename string, contentType string, size int64) (*model.RFP, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if ext != ".pdf" {
		return nil, ErrInvalidFile
	}

	// Store under UUID + extension so uploads never collide; the original
	// filename only lives on the row for display.
	key := filepath.ToSlash(filepath.Join("rfps", uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	today := model.Today()
	rfp := &model.RFP{
		Title:          title,
		Filename:       originalFilename,
		StorageKey:     objInfo.Key,
		CompanyName:    model.DefaultCompanyName,
		DocumentType:   model.DefaultDocumentType,
		SubmissionDate: &today,
		UserID:         ownerID,
	}
	stored, err := s.repo.Create(ctx, rfp)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns the caller's RFPs in insertion order.
func (s *rfpService) List(ctx context.Context, ownerID int64) ([]model.RFP, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns an owned RFP by ID.
func (s *rfpService) Get(ctx context.Context, ownerID, id int64) (*model.RFP, error) {
	rfp, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rfp, nil
}

// GenerateDraft runs the full pipeline: fetch blob, extract text, complete,
// persist. The completion backend is never called when the blob is missing.
func (s *rfpService) GenerateDraft(ctx context.Context, ownerID, id int64) (*model.RFP, error) {
	rfp, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rc, _, err := s.store.Get(ctx, rfp.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: file missing from storage", ErrNotFound)
		}
		return nil, fmt.Errorf("fetch from storage: %w", err)
	}
	defer rc.Close()

	text, err := s.extractor.Text(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	draft, err := s.completer.Complete(ctx, systemPrompt, userPromptPrefix+truncateChars(text, maxPromptChars))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	if err := s.repo.UpdateDraft(ctx, id, ownerID, draft); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save draft: %w", err)
	}

	rfp.DraftText = &draft
	return rfp, nil
}

// Update overwrites the editable fields of an owned RFP. The date is parsed
// before any query runs, so a bad payload never touches the row.
func (s *rfpService) Update(ctx context.Context, ownerID, id int64, in UpdateRFPInput) (*model.RFP, error) {
	date, err := model.ParseDate(in.SubmissionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	rfp, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rfp.DraftText = &in.DraftText
	rfp.CompanyName = in.CompanyName
	rfp.DocumentType = in.DocumentType
	rfp.SubmissionDate = &date

	if err := s.repo.UpdateEditable(ctx, rfp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save rfp: %w", err)
	}
	return rfp, nil
}

// truncateChars cuts s to at most n characters (runes, not bytes).
func truncateChars(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
