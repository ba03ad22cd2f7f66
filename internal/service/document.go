package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

// Validation bounds for document metadata and uploads.
const (
	MaxTitleLen       = 255
	MaxDescriptionLen = 1000
	MaxCategoryLen    = 50
	MaxUploadedByLen  = 255

	DefaultPerPage = 15
	MaxPerPage     = 100

	defaultMaxUploadBytes = 10 << 20 // 10 MiB
)

// ListParams are the inputs of the List operation.
type ListParams struct {
	Page     int
	PerPage  int
	Category string
	Status   string
}

// DocumentPage is a page of documents plus pagination metadata.
type DocumentPage struct {
	Items       []model.Document
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

// CreateInput carries the metadata and file content of a create request.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	UploadedBy  string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UpdateInput is a partial metadata update; nil fields are left untouched.
// There is no provision to change file_name, file_path, file_size or
// mime_type after upload.
type UpdateInput struct {
	Title       *string
	Description *string
	Category    *string
	Status      *string
}

// Download pairs a document with its streaming blob content.
// The caller owns Content and must close it.
type Download struct {
	Document *model.Document
	Content  io.ReadCloser
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// List returns a page of non-deleted documents, newest first,
	// optionally filtered by category and status.
	List(ctx context.Context, p ListParams) (*DocumentPage, error)

	// Create validates the input, persists the blob, then inserts the
	// metadata record. A failed blob write performs no database write; a
	// failed insert deletes the orphaned blob before returning.
	Create(ctx context.Context, in CreateInput) (*model.Document, error)

	// Get returns a single non-deleted document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Update applies a partial metadata update to a non-deleted document.
	Update(ctx context.Context, id string, in UpdateInput) (*model.Document, error)

	// Delete soft-deletes the record. With removeFile the blob is removed
	// first; if that fails (including a blob already missing from storage)
	// the record is left untouched so it never references a phantom blob.
	Delete(ctx context.Context, id string, removeFile bool) error

	// Download opens the blob of a non-deleted document for streaming.
	Download(ctx context.Context, id string) (*Download, error)
}

// Config tunes a DocumentService. Zero values fall back to defaults
// (10 MiB upload limit, allow-all authorization).
type Config struct {
	MaxUploadBytes int64
	Authz          AuthorizationPolicy
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store     storage.Storage
	repo      repository.DocumentRepository
	maxUpload int64
	authz     AuthorizationPolicy
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, cfg Config) DocumentService {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.Authz == nil {
		cfg.Authz = AllowAll{}
	}
	return &documentService{
		store:     store,
		repo:      repo,
		maxUpload: cfg.MaxUploadBytes,
		authz:     cfg.Authz,
	}
}

func (s *documentService) List(ctx context.Context, p ListParams) (*DocumentPage, error) {
	var v validator
	if p.Page < 1 {
		v.add("page", "must be at least 1")
	}
	if p.PerPage < 1 || p.PerPage > MaxPerPage {
		v.add("per_page", fmt.Sprintf("must be between 1 and %d", MaxPerPage))
	}
	if utf8.RuneCountInString(p.Category) > MaxCategoryLen {
		v.add("category", fmt.Sprintf("may not be longer than %d characters", MaxCategoryLen))
	}
	if p.Status != "" && !model.ValidStatus(p.Status) {
		v.add("status", "must be one of: active, inactive, processing")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	res, err := s.repo.List(ctx, repository.ListQuery{
		Limit:    p.PerPage,
		Offset:   (p.Page - 1) * p.PerPage,
		Category: p.Category,
		Status:   p.Status,
	})
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	lastPage := (res.Total + p.PerPage - 1) / p.PerPage
	if lastPage < 1 {
		lastPage = 1
	}

	return &DocumentPage{
		Items:       res.Items,
		CurrentPage: p.Page,
		LastPage:    lastPage,
		PerPage:     p.PerPage,
		Total:       res.Total,
	}, nil
}

func (s *documentService) Create(ctx context.Context, in CreateInput) (*model.Document, error) {
	if err := s.authz.Authorize(ctx, ActionCreate); err != nil {
		return nil, err
	}

	// Validate everything up front; no side effects on bad input.
	var v validator
	if in.Title == "" {
		v.add("title", "is required")
	} else if utf8.RuneCountInString(in.Title) > MaxTitleLen {
		v.add("title", fmt.Sprintf("may not be longer than %d characters", MaxTitleLen))
	}
	if utf8.RuneCountInString(in.Description) > MaxDescriptionLen {
		v.add("description", fmt.Sprintf("may not be longer than %d characters", MaxDescriptionLen))
	}
	if utf8.RuneCountInString(in.Category) > MaxCategoryLen {
		v.add("category", fmt.Sprintf("may not be longer than %d characters", MaxCategoryLen))
	}
	if utf8.RuneCountInString(in.UploadedBy) > MaxUploadedByLen {
		v.add("uploaded_by", fmt.Sprintf("may not be longer than %d characters", MaxUploadedByLen))
	}
	switch {
	case in.Content == nil || in.FileName == "":
		v.add("file", "is required")
	case in.Size <= 0:
		v.add("file", "may not be empty")
	case in.Size > s.maxUpload:
		v.add("file", fmt.Sprintf("may not be larger than %d bytes", s.maxUpload))
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	category := in.Category
	if category == "" {
		category = model.DefaultCategory
	}

	// Persist the blob first; a write failure means no database row exists.
	key := storage.GeneratePath(in.FileName)
	info, err := s.store.Put(ctx, key, in.Content, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": in.FileName,
		},
	})
	if err != nil {
		return nil, &StorageError{Op: OpWrite, Err: err}
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		FileName:    in.FileName,
		FilePath:    info.Key,
		FileSize:    info.Size,
		MimeType:    contentType,
		Category:    category,
		Status:      model.StatusActive,
		UploadedBy:  in.UploadedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Compensating action: remove the orphaned blob so no blob is left
		// unreferenced by a record.
		if _, delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, &PersistenceError{Err: fmt.Errorf("db save failed: %v; orphan cleanup failed: %v", err, delErr)}
		}
		return nil, &PersistenceError{Err: err}
	}
	return stored, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	return s.find(ctx, id)
}

func (s *documentService) Update(ctx context.Context, id string, in UpdateInput) (*model.Document, error) {
	if err := s.authz.Authorize(ctx, ActionUpdate); err != nil {
		return nil, err
	}

	// Present fields are validated; absent fields are left untouched.
	var v validator
	if in.Title != nil {
		if *in.Title == "" {
			v.add("title", "is required")
		} else if utf8.RuneCountInString(*in.Title) > MaxTitleLen {
			v.add("title", fmt.Sprintf("may not be longer than %d characters", MaxTitleLen))
		}
	}
	if in.Description != nil && utf8.RuneCountInString(*in.Description) > MaxDescriptionLen {
		v.add("description", fmt.Sprintf("may not be longer than %d characters", MaxDescriptionLen))
	}
	if in.Category != nil && utf8.RuneCountInString(*in.Category) > MaxCategoryLen {
		v.add("category", fmt.Sprintf("may not be longer than %d characters", MaxCategoryLen))
	}
	if in.Status != nil && !model.ValidStatus(*in.Status) {
		v.add("status", "must be one of: active, inactive, processing")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		doc.Title = *in.Title
	}
	if in.Description != nil {
		doc.Description = *in.Description
	}
	if in.Category != nil {
		doc.Category = *in.Category
	}
	if in.Status != nil {
		doc.Status = *in.Status
	}

	updated, err := s.repo.Update(ctx, doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Err: err}
	}
	return updated, nil
}

func (s *documentService) Delete(ctx context.Context, id string, removeFile bool) error {
	if err := s.authz.Authorize(ctx, ActionDelete); err != nil {
		return err
	}

	doc, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	// Blob removal happens before the soft delete; on failure the record is
	// left untouched so record and blob stay consistent.
	if removeFile && doc.FilePath != "" {
		exists, err := s.store.Exists(ctx, doc.FilePath)
		if err != nil {
			return &StorageError{Op: OpDelete, Err: err}
		}
		if !exists {
			return &StorageError{Op: OpDelete, Err: fmt.Errorf("blob missing from storage")}
		}
		if _, err := s.store.Delete(ctx, doc.FilePath); err != nil {
			return &StorageError{Op: OpDelete, Err: err}
		}
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return &PersistenceError{Err: err}
	}
	return nil
}

func (s *documentService) Download(ctx context.Context, id string) (*Download, error) {
	doc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	// A blob removed out-of-band is reported, not crashed on: same external
	// not-found as an unknown id.
	exists, err := s.store.Exists(ctx, doc.FilePath)
	if err != nil {
		return nil, &StorageError{Op: OpRead, Err: err}
	}
	if !exists {
		return nil, ErrNotFound
	}

	rc, _, err := s.store.Get(ctx, doc.FilePath)
	if err != nil {
		return nil, &StorageError{Op: OpRead, Err: err}
	}
	return &Download{Document: doc, Content: rc}, nil
}

// find loads a non-deleted document, mapping missing rows to ErrNotFound.
func (s *documentService) find(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, &ValidationError{Fields: map[string]string{"id": "is required"}}
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Err: err}
	}
	return doc, nil
}
