package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, description, file_name, file_path, file_size, mime_type, category, status, uploaded_by, created_at, updated_at, deleted_at`

// scanDocument maps one row onto a model.Document, normalizing NULLs.
func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var (
		d           model.Document
		description sql.NullString
		uploadedBy  sql.NullString
		deletedAt   sql.NullTime
	)
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&description,
		&d.FileName,
		&d.FilePath,
		&d.FileSize,
		&d.MimeType,
		&d.Category,
		&d.Status,
		&uploadedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
		&deletedAt,
	); err != nil {
		return nil, err
	}
	d.Description = description.String
	d.UploadedBy = uploadedBy.String
	if deletedAt.Valid {
		t := deletedAt.Time
		d.DeletedAt = &t
	}
	return &d, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, title, description, file_name, file_path, file_size, mime_type, category, status, uploaded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		nullString(doc.Description),
		doc.FileName,
		doc.FilePath,
		doc.FileSize,
		doc.MimeType,
		doc.Category,
		doc.Status,
		nullString(doc.UploadedBy),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single non-deleted document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1 AND deleted_at IS NULL
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns non-deleted documents using LIMIT/OFFSET pagination and a
// total count, both constrained by the same optional category/status filter.
func (r *DocumentPostgres) List(ctx context.Context, q repository.ListQuery) (*repository.PageResult[model.Document], error) {
	where := []string{"deleted_at IS NULL"}
	args := []any{}
	if q.Category != "" {
		args = append(args, q.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	filter := strings.Join(where, " AND ")

	// Count total rows under the filter
	var total int
	qCount := `SELECT COUNT(*) FROM documents WHERE ` + filter
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page, newest first
	qList := `SELECT ` + documentColumns + ` FROM documents WHERE ` + filter +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, qList, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Update writes the mutable metadata columns of a non-deleted row and
// returns the fresh record. File-related columns stay untouched.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET title = $2, description = $3, category = $4, status = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		nullString(doc.Description),
		doc.Category,
		doc.Status,
		time.Now().UTC(),
	)
	return scanDocument(row)
}

// SoftDelete stamps deleted_at; an absent or already-deleted row yields sql.ErrNoRows.
func (r *DocumentPostgres) SoftDelete(ctx context.Context, id string) error {
	const q = `
		UPDATE documents
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, q, id, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
