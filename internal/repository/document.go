package repository

import (
	"context"

	"docvault/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations. All read and
// update operations exclude soft-deleted rows; a row whose deleted_at is set
// behaves as if it did not exist.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller provides ID, CreatedAt and UpdatedAt; file_path carries a
	// unique constraint enforced by the database.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a non-deleted document by its ID.
	// Returns sql.ErrNoRows when the row is absent or soft-deleted.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a page of non-deleted documents ordered by created_at
	// descending, plus the total row count for the same filter.
	List(ctx context.Context, q ListQuery) (*PageResult[model.Document], error)

	// Update persists the mutable metadata fields (title, description,
	// category, status) and refreshes updated_at. File-related columns are
	// never written. Returns sql.ErrNoRows when the row is absent or deleted.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// SoftDelete stamps deleted_at on the row.
	// Returns sql.ErrNoRows when the row is absent or already soft-deleted.
	SoftDelete(ctx context.Context, id string) error
}
