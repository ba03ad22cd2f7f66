package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"docvault/internal/model"
	"docvault/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var docColumns = []string{
	"id", "title", "description", "file_name", "file_path", "file_size",
	"mime_type", "category", "status", "uploaded_by", "created_at",
	"updated_at", "deleted_at",
}

func docRow(doc *model.Document) *sqlmock.Rows {
	return sqlmock.NewRows(docColumns).AddRow(
		doc.ID, doc.Title, doc.Description, doc.FileName, doc.FilePath,
		doc.FileSize, doc.MimeType, doc.Category, doc.Status, doc.UploadedBy,
		doc.CreatedAt, doc.UpdatedAt, nil,
	)
}

func testDoc() *model.Document {
	now := time.Now().UTC()
	return &model.Document{
		ID:          "test-uuid",
		Title:       "Quarterly report",
		Description: "first pass",
		FileName:    "report.txt",
		FilePath:    "documents/2026/08/30/test.txt",
		FileSize:    123,
		MimeType:    "text/plain",
		Category:    "general",
		Status:      model.StatusActive,
		UploadedBy:  "alice",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()
	doc := testDoc()

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Title, sqlmock.AnyArg(), doc.FileName, doc.FilePath,
			doc.FileSize, doc.MimeType, doc.Category, doc.Status, sqlmock.AnyArg(),
			doc.CreatedAt, doc.UpdatedAt).
		WillReturnRows(docRow(doc))

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, doc.FilePath, result.FilePath)
	assert.Nil(t, result.DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		doc := testDoc()
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs(doc.ID).
			WillReturnRows(docRow(doc))

		got, err := repo.FindByID(ctx, doc.ID)

		assert.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, doc.ID, got.ID)
		assert.Equal(t, doc.UploadedBy, got.UploadedBy)
	})

	t.Run("not found or soft-deleted", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByID(ctx, "missing")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, got)
	})

	t.Run("null description and uploaded_by", func(t *testing.T) {
		doc := testDoc()
		rows := sqlmock.NewRows(docColumns).AddRow(
			doc.ID, doc.Title, nil, doc.FileName, doc.FilePath,
			doc.FileSize, doc.MimeType, doc.Category, doc.Status, nil,
			doc.CreatedAt, doc.UpdatedAt, nil,
		)
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs(doc.ID).
			WillReturnRows(rows)

		got, err := repo.FindByID(ctx, doc.ID)

		assert.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.Description)
		assert.Empty(t, got.UploadedBy)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("no filters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE deleted_at IS NULL`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE deleted_at IS NULL ORDER BY").
			WithArgs(10, 0).
			WillReturnRows(docRow(testDoc()))

		res, err := repo.List(ctx, repository.ListQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("category and status filters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE deleted_at IS NULL AND category = (.+) AND status = (.+)`).
			WithArgs("reports", model.StatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE deleted_at IS NULL AND category = (.+) AND status = (.+) ORDER BY").
			WithArgs("reports", model.StatusActive, 15, 0).
			WillReturnRows(sqlmock.NewRows(docColumns))

		res, err := repo.List(ctx, repository.ListQuery{
			Limit:    15,
			Offset:   0,
			Category: "reports",
			Status:   model.StatusActive,
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()
	doc := testDoc()
	doc.Status = model.StatusInactive

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("UPDATE documents").
			WithArgs(doc.ID, doc.Title, sqlmock.AnyArg(), doc.Category, doc.Status, sqlmock.AnyArg()).
			WillReturnRows(docRow(doc))

		got, err := repo.Update(ctx, doc)

		assert.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.StatusInactive, got.Status)
	})

	t.Run("soft-deleted row yields no rows", func(t *testing.T) {
		mock.ExpectQuery("UPDATE documents").
			WithArgs(doc.ID, doc.Title, sqlmock.AnyArg(), doc.Category, doc.Status, sqlmock.AnyArg()).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.Update(ctx, doc)

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, got)
	})
}

func TestDocumentPostgres_SoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents").
			WithArgs("test-id", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SoftDelete(ctx, "test-id"))
	})

	t.Run("already deleted", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents").
			WithArgs("gone-id", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SoftDelete(ctx, "gone-id")
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
