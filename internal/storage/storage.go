package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Package storage contains blob storage abstractions for document files.
// Relative keys are stored in the database; the backing root (filesystem
// directory or bucket) can be relocated without a data migration.

// PutObjectOptions define optional parameters for uploading blobs.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored blob.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a blob storage client interface. Methods use context and
// streaming readers; content is never buffered fully in memory.
type Storage interface {
	// Put persists the blob under the given key. The returned ObjectInfo
	// carries the key actually used, which always equals the requested one.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves a blob's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Exists reports whether a blob is present under the key.
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes a blob. It returns false without error when the blob
	// is already absent; backend failures are returned, never swallowed.
	Delete(ctx context.Context, key string) (bool, error)
}

// GeneratePath derives a globally-unique relative storage key for an upload:
// documents/<year>/<month>/<day>/<uuid>.<ext>. Partitioning by upload date
// bounds directory sizes; the UUID base name makes collisions negligible,
// so no retry loop is needed.
func GeneratePath(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	name := uuid.New().String() + ext
	return path.Join("documents", time.Now().UTC().Format("2006/01/02"), name)
}
