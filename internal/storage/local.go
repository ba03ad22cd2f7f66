package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docvault/internal/config"
)

// Local implements Storage on a private filesystem root. The root must not
// live under any publicly served directory; blobs are only reachable through
// the download endpoint.
type Local struct {
	root string
}

// NewLocal creates a filesystem-backed storage rooted at cfg.LocalRoot,
// creating the directory if missing.
func NewLocal(cfg config.StorageConfig) (*Local, error) {
	if cfg.LocalRoot == "" {
		return nil, fmt.Errorf("local storage root is required")
	}
	if err := os.MkdirAll(cfg.LocalRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Local{root: cfg.LocalRoot}, nil
}

// AbsolutePath resolves a stored relative key to its fully-qualified
// filesystem location. It returns "" when key is empty.
func (l *Local) AbsolutePath(key string) string {
	if key == "" {
		return ""
	}
	return filepath.Join(l.root, filepath.FromSlash(key))
}

// Put writes the blob under key, creating date partition directories as
// needed. The returned info reports the bytes actually written.
func (l *Local) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := validKey(key); err != nil {
		return ObjectInfo{}, err
	}
	abs := l.AbsolutePath(key)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return ObjectInfo{}, fmt.Errorf("create blob directory: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create blob: %w", err)
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Remove the partial file so a failed write leaves nothing behind.
		_ = os.Remove(abs)
		return ObjectInfo{}, fmt.Errorf("write blob: %w", err)
	}

	return ObjectInfo{
		Key:          key,
		Size:         written,
		ContentType:  opt.ContentType,
		LastModified: time.Now(),
		Metadata:     opt.Metadata,
	}, nil
}

// Get opens the blob for streaming reads.
func (l *Local) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	if err := validKey(key); err != nil {
		return nil, ObjectInfo{}, err
	}
	abs := l.AbsolutePath(key)
	f, err := os.Open(abs)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	return f, ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}, nil
}

// Exists reports blob presence on disk. A blob removed out-of-band is
// reported as absent rather than surfacing an error.
func (l *Local) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	if err := validKey(key); err != nil {
		return false, err
	}
	_, err := os.Stat(l.AbsolutePath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the blob file if present; it is a no-op returning false
// when the blob is already gone.
func (l *Local) Delete(ctx context.Context, key string) (bool, error) {
	if err := validKey(key); err != nil {
		return false, err
	}
	err := os.Remove(l.AbsolutePath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// validKey rejects keys that would escape the storage root.
func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("storage key is required")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return fmt.Errorf("invalid storage key: %q", key)
	}
	return nil
}
