// Package storage provides the filesystem-backed receipt store.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
)

// LocalReceiptStore stores receipt files on the local filesystem under a
// configured base directory.
type LocalReceiptStore struct {
	baseDir string
}

// NewLocalReceiptStore creates a receipt store rooted at baseDir. The
// directory is created on first save if it does not exist.
func NewLocalReceiptStore(baseDir string) *LocalReceiptStore {
	return &LocalReceiptStore{baseDir: baseDir}
}

// Ensure LocalReceiptStore implements portsrepo.ReceiptStore
var _ portsrepo.ReceiptStore = (*LocalReceiptStore)(nil)

// sanitizeFilename strips path components and replaces characters outside a
// conservative allowlist, retaining the extension for content-type sniffing.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	clean := strings.Trim(b.String(), ".")
	if clean == "" {
		clean = "receipt"
	}
	return clean
}

// SaveReceipt writes content under a unique name derived from originalName
// and returns the relative path used for later retrieval and removal.
func (s *LocalReceiptStore) SaveReceipt(ctx context.Context, originalName string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", apperrors.NewAppError(500, "failed to create receipt directory", err)
	}

	filename := fmt.Sprintf("%s_%s", uuid.NewString(), sanitizeFilename(originalName))
	fullPath := filepath.Join(s.baseDir, filename)

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to create receipt file", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(fullPath)
		return "", apperrors.NewAppError(500, "failed to write receipt file", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(fullPath)
		return "", apperrors.NewAppError(500, "failed to close receipt file", err)
	}

	return fullPath, nil
}

// RemoveReceipt deletes a stored receipt. Removing a missing file is not an
// error; the caller treats removal as best-effort cleanup.
func (s *LocalReceiptStore) RemoveReceipt(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Refuse paths outside the store's base directory.
	rel, err := filepath.Rel(s.baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return apperrors.NewValidationFailedError("receipt path is outside the storage directory")
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return apperrors.NewAppError(500, "failed to remove receipt file", err)
	}
	return nil
}
