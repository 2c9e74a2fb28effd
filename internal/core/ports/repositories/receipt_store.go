package repositories

import (
	"context"
	"io"
)

// ReceiptStore abstracts receipt file storage. The core only records the
// returned path; the concrete store decides where bytes live.
type ReceiptStore interface {
	// SaveReceipt stores the file content under a collision-resistant name
	// derived from originalName and returns the retrievable path.
	SaveReceipt(ctx context.Context, originalName string, content io.Reader) (string, error)

	// RemoveReceipt deletes a previously stored receipt by its path.
	RemoveReceipt(ctx context.Context, path string) error
}
