package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveReceipt_WritesFileAndReturnsPath(t *testing.T) {
	store := NewLocalReceiptStore(t.TempDir())

	path, err := store.SaveReceipt(context.Background(), "invoice.pdf", strings.NewReader("receipt bytes"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "receipt bytes", string(content))
	assert.True(t, strings.HasSuffix(path, "_invoice.pdf"))
}

func TestSaveReceipt_UniqueNamesForSameOriginal(t *testing.T) {
	store := NewLocalReceiptStore(t.TempDir())

	first, err := store.SaveReceipt(context.Background(), "invoice.pdf", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.SaveReceipt(context.Background(), "invoice.pdf", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveReceipt_SanitizesTraversalAttempt(t *testing.T) {
	baseDir := t.TempDir()
	store := NewLocalReceiptStore(baseDir)

	path, err := store.SaveReceipt(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)

	// The stored file must live inside the base directory.
	rel, err := filepath.Rel(baseDir, path)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."))
}

func TestRemoveReceipt(t *testing.T) {
	store := NewLocalReceiptStore(t.TempDir())

	path, err := store.SaveReceipt(context.Background(), "invoice.pdf", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.RemoveReceipt(context.Background(), path))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Removing an already-removed file is not an error.
	assert.NoError(t, store.RemoveReceipt(context.Background(), path))
}

func TestRemoveReceipt_RejectsOutsidePath(t *testing.T) {
	store := NewLocalReceiptStore(t.TempDir())

	err := store.RemoveReceipt(context.Background(), "/etc/hosts")
	assert.Error(t, err)
}
