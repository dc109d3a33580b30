package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	docID := uuid.New()

	path, err := store.Upload(ctx, docID, "lease agreement.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Contains(t, path, docID.String())
	assert.NotContains(t, path, " ")

	reader, err := store.Download(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))

	require.NoError(t, store.Delete(ctx, path))
	_, err = store.Download(ctx, path)
	assert.Error(t, err)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "ab/nonexistent.txt"))
}

func TestGenerateStoragePath(t *testing.T) {
	docID := uuid.MustParse("4dca43ff-96b2-4b3f-9c1a-54a1d3d5f0aa")

	path := generateStoragePath(docID, "my contract/v2.docx")
	assert.Equal(t, "4d/4dca43ff-96b2-4b3f-9c1a-54a1d3d5f0aa_my_contract_v2.docx", path)
}
