package rag_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfchat/internal/models"
	"pdfchat/internal/types"
	"pdfchat/pkg/rag"
)

func ingestFixtures() (*stubLoader, *stubChunker, *stubEmbedder, *stubStore) {
	loader := &stubLoader{
		doc: &models.Document{Source: "doc.pdf", Text: "some extracted text", Pages: 4},
	}
	chunker := &stubChunker{
		chunks: []models.Chunk{
			{Source: "doc.pdf", Index: 0, Start: 0, End: 10, Text: "some extra"},
			{Source: "doc.pdf", Index: 1, Start: 5, End: 15, Text: "extracted "},
			{Source: "doc.pdf", Index: 2, Start: 10, End: 19, Text: "cted text"},
		},
	}
	embedder := &stubEmbedder{
		vectors: [][]float32{{1, 0}, {0, 1}, {1, 1}},
	}
	return loader, chunker, embedder, &stubStore{}
}

func TestIngestRun(t *testing.T) {
	loader, chunker, embedder, store := ingestFixtures()
	service := rag.NewIngestionService(loader, chunker, embedder, store)

	stats, err := service.Run(context.Background(), "doc.pdf", false)
	require.NoError(t, err)

	assert.Equal(t, []string{"some extra", "extracted ", "cted text"}, embedder.gotTexts)
	assert.Equal(t, []string{"upsert"}, store.ops)

	require.Len(t, store.upserted, 3)
	seen := map[string]bool{}
	for i, entry := range store.upserted {
		assert.NotEmpty(t, entry.ID)
		assert.False(t, seen[entry.ID], "duplicate id")
		seen[entry.ID] = true
		assert.Equal(t, "doc.pdf", entry.Source)
		assert.Equal(t, i, entry.ChunkIndex)
		assert.Equal(t, chunker.chunks[i].Text, entry.Content)
		assert.Equal(t, embedder.vectors[i], entry.Embedding)
	}

	assert.Equal(t, "doc.pdf", stats.Source)
	assert.Equal(t, 4, stats.Pages)
	assert.Equal(t, 3, stats.Chunks)
	assert.Equal(t, 9, stats.MinChunk)
	assert.Equal(t, 10, stats.MaxChunk)
	assert.Equal(t, 9, stats.AvgChunk)
}

func TestIngestClearFirst(t *testing.T) {
	loader, chunker, embedder, store := ingestFixtures()
	service := rag.NewIngestionService(loader, chunker, embedder, store)

	_, err := service.Run(context.Background(), "doc.pdf", true)
	require.NoError(t, err)

	// Old entries are dropped only after embedding succeeded
	assert.Equal(t, []string{"clear", "upsert"}, store.ops)
	assert.Len(t, store.upserted, 3)
}

func TestIngestLoaderFailure(t *testing.T) {
	_, chunker, embedder, store := ingestFixtures()
	loader := &stubLoader{err: fmt.Errorf("%w: pdf file not found", types.ErrInput)}
	service := rag.NewIngestionService(loader, chunker, embedder, store)

	_, err := service.Run(context.Background(), "missing.pdf", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInput))
	assert.Zero(t, embedder.docsCalls)
	assert.Empty(t, store.ops)
}

func TestIngestNoChunks(t *testing.T) {
	loader, _, embedder, store := ingestFixtures()
	service := rag.NewIngestionService(loader, &stubChunker{}, embedder, store)

	_, err := service.Run(context.Background(), "doc.pdf", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInput))
	assert.Zero(t, embedder.docsCalls)
}

func TestIngestEmbedFailureLeavesStoreUntouched(t *testing.T) {
	loader, chunker, _, store := ingestFixtures()
	embedder := &stubEmbedder{docsErr: fmt.Errorf("%w: quota exceeded", types.ErrProvider)}
	service := rag.NewIngestionService(loader, chunker, embedder, store)

	_, err := service.Run(context.Background(), "doc.pdf", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrProvider))

	// Neither clear nor upsert ran
	assert.Empty(t, store.ops)
}

func TestIngestVectorCountMismatch(t *testing.T) {
	loader, chunker, embedder, store := ingestFixtures()
	embedder.vectors = embedder.vectors[:2]
	service := rag.NewIngestionService(loader, chunker, embedder, store)

	_, err := service.Run(context.Background(), "doc.pdf", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrProvider))
	assert.Empty(t, store.ops)
}

func TestIngestUpsertFailure(t *testing.T) {
	loader, chunker, embedder, store := ingestFixtures()
	store.upsertErr = fmt.Errorf("%w: connection refused", types.ErrStore)
	service := rag.NewIngestionService(loader, chunker, embedder, store)

	_, err := service.Run(context.Background(), "doc.pdf", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrStore))
}

func TestIngestClearFailure(t *testing.T) {
	loader, chunker, embedder, store := ingestFixtures()
	store.clearErr = fmt.Errorf("%w: connection refused", types.ErrStore)
	service := rag.NewIngestionService(loader, chunker, embedder, store)

	_, err := service.Run(context.Background(), "doc.pdf", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrStore))
	assert.Equal(t, []string{"clear"}, store.ops)
}
