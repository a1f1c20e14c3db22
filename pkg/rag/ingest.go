package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pdfchat/internal/log"
	"pdfchat/internal/models"
	"pdfchat/internal/types"
)

// IngestionService runs the ingestion pipeline: load a PDF, chunk its
// text, embed the chunks and persist them.
type IngestionService struct {
	loader   types.Loader
	chunker  types.Chunker
	embedder types.Embedder
	store    types.VectorStore
}

// NewIngestionService creates a new IngestionService over the given
// pipeline stages.
func NewIngestionService(loader types.Loader, chunker types.Chunker, embedder types.Embedder, store types.VectorStore) *IngestionService {
	return &IngestionService{
		loader:   loader,
		chunker:  chunker,
		embedder: embedder,
		store:    store,
	}
}

// Run ingests the PDF at path. With clearFirst set, previously stored
// entries are removed right before the new ones are written, so a
// provider failure during embedding leaves the old entries in place.
func (s *IngestionService) Run(ctx context.Context, path string, clearFirst bool) (*models.IngestStats, error) {
	started := time.Now()

	log.Info("loading pdf", "path", path)
	doc, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	chunks := s.chunker.Split(doc)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document %s produced no chunks", types.ErrInput, doc.Source)
	}
	log.Info("document chunked", "source", doc.Source, "pages", doc.Pages, "chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d chunks", types.ErrProvider, len(vectors), len(chunks))
	}

	if clearFirst {
		log.Info("clearing previously stored entries")
		if err := s.store.Clear(ctx); err != nil {
			return nil, err
		}
	}

	entries := make([]models.Entry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = models.Entry{
			ID:         uuid.NewString(),
			Source:     chunk.Source,
			ChunkIndex: chunk.Index,
			Content:    chunk.Text,
			Embedding:  vectors[i],
		}
	}

	if err := s.store.Upsert(ctx, entries); err != nil {
		return nil, err
	}

	stats := buildStats(doc, chunks, time.Since(started))
	log.Info("ingestion complete", "chunks", stats.Chunks, "elapsed", stats.Elapsed.String())

	return stats, nil
}

func buildStats(doc *models.Document, chunks []models.Chunk, elapsed time.Duration) *models.IngestStats {
	stats := &models.IngestStats{
		Source:  doc.Source,
		Pages:   doc.Pages,
		Chunks:  len(chunks),
		Elapsed: elapsed,
	}

	total := 0
	for i, chunk := range chunks {
		size := chunk.End - chunk.Start
		total += size
		if i == 0 || size < stats.MinChunk {
			stats.MinChunk = size
		}
		if size > stats.MaxChunk {
			stats.MaxChunk = size
		}
	}
	stats.AvgChunk = total / len(chunks)

	return stats
}
