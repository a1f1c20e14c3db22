package types

import (
	"context"

	"pdfchat/internal/models"
)

// Core interfaces. Each pipeline stage is a small interface; cmd
// wires the concrete implementations.

// Loader extracts the text of a PDF file.
type Loader interface {
	Load(ctx context.Context, path string) (*models.Document, error)
}

// Chunker splits a document into overlapping windows.
type Chunker interface {
	Split(doc *models.Document) []models.Chunk
}

// Embedder turns text into vectors via the configured provider.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Generator produces an answer for a fully assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VectorStore persists embedded chunks and answers similarity queries.
type VectorStore interface {
	Upsert(ctx context.Context, entries []models.Entry) error
	Search(ctx context.Context, embedding []float32, k int) ([]models.SearchResult, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	Health(ctx context.Context) error
	Close()
}
