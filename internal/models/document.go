package models

import "time"

// Document is the extracted text of a single PDF file.
type Document struct {
	Source string
	Text   string
	Pages  int
}

// Chunk is a window of a document's text. Start and End are rune
// offsets into the original text, with End exclusive.
type Chunk struct {
	Source string
	Index  int
	Start  int
	End    int
	Text   string
}

// Entry is a chunk paired with its embedding, as persisted in the
// vector store.
type Entry struct {
	ID         string
	Source     string
	ChunkIndex int
	Content    string
	Embedding  []float32
}

// SearchResult is an entry returned by a similarity search together
// with its cosine distance to the query. Lower distance means closer.
type SearchResult struct {
	Entry
	Distance float64
}

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	Source   string
	Pages    int
	Chunks   int
	MinChunk int
	MaxChunk int
	AvgChunk int
	Elapsed  time.Duration
}
