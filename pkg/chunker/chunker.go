package chunker

import (
	"fmt"

	"pdfchat/internal/models"
	"pdfchat/internal/types"
)

// Chunker cuts document text into fixed-size windows with a fixed
// overlap between consecutive windows.
type Chunker struct {
	size    int
	overlap int
}

// New returns a Chunker producing windows of size runes, where each
// window after the first starts overlap runes before the end of the
// previous one.
func New(size, overlap int) (*Chunker, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", types.ErrConfiguration, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap must be non-negative, got %d", types.ErrConfiguration, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap %d must be less than chunk size %d", types.ErrConfiguration, overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Split cuts the document into chunks. Offsets count runes, not bytes,
// so multi-byte text never splits inside a character. The final chunk
// may be shorter than the window size. An empty document yields no
// chunks.
func (c *Chunker) Split(doc *models.Document) []models.Chunk {
	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []models.Chunk
	start := 0
	for {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, models.Chunk{
			Source: doc.Source,
			Index:  len(chunks),
			Start:  start,
			End:    end,
			Text:   string(runes[start:end]),
		})

		if end == len(runes) {
			break
		}
		start = end - c.overlap
	}

	return chunks
}
