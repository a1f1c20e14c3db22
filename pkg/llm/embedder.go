package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"pdfchat/internal/log"
	"pdfchat/internal/types"
)

// EmbedderClient is the slice of the provider client the embedder
// needs.
type EmbedderClient interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbedderConfig controls batching and pacing of embedding requests.
type EmbedderConfig struct {
	// BatchSize is the maximum number of texts sent per request.
	BatchSize int
	// RPS limits embedding requests per second.
	RPS float64
	// OnProgress, when set, is called after each batch with the number
	// of texts embedded so far and the total.
	OnProgress func(done, total int)
}

// Embedder turns text into vectors through the provider client,
// splitting large inputs into batches and pacing requests.
type Embedder struct {
	client  EmbedderClient
	config  EmbedderConfig
	limiter *rate.Limiter
}

// NewEmbedder creates a new Embedder with the given configuration.
func NewEmbedder(client EmbedderClient, config EmbedderConfig) *Embedder {
	if config.BatchSize <= 0 {
		config.BatchSize = 64
	}
	if config.RPS <= 0 {
		config.RPS = 2.0
	}

	return &Embedder{
		client:  client,
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(config.RPS), 1),
	}
}

// EmbedDocuments embeds texts in input order. A provider failure on
// any batch abandons the whole run; nothing partial is returned.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.config.BatchSize {
		end := start + e.config.BatchSize
		if end > len(texts) {
			end = len(texts)
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: waiting for rate limiter: %v", types.ErrProvider, err)
		}

		batch, err := e.client.CreateEmbedding(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("%w: embedding texts %d-%d: %v", types.ErrProvider, start, end-1, err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("%w: got %d embeddings for %d texts", types.ErrProvider, len(batch), end-start)
		}

		vectors = append(vectors, batch...)
		log.Debug("embedded batch", "done", len(vectors), "total", len(texts))

		if e.config.OnProgress != nil {
			e.config.OnProgress(len(vectors), len(texts))
		}
	}

	return vectors, nil
}

// EmbedQuery embeds a single query string.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: waiting for rate limiter: %v", types.ErrProvider, err)
	}

	vectors, err := e.client.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %v", types.ErrProvider, err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: got %d embeddings for one query", types.ErrProvider, len(vectors))
	}

	return vectors[0], nil
}
