package rag

import (
	"context"
	"fmt"
	"strings"

	"pdfchat/internal/log"
	"pdfchat/internal/models"
	"pdfchat/internal/types"
)

// QueryService answers questions grounded in the stored document: it
// embeds the question, retrieves the nearest chunks and asks the
// generator with the assembled prompt.
type QueryService struct {
	embedder  types.Embedder
	store     types.VectorStore
	generator types.Generator
	k         int
}

// Answer is a generated answer together with the chunks it was
// grounded on.
type Answer struct {
	Text    string
	Results []models.SearchResult
}

// NewQueryService creates a new QueryService retrieving up to k chunks
// per question. A non-positive k falls back to 10.
func NewQueryService(embedder types.Embedder, store types.VectorStore, generator types.Generator, k int) *QueryService {
	if k < 1 {
		k = 10
	}
	return &QueryService{
		embedder:  embedder,
		store:     store,
		generator: generator,
		k:         k,
	}
}

// Ask runs the full retrieval and generation round for one question.
// An empty store is not an error: the generator is still called, with
// an empty context, and the prompt's rules lead it to the fallback
// answer.
func (s *QueryService) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question must not be empty", types.ErrInput)
	}

	vector, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, err
	}

	results, err := s.store.Search(ctx, vector, s.k)
	if err != nil {
		return nil, err
	}
	log.Debug("retrieved context", "results", len(results), "k", s.k)

	prompt := BuildPrompt(results, question)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Text:    text,
		Results: results,
	}, nil
}
