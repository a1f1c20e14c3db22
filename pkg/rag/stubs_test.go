package rag_test

import (
	"context"

	"pdfchat/internal/models"
)

type stubLoader struct {
	doc *models.Document
	err error
}

func (s *stubLoader) Load(ctx context.Context, path string) (*models.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

type stubChunker struct {
	chunks []models.Chunk
}

func (s *stubChunker) Split(doc *models.Document) []models.Chunk {
	return s.chunks
}

type stubEmbedder struct {
	vectors     [][]float32
	queryVector []float32
	docsErr     error
	queryErr    error
	gotTexts    []string
	gotQuery    string
	docsCalls   int
	queryCalls  int
}

func (s *stubEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	s.docsCalls++
	if s.docsErr != nil {
		return nil, s.docsErr
	}
	s.gotTexts = texts
	return s.vectors, nil
}

func (s *stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	s.queryCalls++
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	s.gotQuery = text
	return s.queryVector, nil
}

type stubStore struct {
	ops       []string
	upserted  []models.Entry
	results   []models.SearchResult
	upsertErr error
	clearErr  error
	searchErr error
	gotVector []float32
	gotK      int
}

func (s *stubStore) Upsert(ctx context.Context, entries []models.Entry) error {
	s.ops = append(s.ops, "upsert")
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserted = append(s.upserted, entries...)
	return nil
}

func (s *stubStore) Search(ctx context.Context, embedding []float32, k int) ([]models.SearchResult, error) {
	s.ops = append(s.ops, "search")
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	s.gotVector = embedding
	s.gotK = k
	return s.results, nil
}

func (s *stubStore) Clear(ctx context.Context) error {
	s.ops = append(s.ops, "clear")
	return s.clearErr
}

func (s *stubStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.upserted)), nil
}

func (s *stubStore) Health(ctx context.Context) error {
	return nil
}

func (s *stubStore) Close() {}

type stubGenerator struct {
	answer    string
	err       error
	gotPrompt string
	calls     int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	s.gotPrompt = prompt
	return s.answer, nil
}
