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

func TestAsk(t *testing.T) {
	embedder := &stubEmbedder{queryVector: []float32{1, 0}}
	store := &stubStore{
		results: []models.SearchResult{
			{Entry: models.Entry{Content: "Paris é a capital da França."}, Distance: 0.1},
			{Entry: models.Entry{Content: "A França fica na Europa."}, Distance: 0.3},
		},
	}
	generator := &stubGenerator{answer: "A capital da França é Paris."}
	service := rag.NewQueryService(embedder, store, generator, 5)

	answer, err := service.Ask(context.Background(), "Qual é a capital da França?")
	require.NoError(t, err)

	assert.Equal(t, "A capital da França é Paris.", answer.Text)
	assert.Len(t, answer.Results, 2)

	assert.Equal(t, "Qual é a capital da França?", embedder.gotQuery)
	assert.Equal(t, []float32{1, 0}, store.gotVector)
	assert.Equal(t, 5, store.gotK)

	assert.Contains(t, generator.gotPrompt, "Paris é a capital da França.\n\nA França fica na Europa.")
	assert.Contains(t, generator.gotPrompt, "PERGUNTA DO USUÁRIO:\nQual é a capital da França?")
}

func TestAskTrimsQuestion(t *testing.T) {
	embedder := &stubEmbedder{queryVector: []float32{1}}
	service := rag.NewQueryService(embedder, &stubStore{}, &stubGenerator{answer: "ok"}, 5)

	_, err := service.Ask(context.Background(), "  pergunta  \n")
	require.NoError(t, err)
	assert.Equal(t, "pergunta", embedder.gotQuery)
}

func TestAskEmptyStoreStillGenerates(t *testing.T) {
	embedder := &stubEmbedder{queryVector: []float32{1, 0}}
	store := &stubStore{}
	generator := &stubGenerator{answer: rag.Fallback}
	service := rag.NewQueryService(embedder, store, generator, 10)

	answer, err := service.Ask(context.Background(), "Qual é a capital da França?")
	require.NoError(t, err)

	assert.Equal(t, 1, generator.calls)
	assert.Contains(t, generator.gotPrompt, "CONTEXTO:\n\n\nREGRAS:")
	assert.Equal(t, rag.Fallback, answer.Text)
	assert.Empty(t, answer.Results)
}

func TestAskRejectsBlankQuestion(t *testing.T) {
	embedder := &stubEmbedder{}
	service := rag.NewQueryService(embedder, &stubStore{}, &stubGenerator{}, 5)

	for _, question := range []string{"", "   ", "\n\t"} {
		_, err := service.Ask(context.Background(), question)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrInput))
	}
	assert.Zero(t, embedder.queryCalls)
}

func TestAskDefaultK(t *testing.T) {
	store := &stubStore{}
	service := rag.NewQueryService(&stubEmbedder{queryVector: []float32{1}}, store, &stubGenerator{answer: "ok"}, 0)

	_, err := service.Ask(context.Background(), "pergunta")
	require.NoError(t, err)
	assert.Equal(t, 10, store.gotK)
}

func TestAskEmbedFailure(t *testing.T) {
	embedder := &stubEmbedder{queryErr: fmt.Errorf("%w: timeout", types.ErrProvider)}
	store := &stubStore{}
	generator := &stubGenerator{}
	service := rag.NewQueryService(embedder, store, generator, 5)

	_, err := service.Ask(context.Background(), "pergunta")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrProvider))
	assert.Empty(t, store.ops)
	assert.Zero(t, generator.calls)
}

func TestAskSearchFailure(t *testing.T) {
	store := &stubStore{searchErr: fmt.Errorf("%w: connection reset", types.ErrStore)}
	generator := &stubGenerator{}
	service := rag.NewQueryService(&stubEmbedder{queryVector: []float32{1}}, store, generator, 5)

	_, err := service.Ask(context.Background(), "pergunta")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrStore))
	assert.Zero(t, generator.calls)
}

func TestAskGeneratorFailure(t *testing.T) {
	generator := &stubGenerator{err: fmt.Errorf("%w: model overloaded", types.ErrProvider)}
	service := rag.NewQueryService(&stubEmbedder{queryVector: []float32{1}}, &stubStore{}, generator, 5)

	_, err := service.Ask(context.Background(), "pergunta")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrProvider))
}
