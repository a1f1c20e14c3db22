package rag

import (
	"strings"

	"pdfchat/internal/models"
)

// Fallback is the answer the prompt instructs the model to give when
// the retrieved context does not contain the information.
const Fallback = "Não tenho informações necessárias para responder sua pergunta."

const promptTemplate = `CONTEXTO:
{context}

REGRAS:
- Responda somente com base no CONTEXTO.
- Se a informação não estiver explicitamente no CONTEXTO, responda:
  "Não tenho informações necessárias para responder sua pergunta."
- Nunca invente ou use conhecimento externo.
- Nunca produza opiniões ou interpretações além do que está escrito.

PERGUNTA DO USUÁRIO:
{question}

RESPONDA A "PERGUNTA DO USUÁRIO"`

// BuildPrompt renders the retrieval results and the question into the
// grounding prompt. Results are joined in the order given, which is
// the ranking order from the store. The function is pure: equal inputs
// produce byte-identical prompts, and an empty result set still
// renders the full template around an empty context.
func BuildPrompt(results []models.SearchResult, question string) string {
	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Content)
	}

	return strings.NewReplacer(
		"{context}", strings.Join(texts, "\n\n"),
		"{question}", question,
	).Replace(promptTemplate)
}
