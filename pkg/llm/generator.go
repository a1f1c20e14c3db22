package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"pdfchat/internal/types"
)

// Generator produces answers for fully assembled prompts. Generation
// runs at temperature zero.
type Generator struct {
	model llms.Model
}

// NewGenerator creates a new Generator over the given model.
func NewGenerator(model llms.Model) *Generator {
	return &Generator{model: model}
}

// Generate sends the prompt as a single completion request and returns
// the trimmed answer text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	answer, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("%w: generating answer: %v", types.ErrProvider, err)
	}

	return strings.TrimSpace(answer), nil
}
