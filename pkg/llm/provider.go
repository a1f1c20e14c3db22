package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"

	"pdfchat/internal/log"
	"pdfchat/internal/types"
)

const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
)

// Client is the capability surface both providers share: chat
// completion plus embedding creation.
type Client interface {
	llms.Model
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// ClientConfig selects the provider and carries its credentials and
// model names. Only the fields for the selected provider are used.
type ClientConfig struct {
	Provider             string
	OpenAIAPIKey         string
	OpenAIChatModel      string
	OpenAIEmbeddingModel string
	GoogleAPIKey         string
	GoogleChatModel      string
	GoogleEmbeddingModel string
}

// NewClient builds the client for the configured provider. The
// provider choice happens here, once; everything downstream talks to
// the Client interface.
func NewClient(ctx context.Context, config ClientConfig) (Client, error) {
	switch config.Provider {
	case ProviderOpenAI:
		log.Debug("initializing provider", "provider", ProviderOpenAI,
			"chat_model", config.OpenAIChatModel, "embedding_model", config.OpenAIEmbeddingModel)
		client, err := openai.New(
			openai.WithToken(config.OpenAIAPIKey),
			openai.WithModel(config.OpenAIChatModel),
			openai.WithEmbeddingModel(config.OpenAIEmbeddingModel),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: initializing openai client: %v", types.ErrConfiguration, err)
		}
		return client, nil

	case ProviderGoogle:
		log.Debug("initializing provider", "provider", ProviderGoogle,
			"chat_model", config.GoogleChatModel, "embedding_model", config.GoogleEmbeddingModel)
		client, err := googleai.New(ctx,
			googleai.WithAPIKey(config.GoogleAPIKey),
			googleai.WithDefaultModel(config.GoogleChatModel),
			googleai.WithDefaultEmbeddingModel(config.GoogleEmbeddingModel),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: initializing google client: %v", types.ErrConfiguration, err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("%w: unknown provider %q", types.ErrConfiguration, config.Provider)
	}
}

// EmbeddingDimension returns the vector width of a known embedding
// model, falling back to 1536 for unrecognized OpenAI models.
func EmbeddingDimension(provider, model string) int {
	if provider == ProviderGoogle {
		return 768
	}
	switch model {
	case "text-embedding-3-large":
		return 3072
	default:
		return 1536
	}
}
