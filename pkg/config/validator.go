package config

import (
	"fmt"
	"regexp"
	"strings"
)

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var logLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate LLM config
	switch c.LLM.Provider {
	case "openai":
		if c.LLM.OpenAIAPIKey == "" {
			errors = append(errors, ValidationError{
				Field:   "llm.openai_api_key",
				Message: "OPENAI_API_KEY is required when the provider is openai",
			})
		} else if !strings.HasPrefix(c.LLM.OpenAIAPIKey, "sk-") {
			errors = append(errors, ValidationError{
				Field:   "llm.openai_api_key",
				Message: "OpenAI API keys start with sk-",
			})
		}
	case "google":
		if c.LLM.GoogleAPIKey == "" {
			errors = append(errors, ValidationError{
				Field:   "llm.google_api_key",
				Message: "GOOGLE_API_KEY is required when the provider is google",
			})
		} else if len(c.LLM.GoogleAPIKey) < 30 {
			errors = append(errors, ValidationError{
				Field:   "llm.google_api_key",
				Message: "google API key looks truncated",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "llm.provider",
			Message: fmt.Sprintf("unknown provider %q, must be openai or google", c.LLM.Provider),
		})
	}

	// Validate Database config
	if !strings.HasPrefix(c.Database.URL, "postgres://") && !strings.HasPrefix(c.Database.URL, "postgresql://") {
		errors = append(errors, ValidationError{
			Field:   "database.url",
			Message: "connection string must start with postgres:// or postgresql://",
		})
	}

	if !identPattern.MatchString(c.Database.TableName) {
		errors = append(errors, ValidationError{
			Field:   "database.table_name",
			Message: fmt.Sprintf("invalid table name %q", c.Database.TableName),
		})
	}

	if c.Database.VectorDim < 0 {
		errors = append(errors, ValidationError{
			Field:   "database.vector_dim",
			Message: "vector_dim must be non-negative, 0 derives it from the embedding model",
		})
	}

	if c.Database.BatchSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.batch_size",
			Message: "batch_size must be positive",
		})
	}

	// Validate Ingest config
	if c.Ingest.PDFPath == "" {
		errors = append(errors, ValidationError{
			Field:   "ingest.pdf_path",
			Message: "pdf_path is required",
		})
	}

	if c.Ingest.ChunkSize < 100 {
		errors = append(errors, ValidationError{
			Field:   "ingest.chunk_size",
			Message: "chunk_size must be at least 100",
		})
	}

	if c.Ingest.ChunkOverlap < 0 || c.Ingest.ChunkOverlap >= c.Ingest.ChunkSize {
		errors = append(errors, ValidationError{
			Field:   "ingest.chunk_overlap",
			Message: "chunk_overlap must be non-negative and less than chunk_size",
		})
	}

	if c.Ingest.EmbedBatchSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "ingest.embed_batch_size",
			Message: "embed_batch_size must be positive",
		})
	}

	if c.Ingest.EmbedRPS <= 0 {
		errors = append(errors, ValidationError{
			Field:   "ingest.embed_rps",
			Message: "embed_rps must be positive",
		})
	}

	// Validate Search config
	if c.Search.K < 1 {
		errors = append(errors, ValidationError{
			Field:   "search.k",
			Message: "k must be positive",
		})
	}

	if !logLevels[strings.ToLower(c.LogLevel)] {
		errors = append(errors, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("unknown log level %q", c.LogLevel),
		})
	}

	return errors
}
