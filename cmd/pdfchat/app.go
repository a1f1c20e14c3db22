package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"pdfchat/internal/log"
	"pdfchat/internal/types"
	"pdfchat/pkg/chunker"
	"pdfchat/pkg/config"
	"pdfchat/pkg/llm"
	"pdfchat/pkg/pdf"
	"pdfchat/pkg/rag"
	"pdfchat/pkg/store"
)

// app bundles the wired pipeline for one command invocation.
type app struct {
	config    *config.Config
	store     *store.VectorStore
	ingestion *rag.IngestionService
	query     *rag.QueryService
}

func (a *app) Close() {
	a.store.Close()
}

// buildApp loads and validates the configuration, then wires the
// pipeline: provider client, vector store, splitter and the two
// services. onEmbedProgress, when non-nil, receives embedding progress
// during ingestion.
func buildApp(ctx context.Context, cmd *cli.Command, onEmbedProgress func(done, total int)) (*app, error) {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("%w: %s", types.ErrConfiguration, strings.Join(msgs, "; "))
	}

	level := cfg.LogLevel
	if cmd.Bool("debug") {
		level = "debug"
	}
	if err := log.Configure(level); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConfiguration, err)
	}

	splitter, err := chunker.New(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(ctx, llm.ClientConfig{
		Provider:             cfg.LLM.Provider,
		OpenAIAPIKey:         cfg.LLM.OpenAIAPIKey,
		OpenAIChatModel:      cfg.LLM.OpenAIChatModel,
		OpenAIEmbeddingModel: cfg.LLM.OpenAIEmbeddingModel,
		GoogleAPIKey:         cfg.LLM.GoogleAPIKey,
		GoogleChatModel:      cfg.LLM.GoogleChatModel,
		GoogleEmbeddingModel: cfg.LLM.GoogleEmbeddingModel,
	})
	if err != nil {
		return nil, err
	}

	dim := cfg.Database.VectorDim
	if dim == 0 {
		dim = llm.EmbeddingDimension(cfg.LLM.Provider, embeddingModel(cfg))
	}

	vectorStore, err := store.NewWithConfig(ctx, store.Config{
		ConnString: cfg.Database.URL,
		TableName:  cfg.Database.TableName,
		VectorDim:  dim,
		BatchSize:  cfg.Database.BatchSize,
	})
	if err != nil {
		return nil, err
	}

	embedder := llm.NewEmbedder(client, llm.EmbedderConfig{
		BatchSize:  cfg.Ingest.EmbedBatchSize,
		RPS:        cfg.Ingest.EmbedRPS,
		OnProgress: onEmbedProgress,
	})
	generator := llm.NewGenerator(client)

	return &app{
		config:    cfg,
		store:     vectorStore,
		ingestion: rag.NewIngestionService(pdf.NewLoader(), splitter, embedder, vectorStore),
		query:     rag.NewQueryService(embedder, vectorStore, generator, cfg.Search.K),
	}, nil
}

func embeddingModel(cfg *config.Config) string {
	if cfg.LLM.Provider == llm.ProviderGoogle {
		return cfg.LLM.GoogleEmbeddingModel
	}
	return cfg.LLM.OpenAIEmbeddingModel
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("chunks"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}
