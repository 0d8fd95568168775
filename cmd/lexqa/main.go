package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/lexqa/internal/adapters/driven/ai"
	"github.com/custodia-labs/lexqa/internal/adapters/driven/classifier"
	"github.com/custodia-labs/lexqa/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexqa/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexqa/internal/adapters/driving/cli"
	"github.com/custodia-labs/lexqa/internal/core/services"
	"github.com/custodia-labs/lexqa/internal/logger"
	"github.com/custodia-labs/lexqa/internal/normalisers"
	"github.com/custodia-labs/lexqa/internal/postprocessors/chunker"
	"github.com/custodia-labs/lexqa/internal/postprocessors/refine"
	"github.com/custodia-labs/lexqa/internal/ranking"
)

// version is set at build time via -ldflags "-X main.version=...".
var version string

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the config file and environment still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configDir, err := file.DefaultDir()
	if err != nil {
		return report(err)
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return report(fmt.Errorf("open config: %w", err))
	}

	promptStore, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return report(fmt.Errorf("open prompts: %w", err))
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return report(fmt.Errorf("load settings: %w", err))
	}

	aiResult := ai.Initialise(&settings.LLM)
	defer aiResult.Close()
	for _, w := range aiResult.Warnings {
		logger.Warn("%s", w)
	}
	llm := aiResult.LLMService

	cache := memory.NewDocumentCache(memory.WithRetention(settings.Cache.Retention))
	cache.Start(ctx, settings.Cache.SweepInterval)
	defer cache.Close() //nolint:errcheck

	chunks := chunker.New(
		chunker.WithChunkSize(settings.Chunker.ChunkSize),
		chunker.WithOverlap(settings.Chunker.Overlap),
		chunker.WithMaxChunks(settings.Chunker.MaxChunks),
		chunker.WithParallel(settings.Chunker.Parallel),
	)

	docClassifier := classifier.New(llm)
	docClassifier.SetPromptStore(promptStore)

	ingestOpts := []services.IngestOption{services.WithClassifier(docClassifier)}
	if llm != nil {
		refiner := refine.New(llm)
		refiner.SetPromptStore(promptStore)
		ingestOpts = append(ingestOpts, services.WithRefiner(refiner, settings.Refine.MaxChunks))
	}

	ingestService := services.NewIngestService(normalisers.NewDefaultRegistry(), chunks, cache, ingestOpts...)

	queryService := services.NewQueryService(cache, llm,
		services.WithTopK(settings.Query.TopK),
		services.WithAnswerTimeout(settings.LLM.Timeout),
		services.WithRanker(ranking.NewDefault()),
	)
	queryService.SetPromptStore(promptStore)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Ingest:     ingestService,
		Query:      queryService,
		Validation: services.NewValidationService(cache, docClassifier),
		Settings:   settingsService,
		LLM:        llm,
	})

	// cobra prints command errors itself
	return cli.Execute(ctx)
}

func report(err error) error {
	fmt.Fprintf(os.Stderr, "lexqa: %v\n", err)
	return err
}
