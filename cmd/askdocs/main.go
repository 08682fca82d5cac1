// Command askdocs is a document question-answering CLI. It ingests
// documents into owner-scoped storage and answers questions grounded
// in their content.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ferrule-labs/askdocs/internal/adapters/driven/ai"
	configfile "github.com/ferrule-labs/askdocs/internal/adapters/driven/config/file"
	"github.com/ferrule-labs/askdocs/internal/adapters/driven/embedding"
	"github.com/ferrule-labs/askdocs/internal/adapters/driven/storage/memory"
	"github.com/ferrule-labs/askdocs/internal/adapters/driven/storage/sqlite"
	"github.com/ferrule-labs/askdocs/internal/adapters/driving/cli"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
	"github.com/ferrule-labs/askdocs/internal/core/services"
	"github.com/ferrule-labs/askdocs/internal/extractors"
	"github.com/ferrule-labs/askdocs/internal/postprocessors"
)

// version is overridden at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for API keys in development.
	_ = godotenv.Load() //nolint:errcheck // Missing .env is fine

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Storage backend.
	var (
		docStore    driven.DocumentStore
		folderStore driven.FolderStore
	)
	switch settings.Storage.Backend {
	case "memory":
		docStore = memory.NewDocumentStore()
		folderStore = memory.NewFolderStore()
	default:
		store, err := sqlite.NewStore(settings.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close() //nolint:errcheck // Best-effort close on exit
		docStore = store.DocumentStore()
		folderStore = store.FolderStore()
	}

	// AI providers are optional: a failure degrades the pipeline but
	// never blocks the CLI.
	embedProvider, err := ai.CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if embedProvider != nil {
		defer embedProvider.Close() //nolint:errcheck // Best-effort close on exit
	}

	llmService, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if llmService != nil {
		defer llmService.Close() //nolint:errcheck // Best-effort close on exit
	}

	embedder := embedding.New(embedProvider, settings.Embedding.Dimensions)

	// Extraction and chunking.
	extractorRegistry := extractors.NewRegistry()
	extractors.RegisterDefaults(extractorRegistry)

	pipeline, err := buildPipeline(settingsService)
	if err != nil {
		return err
	}

	// Core services.
	askSvc := services.NewAskService(docStore, embedder, llmService, settings.Retrieval)
	if promptStore, err := configfile.NewPromptStore(""); err == nil {
		askSvc.SetPromptStore(promptStore)
	} else {
		fmt.Fprintf(os.Stderr, "Warning: prompt store unavailable, using built-in prompts: %v\n", err)
	}

	cli.SetVersion(version)
	cli.SetIngestService(services.NewIngestService(docStore, extractorRegistry, pipeline, embedder))
	cli.SetAskService(askSvc)
	cli.SetDocumentService(services.NewDocumentService(docStore))
	cli.SetFolderService(services.NewFolderService(folderStore, docStore))
	cli.SetSettingsService(settingsService)

	return cli.Execute()
}

// buildPipeline assembles the post-processing pipeline from the
// configured processor list.
func buildPipeline(settingsService *services.SettingsService) (*postprocessors.Pipeline, error) {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	cfg := settingsService.GetPipelineConfig()
	pipeline := postprocessors.NewPipeline()
	for _, name := range cfg.Processors {
		processor, err := registry.Build(name, cfg.ProcessorConfigs[name])
		if err != nil {
			return nil, fmt.Errorf("failed to build pipeline: %w", err)
		}
		pipeline.Add(processor)
	}
	return pipeline, nil
}
