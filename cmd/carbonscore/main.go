// Command carbonscore is a scope 1 carbon scoring and ADEME
// documentation assistant. It wires the storage, API and AI adapters
// into the core services and hands control to the CLI.
package main

import (
	"fmt"
	"os"

	"github.com/carbonscore-labs/carbonscore-cli/internal/adapters/driven/ai"
	"github.com/carbonscore-labs/carbonscore-cli/internal/adapters/driven/config/file"
	"github.com/carbonscore-labs/carbonscore-cli/internal/adapters/driven/datafair"
	"github.com/carbonscore-labs/carbonscore-cli/internal/adapters/driven/storage/sqlite"
	"github.com/carbonscore-labs/carbonscore-cli/internal/adapters/driving/cli"
	"github.com/carbonscore-labs/carbonscore-cli/internal/connectors"
	"github.com/carbonscore-labs/carbonscore-cli/internal/connectors/ademe"
	"github.com/carbonscore-labs/carbonscore-cli/internal/connectors/filesystem"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/services"
	"github.com/carbonscore-labs/carbonscore-cli/internal/logger"
	"github.com/carbonscore-labs/carbonscore-cli/internal/normalisers"
	"github.com/carbonscore-labs/carbonscore-cli/internal/normalisers/html"
	"github.com/carbonscore-labs/carbonscore-cli/internal/normalisers/markdown"
	"github.com/carbonscore-labs/carbonscore-cli/internal/normalisers/pdf"
	"github.com/carbonscore-labs/carbonscore-cli/internal/normalisers/plaintext"
	"github.com/carbonscore-labs/carbonscore-cli/internal/postprocessors"
	"github.com/carbonscore-labs/carbonscore-cli/internal/postprocessors/chunker"
	"github.com/carbonscore-labs/carbonscore-cli/internal/postprocessors/scrub"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Configuration and settings.
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	// Metadata, index and article storage.
	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	// Optional AI services. Failures degrade to text-only behaviour
	// instead of blocking the CLI.
	var embeddingService driven.EmbeddingService
	if settingsService.RequiresEmbedding() {
		embeddingService, err = ai.CreateEmbeddingService(&settings.Embedding)
		if err != nil {
			logger.Warn("embedding service unavailable: %v", err)
			embeddingService = nil
		}
	}

	var llmService driven.LLMService
	if settingsService.RequiresLLM() || settings.LLM.Provider != "" {
		llmService, err = ai.CreateLLMService(&settings.LLM)
		if err != nil {
			logger.Warn("llm service unavailable: %v", err)
			llmService = nil
		}
	}
	defer func() {
		if embeddingService != nil {
			embeddingService.Close()
		}
		if llmService != nil {
			llmService.Close()
		}
	}()

	// ADEME open-data and librairie clients.
	dataFairClient := datafair.NewClient(datafair.Config{})
	ademeClient := ademe.NewClient()

	// Normalisation and chunking.
	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(html.New())
	registry.Register(markdown.New())
	registry.Register(pdf.New())

	pipeline := postprocessors.NewPipeline(scrub.New(), chunker.New())

	// Connector factory.
	factory := connectors.NewFactory()
	factory.Register("filesystem", func(source domain.Source) (driven.Connector, error) {
		return filesystem.New(source.ID, source.Config["path"]), nil
	})
	factory.Register("ademe", func(source domain.Source) (driven.Connector, error) {
		return ademe.NewConnector(source, ademeClient)
	})

	// Core services.
	searchService := services.NewSearchService(
		store.DocumentStore(),
		store.SearchEngine(),
		store.VectorIndex(),
		embeddingService,
		llmService,
	)
	searchService.SetSourceStore(store.SourceStore())

	connectorRegistry := services.NewConnectorRegistry()

	sourceService := services.NewSourceService(
		store.SourceStore(),
		store.SyncStateStore(),
		store.DocumentStore(),
	)
	sourceService.SetConnectorRegistry(connectorRegistry)

	documentService := services.NewDocumentService(
		store.DocumentStore(),
		store.SourceStore(),
		store.ExclusionStore(),
		connectorRegistry,
	)

	syncOrchestrator := services.NewSyncOrchestrator(
		store.SourceStore(),
		store.SyncStateStore(),
		store.DocumentStore(),
		store.ExclusionStore(),
		factory,
		registry,
		pipeline,
		store.SearchEngine(),
		store.VectorIndex(),
		embeddingService,
	)

	scoreService := services.NewScoreService(
		dataFairClient,
		dataFairClient,
		store.AssessmentStore(),
	)

	harvestService := services.NewHarvestService(
		ademe.NewFeedClient(ademeClient),
		ademe.NewScanner(ademeClient),
		ademe.NewDownloader(ademeClient),
		store.ArticleStore(),
		store.PDFLinkStore(),
		settingsService,
	)

	assistantService := services.NewAssistantService(searchService, llmService)

	// User-customisable prompt templates.
	promptStore, err := file.NewPromptStore("")
	if err != nil {
		logger.Warn("prompt store unavailable: %v", err)
	} else {
		assistantService.SetPromptStore(promptStore)
		if aware, ok := llmService.(driven.PromptStoreAware); ok {
			aware.SetPromptStore(promptStore)
		}
	}

	schedulerConfig := settingsService.GetSchedulerConfig()
	scheduler := services.NewScheduler(
		schedulerConfig,
		store.SchedulerStore(),
		syncOrchestrator,
		harvestService,
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search:            searchService,
		Source:            sourceService,
		Document:          documentService,
		Sync:              syncOrchestrator,
		Settings:          settingsService,
		ConnectorRegistry: connectorRegistry,
		Score:             scoreService,
		Harvest:           harvestService,
		Assistant:         assistantService,
		Scheduler:         scheduler,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		SearchService:    searchService,
		SourceService:    sourceService,
		SyncOrchestrator: syncOrchestrator,
		DocumentService:  documentService,
		SettingsService:  settingsService,
		Scheduler:        scheduler,
		SchedulerConfig:  schedulerConfig,
	})

	return cli.Execute()
}
