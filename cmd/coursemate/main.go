// Command coursemate answers questions about course materials. It
// indexes documents per course into an embedded chunk store and
// retrieves the most relevant passages to ground each answer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clarity-labs/coursemate-cli/internal/adapters/driven/ai"
	configfile "github.com/clarity-labs/coursemate-cli/internal/adapters/driven/config/file"
	"github.com/clarity-labs/coursemate-cli/internal/adapters/driven/oauth"
	"github.com/clarity-labs/coursemate-cli/internal/adapters/driven/storage/sqlite"
	"github.com/clarity-labs/coursemate-cli/internal/adapters/driving/cli"
	"github.com/clarity-labs/coursemate-cli/internal/connectors"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
	"github.com/clarity-labs/coursemate-cli/internal/core/services"
	"github.com/clarity-labs/coursemate-cli/internal/extractors"
	"github.com/clarity-labs/coursemate-cli/internal/postprocessors"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get home directory: %w", err)
	}
	configDir := filepath.Join(home, ".coursemate")

	configStore, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	promptStore, err := configfile.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Unconfigured or broken AI providers disable the commands that need
	// them; course and document management stay usable regardless.
	embedder, err := ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: embedding provider unavailable: %v\n", err)
	}
	if embedder != nil {
		defer embedder.Close()
	}

	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM provider unavailable: %v\n", err)
	}
	if llm != nil {
		defer llm.Close()
	}

	googleTokens, err := oauth.NewFileTokenProvider(oauth.FileTokenProviderConfig{
		Path:         filepath.Join(configDir, oauth.DefaultTokenFile),
		TokenURL:     oauth.GoogleTokenURL,
		ClientID:     configStore.GetString("google.client_id"),
		ClientSecret: configStore.GetString("google.client_secret"),
	})
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}

	pipeline, err := buildPipeline(settingsService)
	if err != nil {
		return fmt.Errorf("build processing pipeline: %w", err)
	}

	registry := extractors.NewRegistry()
	extractors.RegisterDefaults(registry)

	documentService := services.NewDocumentService(store.DocumentStore(), store.ChunkStore(), store.CourseStore())

	svcs := cli.Services{
		Course:   services.NewCourseService(store.CourseStore()),
		Document: documentService,
		Settings: settingsService,
		Connect:  services.NewConnectService(configStore, googleTokens, oauth.NewBrowserFlow()),
	}

	if embedder != nil {
		processing := services.NewProcessingOrchestrator(
			store.DocumentStore(), store.ChunkStore(), registry, pipeline, embedder)
		svcs.Processing = processing

		sources := connectors.NewFactory(configStore, googleTokens)
		svcs.Import = services.NewImportService(store.CourseStore(), documentService, processing, sources.New)

		if llm != nil {
			svcs.Ask = services.NewAskService(
				store.CourseStore(), store.DocumentStore(), store.ChunkStore(), embedder, llm, promptStore)
		}
	}
	if llm != nil {
		svcs.Study = services.NewStudyService(
			store.DocumentStore(), store.ChunkStore(), store.StudyStore(), llm, promptStore)
	}

	cli.SetVersion(version)
	cli.SetServices(svcs)

	return cli.Execute()
}

// buildPipeline assembles the post-processor chain from settings. The
// chunker is the only default processor; its size and overlap can be
// overridden in config.
func buildPipeline(settings *services.SettingsService) (driven.PostProcessorPipeline, error) {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	cfg := settings.GetPipelineConfig()

	processors := make([]driven.PostProcessor, 0, len(cfg.Processors))
	for _, name := range cfg.Processors {
		p, err := registry.Build(name, cfg.GetProcessorConfig(name))
		if err != nil {
			return nil, fmt.Errorf("build processor %q: %w", name, err)
		}
		processors = append(processors, p)
	}

	return postprocessors.NewPipeline(processors...), nil
}
