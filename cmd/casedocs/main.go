// Command casedocs scrapes, indexes and questions Kerala High Court cases.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/casedocs/internal/adapters/driven/ai"
	"github.com/custodia-labs/casedocs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/casedocs/internal/adapters/driven/storage/csvfile"
	"github.com/custodia-labs/casedocs/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/casedocs/internal/adapters/driving/cli"
	"github.com/custodia-labs/casedocs/internal/connectors/hckerala"
	"github.com/custodia-labs/casedocs/internal/core/ports/driven"
	"github.com/custodia-labs/casedocs/internal/core/services"
	"github.com/custodia-labs/casedocs/internal/logger"
	"github.com/custodia-labs/casedocs/internal/normalisers/pdf"
	"github.com/custodia-labs/casedocs/internal/postprocessors/chunker"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(func(configPath string) (*cli.Services, error) {
		return bootstrap(ctx, configPath)
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func bootstrap(ctx context.Context, configPath string) (*cli.Services, error) {
	baseDir, err := file.DefaultDir()
	if err != nil {
		return nil, err
	}

	var config *file.ConfigStore
	if configPath != "" {
		config, err = file.NewConfigStoreAt(configPath)
	} else {
		config, err = file.NewConfigStore(baseDir)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	settings := file.LoadSettings(config, baseDir)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	client, err := hckerala.NewClient(hckerala.Config{
		BaseURL:           settings.Portal.BaseURL,
		Timeout:           settings.Portal.Timeout,
		RequestsPerSecond: settings.Portal.RequestsPerSecond,
		UserAgent:         settings.Portal.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("portal client: %w", err)
	}
	portal := hckerala.NewPortal(client)

	aiResult := ai.Init(ctx, settings.AI)
	for _, w := range aiResult.Warnings {
		logger.Debug("ai: %s", w)
	}

	store, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		aiResult.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}
	collections := store.CollectionStore(aiResult.EmbeddingService)
	collection, err := collections.GetOrCreate(ctx, settings.Collection)
	if err != nil {
		aiResult.Close()
		store.Close()
		return nil, fmt.Errorf("open collection %s: %w", settings.Collection, err)
	}

	prompts, err := file.NewPromptStore(filepath.Join(baseDir, "prompts"))
	if err != nil {
		aiResult.Close()
		store.Close()
		return nil, fmt.Errorf("prompts: %w", err)
	}

	splitter := chunker.New()
	extractor := pdf.New(settings.OCR.Language, pdf.WithDPI(float64(settings.OCR.DPI)))
	composer := services.NewComposer(splitter)

	s := &cli.Services{
		Settings:    settings,
		Config:      config,
		Collections: collections,
		Scrape:      services.NewScrapeService(portal),
		Ingest: services.NewIngestService(
			hckerala.NewResolver(client),
			hckerala.NewFetcher(client),
			extractor,
			composer,
			settings.Storage.DownloadsDir,
		),
		Search:   services.NewSearchService(collection),
		Document: services.NewDocumentService(collection),
		OpenCases: func(path string) (driven.CaseSource, error) {
			return csvfile.Open(path)
		},
		CreateCases: func(path string) (driven.CaseSink, error) {
			return csvfile.Create(path)
		},
		LiveCases: func(caseTypes []string, years []int, limit int) (driven.CaseSource, error) {
			return hckerala.NewLiveSource(portal, caseTypes, years, limit)
		},
		Close: func() error {
			aiResult.Close()
			return collections.Close()
		},
	}

	if aiResult.LLMService != nil {
		s.QnA = services.NewQnAService(
			collection,
			aiResult.LLMService,
			aiResult.EmbeddingService,
			prompts,
			splitter,
			settings.AI.Temperature,
		)
	}
	return s, nil
}
