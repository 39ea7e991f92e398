package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/idimitrov/docsorter/internal/config"
	"github.com/idimitrov/docsorter/internal/core/ports"
	"github.com/idimitrov/docsorter/internal/core/usecase"
	"github.com/idimitrov/docsorter/internal/infrastructure/archive/localfs"
	pdfextract "github.com/idimitrov/docsorter/internal/infrastructure/extractor/pdf"
	"github.com/idimitrov/docsorter/internal/infrastructure/llm/ollama"
	"github.com/idimitrov/docsorter/internal/infrastructure/queue/nats"
	"github.com/idimitrov/docsorter/internal/infrastructure/repository/postgres"
	"github.com/idimitrov/docsorter/internal/infrastructure/resilience"
	"github.com/idimitrov/docsorter/internal/observability/logging"
	"github.com/idimitrov/docsorter/internal/observability/metrics"
	"github.com/idimitrov/docsorter/internal/poller"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.SorterMetrics
	Poller  *poller.Poller
	History ports.SortHistory

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger("docsorter", cfg.LogLevel)
	sorterMetrics := metrics.NewSorterMetrics("docsorter")

	archive, err := localfs.New(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("init archive: %w", err)
	}
	if err := archive.EnsureTree(cfg.TreeFirstYear, cfg.TreeLastYear); err != nil {
		return nil, fmt.Errorf("pre-create archive tree: %w", err)
	}
	logger.Info("archive tree initialized",
		"root", archive.Root(), "years", fmt.Sprintf("%d..%d", cfg.TreeFirstYear, cfg.TreeLastYear))

	extractor := pdfextract.NewExtractor()

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaModel, ollama.WithMaxRPS(cfg.ClassifyMaxRPS))
	classifier := ollama.NewClassifier(ollamaClient, executor)

	var closers []func()
	sortOpts := []usecase.SortOption{
		usecase.WithClassifyTimeout(cfg.ClassifyTimeout),
	}

	var history ports.SortHistory
	if cfg.HistoryDSN != "" {
		db, err := postgres.OpenDB(cfg.HistoryDSN)
		if err != nil {
			return nil, fmt.Errorf("open history db: %w", err)
		}
		repo := postgres.NewHistoryRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure history schema: %w", err)
		}
		history = repo
		sortOpts = append(sortOpts, usecase.WithSortHistory(repo))
		closers = append(closers, func() { _ = db.Close() })
	}

	if cfg.NATSURL != "" {
		publisher, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			runClosers(closers)
			return nil, fmt.Errorf("init event publisher: %w", err)
		}
		sortOpts = append(sortOpts, usecase.WithEventPublisher(publisher))
		closers = append(closers, publisher.Close)
	}

	sortUC := usecase.NewSortDocumentUseCase(extractor, classifier, archive, logger, sortOpts...)
	loop := poller.New(cfg.InputDir, cfg.CheckInterval, sortUC, logger, sorterMetrics)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: sorterMetrics,
		Poller:  loop,
		History: history,

		closeFn: func() { runClosers(closers) },
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func runClosers(closers []func()) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}
