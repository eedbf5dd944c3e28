// Package app wires the services shared by the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"

	"firefly-assistant/internal/firefly"
	"firefly-assistant/internal/repository"
	"firefly-assistant/internal/service"
	"firefly-assistant/internal/settings"
	"firefly-assistant/pkg/auth"
	"firefly-assistant/pkg/cache"
	"firefly-assistant/pkg/config"
	"firefly-assistant/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Deps struct {
	Cache      *cache.Cache
	Client     *firefly.Client
	Settings   *settings.Store
	Vocabulary *service.VocabularyService
	Ledger     *service.LedgerService
	Recorder   *service.RecorderService
	// Parser is nil when built with BuildLedger.
	Parser *service.ParserService
	// History is nil unless HISTORY_ENABLED is set.
	History *repository.HistoryRepository

	completer service.Completer
	pool      *pgxpool.Pool
	logger    *zap.Logger
}

// Build wires every service including the language model.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Deps, error) {
	deps, err := BuildLedger(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	completer, err := service.NewCompleter(ctx, cfg, logger.Named("llm"))
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	deps.completer = completer
	deps.Parser = service.NewParserService(completer, deps.Vocabulary, logger.Named("parser"))

	return deps, nil
}

// BuildLedger wires everything that does not need the language model.
func BuildLedger(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Deps, error) {
	c := cache.New(cfg.Cache.TTL)

	client := firefly.NewClient(firefly.ClientConfig{
		BaseURL: cfg.Firefly.URL,
		APIKey:  cfg.Firefly.APIKey,
		Timeout: cfg.Firefly.Timeout,
	}, logger.Named("firefly"))

	store := settings.NewStore(cfg.Settings.Path, logger.Named("settings"))
	vocab := service.NewVocabularyService(client, c, cfg.Firefly.CategoriesLimit, cfg.Firefly.TagsLimit, logger.Named("vocabulary"))
	ledger := service.NewLedgerService(client, c, cfg.Firefly.AccountsLimit, cfg.Firefly.TransactionsLimit, logger.Named("ledger"))
	recorder := service.NewRecorderService(vocab, client, store, c, RecorderOptions(cfg), logger.Named("recorder"))

	deps := &Deps{
		Cache:      c,
		Client:     client,
		Settings:   store,
		Vocabulary: vocab,
		Ledger:     ledger,
		Recorder:   recorder,
		logger:     logger,
	}

	if cfg.History.Enabled {
		pool, err := postgres.NewPool(ctx, &cfg.Database, logger.Named("postgres"))
		if err != nil {
			return nil, err
		}
		history := repository.NewHistoryRepository(pool, logger.Named("history"))
		if err := history.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		deps.pool = pool
		deps.History = history
		recorder.WithHistory(history)
	}

	return deps, nil
}

// RecorderOptions maps the ledger settings onto the recorder.
func RecorderOptions(cfg *config.Config) service.RecorderOptions {
	return service.RecorderOptions{
		DefaultCategory: cfg.Firefly.DefaultCategory,
		SourceID:        cfg.Firefly.SourceID,
		SourceName:      cfg.Firefly.SourceName,
		DestinationID:   cfg.Firefly.DestinationID,
		DestinationName: cfg.Firefly.DestinationName,
		CurrencyID:      cfg.Firefly.CurrencyID,
		BudgetID:        cfg.Firefly.BudgetID,
		Concurrency:     cfg.Recorder.Concurrency,
	}
}

func NewAuthService(cfg *config.Config, jwtManager *auth.JWTManager, logger *zap.Logger) (*service.AuthService, error) {
	return service.NewAuthService(cfg.Auth.Username, cfg.Auth.Password, jwtManager, logger.Named("auth"))
}

func (d *Deps) Close() {
	if d.completer != nil {
		if err := d.completer.Close(); err != nil {
			d.logger.Warn("Failed to close LLM client", zap.Error(err))
		}
	}
	if d.pool != nil {
		d.pool.Close()
	}
}
