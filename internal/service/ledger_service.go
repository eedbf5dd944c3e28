package service

import (
	"context"
	"sort"

	"firefly-assistant/internal/firefly"
	"firefly-assistant/internal/settings"
	"firefly-assistant/pkg/cache"

	"go.uber.org/zap"
)

type LedgerReader interface {
	GetAccounts(ctx context.Context, limit int) (map[string]firefly.Account, error)
	GetLatestTransactions(ctx context.Context, limit int) (map[string]firefly.TransactionSummary, error)
}

// SettingsStore is the subset of settings.Store the ledger service uses.
type SettingsStore interface {
	GetString(key string) string
	Update(key string, value any)
	Snapshot() map[string]any
	Save() error
}

// LedgerService serves cached read-only ledger views.
type LedgerService struct {
	client            LedgerReader
	cache             *cache.Cache
	accountsLimit     int
	transactionsLimit int
	logger            *zap.Logger
}

func NewLedgerService(client LedgerReader, c *cache.Cache, accountsLimit, transactionsLimit int, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		client:            client,
		cache:             c,
		accountsLimit:     accountsLimit,
		transactionsLimit: transactionsLimit,
		logger:            logger,
	}
}

func (s *LedgerService) Accounts(ctx context.Context) (map[string]firefly.Account, error) {
	if accounts, ok := cache.GetAs[map[string]firefly.Account](s.cache, cache.KeyAccounts); ok {
		return accounts, nil
	}

	accounts, err := s.client.GetAccounts(ctx, s.accountsLimit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cache.KeyAccounts, accounts)
	return accounts, nil
}

// LatestTransactions caches only non-empty results.
func (s *LedgerService) LatestTransactions(ctx context.Context) (map[string]firefly.TransactionSummary, error) {
	if transactions, ok := cache.GetAs[map[string]firefly.TransactionSummary](s.cache, cache.KeyTransactions); ok {
		return transactions, nil
	}

	transactions, err := s.client.GetLatestTransactions(ctx, s.transactionsLimit)
	if err != nil {
		return nil, err
	}
	if len(transactions) > 0 {
		s.cache.Set(cache.KeyTransactions, transactions)
	}
	return transactions, nil
}

// DefaultAccounts returns the user settings. A default account set to "-1"
// is replaced by the most used account in the latest transactions: the most
// common destination for revenue and the most common source for expense.
func (s *LedgerService) DefaultAccounts(ctx context.Context, store SettingsStore) (map[string]any, error) {
	revenue := store.GetString(settings.KeyDefaultRevenue)
	expense := store.GetString(settings.KeyDefaultExpense)

	if revenue == settings.UnsetAccount || expense == settings.UnsetAccount {
		transactions, err := s.client.GetLatestTransactions(ctx, s.transactionsLimit)
		if err != nil {
			return nil, err
		}

		sources := make([]string, 0, len(transactions))
		destinations := make([]string, 0, len(transactions))
		for _, t := range transactions {
			sources = append(sources, t.SourceID)
			destinations = append(destinations, t.DestinationID)
		}

		if id := mostCommon(destinations); id != "" {
			store.Update(settings.KeyDefaultRevenue, id)
		}
		if id := mostCommon(sources); id != "" {
			store.Update(settings.KeyDefaultExpense, id)
		}
		if err := store.Save(); err != nil {
			return nil, err
		}
		s.logger.Info("Derived default accounts from history",
			zap.String("default_revenue", store.GetString(settings.KeyDefaultRevenue)),
			zap.String("default_expense", store.GetString(settings.KeyDefaultExpense)),
		)
	}

	return store.Snapshot(), nil
}

// mostCommon returns the most frequent non-empty value; ties go to the
// smallest value so the result does not depend on map order.
func mostCommon(values []string) string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		if v != "" {
			counts[v]++
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, bestCount := "", 0
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best
}
