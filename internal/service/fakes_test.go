package service

import (
	"context"
	"encoding/json"
	"sync"

	"firefly-assistant/internal/firefly"
	"firefly-assistant/internal/models"
)

type fakeLedger struct {
	mu sync.Mutex

	categories map[string]string
	tags       map[string]string
	vocabErr   error

	accounts        map[string]firefly.Account
	transactions    map[string]firefly.TransactionSummary
	vocabCalls      int
	accountCalls    int
	transactionCall int

	createFn func(ctx context.Context, store firefly.TransactionStore) (json.RawMessage, error)
	created  []firefly.TransactionStore
}

func (f *fakeLedger) GetCategories(ctx context.Context, limit int) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vocabCalls++
	if f.vocabErr != nil {
		return nil, f.vocabErr
	}
	return f.categories, nil
}

func (f *fakeLedger) GetTags(ctx context.Context, limit int) (map[string]string, error) {
	if f.vocabErr != nil {
		return nil, f.vocabErr
	}
	return f.tags, nil
}

func (f *fakeLedger) GetAccounts(ctx context.Context, limit int) (map[string]firefly.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accountCalls++
	return f.accounts, nil
}

func (f *fakeLedger) GetLatestTransactions(ctx context.Context, limit int) (map[string]firefly.TransactionSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactionCall++
	return f.transactions, nil
}

func (f *fakeLedger) CreateTransaction(ctx context.Context, store firefly.TransactionStore) (json.RawMessage, error) {
	f.mu.Lock()
	f.created = append(f.created, store)
	fn := f.createFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, store)
	}
	return json.RawMessage(`{"data":{"id":"1"}}`), nil
}

func (f *fakeLedger) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeCompleter) Close() error { return nil }

type fakeDefaults map[string]string

func (f fakeDefaults) GetString(key string) string { return f[key] }

func (f fakeDefaults) Load() map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

type fakeHistory struct {
	entries []*models.RecordHistory
	err     error
}

func (f *fakeHistory) Create(ctx context.Context, entry *models.RecordHistory) error {
	f.entries = append(f.entries, entry)
	return f.err
}
