package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"firefly-assistant/internal/dto"
	"firefly-assistant/internal/firefly"
	"firefly-assistant/internal/models"
	"firefly-assistant/internal/service"
	"firefly-assistant/internal/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubParser struct {
	texts []string
}

func (p *stubParser) Parse(ctx context.Context, text string) *models.ParseResult {
	p.texts = append(p.texts, text)
	return &models.ParseResult{Transactions: []models.TransactionDraft{}, ThinkResult: "echo: " + text}
}

type stubRecorder struct {
	drafts []models.TransactionDraft
	dryRun bool
	err    error
}

func (r *stubRecorder) Record(ctx context.Context, drafts []models.TransactionDraft, dryRun bool) (*models.BatchResult, error) {
	r.drafts, r.dryRun = drafts, dryRun
	if r.err != nil {
		return nil, r.err
	}
	outcomes := make([]models.RecordOutcome, len(drafts))
	for i, d := range drafts {
		if d.Category == "Unknown" {
			outcomes[i] = models.ValidationErrorOutcome(d, "category does not exist")
			continue
		}
		outcomes[i] = models.SuccessOutcome(d, json.RawMessage(`{}`))
	}
	return models.NewBatchResult("batch-1", dryRun, outcomes), nil
}

type stubLedger struct {
	transactions map[string]firefly.TransactionSummary
	accounts     map[string]firefly.Account
	defaults     map[string]any
	err          error
}

func (l *stubLedger) LatestTransactions(ctx context.Context) (map[string]firefly.TransactionSummary, error) {
	return l.transactions, l.err
}

func (l *stubLedger) Accounts(ctx context.Context) (map[string]firefly.Account, error) {
	return l.accounts, l.err
}

func (l *stubLedger) DefaultAccounts(ctx context.Context, store service.SettingsStore) (map[string]any, error) {
	if l.err != nil {
		return nil, l.err
	}
	return store.Snapshot(), nil
}

type stubVocabulary struct {
	vocab *models.Vocabulary
	err   error
}

func (v stubVocabulary) Cached(ctx context.Context) (*models.Vocabulary, error) {
	return v.vocab, v.err
}

type stubHistory struct {
	entries []*models.RecordHistory
	limit   int
}

func (h *stubHistory) ListLatest(ctx context.Context, limit int) ([]*models.RecordHistory, error) {
	h.limit = limit
	return h.entries, nil
}

func doRequest(t *testing.T, app *fiber.App, method, target, contentType, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func TestParseHandler(t *testing.T) {
	parser := &stubParser{}
	h := NewTransactionHandler(parser, &stubRecorder{}, &stubLedger{}, zap.NewNop())
	app := fiber.New()
	app.Post("/api/parse", h.Parse)

	tests := []struct {
		name        string
		contentType string
		body        string
		expected    string
		status      int
	}{
		{name: "plain text", contentType: "text/plain", body: "lunch 66", expected: "lunch 66", status: 200},
		{name: "json object", contentType: "application/json", body: `{"text":"rent 900"}`, expected: "rent 900", status: 200},
		{name: "json string", contentType: "application/json; charset=utf-8", body: `"coffee 4"`, expected: "coffee 4", status: 200},
		{name: "broken json", contentType: "application/json", body: `{"text":`, status: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, "POST", "/api/parse", tt.contentType, tt.body)
			if status != tt.status {
				t.Fatalf("status = %d, expected %d (%s)", status, tt.status, body)
			}
			if tt.status != 200 {
				return
			}

			var result models.ParseResult
			if err := json.Unmarshal(body, &result); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if result.ThinkResult != "echo: "+tt.expected {
				t.Errorf("ThinkResult = %q, expected parser to receive %q", result.ThinkResult, tt.expected)
			}
		})
	}
}

func TestRecordHandler(t *testing.T) {
	recorder := &stubRecorder{}
	h := NewTransactionHandler(&stubParser{}, recorder, &stubLedger{}, zap.NewNop())
	app := fiber.New()
	app.Post("/api/record", h.Record)

	body := `[{"description":"lunch","amount":66,"category":"Dining"},{"description":"rent","amount":"900","category":"Unknown"}]`
	status, data := doRequest(t, app, "POST", "/api/record?dry_run=true", "application/json", body)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d (%s)", status, data)
	}

	if !recorder.dryRun {
		t.Error("Expected dry_run to be forwarded")
	}
	if len(recorder.drafts) != 2 || recorder.drafts[1].Amount.String() != "900" {
		t.Errorf("unexpected drafts %+v", recorder.drafts)
	}

	var resp dto.RecordResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result.SuccessCount != 1 || resp.Result.ErrorCount != 1 {
		t.Errorf("unexpected counts %+v", resp.Result)
	}
	if resp.Result.Outcomes[1].Status != models.OutcomeValidationError {
		t.Errorf("outcome 1 = %q", resp.Result.Outcomes[1].Status)
	}
	if !strings.HasPrefix(resp.Message, "Dry run") {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestRecordHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "malformed body", body: `{"description":"lunch"}`, status: fiber.StatusBadRequest},
		{name: "not json", body: `lunch 66`, status: fiber.StatusBadRequest},
		{name: "vocabulary failure", body: `[]`, err: fmt.Errorf("%w: %w", service.ErrVocabularyFetch, errors.New("timeout")), status: fiber.StatusBadGateway},
		{name: "unexpected failure", body: `[]`, err: errors.New("boom"), status: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTransactionHandler(&stubParser{}, &stubRecorder{err: tt.err}, &stubLedger{}, zap.NewNop())
			app := fiber.New()
			app.Post("/api/record", h.Record)

			status, data := doRequest(t, app, "POST", "/api/record", "application/json", tt.body)
			if status != tt.status {
				t.Fatalf("status = %d, expected %d", status, tt.status)
			}

			var envelope dto.ErrorResponse
			if err := json.Unmarshal(data, &envelope); err != nil || envelope.Error == "" {
				t.Errorf("expected error envelope, got %s", data)
			}
		})
	}
}

func TestRecordMessage(t *testing.T) {
	ok := models.SuccessOutcome(models.TransactionDraft{}, nil)
	bad := models.ValidationErrorOutcome(models.TransactionDraft{}, "x")

	tests := []struct {
		name     string
		result   *models.BatchResult
		expected string
	}{
		{name: "all recorded", result: models.NewBatchResult("b", false, []models.RecordOutcome{ok, ok}), expected: "Transaction recorded successfully"},
		{name: "partial", result: models.NewBatchResult("b", false, []models.RecordOutcome{ok, bad}), expected: "Recorded 1 of 2 transactions"},
		{name: "dry run", result: models.NewBatchResult("b", true, []models.RecordOutcome{ok}), expected: "Dry run: 1 of 1 transactions passed validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recordMessage(tt.result); got != tt.expected {
				t.Errorf("recordMessage() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestTagsAndCategoriesHandler(t *testing.T) {
	vocab := &models.Vocabulary{
		Categories: map[string]string{"2": "Housing", "1": "Dining"},
		Tags:       map[string]string{"1": "Dining-lunch"},
	}
	h := NewVocabularyHandler(stubVocabulary{vocab: vocab}, &stubLedger{}, zap.NewNop())
	app := fiber.New()
	app.Get("/api/tags-and-categories", h.GetTagsAndCategories)

	status, data := doRequest(t, app, "GET", "/api/tags-and-categories", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}

	var got dto.TagsAndCategoriesResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	expected := dto.TagsAndCategoriesResponse{Categories: []string{"Dining", "Housing"}, Tags: []string{"Dining-lunch"}}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestTagsAndCategoriesHandlerError(t *testing.T) {
	h := NewVocabularyHandler(stubVocabulary{err: service.ErrVocabularyFetch}, &stubLedger{}, zap.NewNop())
	app := fiber.New()
	app.Get("/api/tags-and-categories", h.GetTagsAndCategories)

	if status, _ := doRequest(t, app, "GET", "/api/tags-and-categories", "", ""); status != fiber.StatusBadGateway {
		t.Errorf("status = %d, expected 502", status)
	}
}

func TestLedgerReadHandlers(t *testing.T) {
	ledger := &stubLedger{
		accounts:     map[string]firefly.Account{"1": {Name: "Checking", Type: "asset"}},
		transactions: map[string]firefly.TransactionSummary{"7": {Description: "lunch", SourceID: "1", DestinationID: "4"}},
	}
	transactions := NewTransactionHandler(&stubParser{}, &stubRecorder{}, ledger, zap.NewNop())
	vocabulary := NewVocabularyHandler(stubVocabulary{}, ledger, zap.NewNop())
	app := fiber.New()
	app.Get("/api/accounts", vocabulary.GetAccounts)
	app.Get("/api/transactions", transactions.GetTransactions)

	status, data := doRequest(t, app, "GET", "/api/accounts", "", "")
	if status != fiber.StatusOK || !strings.Contains(string(data), `"Checking"`) {
		t.Errorf("accounts: status = %d body = %s", status, data)
	}

	status, data = doRequest(t, app, "GET", "/api/transactions", "", "")
	if status != fiber.StatusOK || !strings.Contains(string(data), `"lunch"`) {
		t.Errorf("transactions: status = %d body = %s", status, data)
	}

	ledger.err = errors.New("ledger offline")
	if status, _ := doRequest(t, app, "GET", "/api/accounts", "", ""); status != fiber.StatusInternalServerError {
		t.Errorf("accounts error: status = %d, expected 500", status)
	}
}

func TestHistoryHandler(t *testing.T) {
	app := fiber.New()
	disabled := NewTransactionHandler(&stubParser{}, &stubRecorder{}, &stubLedger{}, zap.NewNop())
	app.Get("/disabled", disabled.GetHistory)

	if status, _ := doRequest(t, app, "GET", "/disabled", "", ""); status != fiber.StatusNotFound {
		t.Errorf("status = %d, expected 404 when history is disabled", status)
	}

	history := &stubHistory{entries: []*models.RecordHistory{{
		ID:           uuid.New(),
		BatchID:      uuid.New(),
		SuccessCount: 3,
		CreatedAt:    time.Date(2025, 7, 6, 12, 0, 0, 0, time.UTC),
	}}}
	enabled := NewTransactionHandler(&stubParser{}, &stubRecorder{}, &stubLedger{}, zap.NewNop()).WithHistory(history, 20)
	app.Get("/enabled", enabled.GetHistory)

	status, data := doRequest(t, app, "GET", "/enabled?limit=5", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if history.limit != 5 {
		t.Errorf("limit = %d, expected 5", history.limit)
	}

	var got []dto.HistoryResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].SuccessCount != 3 || got[0].CreatedAt != "2025-07-06T12:00:00Z" {
		t.Errorf("unexpected history %+v", got)
	}
}

func TestSettingsHandlers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_configs.json")
	if err := os.WriteFile(path, []byte(`{"default_revenue":"4","default_expense":"1"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	store := settings.NewStore(path, zap.NewNop())
	h := NewSettingsHandler(store, &stubLedger{}, "http://firefly.local", zap.NewNop())
	app := fiber.New()
	app.Get("/api/default_account", h.GetDefaultAccount)
	app.Post("/api/default", h.UpdateDefault)

	status, data := doRequest(t, app, "POST", "/api/default", "application/json", `{"default_expense":"9","theme":"dark"}`)
	if status != fiber.StatusOK {
		t.Fatalf("update status = %d (%s)", status, data)
	}

	status, data = doRequest(t, app, "GET", "/api/default_account", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("get status = %d (%s)", status, data)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	expected := map[string]any{
		"default_revenue": "4",
		"default_expense": "9",
		"theme":           "dark",
		"version":         Version,
		"firefly_iii_url": "http://firefly.local",
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(onDisk), "version") {
		t.Error("version must not be written to the settings file")
	}

	if status, _ := doRequest(t, app, "POST", "/api/default", "application/json", `[1,2]`); status != fiber.StatusBadRequest {
		t.Errorf("status = %d, expected 400 for a non-object body", status)
	}
}

func TestUpdateDefaultConcurrentRequests(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_configs.json")
	store := settings.NewStore(path, zap.NewNop())
	h := NewSettingsHandler(store, &stubLedger{}, "http://firefly.local", zap.NewNop())
	app := fiber.New()
	app.Post("/api/default", h.UpdateDefault)

	const requests = 10
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest("POST", "/api/default", strings.NewReader(fmt.Sprintf(`{"key_%d":"v"}`, i)))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Errorf("app.Test() error = %v", err)
				return
			}
			resp.Body.Close()
			if resp.StatusCode != fiber.StatusOK {
				t.Errorf("request %d status = %d", i, resp.StatusCode)
			}
		}(i)
	}
	wg.Wait()

	reloaded := settings.NewStore(path, zap.NewNop())
	for i := 0; i < requests; i++ {
		if got := reloaded.GetString(fmt.Sprintf("key_%d", i)); got != "v" {
			t.Errorf("key_%d = %q, expected v", i, got)
		}
	}
}

type stubAuthenticator struct {
	err error
}

func (a stubAuthenticator) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if a.err != nil {
		return nil, a.err
	}
	return &dto.AuthResponse{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}, nil
}

func (a stubAuthenticator) RefreshToken(ctx context.Context, token string) (*dto.AuthResponse, error) {
	return a.Login(ctx, nil)
}

func TestAuthHandler(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		err    error
		status int
	}{
		{name: "login", path: "/login", body: `{"username":"admin","password":"x"}`, status: fiber.StatusOK},
		{name: "bad credentials", path: "/login", body: `{"username":"admin","password":"x"}`, err: service.ErrInvalidCredentials, status: fiber.StatusUnauthorized},
		{name: "disabled", path: "/login", body: `{"username":"admin","password":"x"}`, err: service.ErrAuthDisabled, status: fiber.StatusForbidden},
		{name: "refresh", path: "/refresh", body: `{"refresh_token":"r"}`, status: fiber.StatusOK},
		{name: "refresh without token", path: "/refresh", body: `{}`, status: fiber.StatusBadRequest},
		{name: "internal", path: "/login", body: `{"username":"admin"}`, err: errors.New("boom"), status: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(stubAuthenticator{err: tt.err}, zap.NewNop())
			app := fiber.New()
			app.Post("/login", h.Login)
			app.Post("/refresh", h.RefreshToken)

			status, data := doRequest(t, app, "POST", tt.path, "application/json", tt.body)
			if status != tt.status {
				t.Errorf("status = %d, expected %d (%s)", status, tt.status, data)
			}
		})
	}
}
