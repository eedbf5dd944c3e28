package firefly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	categoriesEndpoint   = "/api/v1/categories"
	tagsEndpoint         = "/api/v1/tags"
	accountsEndpoint     = "/api/v1/accounts"
	transactionsEndpoint = "/api/v1/transactions"

	maxErrorBody = 512
)

// ClientConfig represents the configuration for the Firefly III client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration // Default: 30 seconds
}

// Client talks to a single Firefly III instance with a personal access token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("firefly API error (status %d) on %s %s: %s", e.StatusCode, e.Method, e.Endpoint, e.Message)
}

func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// BaseURL returns the ledger address without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetCategories returns category id -> name.
func (c *Client) GetCategories(ctx context.Context, limit int) (map[string]string, error) {
	var resp listResponse[categoryAttributes]
	if err := c.get(ctx, categoriesEndpoint, limit, &resp); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	categories := make(map[string]string, len(resp.Data))
	for _, item := range resp.Data {
		categories[item.ID] = item.Attributes.Name
	}
	return categories, nil
}

// GetTags returns tag id -> tag name.
func (c *Client) GetTags(ctx context.Context, limit int) (map[string]string, error) {
	var resp listResponse[tagAttributes]
	if err := c.get(ctx, tagsEndpoint, limit, &resp); err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	tags := make(map[string]string, len(resp.Data))
	for _, item := range resp.Data {
		tags[item.ID] = item.Attributes.Tag
	}
	return tags, nil
}

// GetAccounts returns account id -> flattened account.
func (c *Client) GetAccounts(ctx context.Context, limit int) (map[string]Account, error) {
	var resp listResponse[accountAttributes]
	if err := c.get(ctx, accountsEndpoint, limit, &resp); err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	accounts := make(map[string]Account, len(resp.Data))
	for _, item := range resp.Data {
		attrs := item.Attributes
		account := Account{
			Name:           attrs.Name,
			Type:           attrs.Type,
			BalanceDisplay: strings.TrimSpace(attrs.CurrencySymbol + " " + attrs.CurrentBalance),
			SelfLink:       item.Links.Self,
		}
		if attrs.AccountRole != nil {
			account.Role = *attrs.AccountRole
		}
		accounts[item.ID] = account
	}
	return accounts, nil
}

// GetLatestTransactions returns transaction group id -> summary of its first split.
// Groups without splits are skipped.
func (c *Client) GetLatestTransactions(ctx context.Context, limit int) (map[string]TransactionSummary, error) {
	var resp listResponse[transactionGroupAttributes]
	if err := c.get(ctx, transactionsEndpoint, limit, &resp); err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	transactions := make(map[string]TransactionSummary, len(resp.Data))
	for _, item := range resp.Data {
		if len(item.Attributes.Transactions) == 0 {
			c.logger.Debug("Transaction group without splits", zap.String("id", item.ID))
			continue
		}
		split := item.Attributes.Transactions[0]
		summary := TransactionSummary{
			Date:          split.Date,
			Amount:        strings.TrimSpace(split.CurrencySymbol + " " + split.Amount),
			Description:   split.Description,
			Tags:          split.Tags,
			SourceID:      split.SourceID,
			DestinationID: split.DestinationID,
		}
		if summary.Tags == nil {
			summary.Tags = []string{}
		}
		if split.CategoryID != nil {
			summary.CategoryID = *split.CategoryID
		}
		if split.CategoryName != nil {
			summary.CategoryName = *split.CategoryName
		}
		transactions[item.ID] = summary
	}
	return transactions, nil
}

// CreateTransaction posts a transaction group and returns the raw ledger response.
func (c *Client) CreateTransaction(ctx context.Context, store TransactionStore) (json.RawMessage, error) {
	body, err := json.Marshal(store)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	var resp json.RawMessage
	if err := c.do(ctx, http.MethodPost, transactionsEndpoint, nil, body, &resp); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return resp, nil
}

// CreateTransactionAsync runs CreateTransaction in its own goroutine. The
// returned channel yields exactly one result and is then closed.
func (c *Client) CreateTransactionAsync(ctx context.Context, store TransactionStore) <-chan CreateResult {
	ch := make(chan CreateResult, 1)
	go func() {
		defer close(ch)
		resp, err := c.CreateTransaction(ctx, store)
		ch <- CreateResult{Response: resp, Err: err}
	}()
	return ch
}

func (c *Client) get(ctx context.Context, endpoint string, limit int, out any) error {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return c.do(ctx, http.MethodGet, endpoint, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body []byte, out any) error {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Firefly request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(method, endpoint, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseError prefers Firefly's "message" field and falls back to the raw body.
func parseError(method, endpoint string, resp *http.Response) error {
	apiErr := &APIError{Method: method, Endpoint: endpoint, StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		apiErr.Message = "failed to read error response"
		return apiErr
	}

	var errResp errorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Message != "" {
		apiErr.Message = errResp.Message
		if len(errResp.Errors) > 0 {
			apiErr.Message += ": " + flattenFieldErrors(errResp.Errors)
		}
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func flattenFieldErrors(fieldErrors map[string][]string) string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+" "+strings.Join(fieldErrors[field], "; "))
	}
	return strings.Join(parts, ", ")
}
