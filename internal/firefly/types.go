// Package firefly is a thin client for the Firefly III REST API. It only
// covers the endpoints the assistant needs and flattens the ledger's
// JSON:API shapes into plain maps.
package firefly

import "encoding/json"

const TransactionTypeWithdrawal = "withdrawal"

// resource is one element of a Firefly list response.
type resource[T any] struct {
	ID         string `json:"id"`
	Attributes T      `json:"attributes"`
	Links      struct {
		Self string `json:"self"`
	} `json:"links"`
}

type listResponse[T any] struct {
	Data []resource[T] `json:"data"`
}

type categoryAttributes struct {
	Name string `json:"name"`
}

type tagAttributes struct {
	Tag string `json:"tag"`
}

type accountAttributes struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	AccountRole    *string `json:"account_role"`
	CurrencySymbol string  `json:"currency_symbol"`
	CurrentBalance string  `json:"current_balance"`
}

type transactionGroupAttributes struct {
	GroupTitle   *string            `json:"group_title"`
	Transactions []transactionSplit `json:"transactions"`
}

type transactionSplit struct {
	Date           string   `json:"date"`
	Amount         string   `json:"amount"`
	CurrencySymbol string   `json:"currency_symbol"`
	Description    string   `json:"description"`
	CategoryID     *string  `json:"category_id"`
	CategoryName   *string  `json:"category_name"`
	Tags           []string `json:"tags"`
	SourceID       string   `json:"source_id"`
	DestinationID  string   `json:"destination_id"`
}

// Account is the flattened view of a Firefly account.
type Account struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Role           string `json:"account_role"`
	BalanceDisplay string `json:"current_balance"`
	SelfLink       string `json:"links"`
}

// TransactionSummary is the first split of a transaction group, flattened.
type TransactionSummary struct {
	Date          string   `json:"date"`
	Amount        string   `json:"amount"`
	Description   string   `json:"description"`
	CategoryName  string   `json:"category_name"`
	CategoryID    string   `json:"category_id"`
	Tags          []string `json:"tags"`
	SourceID      string   `json:"source_id"`
	DestinationID string   `json:"destination_id"`
}

// TransactionStore is the body of POST /api/v1/transactions.
type TransactionStore struct {
	ErrorIfDuplicateHash bool               `json:"error_if_duplicate_hash"`
	ApplyRules           bool               `json:"apply_rules"`
	FireWebhooks         bool               `json:"fire_webhooks"`
	GroupTitle           string             `json:"group_title"`
	Transactions         []TransactionSplit `json:"transactions"`
}

// TransactionSplit is a single split inside TransactionStore.
type TransactionSplit struct {
	Type              string   `json:"type"`
	Date              string   `json:"date"`
	Amount            string   `json:"amount"`
	Description       string   `json:"description"`
	SourceID          string   `json:"source_id"`
	SourceName        string   `json:"source_name,omitempty"`
	Reconciled        bool     `json:"reconciled"`
	DestinationID     string   `json:"destination_id"`
	DestinationName   string   `json:"destination_name,omitempty"`
	CategoryName      string   `json:"category_name"`
	Tags              []string `json:"tags"`
	Notes             *string  `json:"notes"`
	ForeignAmount     string   `json:"foreign_amount"`
	ForeignCurrencyID *string  `json:"foreign_currency_id"`
	CurrencyID        string   `json:"currency_id"`
	BudgetID          int      `json:"budget_id"`
}

// CreateResult is delivered by CreateTransactionAsync.
type CreateResult struct {
	Response json.RawMessage
	Err      error
}

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}
