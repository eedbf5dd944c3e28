package models

import (
	"encoding/json"

	"firefly-assistant/internal/firefly"

	"github.com/shopspring/decimal"
)

// DraftDateLayout is the minute-precision layout Firefly accepts for dates.
const DraftDateLayout = "2006-01-02T15:04"

// TransactionDraft is an unconfirmed transaction proposal, produced by the
// parser or sent directly by a client. Empty fields are defaulted by the
// recorder.
type TransactionDraft struct {
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date,omitempty"`
	Category      string          `json:"category,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	SourceID      string          `json:"source_id,omitempty"`
	DestinationID string          `json:"destination_id,omitempty"`
}

type OutcomeStatus string

const (
	OutcomeSuccess         OutcomeStatus = "success"
	OutcomeValidationError OutcomeStatus = "validation_error"
	OutcomeSubmissionError OutcomeStatus = "submission_error"
)

// RecordOutcome is the result of recording one draft. Transaction always
// carries the draft as it was received.
type RecordOutcome struct {
	Status      OutcomeStatus             `json:"status"`
	Success     bool                      `json:"success"`
	Transaction TransactionDraft          `json:"transaction"`
	Response    json.RawMessage           `json:"response,omitempty"`
	DryRun      bool                      `json:"dry_run,omitempty"`
	Payload     *firefly.TransactionStore `json:"payload,omitempty"`
	Error       string                    `json:"error,omitempty"`
}

func SuccessOutcome(draft TransactionDraft, response json.RawMessage) RecordOutcome {
	return RecordOutcome{Status: OutcomeSuccess, Success: true, Transaction: draft, Response: response}
}

func DryRunOutcome(draft TransactionDraft, payload firefly.TransactionStore) RecordOutcome {
	return RecordOutcome{Status: OutcomeSuccess, Success: true, Transaction: draft, DryRun: true, Payload: &payload}
}

func ValidationErrorOutcome(draft TransactionDraft, message string) RecordOutcome {
	return RecordOutcome{Status: OutcomeValidationError, Transaction: draft, Error: message}
}

func SubmissionErrorOutcome(draft TransactionDraft, message string) RecordOutcome {
	return RecordOutcome{Status: OutcomeSubmissionError, Transaction: draft, Error: message}
}

// BatchResult lists one outcome per submitted draft, in input order.
type BatchResult struct {
	BatchID      string          `json:"batch_id"`
	DryRun       bool            `json:"dry_run"`
	Outcomes     []RecordOutcome `json:"results"`
	SuccessCount int             `json:"success_count"`
	ErrorCount   int             `json:"error_count"`
}

// NewBatchResult counts successes and errors over outcomes.
func NewBatchResult(batchID string, dryRun bool, outcomes []RecordOutcome) *BatchResult {
	result := &BatchResult{BatchID: batchID, DryRun: dryRun, Outcomes: outcomes}
	for _, outcome := range outcomes {
		if outcome.Success {
			result.SuccessCount++
		} else {
			result.ErrorCount++
		}
	}
	return result
}

// ParseResult is what the parser hands back. It is never an error: a failed
// parse is an empty list with ThinkResult explaining why.
type ParseResult struct {
	Transactions []TransactionDraft `json:"transactions"`
	ThinkResult  string             `json:"think_result"`
}
