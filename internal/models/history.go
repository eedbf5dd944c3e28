package models

import (
	"time"

	"github.com/google/uuid"
)

// RecordHistory is a persisted summary of one recording batch.
type RecordHistory struct {
	ID           uuid.UUID `db:"id"`
	BatchID      uuid.UUID `db:"batch_id"`
	DryRun       bool      `db:"dry_run"`
	SuccessCount int       `db:"success_count"`
	ErrorCount   int       `db:"error_count"`
	Outcomes     []byte    `db:"outcomes"` // JSON encoded []RecordOutcome
	CreatedAt    time.Time `db:"created_at"`
}
