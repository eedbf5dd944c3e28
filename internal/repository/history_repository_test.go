package repository

import (
	"testing"
	"time"

	"firefly-assistant/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestInsertHistoryQuery(t *testing.T) {
	entry := &models.RecordHistory{
		ID:           uuid.MustParse("2f1c1a36-9d0b-4c8f-9a53-6d2f0b3e7a11"),
		BatchID:      uuid.MustParse("5d0e7f0c-1a1e-4f4e-8f58-0a3a9c7b2c44"),
		DryRun:       true,
		SuccessCount: 2,
		ErrorCount:   1,
		Outcomes:     []byte(`[{"status":"success"}]`),
		CreatedAt:    time.Date(2025, 7, 6, 12, 0, 0, 0, time.UTC),
	}

	sql, args, err := insertHistoryQuery(entry).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}

	expectedSQL := "INSERT INTO record_history (id,batch_id,dry_run,success_count,error_count,outcomes,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)"
	if sql != expectedSQL {
		t.Errorf("sql = %q, expected %q", sql, expectedSQL)
	}

	expectedArgs := []any{entry.ID, entry.BatchID, true, 2, 1, `[{"status":"success"}]`, entry.CreatedAt}
	if diff := cmp.Diff(expectedArgs, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestListHistoryQuery(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected string
	}{
		{name: "explicit limit", limit: 5, expected: "SELECT id, batch_id, dry_run, success_count, error_count, outcomes, created_at FROM record_history ORDER BY created_at DESC LIMIT 5"},
		{name: "default limit", limit: 0, expected: "SELECT id, batch_id, dry_run, success_count, error_count, outcomes, created_at FROM record_history ORDER BY created_at DESC LIMIT 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := listHistoryQuery(tt.limit).ToSql()
			if err != nil {
				t.Fatalf("ToSql() error = %v", err)
			}
			if sql != tt.expected {
				t.Errorf("sql = %q, expected %q", sql, tt.expected)
			}
			if len(args) != 0 {
				t.Errorf("args = %v, expected none", args)
			}
		})
	}
}
