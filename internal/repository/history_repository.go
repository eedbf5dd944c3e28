package repository

import (
	"context"
	"fmt"

	"firefly-assistant/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const historyTable = "record_history"

var historyColumns = []string{"id", "batch_id", "dry_run", "success_count", "error_count", "outcomes", "created_at"}

const createHistoryTable = `CREATE TABLE IF NOT EXISTS record_history (
	id            UUID PRIMARY KEY,
	batch_id      UUID NOT NULL,
	dry_run       BOOLEAN NOT NULL,
	success_count INTEGER NOT NULL,
	error_count   INTEGER NOT NULL,
	outcomes      JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB is the part of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type HistoryRepository struct {
	db     DB
	logger *zap.Logger
}

func NewHistoryRepository(db DB, logger *zap.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the history table when it does not exist yet.
func (r *HistoryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createHistoryTable); err != nil {
		return fmt.Errorf("failed to create %s: %w", historyTable, err)
	}
	return nil
}

func (r *HistoryRepository) Create(ctx context.Context, entry *models.RecordHistory) error {
	sql, args, err := insertHistoryQuery(entry).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListLatest returns up to limit entries, newest first.
func (r *HistoryRepository) ListLatest(ctx context.Context, limit int) ([]*models.RecordHistory, error) {
	sql, args, err := listHistoryQuery(limit).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.RecordHistory{}
	for rows.Next() {
		var entry models.RecordHistory
		if err := rows.Scan(
			&entry.ID, &entry.BatchID, &entry.DryRun, &entry.SuccessCount, &entry.ErrorCount, &entry.Outcomes, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

func insertHistoryQuery(entry *models.RecordHistory) squirrel.InsertBuilder {
	return squirrel.Insert(historyTable).
		Columns(historyColumns...).
		Values(entry.ID, entry.BatchID, entry.DryRun, entry.SuccessCount, entry.ErrorCount, string(entry.Outcomes), entry.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)
}

func listHistoryQuery(limit int) squirrel.SelectBuilder {
	if limit <= 0 {
		limit = 20
	}
	return squirrel.Select(historyColumns...).
		From(historyTable).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)
}
