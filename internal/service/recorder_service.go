package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"firefly-assistant/internal/firefly"
	"firefly-assistant/internal/models"
	"firefly-assistant/internal/settings"
	"firefly-assistant/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type TransactionCreator interface {
	CreateTransaction(ctx context.Context, store firefly.TransactionStore) (json.RawMessage, error)
}

// AccountDefaults exposes the user's preferred source/destination accounts.
// Load is called once per batch so edits to the backing file are seen.
type AccountDefaults interface {
	GetString(key string) string
	Load() map[string]any
}

type HistoryRecorder interface {
	Create(ctx context.Context, entry *models.RecordHistory) error
}

type VocabularyLoader interface {
	Fetch(ctx context.Context) (*models.Vocabulary, error)
}

// RecorderOptions holds the fixed parts of every withdrawal payload.
type RecorderOptions struct {
	DefaultCategory string
	SourceID        string
	SourceName      string
	DestinationID   string
	DestinationName string
	CurrencyID      string
	BudgetID        int
	// Concurrency caps in-flight submissions; zero means one goroutine per draft.
	Concurrency int
}

type RecorderService struct {
	vocab    VocabularyLoader
	creator  TransactionCreator
	defaults AccountDefaults
	history  HistoryRecorder
	cache    *cache.Cache
	opts     RecorderOptions
	logger   *zap.Logger
	now      func() time.Time
}

func NewRecorderService(
	vocab VocabularyLoader,
	creator TransactionCreator,
	defaults AccountDefaults,
	c *cache.Cache,
	opts RecorderOptions,
	logger *zap.Logger,
) *RecorderService {
	return &RecorderService{
		vocab:    vocab,
		creator:  creator,
		defaults: defaults,
		cache:    c,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// WithHistory persists every batch summary through h.
func (s *RecorderService) WithHistory(h HistoryRecorder) *RecorderService {
	s.history = h
	return s
}

// Record validates every draft against the ledger vocabulary and submits the
// valid ones concurrently. Item failures are reported in the result; only a
// vocabulary fetch failure is returned as an error.
func (s *RecorderService) Record(ctx context.Context, drafts []models.TransactionDraft, dryRun bool) (*models.BatchResult, error) {
	batchID := uuid.New()
	log := s.logger.With(zap.String("batch_id", batchID.String()), zap.Bool("dry_run", dryRun))
	log.Info("Recording transactions", zap.Int("count", len(drafts)))

	vocab, err := s.vocab.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.defaults != nil {
		s.defaults.Load()
	}

	outcomes := make([]models.RecordOutcome, len(drafts))

	// Submissions outlive the caller: once scheduled, the batch runs to completion.
	submitCtx := context.WithoutCancel(ctx)
	var g errgroup.Group
	if s.opts.Concurrency > 0 {
		g.SetLimit(s.opts.Concurrency)
	}

	for i, draft := range drafts {
		prepared := s.applyDefaults(draft)

		if msg := validateDraft(prepared, vocab); msg != "" {
			log.Warn("Transaction validation failed", zap.Int("index", i), zap.String("error", msg))
			outcomes[i] = models.ValidationErrorOutcome(draft, msg)
			continue
		}

		payload := s.buildPayload(prepared)

		if dryRun {
			log.Info("Dry run", zap.Int("index", i), zap.String("description", prepared.Description))
			outcomes[i] = models.DryRunOutcome(draft, payload)
			continue
		}

		log.Info("Submitting transaction",
			zap.Int("index", i),
			zap.String("description", prepared.Description),
			zap.String("amount", prepared.Amount.String()),
			zap.String("category", prepared.Category),
		)

		g.Go(func() error {
			resp, err := s.creator.CreateTransaction(submitCtx, payload)
			if err != nil {
				log.Error("Transaction submission failed", zap.Int("index", i), zap.Error(err))
				outcomes[i] = models.SubmissionErrorOutcome(draft, err.Error())
				return nil
			}
			outcomes[i] = models.SuccessOutcome(draft, resp)
			return nil
		})
	}
	_ = g.Wait()

	result := models.NewBatchResult(batchID.String(), dryRun, outcomes)
	log.Info("Batch completed",
		zap.Int("success_count", result.SuccessCount),
		zap.Int("error_count", result.ErrorCount),
	)

	if !dryRun && result.SuccessCount > 0 && s.cache != nil {
		s.cache.Delete(cache.KeyTransactions)
	}
	s.saveHistory(submitCtx, batchID, result)

	return result, nil
}

// applyDefaults fills date, category and tags. The caller's draft is not modified.
func (s *RecorderService) applyDefaults(draft models.TransactionDraft) models.TransactionDraft {
	prepared := draft
	prepared.Description = strings.TrimSpace(draft.Description)
	if strings.TrimSpace(prepared.Date) == "" {
		prepared.Date = s.now().Format(models.DraftDateLayout)
	}
	if strings.TrimSpace(prepared.Category) == "" {
		prepared.Category = s.opts.DefaultCategory
	}
	if len(prepared.Tags) == 0 {
		prepared.Tags = []string{fmt.Sprintf("%s-%s", prepared.Category, prepared.Description)}
	} else {
		prepared.Tags = append([]string(nil), draft.Tags...)
	}
	return prepared
}

// validateDraft returns a user-facing message, or "" when the draft is valid.
// Only the draft's own tags in its category family must already exist; other
// tags are created by the ledger on demand.
func validateDraft(draft models.TransactionDraft, vocab *models.Vocabulary) string {
	if !vocab.HasCategory(draft.Category) {
		return fmt.Sprintf("category %q does not exist, available categories: %s",
			draft.Category, strings.Join(vocab.CategoryNames(), ", "))
	}

	var unknown []string
	for _, tag := range draft.Tags {
		if strings.HasPrefix(tag, draft.Category) && !vocab.HasTag(tag) {
			unknown = append(unknown, tag)
		}
	}
	if len(unknown) > 0 {
		return fmt.Sprintf("tags %q do not exist, available tags for %q: %s",
			unknown, draft.Category, strings.Join(vocab.FamilyTags(draft.Category), ", "))
	}
	return ""
}

func (s *RecorderService) buildPayload(draft models.TransactionDraft) firefly.TransactionStore {
	sourceID, sourceName := s.resolveAccount(draft.SourceID, settings.KeyDefaultExpense, s.opts.SourceID, s.opts.SourceName)
	destID, destName := s.resolveAccount(draft.DestinationID, settings.KeyDefaultRevenue, s.opts.DestinationID, s.opts.DestinationName)

	split := firefly.TransactionSplit{
		Type:            firefly.TransactionTypeWithdrawal,
		Date:            draft.Date,
		Amount:          draft.Amount.String(),
		Description:     draft.Description,
		SourceID:        sourceID,
		SourceName:      sourceName,
		DestinationID:   destID,
		DestinationName: destName,
		CategoryName:    draft.Category,
		Tags:            draft.Tags,
		ForeignAmount:   "0",
		CurrencyID:      s.opts.CurrencyID,
		BudgetID:        s.opts.BudgetID,
	}
	if notes := strings.TrimSpace(draft.Notes); notes != "" {
		split.Notes = &notes
	}

	return firefly.TransactionStore{
		ErrorIfDuplicateHash: false,
		ApplyRules:           false,
		FireWebhooks:         true,
		GroupTitle:           draft.Description,
		Transactions:         []firefly.TransactionSplit{split},
	}
}

// resolveAccount picks the draft's own id, then the user's saved default,
// then the configured one. The configured name only travels with the
// configured id.
func (s *RecorderService) resolveAccount(override, settingsKey, configuredID, configuredName string) (string, string) {
	if id := strings.TrimSpace(override); id != "" {
		return id, ""
	}
	if s.defaults != nil {
		if id := s.defaults.GetString(settingsKey); id != "" && id != settings.UnsetAccount {
			return id, ""
		}
	}
	return configuredID, configuredName
}

func (s *RecorderService) saveHistory(ctx context.Context, batchID uuid.UUID, result *models.BatchResult) {
	if s.history == nil {
		return
	}

	outcomes, err := json.Marshal(result.Outcomes)
	if err != nil {
		s.logger.Warn("Failed to encode batch outcomes", zap.Error(err))
		return
	}

	entry := &models.RecordHistory{
		ID:           uuid.New(),
		BatchID:      batchID,
		DryRun:       result.DryRun,
		SuccessCount: result.SuccessCount,
		ErrorCount:   result.ErrorCount,
		Outcomes:     outcomes,
		CreatedAt:    s.now(),
	}
	if err := s.history.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to save record history", zap.String("batch_id", batchID.String()), zap.Error(err))
	}
}
