package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"firefly-assistant/internal/models"

	"go.uber.org/zap"
)

const (
	thinkResultMissing = "The model did not explain its reasoning."
	thinkResultEmpty   = "No text to parse."
)

// VocabularyProvider is the part of VocabularyService the parser needs.
type VocabularyProvider interface {
	Cached(ctx context.Context) (*models.Vocabulary, error)
}

// ParserService turns free text into transaction drafts with a language model.
type ParserService struct {
	completer Completer
	vocab     VocabularyProvider
	logger    *zap.Logger
	now       func() time.Time
}

func NewParserService(completer Completer, vocab VocabularyProvider, logger *zap.Logger) *ParserService {
	return &ParserService{
		completer: completer,
		vocab:     vocab,
		logger:    logger,
		now:       time.Now,
	}
}

type modelReply struct {
	Transactions []models.TransactionDraft `json:"transactions"`
	ThinkResult  string                    `json:"think_result"`
}

// Parse never fails: any problem is reported in ThinkResult with an empty
// transaction list.
func (s *ParserService) Parse(ctx context.Context, text string) *models.ParseResult {
	text = strings.TrimSpace(sanitizeUTF8(text))
	if text == "" {
		return &models.ParseResult{Transactions: []models.TransactionDraft{}, ThinkResult: thinkResultEmpty}
	}

	vocab, err := s.vocab.Cached(ctx)
	if err != nil {
		return s.failed("failed to load categories and tags", err)
	}

	prompt := s.buildPrompt(text, vocab)

	content, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return s.failed("model call failed", err)
	}

	reply, err := decodeModelReply(content)
	if err != nil {
		s.logger.Debug("Unparseable model reply", zap.String("content", content))
		return s.failed("could not parse model reply", err)
	}

	if reply.Transactions == nil {
		reply.Transactions = []models.TransactionDraft{}
	}
	if strings.TrimSpace(reply.ThinkResult) == "" {
		reply.ThinkResult = thinkResultMissing
	}

	s.logger.Info("Transaction parsing completed", zap.Int("count", len(reply.Transactions)))

	return &models.ParseResult{
		Transactions: reply.Transactions,
		ThinkResult:  reply.ThinkResult,
	}
}

func (s *ParserService) failed(reason string, err error) *models.ParseResult {
	s.logger.Warn("Transaction parsing failed", zap.String("reason", reason), zap.Error(err))
	return &models.ParseResult{
		Transactions: []models.TransactionDraft{},
		ThinkResult:  fmt.Sprintf("Parsing failed: %s: %v", reason, err),
	}
}

func (s *ParserService) buildPrompt(text string, vocab *models.Vocabulary) string {
	categories, _ := json.Marshal(vocab.CategoryNames())
	tags, _ := json.Marshal(vocab.TagNames())

	return fmt.Sprintf(`Parse the transaction notes below into JSON with these fields per transaction:
- date: transaction date, format YYYY-MM-DDTHH:mm (today is %s; use it when the notes give no date)
- description: short description
- amount: number
- category: transaction category
- tags: list of tags

Pick the category from %s based on the description. Then pick exactly one tag from %s.
The tag MUST start with the chosen category. If no tag fits, create a new one following the same
rule, named "<category>-<description>".

Also return "think_result": a short explanation of how you classified the transactions.

Example input:
07.06
- 12.00 lunch 66
- 16.00 property fee 900

Example output:
{
  "transactions": [
    {"date": "2025-07-06T12:00", "description": "lunch", "amount": 66, "category": "Dining", "tags": ["Dining-lunch"]},
    {"date": "2025-07-06T16:00", "description": "property fee", "amount": 900, "category": "Housing", "tags": ["Housing-property fee"]}
  ],
  "think_result": "lunch is a meal, property fee is a housing cost"
}

Return ONLY the JSON object.

Actual input:
%s`, s.now().Format("2006-01-02"), categories, tags, text)
}

// decodeModelReply accepts the JSON object asked for, or a bare array of
// transactions, optionally wrapped in code fences or prose.
func decodeModelReply(content string) (*modelReply, error) {
	clean := stripCodeFences(content)

	objStart, objEnd := strings.Index(clean, "{"), strings.LastIndex(clean, "}")
	arrStart := strings.Index(clean, "[")
	if objStart != -1 && objEnd > objStart && (arrStart == -1 || objStart < arrStart) {
		var reply modelReply
		if err := json.Unmarshal([]byte(clean[objStart:objEnd+1]), &reply); err == nil {
			return &reply, nil
		}
	}

	if start, end := strings.Index(clean, "["), strings.LastIndex(clean, "]"); start != -1 && end > start {
		var transactions []models.TransactionDraft
		if err := json.Unmarshal([]byte(clean[start:end+1]), &transactions); err != nil {
			return nil, fmt.Errorf("failed to parse JSON response: %w", err)
		}
		return &modelReply{Transactions: transactions}, nil
	}

	return nil, fmt.Errorf("invalid response format: %s", truncate(content, 200))
}

func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
