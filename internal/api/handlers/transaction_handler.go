package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"firefly-assistant/internal/dto"
	"firefly-assistant/internal/firefly"
	"firefly-assistant/internal/models"
	"firefly-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Parser interface {
	Parse(ctx context.Context, text string) *models.ParseResult
}

type Recorder interface {
	Record(ctx context.Context, drafts []models.TransactionDraft, dryRun bool) (*models.BatchResult, error)
}

type TransactionLister interface {
	LatestTransactions(ctx context.Context) (map[string]firefly.TransactionSummary, error)
}

type HistoryLister interface {
	ListLatest(ctx context.Context, limit int) ([]*models.RecordHistory, error)
}

type TransactionHandler struct {
	parser       Parser
	recorder     Recorder
	ledger       TransactionLister
	history      HistoryLister
	historyLimit int
	logger       *zap.Logger
}

func NewTransactionHandler(parser Parser, recorder Recorder, ledger TransactionLister, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		parser:   parser,
		recorder: recorder,
		ledger:   ledger,
		logger:   logger,
	}
}

// WithHistory enables GET /api/history.
func (h *TransactionHandler) WithHistory(history HistoryLister, limit int) *TransactionHandler {
	h.history = history
	h.historyLimit = limit
	return h
}

// Parse godoc
// @Summary Parse free text into transaction drafts
// @Description Accepts the text as text/plain or as JSON {"text": "..."}. Failures are reported in think_result.
// @Tags transactions
// @Accept plain
// @Accept json
// @Produce json
// @Param request body dto.ParseRequest true "Text to parse"
// @Success 200 {object} models.ParseResult
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/parse [post]
func (h *TransactionHandler) Parse(c *fiber.Ctx) error {
	text, err := parseText(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result := h.parser.Parse(c.UserContext(), text)
	return c.JSON(result)
}

// Record godoc
// @Summary Record transaction drafts
// @Description Validates every draft against the ledger categories and tags and posts the valid ones. Per-item failures are reported in the result.
// @Tags transactions
// @Accept json
// @Produce json
// @Param dry_run query bool false "Validate and build payloads without posting"
// @Param request body []models.TransactionDraft true "Drafts to record"
// @Success 200 {object} dto.RecordResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/record [post]
func (h *TransactionHandler) Record(c *fiber.Ctx) error {
	var drafts []models.TransactionDraft
	if err := json.Unmarshal(c.Body(), &drafts); err != nil {
		h.logger.Warn("Invalid record request", zap.Error(err))
		return errorJSON(c, fiber.StatusBadRequest, "Request body must be a JSON array of transactions")
	}
	dryRun := c.QueryBool("dry_run", false)

	result, err := h.recorder.Record(c.UserContext(), drafts, dryRun)
	if err != nil {
		if errors.Is(err, service.ErrVocabularyFetch) {
			return errorJSON(c, fiber.StatusBadGateway, err.Error())
		}
		h.logger.Error("Record failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to record transactions")
	}

	return c.JSON(dto.RecordResponse{
		Message: recordMessage(result),
		Result:  result,
	})
}

// GetTransactions godoc
// @Summary Latest ledger transactions
// @Tags ledger
// @Produce json
// @Success 200 {object} map[string]firefly.TransactionSummary
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/transactions [get]
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.ledger.LatestTransactions(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to fetch latest transactions", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to fetch latest transactions: "+err.Error())
	}
	return c.JSON(transactions)
}

// GetHistory godoc
// @Summary Recently recorded batches
// @Tags transactions
// @Produce json
// @Param limit query int false "Maximum number of entries"
// @Success 200 {array} dto.HistoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/history [get]
func (h *TransactionHandler) GetHistory(c *fiber.Ctx) error {
	if h.history == nil {
		return errorJSON(c, fiber.StatusNotFound, "History is disabled")
	}

	entries, err := h.history.ListLatest(c.UserContext(), c.QueryInt("limit", h.historyLimit))
	if err != nil {
		h.logger.Error("Failed to list history", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to list history")
	}

	response := make([]dto.HistoryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, dto.HistoryResponse{
			ID:           entry.ID.String(),
			BatchID:      entry.BatchID.String(),
			DryRun:       entry.DryRun,
			SuccessCount: entry.SuccessCount,
			ErrorCount:   entry.ErrorCount,
			CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(response)
}

// parseText reads {"text": ...} from JSON bodies and the raw body otherwise.
func parseText(c *fiber.Ctx) (string, error) {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))
	if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
		return string(c.Body()), nil
	}

	var req dto.ParseRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		// a bare JSON string is accepted too
		var text string
		if strErr := json.Unmarshal(c.Body(), &text); strErr != nil {
			return "", err
		}
		return text, nil
	}
	return req.Text, nil
}

func recordMessage(result *models.BatchResult) string {
	total := len(result.Outcomes)
	if result.DryRun {
		return fmt.Sprintf("Dry run: %d of %d transactions passed validation", result.SuccessCount, total)
	}
	if result.ErrorCount == 0 {
		return "Transaction recorded successfully"
	}
	return fmt.Sprintf("Recorded %d of %d transactions", result.SuccessCount, total)
}
