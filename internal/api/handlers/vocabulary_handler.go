package handlers

import (
	"context"

	"firefly-assistant/internal/dto"
	"firefly-assistant/internal/firefly"
	"firefly-assistant/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type VocabularyProvider interface {
	Cached(ctx context.Context) (*models.Vocabulary, error)
}

type AccountLister interface {
	Accounts(ctx context.Context) (map[string]firefly.Account, error)
}

type VocabularyHandler struct {
	vocab    VocabularyProvider
	accounts AccountLister
	logger   *zap.Logger
}

func NewVocabularyHandler(vocab VocabularyProvider, accounts AccountLister, logger *zap.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		vocab:    vocab,
		accounts: accounts,
		logger:   logger,
	}
}

// GetTagsAndCategories godoc
// @Summary Known categories and tags
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.TagsAndCategoriesResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/tags-and-categories [get]
func (h *VocabularyHandler) GetTagsAndCategories(c *fiber.Ctx) error {
	vocab, err := h.vocab.Cached(c.UserContext())
	if err != nil {
		return errorJSON(c, fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(dto.TagsAndCategoriesResponse{
		Categories: vocab.CategoryNames(),
		Tags:       vocab.TagNames(),
	})
}

// GetAccounts godoc
// @Summary Ledger accounts
// @Tags ledger
// @Produce json
// @Success 200 {object} map[string]firefly.Account
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/accounts [get]
func (h *VocabularyHandler) GetAccounts(c *fiber.Ctx) error {
	accounts, err := h.accounts.Accounts(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to fetch accounts", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to fetch accounts: "+err.Error())
	}
	return c.JSON(accounts)
}
