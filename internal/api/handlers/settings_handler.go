package handlers

import (
	"context"
	"encoding/json"

	"firefly-assistant/internal/dto"
	"firefly-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Version is reported by GET /api/default_account.
const Version = "0.1.2"

// SettingsStore is re-read from disk on every request so edits to the file
// made outside the server are picked up.
type SettingsStore interface {
	service.SettingsStore
	Load() map[string]any
	Merge(values map[string]any) error
}

type DefaultAccountResolver interface {
	DefaultAccounts(ctx context.Context, store service.SettingsStore) (map[string]any, error)
}

type SettingsHandler struct {
	store      SettingsStore
	resolver   DefaultAccountResolver
	fireflyURL string
	logger     *zap.Logger
}

func NewSettingsHandler(store SettingsStore, resolver DefaultAccountResolver, fireflyURL string, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:      store,
		resolver:   resolver,
		fireflyURL: fireflyURL,
		logger:     logger,
	}
}

// GetDefaultAccount godoc
// @Summary User settings
// @Description Returns the saved settings plus version and firefly_iii_url. Default accounts set to "-1" are derived from the latest transactions and saved.
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/default_account [get]
func (h *SettingsHandler) GetDefaultAccount(c *fiber.Ctx) error {
	h.store.Load()

	configs, err := h.resolver.DefaultAccounts(c.UserContext(), h.store)
	if err != nil {
		h.logger.Error("Failed to resolve default accounts", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to resolve default accounts: "+err.Error())
	}

	configs["version"] = Version
	configs["firefly_iii_url"] = h.fireflyURL
	return c.JSON(configs)
}

// UpdateDefault godoc
// @Summary Update user settings
// @Description Merges the posted keys into the settings file.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Settings to merge"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/default [post]
func (h *SettingsHandler) UpdateDefault(c *fiber.Ctx) error {
	var data map[string]any
	if err := json.Unmarshal(c.Body(), &data); err != nil || data == nil {
		return errorJSON(c, fiber.StatusBadRequest, "Request body must be a JSON object")
	}

	if err := h.store.Merge(data); err != nil {
		h.logger.Error("Failed to save user settings", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to update user settings: "+err.Error())
	}

	h.logger.Info("User settings updated", zap.Int("keys", len(data)))
	return c.JSON(dto.MessageResponse{Message: "User settings updated"})
}
