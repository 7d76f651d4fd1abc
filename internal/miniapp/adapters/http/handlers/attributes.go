package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/adapters/http/dto"
	"tgminiapp/internal/miniapp/adapters/http/middleware"
	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreateAttribute = "handling create attribute request"
	LogHandlerUpdateAttribute = "handling update attribute request"
	LogHandlerDeleteAttribute = "handling delete attribute request"

	resourceAttribute = "attribute"
)

// AttributeHandler обслуживает /api/attributes.
type AttributeHandler struct {
	attributes AttributeService
}

// NewAttributeHandler создает обработчик атрибутов.
func NewAttributeHandler(attributes AttributeService) *AttributeHandler {
	return &AttributeHandler{attributes: attributes}
}

// Create добавляет атрибут к заметке.
func (h *AttributeHandler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "AttributeHandler.Create"))
	log.Debug(requestCtx, LogHandlerCreateAttribute)

	var req dto.CreateAttributeRequest
	if err := ctx.Bind().WithoutAutoHandling().JSON(&req); err != nil {
		return badRequest(ctx, err)
	}

	attr, err := h.attributes.Create(requestCtx, middleware.Owner(ctx), entities.Attribute{
		NoteID:        req.NoteID,
		Type:          req.Type,
		Name:          req.Name,
		Value:         req.Value,
		Position:      req.Position,
		IsInheritable: req.IsInheritable,
	})
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusCreated, attr)
}

// Update частично обновляет атрибут.
func (h *AttributeHandler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "AttributeHandler.Update"))
	log.Debug(requestCtx, LogHandlerUpdateAttribute)

	id, err := parseInt64Param(ctx, "id", resourceAttribute)
	if err != nil {
		return handleError(ctx, err)
	}

	var req dto.UpdateAttributeRequest
	if err := ctx.Bind().WithoutAutoHandling().JSON(&req); err != nil {
		return badRequest(ctx, err)
	}

	attr, err := h.attributes.Update(requestCtx, middleware.Owner(ctx), id, entities.AttributePatch{
		Type:          req.Type,
		Name:          req.Name,
		Value:         req.Value,
		Position:      req.Position,
		IsInheritable: req.IsInheritable,
	})
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, attr)
}

// Delete удаляет атрибут.
func (h *AttributeHandler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteAttribute)

	id, err := parseInt64Param(ctx, "id", resourceAttribute)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := h.attributes.Delete(requestCtx, middleware.Owner(ctx), id); err != nil {
		return handleError(ctx, err)
	}
	return sendSuccess(ctx)
}
