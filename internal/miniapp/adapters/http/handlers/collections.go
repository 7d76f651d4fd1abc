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
	LogHandlerListCollections  = "handling list collections request"
	LogHandlerCollectionTree   = "handling collection tree request"
	LogHandlerToggleCollection = "handling toggle collection request"
	LogHandlerMoveCollection   = "handling move collection request"
	LogHandlerDeleteCollection = "handling delete collection request"
)

// CollectionHandler обслуживает /api/vector-collections.
type CollectionHandler struct {
	collections CollectionService
}

// NewCollectionHandler создает обработчик реестра коллекций.
func NewCollectionHandler(collections CollectionService) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

// List возвращает элементы коллекции владельца.
func (h *CollectionHandler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListCollections)

	items, err := h.collections.List(requestCtx, middleware.Owner(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.RowsResponse[*entities.CollectionItem]{Rows: items})
}

// Tree возвращает библиотеку: дерево папок с элементами и неразобранное.
func (h *CollectionHandler) Tree(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCollectionTree)

	library, err := h.collections.Tree(requestCtx, middleware.Owner(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, library)
}

// Toggle включает или выключает элемент.
func (h *CollectionHandler) Toggle(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "CollectionHandler.Toggle"))
	log.Debug(requestCtx, LogHandlerToggleCollection)

	var req dto.ToggleRequest
	if err := ctx.Bind().WithoutAutoHandling().JSON(&req); err != nil {
		return badRequest(ctx, err)
	}

	if err := h.collections.ToggleActive(requestCtx, middleware.Owner(ctx), req.Name, req.Active); err != nil {
		return handleError(ctx, err)
	}
	return sendSuccess(ctx)
}

// Move переносит элемент в папку или в неразобранное.
func (h *CollectionHandler) Move(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "CollectionHandler.Move"))
	log.Debug(requestCtx, LogHandlerMoveCollection)

	name, err := pathParam(ctx, "name")
	if err != nil {
		return handleError(ctx, err)
	}

	var req dto.MoveRequest
	if err := ctx.Bind().WithoutAutoHandling().JSON(&req); err != nil {
		return badRequest(ctx, err)
	}

	if err := h.collections.Move(requestCtx, middleware.Owner(ctx), name, req.FolderID); err != nil {
		return handleError(ctx, err)
	}
	return sendSuccess(ctx)
}

// Delete удаляет элемент вместе с его эмбеддингами.
func (h *CollectionHandler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "CollectionHandler.Delete"))
	log.Debug(requestCtx, LogHandlerDeleteCollection)

	name, err := pathParam(ctx, "name")
	if err != nil {
		return handleError(ctx, err)
	}

	if err := h.collections.Delete(requestCtx, middleware.Owner(ctx), name); err != nil {
		return handleError(ctx, err)
	}
	return sendSuccess(ctx)
}
