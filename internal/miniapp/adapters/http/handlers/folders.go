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
	LogHandlerListFolders  = "handling list folders request"
	LogHandlerCreateFolder = "handling create folder request"
	LogHandlerUpdateFolder = "handling update folder request"
	LogHandlerDeleteFolder = "handling delete folder request"

	resourceFolder = "folder"
)

// FolderHandler обслуживает /api/folders.
type FolderHandler struct {
	folders FolderService
}

// NewFolderHandler создает обработчик папок.
func NewFolderHandler(folders FolderService) *FolderHandler {
	return &FolderHandler{folders: folders}
}

// List возвращает папки владельца плоским списком.
func (h *FolderHandler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListFolders)

	folders, err := h.folders.List(requestCtx, middleware.Owner(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.RowsResponse[*entities.Folder]{Rows: folders})
}

// Create создает папку.
func (h *FolderHandler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "FolderHandler.Create"))
	log.Debug(requestCtx, LogHandlerCreateFolder)

	var req dto.CreateFolderRequest
	if err := ctx.Bind().WithoutAutoHandling().JSON(&req); err != nil {
		return badRequest(ctx, err)
	}

	folder, err := h.folders.Create(requestCtx, middleware.Owner(ctx), req.Name, req.ParentID)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusCreated, folder)
}

// Update переименовывает и/или переносит папку.
func (h *FolderHandler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "FolderHandler.Update"))
	log.Debug(requestCtx, LogHandlerUpdateFolder)

	id, err := parseInt64Param(ctx, "id", resourceFolder)
	if err != nil {
		return handleError(ctx, err)
	}

	var req dto.UpdateFolderRequest
	if err := ctx.Bind().WithoutAutoHandling().JSON(&req); err != nil {
		return badRequest(ctx, err)
	}

	patch := entities.FolderPatch{
		Name:      req.Name,
		SetParent: req.ParentID.Set,
		ParentID:  req.ParentID.Value,
	}

	folder, err := h.folders.Update(requestCtx, middleware.Owner(ctx), id, patch)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, folder)
}

// Delete удаляет папку вместе с поддеревом.
func (h *FolderHandler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "FolderHandler.Delete"))
	log.Debug(requestCtx, LogHandlerDeleteFolder)

	id, err := parseInt64Param(ctx, "id", resourceFolder)
	if err != nil {
		return handleError(ctx, err)
	}

	result, err := h.folders.Delete(requestCtx, middleware.Owner(ctx), id)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, result)
}
