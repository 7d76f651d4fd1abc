package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/adapters/http/dto"
	"tgminiapp/internal/miniapp/adapters/http/middleware"
	"tgminiapp/internal/miniapp/app"
	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreateNote     = "handling create note request"
	LogHandlerGetNote        = "handling get note request"
	LogHandlerListNotes      = "handling list notes request"
	LogHandlerNoteTree       = "handling note tree request"
	LogHandlerSearchNotes    = "handling search notes request"
	LogHandlerUpdateNote     = "handling update note request"
	LogHandlerDeleteNote     = "handling delete note request"
	LogHandlerNoteAttributes = "handling list note attributes request"
)

// NoteHandler обслуживает /api/notes.
type NoteHandler struct {
	notes      NoteService
	attributes AttributeService
}

// NewNoteHandler создает обработчик заметок.
func NewNoteHandler(notes NoteService, attributes AttributeService) *NoteHandler {
	return &NoteHandler{notes: notes, attributes: attributes}
}

// List возвращает живые заметки владельца.
func (h *NoteHandler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListNotes)

	notes, err := h.notes.List(requestCtx, middleware.Owner(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.RowsResponse[*entities.Note]{Rows: notes})
}

// Tree возвращает лес заметок с атрибутами.
func (h *NoteHandler) Tree(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerNoteTree)

	roots, err := h.notes.Tree(requestCtx, middleware.Owner(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, roots)
}

// Search ищет заметки по строке q.
func (h *NoteHandler) Search(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	term := ctx.Query("q")
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerSearchNotes, zap.String("term", term))

	found, err := h.notes.Search(requestCtx, middleware.Owner(ctx), term)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.RowsResponse[app.NoteNode]{Rows: found})
}

// Get возвращает заметку.
func (h *NoteHandler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetNote)

	note, err := h.notes.Get(requestCtx, middleware.Owner(ctx), ctx.Params("id"))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, note)
}

// Create создает заметку.
func (h *NoteHandler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "NoteHandler.Create"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	var req dto.CreateNoteRequest
	if err := ctx.Bind().WithoutAutoHandling().JSON(&req); err != nil {
		return badRequest(ctx, err)
	}

	note, err := h.notes.Create(requestCtx, middleware.Owner(ctx), app.NoteInput{
		Title:        req.Title,
		Content:      req.Content,
		Type:         req.Type,
		ParentNoteID: req.ParentNoteID,
	})
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusCreated, dto.NoteResponse[*entities.Note]{Note: note})
}

// Update частично обновляет заметку.
func (h *NoteHandler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "NoteHandler.Update"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().WithoutAutoHandling().JSON(&req); err != nil {
		return badRequest(ctx, err)
	}

	patch := entities.NotePatch{
		Title:     req.Title,
		Content:   req.Content,
		Type:      req.Type,
		SetParent: req.ParentNoteID.Set,
		ParentID:  req.ParentNoteID.Value,
	}

	note, err := h.notes.Update(requestCtx, middleware.Owner(ctx), ctx.Params("id"), patch)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, note)
}

// Delete помечает заметку удаленной.
func (h *NoteHandler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteNote)

	if err := h.notes.SoftDelete(requestCtx, middleware.Owner(ctx), ctx.Params("id")); err != nil {
		return handleError(ctx, err)
	}
	return sendSuccess(ctx)
}

// Attributes возвращает атрибуты заметки.
func (h *NoteHandler) Attributes(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerNoteAttributes)

	attrs, err := h.attributes.ListByNote(requestCtx, middleware.Owner(ctx), ctx.Params("id"))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.RowsResponse[*entities.Attribute]{Rows: attrs})
}
