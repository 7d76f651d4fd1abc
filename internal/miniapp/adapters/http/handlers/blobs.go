package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/adapters/http/dto"
	"tgminiapp/internal/miniapp/adapters/http/middleware"
	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerUploadBlob   = "handling upload blob request"
	LogHandlerListBlobs    = "handling list blobs request"
	LogHandlerDownloadBlob = "handling download blob request"
	LogHandlerDeleteBlob   = "handling delete blob request"
	LogNoFileInForm        = "multipart form has no file"

	formFieldFile   = "file"
	formFieldNoteID = "note_id"

	errReadUpload = "failed to read uploaded file"
)

// BlobHandler обслуживает /api/blobs.
type BlobHandler struct {
	attachments AttachmentService
}

// NewBlobHandler создает обработчик вложений.
func NewBlobHandler(attachments AttachmentService) *BlobHandler {
	return &BlobHandler{attachments: attachments}
}

// Upload принимает multipart форму с полями file и note_id.
func (h *BlobHandler) Upload(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "BlobHandler.Upload"))
	log.Debug(requestCtx, LogHandlerUploadBlob)

	var upload *entities.Upload
	header, err := ctx.FormFile(formFieldFile)
	if err != nil {
		log.Debug(requestCtx, LogNoFileInForm, zap.Error(err))
	} else {
		upload, err = readUpload(header)
		if err != nil {
			return handleError(ctx, err)
		}
	}

	id, err := h.attachments.Put(requestCtx, middleware.Owner(ctx), ctx.FormValue(formFieldNoteID), upload)
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusCreated, dto.IDResponse{ID: id})
}

func readUpload(header *multipart.FileHeader) (*entities.Upload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errReadUpload, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errReadUpload, err)
	}

	return &entities.Upload{
		Filename: header.Filename,
		MIME:     header.Header.Get(fiber.HeaderContentType),
		Data:     data,
	}, nil
}

// List возвращает метаданные вложений заметки.
func (h *BlobHandler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListBlobs)

	attachments, err := h.attachments.ListByNote(requestCtx, middleware.Owner(ctx), ctx.Query(formFieldNoteID))
	if err != nil {
		return handleError(ctx, err)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.RowsResponse[*entities.Attachment]{Rows: attachments})
}

// Download отдает содержимое вложения с исходным MIME и именем файла.
func (h *BlobHandler) Download(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDownloadBlob)

	att, err := h.attachments.Get(requestCtx, middleware.Owner(ctx), ctx.Params("id"))
	if err != nil {
		return handleError(ctx, err)
	}

	ctx.Attachment(att.Filename)
	ctx.Set(fiber.HeaderContentType, att.MIME)
	if err := ctx.Send(att.Data); err != nil {
		return fmt.Errorf("%s: %w", errSendResponse, err)
	}
	return nil
}

// Delete удаляет вложение.
func (h *BlobHandler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteBlob)

	if err := h.attachments.Delete(requestCtx, middleware.Owner(ctx), ctx.Params("id")); err != nil {
		return handleError(ctx, err)
	}
	return sendSuccess(ctx)
}

