package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/adapters/http/dto"
	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/pkg/logger"
)

// Константы ошибок.
const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInternal           = "internal server error"
	ErrMsgStorage            = "storage failure"
	ErrMsgInconsistentData   = "stored data is inconsistent"
	ErrMsgInvalidPathParam   = "invalid path parameter"

	errSendResponse = "error sending response"
)

// errorResponse переводит ошибку в статус и тело ответа.
func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		validationErr  *entities.ValidationError
		notFoundErr    *entities.NotFoundError
		unauthorized   *entities.UnauthorizedError
		consistencyErr *entities.ConsistencyError
		storageErr     *entities.StorageError
		fiberErr       *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.StatusCode(), dto.ErrorResponse{Error: validationErr.Message, Details: validationErr.Code}
	case errors.As(err, &notFoundErr):
		return notFoundErr.StatusCode(), dto.ErrorResponse{Error: notFoundErr.Error()}
	case errors.As(err, &unauthorized):
		return unauthorized.StatusCode(), dto.ErrorResponse{Error: entities.ErrUnauthorized.Error(), Details: unauthorized.Message}
	case errors.As(err, &consistencyErr):
		return consistencyErr.StatusCode(), dto.ErrorResponse{Error: ErrMsgInconsistentData, Details: consistencyErr.Message}
	case errors.As(err, &storageErr):
		return storageErr.StatusCode(), dto.ErrorResponse{Error: ErrMsgStorage, Details: storageErr.Error()}
	case errors.As(err, &fiberErr):
		return fiberErr.Code, dto.ErrorResponse{Error: fiberErr.Message}
	default:
		return entities.StatusCode(err), dto.ErrorResponse{Error: ErrMsgInternal}
	}
}

// handleError отправляет ошибку клиенту в формате {error, details}.
func handleError(ctx fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	if status >= fiber.StatusInternalServerError {
		logger.Log(ctx.Context()).Error(ctx.Context(), ErrMsgInternal, zap.Error(err))
	}

	if sendErr := ctx.Status(status).JSON(body); sendErr != nil {
		return fmt.Errorf("%s: %w", errSendResponse, sendErr)
	}
	return nil
}

// ErrorHandler - обработчик ошибок приложения fiber: ошибки middleware и
// неизвестные маршруты отдаются в том же формате, что и ошибки обработчиков.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	return handleError(ctx, err)
}

func badRequest(ctx fiber.Ctx, err error) error {
	return handleError(ctx, &entities.ValidationError{
		Code:    entities.CodeInvalidInput,
		Message: fmt.Sprintf("%s: %v", ErrMsgInvalidRequestBody, err),
	})
}

// parseInt64Param разбирает числовой идентификатор пути; нечисловой id не может
// принадлежать владельцу, поэтому это 404.
func parseInt64Param(ctx fiber.Ctx, name, resource string) (int64, error) {
	raw := ctx.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, entities.NewNotFound(resource, raw)
	}
	return id, nil
}

// pathParam возвращает декодированный параметр пути: имена файлов приходят
// в percent-encoding (пробелы, кириллица).
func pathParam(ctx fiber.Ctx, name string) (string, error) {
	raw := ctx.Params(name)
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", &entities.ValidationError{
			Code:    entities.CodeInvalidInput,
			Message: fmt.Sprintf("%s %q: %v", ErrMsgInvalidPathParam, name, err),
		}
	}
	return value, nil
}

func sendJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("%s: %w", errSendResponse, err)
	}
	return nil
}

func sendSuccess(ctx fiber.Ctx) error {
	return sendJSON(ctx, fiber.StatusOK, dto.SuccessResponse{Success: true})
}
