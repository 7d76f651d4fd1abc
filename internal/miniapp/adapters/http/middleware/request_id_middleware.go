package middleware

import (
	"github.com/gofiber/fiber/v3"

	"tgminiapp/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет id запроса из заголовка или генерирует новый,
// если заголовка нет или он недопустим, и кладет id в контекст запроса.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if !logger.ValidRequestID(requestID) {
			requestID = logger.GenerateRequestID()
		}

		ctx.SetContext(logger.NewRequestIDContext(ctx.Context(), requestID))
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}
