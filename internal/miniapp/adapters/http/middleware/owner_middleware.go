package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/ports/services"
	"tgminiapp/pkg/logger"
)

// Константы для логирования.
const (
	LogOwnerMiddleware = "owner middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorUnresolvedOwner    = "owner could not be resolved"
)

type ownerKeyType struct{}

var ownerKey = ownerKeyType{}

// NewOwnerMiddleware определяет владельца по заголовку Authorization: Bearer.
func NewOwnerMiddleware(resolver services.OwnerResolver) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "owner"))
		log.Debug(requestCtx, LogOwnerMiddleware)

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return &entities.UnauthorizedError{Message: ErrorNoAuthHeader}
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			return &entities.UnauthorizedError{Message: ErrorInvalidTokenFormat}
		}

		owner, err := resolver.ResolveOwner(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorUnresolvedOwner, zap.Error(err))
			return &entities.UnauthorizedError{Message: ErrorUnresolvedOwner}
		}

		ctx.Locals(ownerKey, owner)
		ctx.SetContext(logger.NewOwnerContext(requestCtx, owner))
		return ctx.Next()
	}
}

// Owner возвращает владельца, определенного NewOwnerMiddleware.
func Owner(ctx fiber.Ctx) string {
	owner, _ := ctx.Locals(ownerKey).(string)
	return owner
}
