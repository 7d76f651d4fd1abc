package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"tgminiapp/internal/miniapp/adapters/http/dto"
)

// MsgAPIWorking - ответ проверки доступности.
const MsgAPIWorking = "API is working"

// Ping - проверка доступности API без авторизации.
func Ping(ctx fiber.Ctx) error {
	return sendJSON(ctx, fiber.StatusOK, dto.TestResponse{
		Message:   MsgAPIWorking,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
