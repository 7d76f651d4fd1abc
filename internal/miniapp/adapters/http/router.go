// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"tgminiapp/internal/miniapp/adapters/http/handlers"
	"tgminiapp/internal/miniapp/adapters/http/middleware"
	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/ports/services"
)

// Services - сценарии, доступные через REST API.
type Services struct {
	Folders     handlers.FolderService
	Collections handlers.CollectionService
	Notes       handlers.NoteService
	Attributes  handlers.AttributeService
	Attachments handlers.AttachmentService
}

// NewApp создает приложение fiber с единым форматом ошибок.
func NewApp(cfg fiber.Config) *fiber.App {
	cfg.ErrorHandler = handlers.ErrorHandler
	return fiber.New(cfg)
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, resolver services.OwnerResolver, svc Services, corsOrigins []string) {
	collectionHandler := handlers.NewCollectionHandler(svc.Collections)
	folderHandler := handlers.NewFolderHandler(svc.Folders)
	noteHandler := handlers.NewNoteHandler(svc.Notes, svc.Attributes)
	attributeHandler := handlers.NewAttributeHandler(svc.Attributes)
	blobHandler := handlers.NewBlobHandler(svc.Attachments)

	// Middleware для всех запросов.
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodPut,
			fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions,
		},
		AllowHeaders:  []string{fiber.HeaderContentType, fiber.HeaderAuthorization, middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID, fiber.HeaderContentDisposition},
	}))

	api := app.Group("/api")
	api.Get("/test", handlers.Ping)

	// Остальные маршруты требуют владельца.
	owner := middleware.NewOwnerMiddleware(resolver)

	collections := api.Group("/vector-collections", owner)
	collections.Get("/", collectionHandler.List)
	collections.Get("/tree", collectionHandler.Tree)
	collections.Post("/toggle", collectionHandler.Toggle)
	collections.Patch("/:name", collectionHandler.Move)
	collections.Delete("/:name", collectionHandler.Delete)

	folders := api.Group("/folders", owner)
	folders.Get("/", folderHandler.List)
	folders.Post("/", folderHandler.Create)
	folders.Patch("/:id", folderHandler.Update)
	folders.Delete("/:id", folderHandler.Delete)

	notes := api.Group("/notes", owner)
	notes.Get("/", noteHandler.List)
	notes.Get("/tree", noteHandler.Tree)
	notes.Get("/search", noteHandler.Search)
	notes.Post("/", noteHandler.Create)
	notes.Get("/:id", noteHandler.Get)
	notes.Put("/:id", noteHandler.Update)
	notes.Patch("/:id", noteHandler.Update)
	notes.Delete("/:id", noteHandler.Delete)
	notes.Get("/:id/attributes", noteHandler.Attributes)

	attributes := api.Group("/attributes", owner)
	attributes.Post("/", attributeHandler.Create)
	attributes.Put("/:id", attributeHandler.Update)
	attributes.Delete("/:id", attributeHandler.Delete)

	blobs := api.Group("/blobs", owner)
	blobs.Post("/", blobHandler.Upload)
	blobs.Get("/", blobHandler.List)
	blobs.Get("/:id", blobHandler.Download)
	blobs.Delete("/:id", blobHandler.Delete)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return entities.NewNotFound("route", c.Path())
	})
}
