package handler

import (
	"birdcall-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles every route handler of the API.
type Handlers struct {
	Quiz    *QuizHandler
	Catalog *CatalogHandler
	Status  *StatusHandler
}

// RegisterRoutes mounts the public API on app.
func RegisterRoutes(app *fiber.App, h Handlers) {
	vm := middleware.NewValidationMiddleware()

	app.Get("/", h.Status.Root)

	api := app.Group("/api")
	api.Get("/health", h.Status.Health)
	api.Get("/rate-limit/status", h.Status.RateLimitStatus)

	api.Get("/species", h.Catalog.ListSpecies)
	api.Get("/families", h.Catalog.ListFamilies)
	api.Get("/bird/:name", vm.ValidateSpeciesParam(), h.Catalog.GetBird)
	api.Post("/search", h.Catalog.Search)

	api.Get("/quiz/question", vm.ValidateVoiceType(), h.Quiz.GetQuestion)
	api.Post("/quiz/answer", h.Quiz.SubmitAnswer)
}
