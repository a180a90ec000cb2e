package routes

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

func SetupAuthRoutes(app *fiber.App, d *Dependencies) {
	users := repository.NewUserRepository(d.DB)
	hdl := handler.NewAuthHandler(usecase.NewAuthUsecase(users, d.Tokens, d.Permissions))

	// Auth Routes
	app.Post("/api/login", hdl.Login)
	app.Post("/api/refresh-token", hdl.Refresh)

	// Profile Routes (Protected)
	api := app.Group("/api/profile", d.auth())
	api.Get("/", hdl.Profile)
	api.Put("/", hdl.UpdateProfile)
	api.Put("/password", hdl.ChangePassword)
}
