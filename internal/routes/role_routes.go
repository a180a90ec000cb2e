package routes

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/handler"
	"sdm-yayasan-backend/internal/model"
	"sdm-yayasan-backend/internal/repository"
	"sdm-yayasan-backend/internal/usecase"
)

func SetupRoleRoutes(app *fiber.App, d *Dependencies) {
	hdl := handler.NewRoleHandler(usecase.NewRoleUsecase(repository.NewRoleRepository(d.DB), d.Permissions))

	api := app.Group("/api/admin/roles", d.auth(), d.permission(model.PermKelolaRole))
	api.Get("/", hdl.GetAll)
	api.Get("/permissions", hdl.GetAllPermissions) // List semua permission yang tersedia
	api.Post("/permissions", hdl.CreatePermission)
	api.Delete("/permissions/:id", hdl.DeletePermission)
	api.Get("/:id", hdl.GetDetail)
	api.Post("/", hdl.Create)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
}
