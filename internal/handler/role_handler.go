package handler

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/usecase"
)

type RoleHandler struct {
	uc *usecase.RoleUsecase
}

func NewRoleHandler(uc *usecase.RoleUsecase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

func (h *RoleHandler) GetAll(c *fiber.Ctx) error {
	roles, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": roles})
}

func (h *RoleHandler) GetDetail(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	role, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": role})
}

func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var req usecase.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	role, err := h.uc.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Role berhasil dibuat", role)
}

// Update mengganti seluruh permission role dengan permission_ids yang dikirim.
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req usecase.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	role, err := h.uc.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Role berhasil diperbarui", role)
}

func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Role berhasil dihapus"})
}

func (h *RoleHandler) GetAllPermissions(c *fiber.Ctx) error {
	perms, err := h.uc.Permissions()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": perms})
}

func (h *RoleHandler) CreatePermission(c *fiber.Ctx) error {
	var req usecase.PermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}
	perm, err := h.uc.CreatePermission(req)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, "Permission berhasil dibuat", perm)
}

func (h *RoleHandler) DeletePermission(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeletePermission(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Permission berhasil dihapus"})
}
