package handler

import (
	"github.com/gofiber/fiber/v2"

	"sdm-yayasan-backend/internal/middleware"
	"sdm-yayasan-backend/internal/usecase"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req usecase.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	resp, err := h.uc.Login(req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Login berhasil", resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Refresh token wajib diisi"})
	}

	resp, err := h.uc.Refresh(req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Token diperbarui", resp)
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := h.uc.Profile(middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req usecase.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	user, err := h.uc.UpdateProfile(middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return success(c, "Profil berhasil diperbarui", user)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req usecase.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	if err := h.uc.ChangePassword(middleware.UserID(c), req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password berhasil diubah"})
}
