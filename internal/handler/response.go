package handler

import (
	"log"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"sdm-yayasan-backend/internal/pkg/apperror"
	"sdm-yayasan-backend/internal/repository"
)

// BulkDeleteRequest dipakai semua endpoint hapus massal. IDs berisi "1,2,3".
type BulkDeleteRequest struct {
	IDs string `json:"ids" form:"ids"`
}

// respondError menerjemahkan error usecase menjadi response JSON.
func respondError(c *fiber.Ctx, err error) error {
	appErr, ok := apperror.As(err)
	if !ok {
		log.Printf("ERROR %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan pada server"})
	}
	body := fiber.Map{"error": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	return c.Status(appErr.Code).JSON(body)
}

// ErrorHandler dipasang di fiber.Config agar 404 route, body terlalu besar, dan panic yang
// ditangkap recover tetap dijawab dengan format JSON yang sama.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return respondError(c, err)
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.BadRequest("ID tidak valid")
	}
	return uint(id), nil
}

func success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{"message": message, "data": data})
}

func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message, "data": data})
}

func paginated(c *fiber.Ctx, data interface{}, total int64, p repository.Pagination) error {
	p = p.Normalize()
	return c.JSON(fiber.Map{
		"data": data,
		"meta": fiber.Map{"total": total, "page": p.Page, "per_page": p.PerPage},
	})
}

func bulkIDs(c *fiber.Ctx) (string, error) {
	var req BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return "", apperror.BadRequest("Data tidak valid")
	}
	return req.IDs, nil
}

// formFile mengambil file opsional dari multipart. Nil bila tidak dikirim.
func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}
