package handler

import (
	"errors"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// UploadHandler is the file reference proxy: it never persists bytes
// itself, it forwards them to the object store and hands back the
// { key, url } pair a record can reference.
type UploadHandler struct {
	uc usecase.UploadUsecase
}

func NewUploadHandler(uc usecase.UploadUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

func (h *UploadHandler) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	if r == nil {
		return
	}

	grp := r.Group("/s3/:folder", guard)
	grp.Get("/", h.List)
	grp.Post("/", h.Upload)
	grp.Put("/:key", h.Replace)
	grp.Delete("/:key", h.Remove)
}

func (h *UploadHandler) List(c fiber.Ctx) error {
	refs, err := h.uc.ListFolder(c.Context(), c.Params("folder"))
	if err != nil {
		return mapUploadError(err)
	}
	return c.Status(fiber.StatusOK).JSON(refs)
}

func (h *UploadHandler) Upload(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, `multipart field "file" is required`, err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, "", err)
	}
	defer f.Close()

	ref, err := h.uc.Upload(c.Context(), c.Params("folder"), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		return mapUploadError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(ref)
}

func (h *UploadHandler) Replace(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, `multipart field "file" is required`, err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, "", err)
	}
	defer f.Close()

	ref, err := h.uc.Replace(c.Context(), c.Params("folder"), c.Params("key"), fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		return mapUploadError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "file replaced successfully",
		"key":     ref.Key,
		"url":     ref.URL,
	})
}

func (h *UploadHandler) Remove(c fiber.Ctx) error {
	key, err := h.uc.Remove(c.Context(), c.Params("folder"), c.Params("key"))
	if err != nil {
		return mapUploadError(err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "file deleted successfully",
		"key":     key,
	})
}

func mapUploadError(err error) error {
	if errors.Is(err, usecase.ErrInvalidInput) {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err.Error(), err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, "", err)
}
