package handler

import (
	"encoding/json"
	"errors"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/pkg/response"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/resource"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ResourceHandler serves one collection through the shared CRUD pipeline.
// It is instantiated once per resource definition; nothing in here is
// specific to any single collection.
type ResourceHandler struct {
	def    resource.Definition
	uc     usecase.ResourceUsecase
	notify func(resource string)
}

func NewResourceHandler(def resource.Definition, uc usecase.ResourceUsecase, notify func(string)) *ResourceHandler {
	if notify == nil {
		notify = func(string) {}
	}
	return &ResourceHandler{def: def, uc: uc, notify: notify}
}

func (h *ResourceHandler) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	if r == nil {
		return
	}

	grp := r.Group("/" + h.def.Plural)
	grp.Get("/", h.List)

	admin := grp.Group("/admin", guard)
	admin.Post("/", h.Create)
	admin.Put("/:id", h.Update)
	admin.Delete("/:id", h.Delete)
}

func (h *ResourceHandler) List(c fiber.Ctx) error {
	docs, err := h.uc.List(c.Context(), h.def)
	if err != nil {
		return mapResourceError(err)
	}

	views := make([]fiber.Map, 0, len(docs))
	for _, doc := range docs {
		views = append(views, docView(doc))
	}
	return response.Data(c, fiber.StatusOK, h.def.Plural+" fetched successfully", h.def.Plural, views)
}

func (h *ResourceHandler) Create(c fiber.Ctx) error {
	payload, err := decodePayload(c)
	if err != nil {
		return err
	}

	doc, err := h.uc.Create(c.Context(), h.def, payload)
	if err != nil {
		return mapResourceError(err)
	}

	h.notify(h.def.Plural)
	return response.Data(c, fiber.StatusCreated, h.def.Singular+" created successfully", h.def.Singular, docView(doc))
}

func (h *ResourceHandler) Update(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	payload, err := decodePayload(c)
	if err != nil {
		return err
	}

	doc, err := h.uc.Update(c.Context(), h.def, id, payload)
	if err != nil {
		return mapResourceError(err)
	}

	h.notify(h.def.Plural)
	return response.Data(c, fiber.StatusOK, h.def.Singular+" updated successfully", h.def.Singular, docView(doc))
}

func (h *ResourceHandler) Delete(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), h.def, id); err != nil {
		return mapResourceError(err)
	}

	h.notify(h.def.Plural)
	return response.Message(c, fiber.StatusOK, h.def.Singular+" deleted successfully")
}

func decodePayload(c fiber.Ctx) (map[string]any, error) {
	payload := map[string]any{}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &payload); err != nil {
			return nil, middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, "malformed JSON body", err)
		}
	}
	return payload, nil
}

func parseID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, "invalid id", err)
	}
	return id, nil
}

func docView(doc repository.Document) fiber.Map {
	out := fiber.Map{"id": doc.ID}
	for k, v := range doc.Fields {
		out[k] = v
	}
	return out
}

func mapResourceError(err error) error {
	switch {
	case errors.Is(err, resource.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err.Error(), err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, "", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, "", err)
	}
}
