package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/resource"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// fakeResourceUsecase keeps documents in memory but runs the same schema
// validation the real usecase does, so handler-level status mapping is
// exercised end to end.
type fakeResourceUsecase struct {
	docs map[uuid.UUID]repository.Document
}

func newFakeResourceUsecase() *fakeResourceUsecase {
	return &fakeResourceUsecase{docs: map[uuid.UUID]repository.Document{}}
}

func (f *fakeResourceUsecase) List(_ context.Context, _ resource.Definition) ([]repository.Document, error) {
	out := make([]repository.Document, 0, len(f.docs))
	for _, d := range f.docs {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeResourceUsecase) Create(_ context.Context, def resource.Definition, payload map[string]any) (repository.Document, error) {
	doc := def.Filter(payload)
	def.ApplyDefaults(doc)
	if err := def.ValidateCreate(doc); err != nil {
		return repository.Document{}, fmt.Errorf("%w", err)
	}

	rec := repository.Document{ID: uuid.New(), Fields: doc}
	f.docs[rec.ID] = rec
	return rec, nil
}

func (f *fakeResourceUsecase) Update(_ context.Context, def resource.Definition, id uuid.UUID, payload map[string]any) (repository.Document, error) {
	doc := def.Filter(payload)
	if err := def.ValidateUpdate(doc); err != nil {
		return repository.Document{}, err
	}

	existing, ok := f.docs[id]
	if !ok {
		return repository.Document{}, usecase.ErrNotFound
	}
	for k, v := range doc {
		existing.Fields[k] = v
	}
	f.docs[id] = existing
	return existing, nil
}

func (f *fakeResourceUsecase) Delete(_ context.Context, _ resource.Definition, id uuid.UUID) error {
	delete(f.docs, id)
	return nil
}

func resourceApp(t *testing.T, def resource.Definition, uc usecase.ResourceUsecase, notify func(string)) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())

	api := app.Group("/api")
	passGuard := func(c fiber.Ctx) error { return c.Next() }
	NewResourceHandler(def, uc, notify).RegisterRoutes(api, passGuard)
	return app
}

func decodeBody(t *testing.T, res io.Reader) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.NewDecoder(res).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func TestResourceHandler_CreateReturnsEnvelope(t *testing.T) {
	uc := newFakeResourceUsecase()
	app := resourceApp(t, resource.Skills, uc, nil)

	body := bytes.NewBufferString(`{"title":"Go"}`)
	req := httptest.NewRequest("POST", "/api/skills/admin", body)
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	got := decodeBody(t, res.Body)
	skill, ok := got["skill"].(map[string]any)
	if !ok {
		t.Fatalf("expected skill object in body, got %v", got)
	}
	if skill["title"] != "Go" {
		t.Fatalf("expected title Go, got %v", skill["title"])
	}
	if _, err := uuid.Parse(skill["id"].(string)); err != nil {
		t.Fatalf("expected uuid id, got %v", skill["id"])
	}
}

func TestResourceHandler_CreateValidationNamesField(t *testing.T) {
	uc := newFakeResourceUsecase()
	app := resourceApp(t, resource.Skills, uc, nil)

	req := httptest.NewRequest("POST", "/api/skills/admin", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}

	got := decodeBody(t, res.Body)
	detail, _ := got["error"].(string)
	if !strings.Contains(detail, "title") {
		t.Fatalf("expected error detail to name the field, got %v", got)
	}
	if len(uc.docs) != 0 {
		t.Fatalf("expected nothing persisted after validation failure")
	}
}

func TestResourceHandler_CreateMalformedJSON(t *testing.T) {
	app := resourceApp(t, resource.Skills, newFakeResourceUsecase(), nil)

	req := httptest.NewRequest("POST", "/api/skills/admin", bytes.NewBufferString(`{"title":`))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestResourceHandler_ListPublic(t *testing.T) {
	uc := newFakeResourceUsecase()
	if _, err := uc.Create(context.Background(), resource.Skills, map[string]any{"title": "Go"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	app := resourceApp(t, resource.Skills, uc, nil)

	res, err := app.Test(httptest.NewRequest("GET", "/api/skills", nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	got := decodeBody(t, res.Body)
	items, ok := got["skills"].([]any)
	if !ok {
		t.Fatalf("expected skills array in body, got %v", got)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(items))
	}
}

func TestResourceHandler_UpdateUnknownID(t *testing.T) {
	app := resourceApp(t, resource.BlogPosts, newFakeResourceUsecase(), nil)

	body := bytes.NewBufferString(`{"title":"New"}`)
	req := httptest.NewRequest("PUT", "/api/blogs/admin/"+uuid.NewString(), body)
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestResourceHandler_UpdateBadID(t *testing.T) {
	app := resourceApp(t, resource.BlogPosts, newFakeResourceUsecase(), nil)

	req := httptest.NewRequest("PUT", "/api/blogs/admin/not-a-uuid", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestResourceHandler_DeleteNotifiesAndReportsSuccess(t *testing.T) {
	uc := newFakeResourceUsecase()
	created, err := uc.Create(context.Background(), resource.Skills, map[string]any{"title": "Go"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	var notified []string
	app := resourceApp(t, resource.Skills, uc, func(res string) { notified = append(notified, res) })

	res, err := app.Test(httptest.NewRequest("DELETE", "/api/skills/admin/"+created.ID.String(), nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	got := decodeBody(t, res.Body)
	if msg, _ := got["message"].(string); !strings.Contains(msg, "deleted") {
		t.Fatalf("expected delete confirmation message, got %v", got)
	}
	if len(notified) != 1 || notified[0] != "skills" {
		t.Fatalf("expected one skills notification, got %v", notified)
	}

	// Deleting again still succeeds; the operation is idempotent.
	res, err = app.Test(httptest.NewRequest("DELETE", "/api/skills/admin/"+created.ID.String(), nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on repeat delete, got %d", res.StatusCode)
	}
}
