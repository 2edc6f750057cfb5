package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type stubObjectStore struct {
	objects map[string][]byte
	removed []string
}

func newStubObjectStore() *stubObjectStore {
	return &stubObjectStore{objects: map[string][]byte{}}
}

func (s *stubObjectStore) Put(_ context.Context, key, _ string, _ int64, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = b
	return nil
}

func (s *stubObjectStore) Remove(_ context.Context, key string) error {
	s.removed = append(s.removed, key)
	delete(s.objects, key)
	return nil
}

func (s *stubObjectStore) PresignedGet(_ context.Context, key string) (string, error) {
	return "https://signed/" + key, nil
}

func (s *stubObjectStore) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func uploadApp(t *testing.T, store usecase.ObjectStore) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{BodyLimit: usecase.MaxUploadSize + 1<<20})
	app.Use(middleware.NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())

	api := app.Group("/api")
	passGuard := func(c fiber.Ctx) error { return c.Next() }
	NewUploadHandler(usecase.NewUploadUsecase(store, log.New(io.Discard, "", 0))).RegisterRoutes(api, passGuard)
	return app
}

func multipartFile(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, w.FormDataContentType()
}

func TestUploadHandler_UploadReturnsRef(t *testing.T) {
	store := newStubObjectStore()
	app := uploadApp(t, store)

	body, contentType := multipartFile(t, "shot.png", []byte("png-bytes"))
	req := httptest.NewRequest("POST", "/api/s3/projects", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var ref usecase.FileRef
	if err := json.NewDecoder(res.Body).Decode(&ref); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.HasPrefix(ref.Key, "projects/") || !strings.HasSuffix(ref.Key, "-shot.png") {
		t.Fatalf("unexpected key %q", ref.Key)
	}
	if ref.URL != "https://signed/"+ref.Key {
		t.Fatalf("unexpected url %q", ref.URL)
	}
	if _, ok := store.objects[ref.Key]; !ok {
		t.Fatalf("expected object stored under %q", ref.Key)
	}
}

func TestUploadHandler_OversizedFileRejected(t *testing.T) {
	store := newStubObjectStore()
	app := uploadApp(t, store)

	body, contentType := multipartFile(t, "big.bin", make([]byte, usecase.MaxUploadSize+1))
	req := httptest.NewRequest("POST", "/api/s3/projects", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for oversized upload, got %d", res.StatusCode)
	}
	if len(store.objects) != 0 {
		t.Fatalf("expected nothing stored, got %v", store.objects)
	}
}

func TestUploadHandler_UnknownFolder(t *testing.T) {
	app := uploadApp(t, newStubObjectStore())

	body, contentType := multipartFile(t, "shot.png", []byte("x"))
	req := httptest.NewRequest("POST", "/api/s3/etc", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown folder, got %d", res.StatusCode)
	}
}

func TestUploadHandler_MissingFileField(t *testing.T) {
	app := uploadApp(t, newStubObjectStore())

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("name", "no file here"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/s3/certs", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without file field, got %d", res.StatusCode)
	}
}

func TestUploadHandler_ListFolder(t *testing.T) {
	store := newStubObjectStore()
	store.objects["certs/1-a.png"] = []byte("a")
	store.objects["projects/2-b.png"] = []byte("b")
	app := uploadApp(t, store)

	res, err := app.Test(httptest.NewRequest("GET", "/api/s3/certs", nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var refs []usecase.FileRef
	if err := json.NewDecoder(res.Body).Decode(&refs); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(refs) != 1 || refs[0].Key != "certs/1-a.png" {
		t.Fatalf("expected only the certs object, got %v", refs)
	}
}

func TestUploadHandler_Remove(t *testing.T) {
	store := newStubObjectStore()
	store.objects["certs/1-a.png"] = []byte("a")
	app := uploadApp(t, store)

	res, err := app.Test(httptest.NewRequest("DELETE", "/api/s3/certs/1-a.png", nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var got map[string]any
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got["key"] != "certs/1-a.png" {
		t.Fatalf("expected deleted key in body, got %v", got)
	}
	if len(store.removed) != 1 || store.removed[0] != "certs/1-a.png" {
		t.Fatalf("expected removal recorded, got %v", store.removed)
	}
}
