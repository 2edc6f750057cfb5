package middleware

import (
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-api/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

func expiredToken(t *testing.T, secret string) (string, error) {
	t.Helper()

	claims := jwtlib.RegisteredClaims{
		Subject:   "admin@example.com",
		IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func guardedApp(t *testing.T, svc jwt.Service) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/guarded", NewAuthMiddleware(svc).Middleware(), func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	svc := jwt.NewHMACService("secret", time.Hour)
	app := guardedApp(t, svc)

	res, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "Unauthorized") {
		t.Fatalf("expected generic Unauthorized body, got %s", body)
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	svc := jwt.NewHMACService("secret", time.Hour)
	app := guardedApp(t, svc)

	for _, header := range []string{"token-without-scheme", "Basic abc", "Bearer "} {
		req := httptest.NewRequest("GET", "/guarded", nil)
		req.Header.Set("Authorization", header)

		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, res.StatusCode)
		}
	}
}

func TestAuthMiddleware_InvalidAndExpiredLookTheSame(t *testing.T) {
	svc := jwt.NewHMACService("secret", time.Hour)
	app := guardedApp(t, svc)

	expired, err := expiredToken(t, "secret")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	badTokens := []string{"garbage", expired}

	var bodies []string
	for _, tok := range badTokens {
		req := httptest.NewRequest("GET", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+tok)

		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", res.StatusCode)
		}
		b, _ := io.ReadAll(res.Body)
		bodies = append(bodies, string(b))
	}

	for _, b := range bodies {
		if b != bodies[0] {
			t.Fatalf("expired and invalid tokens must be indistinguishable: %v", bodies)
		}
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc := jwt.NewHMACService("secret", time.Hour)
	app := guardedApp(t, svc)

	token, err := svc.Generate("admin@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}
