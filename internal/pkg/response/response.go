package response

import "github.com/gofiber/fiber/v3"

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "Unauthorized"
	MessageNotFound            = "not found"
	MessageInternalServerError = "internal server error"
)

// Message sends the bare `{ message }` envelope.
func Message(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// Data sends `{ message, <key>: payload }`, the envelope the resource
// endpoints answer with (e.g. { message, skills: [...] }).
func Data(c fiber.Ctx, status int, message, key string, payload any) error {
	return c.Status(status).JSON(fiber.Map{"message": message, key: payload})
}

// Error sends `{ message, error? }`. Detail is meant for client errors;
// upstream failures pass an empty detail and stay generic.
func Error(c fiber.Ctx, status int, message, detail string) error {
	body := fiber.Map{"message": message}
	if detail != "" {
		body["error"] = detail
	}
	return c.Status(status).JSON(body)
}
