package http

import (
	"github.com/gofiber/fiber/v2"
)

type successBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type errorBody struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	DevMessage string      `json:"dev_message,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

func (h *Handler) ok(c *fiber.Ctx, code int, message string, data interface{}) error {
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(successBody{Success: true, Message: message, Data: data})
}

// fail writes the error envelope. err is only exposed outside production.
func (h *Handler) fail(c *fiber.Ctx, code int, message string, err error) error {
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	body := errorBody{Success: false, Message: message}
	if h.devErrors && err != nil {
		body.DevMessage = err.Error()
	}
	return c.Status(code).JSON(body)
}
