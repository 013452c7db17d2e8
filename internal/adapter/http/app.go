package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type AppOptions struct {
	Name       string
	Production bool
	RequestLog bool
}

// NewApp builds the fiber app with the shared middleware stack and the
// handler's routes.
func NewApp(h *Handler, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   opts.Name,
		BodyLimit: 8 * 1024 * 1024,
		// params and queries outlive the request in sessions and stores
		Immutable: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return c.Status(code).JSON(errorBody{Success: false, Message: message})
		},
	})
	if opts.RequestLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{AllowOrigins: "*"}))
	app.Use(recover.New(recover.Config{EnableStackTrace: !opts.Production}))

	h.RegisterRoutes(app)
	return app
}
