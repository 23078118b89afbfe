package server

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/pkg/logging"
)

// Options configures the relay HTTP app
type Options struct {
	CORSOrigins string
	BodyLimitMB int
	Logger      *logging.Logger
}

// New builds the relay app with its middleware and routes
func New(relay *services.RelayService, opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = logging.Discard("server")
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}
	if opts.BodyLimitMB <= 0 {
		opts.BodyLimitMB = 20
	}

	app := fiber.New(fiber.Config{
		AppName:               "secam relay",
		BodyLimit:             opts.BodyLimitMB * 1024 * 1024,
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(requestID)
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:request_id} ${status} - ${latency} ${method} ${path}\n",
		Output: opts.Logger.Writer(),
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	h := &handlers{relay: relay, logger: opts.Logger}

	// Routes
	api := app.Group("/api")
	api.Post("/send-capture", h.sendCapture)
	api.All("/send-capture", methodNotAllowed)
	api.Post("/send-email", h.sendEmail)
	api.All("/send-email", methodNotAllowed)
	api.Get("/deliveries", h.requireBearer, h.deliveries)

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return app
}

// Run listens on addr until SIGINT or SIGTERM, then shuts the app down
func Run(app *fiber.App, addr string, log *logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Infof("gracefully shutting down")
	if err := app.Shutdown(); err != nil {
		return err
	}
	log.Infof("server shutdown complete")
	return nil
}

// requestID tags each request with a uuid, reusing an incoming X-Request-ID
func requestID(c *fiber.Ctx) error {
	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.New().String()
	}
	c.Locals("request_id", id)
	c.Set(fiber.HeaderXRequestID, id)
	return c.Next()
}

func methodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": "Method Not Allowed"})
}
