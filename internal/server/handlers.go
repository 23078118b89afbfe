package server

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/pkg/logging"
)

type handlers struct {
	relay  *services.RelayService
	logger *logging.Logger
}

// sendCapture accepts the JSON capture payload
func (h *handlers) sendCapture(c *fiber.Ctx) error {
	var payload domain.CapturePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid payload",
			"details": []services.FieldIssue{{Field: "body", Message: err.Error()}},
		})
	}

	result, err := h.relay.SendCapture(c.UserContext(), payload)
	if err != nil {
		return h.relayError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "id": result.MessageID})
}

// sendEmail accepts multipart/form-data: to, subject, body and an optional file
func (h *handlers) sendEmail(c *fiber.Ctx) error {
	msg := services.RelayMessage{
		To:      domain.ParseRecipients(c.FormValue("to")),
		Subject: c.FormValue("subject"),
		Body:    c.FormValue("body"),
		Token:   bearerToken(c),
	}

	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
		}
		msg.Attachment = &domain.Attachment{Filename: fh.Filename, Content: content}
	}

	result, err := h.relay.SendMessage(c.UserContext(), msg)
	if err != nil {
		return h.relayError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "id": result.MessageID})
}

// deliveries lists the most recent relay outcomes
func (h *handlers) deliveries(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	list, err := h.relay.RecentDeliveries(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch deliveries"})
	}
	return c.JSON(fiber.Map{"deliveries": list})
}

func (h *handlers) requireBearer(c *fiber.Ctx) error {
	if err := h.relay.Authorize(bearerToken(c)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.Next()
}

// relayError maps relay failures onto status codes
func (h *handlers) relayError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload", "details": verr.Details})
	case errors.Is(err, domain.ErrInvalidPayload):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	case errors.Is(err, domain.ErrMailerNotConfigured):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Missing RESEND_API_KEY"})
	case errors.Is(err, domain.ErrProviderFailed):
		h.logger.Errorf("request %v: %v", c.Locals("request_id"), err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Email provider error", "details": err.Error()})
	default:
		h.logger.Errorf("request %v: %v", c.Locals("request_id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal error", "details": err.Error()})
	}
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
