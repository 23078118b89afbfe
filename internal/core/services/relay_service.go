package services

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports"
	"github.com/kamal-hamza/secam/pkg/logging"
)

// RelaySettings holds the server-side relay configuration
type RelaySettings struct {
	APIToken   string
	MailDomain string
	Now        func() time.Time
}

// RelayService validates send requests and hands them to the email provider
type RelayService struct {
	mailer     ports.Mailer
	deliveries ports.DeliveryLog
	settings   RelaySettings
	validate   *validator.Validate
	logger     *logging.Logger
}

// NewRelayService creates a new relay service.
// A nil mailer means the provider key is missing; sends fail with ErrMailerNotConfigured.
func NewRelayService(mailer ports.Mailer, deliveries ports.DeliveryLog, settings RelaySettings, logger *logging.Logger) *RelayService {
	if settings.MailDomain == "" {
		settings.MailDomain = "example.com"
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	if logger == nil {
		logger = logging.Discard("relay")
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RelayService{
		mailer:     mailer,
		deliveries: deliveries,
		settings:   settings,
		validate:   v,
		logger:     logger,
	}
}

// FieldIssue is one validation failure
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation
type ValidationError struct {
	Details []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Details))
	for i, d := range e.Details {
		parts[i] = d.Field + ": " + d.Message
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidPayload, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidPayload
}

// ProviderError wraps a mailer failure
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", domain.ErrProviderFailed, e.Err)
}

func (e *ProviderError) Is(target error) bool {
	return target == domain.ErrProviderFailed
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// RelayResult is a successful delivery
type RelayResult struct {
	MessageID  string
	DeliveryID string
}

// SendCapture validates a JSON capture payload and emails it with the image attached
func (s *RelayService) SendCapture(ctx context.Context, payload domain.CapturePayload) (*RelayResult, error) {
	if err := s.check(payload); err != nil {
		return nil, err
	}

	image, err := base64.StdEncoding.DecodeString(stripDataURL(payload.ImageBase64))
	if err != nil {
		return nil, &ValidationError{Details: []FieldIssue{{Field: "imageBase64", Message: "must be base64 encoded"}}}
	}

	if err := s.authorize(payload.Token); err != nil {
		return nil, err
	}
	if s.mailer == nil {
		return nil, domain.ErrMailerNotConfigured
	}

	now := s.settings.Now()
	payload.ApplyDefaults(now)

	body, err := ComposeCaptureHTML(payload, now)
	if err != nil {
		return nil, err
	}

	email := domain.Email{
		From:    s.sender(payload.FromName),
		To:      payload.To,
		Subject: payload.Subject,
		HTML:    body,
		Attachments: []domain.Attachment{
			{Filename: payload.Filename, Content: image},
		},
	}
	return s.deliver(ctx, email, payload.Filename)
}

// RelayMessage is the multipart form shape: free text body plus an optional file
type RelayMessage struct {
	To         domain.Recipients  `json:"to" validate:"required,min=1,dive,email"`
	Subject    string             `json:"subject"`
	Body       string             `json:"body"`
	Attachment *domain.Attachment `json:"-"`
	Token      string             `json:"-"`
}

// SendMessage validates a multipart message and emails it
func (s *RelayService) SendMessage(ctx context.Context, msg RelayMessage) (*RelayResult, error) {
	if err := s.check(msg); err != nil {
		return nil, err
	}
	if err := s.authorize(msg.Token); err != nil {
		return nil, err
	}
	if s.mailer == nil {
		return nil, domain.ErrMailerNotConfigured
	}

	if strings.TrimSpace(msg.Subject) == "" {
		msg.Subject = domain.DefaultSubject
	}

	email := domain.Email{
		From:    s.sender(domain.DefaultFromName),
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Body,
		HTML:    "<p>" + strings.ReplaceAll(template.HTMLEscapeString(msg.Body), "\n", "<br>") + "</p>",
	}

	var filename string
	if msg.Attachment != nil && len(msg.Attachment.Content) > 0 {
		filename = msg.Attachment.Filename
		if filename == "" {
			filename = "photo.jpg"
		}
		email.Attachments = []domain.Attachment{{Filename: filename, Content: msg.Attachment.Content}}
	}
	return s.deliver(ctx, email, filename)
}

// Authorize checks a bearer token against the configured API token
func (s *RelayService) Authorize(token string) error {
	return s.authorize(token)
}

// RecentDeliveries returns the delivery log, newest first
func (s *RelayService) RecentDeliveries(ctx context.Context, limit int) ([]domain.Delivery, error) {
	if s.deliveries == nil {
		return []domain.Delivery{}, nil
	}
	return s.deliveries.Recent(ctx, limit)
}

func (s *RelayService) check(v interface{}) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	issues := make([]FieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, FieldIssue{Field: fe.Field(), Message: describeRule(fe)})
	}
	return &ValidationError{Details: issues}
}

func (s *RelayService) authorize(token string) error {
	if s.settings.APIToken == "" {
		return domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.settings.APIToken)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}

func (s *RelayService) sender(fromName string) string {
	return fmt.Sprintf("%s <no-reply@%s>", fromName, s.settings.MailDomain)
}

func (s *RelayService) deliver(ctx context.Context, email domain.Email, filename string) (*RelayResult, error) {
	delivery := domain.Delivery{
		ID:         uuid.New().String(),
		Recipients: email.To,
		Subject:    email.Subject,
		Filename:   filename,
		CreatedAt:  s.settings.Now(),
	}

	id, err := s.mailer.Send(ctx, email)
	if err != nil {
		delivery.Status = domain.DeliveryFailed
		delivery.Error = err.Error()
		s.record(ctx, delivery)
		s.logger.Errorf("delivery %s failed: %v", delivery.ID, err)
		return nil, &ProviderError{Err: err}
	}

	delivery.Status = domain.DeliverySent
	delivery.MessageID = id
	s.record(ctx, delivery)
	s.logger.Infof("delivery %s sent to %d recipient(s), message %s", delivery.ID, len(email.To), id)

	return &RelayResult{MessageID: id, DeliveryID: delivery.ID}, nil
}

func (s *RelayService) record(ctx context.Context, d domain.Delivery) {
	if s.deliveries == nil {
		return
	}
	if err := s.deliveries.Record(ctx, d); err != nil {
		s.logger.Warnf("failed to record delivery %s: %v", d.ID, err)
	}
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must have at least " + fe.Param() + " characters or items"
	case "datetime":
		return "must be an ISO 8601 datetime"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// stripDataURL drops a "data:image/jpeg;base64," prefix
func stripDataURL(value string) string {
	if strings.HasPrefix(value, "data:") {
		if i := strings.Index(value, ","); i >= 0 {
			return value[i+1:]
		}
	}
	return value
}

// -----------------------------------------------------------------------------
// Email body
// -----------------------------------------------------------------------------

const captureDateLayout = "02/01/2006 15:04:05"

var captureTemplate = template.Must(template.New("capture").Parse(`
<div style="font-family:system-ui,Segoe UI,Roboto,Arial,sans-serif">
  <h2 style="margin-bottom:8px">📸 Nova captura</h2>
  <p style="margin:6px 0"><b>Data:</b> {{.When}}</p>
  <p style="margin:6px 0"><b>Localização:</b> {{.Location}}</p>
  {{- if .Path}}
  <p style="margin:6px 0"><b>Origem (path):</b> {{.Path}}</p>
  {{- end}}
  <p style="margin-top:16px">Imagem em anexo.</p>
</div>
`))

// ComposeCaptureHTML renders the capture notification body
func ComposeCaptureHTML(payload domain.CapturePayload, now time.Time) (string, error) {
	when := now
	if payload.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, payload.CreatedAt); err == nil {
			when = t.Local()
		}
	}

	var buf bytes.Buffer
	err := captureTemplate.Execute(&buf, struct {
		When     string
		Location string
		Path     string
	}{
		When:     when.Format(captureDateLayout),
		Location: FormatLocation(payload.Location),
		Path:     payload.Path,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return buf.String(), nil
}

// FormatLocation renders "Lat x, Lon y · ±Nm", or "Sem localização" without a fix
func FormatLocation(loc *domain.Location) string {
	if loc == nil || loc.Lat == nil || loc.Lon == nil {
		return "Sem localização"
	}
	s := fmt.Sprintf("Lat %.5f, Lon %.5f", *loc.Lat, *loc.Lon)
	if loc.Accuracy != nil && *loc.Accuracy != 0 {
		s += fmt.Sprintf(" · ±%dm", int(math.Round(*loc.Accuracy)))
	}
	return s
}
