package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports"
	"github.com/kamal-hamza/secam/pkg/logging"
)

// DispatchSettings are the relay parameters taken from config
type DispatchSettings struct {
	Recipients []string
	Subject    string
	FromName   string
	Token      string
}

// DispatchService forwards stored photos to the email relay
type DispatchService struct {
	relay    ports.Relay
	settings DispatchSettings
	logger   *logging.Logger
}

// NewDispatchService creates a new dispatch service
func NewDispatchService(relay ports.Relay, settings DispatchSettings, logger *logging.Logger) *DispatchService {
	if logger == nil {
		logger = logging.Discard("dispatch")
	}
	return &DispatchService{
		relay:    relay,
		settings: settings,
		logger:   logger,
	}
}

// DispatchRequest represents a request to email one photo
type DispatchRequest struct {
	Photo      domain.PhotoRecord
	Recipients []string // Overrides configured recipients (optional)
	Subject    string   // Overrides configured subject (optional)
	Location   *domain.Location
}

// DispatchResponse carries the provider message id
type DispatchResponse struct {
	MessageID  string
	Recipients []string
}

// Execute reads the photo, builds the capture payload and sends it
func (s *DispatchService) Execute(ctx context.Context, req DispatchRequest) (*DispatchResponse, error) {
	recipients := req.Recipients
	if len(recipients) == 0 {
		recipients = s.settings.Recipients
	}
	if len(recipients) == 0 {
		return nil, domain.ErrNoRecipients
	}

	payload, err := s.BuildPayload(req.Photo, recipients, req.Subject)
	if err != nil {
		return nil, err
	}
	payload.Location = req.Location

	id, err := s.relay.Send(ctx, payload)
	if err != nil {
		s.logger.Errorf("dispatch of %s failed: %v", req.Photo.ID, err)
		return nil, fmt.Errorf("failed to send %s: %w", req.Photo.ID, err)
	}

	s.logger.Infof("dispatched %s to %d recipient(s), message %s", req.Photo.ID, len(recipients), id)
	return &DispatchResponse{
		MessageID:  id,
		Recipients: recipients,
	}, nil
}

// BuildPayload turns a stored photo into the relay's JSON body
func (s *DispatchService) BuildPayload(photo domain.PhotoRecord, recipients []string, subject string) (domain.CapturePayload, error) {
	data, err := os.ReadFile(photo.LocalPath())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.CapturePayload{}, fmt.Errorf("%w: %s", domain.ErrPhotoNotFound, photo.ID)
		}
		return domain.CapturePayload{}, fmt.Errorf("failed to read photo: %w", err)
	}

	if subject == "" {
		subject = s.settings.Subject
	}

	payload := domain.CapturePayload{
		To:          domain.Recipients(recipients),
		FromName:    s.settings.FromName,
		Subject:     subject,
		Path:        photo.Path,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		Filename:    photo.ID,
		Token:       s.settings.Token,
	}
	if photo.CreatedAt > 0 {
		payload.CreatedAt = time.UnixMilli(photo.CreatedAt).UTC().Format(time.RFC3339)
	}
	return payload, nil
}
