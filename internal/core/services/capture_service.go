package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports"
	"github.com/kamal-hamza/secam/pkg/logging"
)

// CaptureService persists new captures and optionally forwards them
type CaptureService struct {
	photoRepo ports.PhotoRepository
	dispatch  *DispatchService
	autoSend  bool
	logger    *logging.Logger
}

// NewCaptureService creates a new capture service.
// dispatch may be nil when no relay is configured.
func NewCaptureService(photoRepo ports.PhotoRepository, dispatch *DispatchService, autoSend bool, logger *logging.Logger) *CaptureService {
	if logger == nil {
		logger = logging.Discard("capture")
	}
	return &CaptureService{
		photoRepo: photoRepo,
		dispatch:  dispatch,
		autoSend:  autoSend,
		logger:    logger,
	}
}

// CaptureRequest represents a request to store a captured file
type CaptureRequest struct {
	TempLocation string // path or file:// reference of the captured file
}

// CaptureResponse represents the stored capture
type CaptureResponse struct {
	Record domain.PhotoRecord

	// Set only when auto-send ran
	Sent      bool
	MessageID string
	SendErr   error
}

// Execute persists the capture. An auto-send failure is reported in the
// response and never undoes the capture.
func (s *CaptureService) Execute(ctx context.Context, req CaptureRequest) (*CaptureResponse, error) {
	record, err := s.photoRepo.Persist(ctx, req.TempLocation)
	if err != nil {
		s.logger.Errorf("persist of %s failed: %v", req.TempLocation, err)
		return nil, fmt.Errorf("failed to store capture: %w", err)
	}
	s.logger.Infof("stored %s", record.ID)

	resp := &CaptureResponse{Record: record}
	if !s.autoSend || s.dispatch == nil {
		return resp, nil
	}

	sent, err := s.dispatch.Execute(ctx, DispatchRequest{Photo: record})
	if err != nil {
		s.logger.Warnf("auto-send of %s failed: %v", record.ID, err)
		resp.SendErr = err
		return resp, nil
	}

	resp.Sent = true
	resp.MessageID = sent.MessageID
	return resp, nil
}
