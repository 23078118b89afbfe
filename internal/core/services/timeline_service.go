package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports"
)

// TimelineService lists captures filtered by calendar date
type TimelineService struct {
	photoRepo ports.PhotoRepository
}

// NewTimelineService creates a new timeline service
func NewTimelineService(photoRepo ports.PhotoRepository) *TimelineService {
	return &TimelineService{
		photoRepo: photoRepo,
	}
}

// TimelineRequest represents a request to list captures
type TimelineRequest struct {
	Start *time.Time // First day included (optional)
	End   *time.Time // Last day included (optional)
	Limit int        // Max records returned, 0 for all
}

// TimelineResponse represents the filtered timeline
type TimelineResponse struct {
	Photos []domain.PhotoRecord
	Total  int // matches before Limit was applied
	Range  domain.DateRange
}

// Execute lists captures, newest first, within the requested days
func (s *TimelineService) Execute(ctx context.Context, req TimelineRequest) (*TimelineResponse, error) {
	records, err := s.photoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	filtered := FilterByDate(records, req.Start, req.End)
	total := len(filtered)
	if req.Limit > 0 && len(filtered) > req.Limit {
		filtered = filtered[:req.Limit]
	}

	return &TimelineResponse{
		Photos: filtered,
		Total:  total,
		Range:  domain.NewDateRange(req.Start, req.End),
	}, nil
}

// FilterByDate keeps records captured between the start of start's day and the
// end of end's day. Either bound may be nil. Order is preserved.
func FilterByDate(records []domain.PhotoRecord, start, end *time.Time) []domain.PhotoRecord {
	if start == nil && end == nil {
		return records
	}

	r := domain.NewDateRange(start, end)
	filtered := make([]domain.PhotoRecord, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.Time()) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// Sequence is an ordered selection of captures with a current position
type Sequence struct {
	Photos     []domain.PhotoRecord
	StartIndex int
}

// Current returns the photo at StartIndex
func (s Sequence) Current() (domain.PhotoRecord, bool) {
	if s.StartIndex < 0 || s.StartIndex >= len(s.Photos) {
		return domain.PhotoRecord{}, false
	}
	return s.Photos[s.StartIndex], true
}

// ResolveSequence maps ids onto the current listing, dropping identities that
// no longer exist. The start index points at startID, or 0 when it is gone.
func ResolveSequence(listing []domain.PhotoRecord, ids []string, startID string) (Sequence, error) {
	byID := make(map[string]domain.PhotoRecord, len(listing))
	for _, rec := range listing {
		byID[rec.ID] = rec
	}

	seq := Sequence{Photos: make([]domain.PhotoRecord, 0, len(ids))}
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			seq.Photos = append(seq.Photos, rec)
		}
	}

	if len(seq.Photos) == 0 {
		return seq, fmt.Errorf("%w: none of the selected photos exist", domain.ErrPhotoNotFound)
	}

	for i, rec := range seq.Photos {
		if rec.ID == startID {
			seq.StartIndex = i
			break
		}
	}
	return seq, nil
}
