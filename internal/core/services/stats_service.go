package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports"
)

// StatsService aggregates captures per calendar day
type StatsService struct {
	photoRepo ports.PhotoRepository
}

// NewStatsService creates a new stats service
func NewStatsService(photoRepo ports.PhotoRepository) *StatsService {
	return &StatsService{
		photoRepo: photoRepo,
	}
}

// StatsRequest limits the aggregation to a date range
type StatsRequest struct {
	Start *time.Time
	End   *time.Time
}

// StatsResponse holds per-day counts in ascending day order.
// Days without captures between the first and last capture are included with zero.
type StatsResponse struct {
	Days    []domain.DayCount
	Total   int
	Busiest domain.DayCount
	First   *domain.PhotoRecord
	Last    *domain.PhotoRecord
}

// Execute counts captures per day
func (s *StatsService) Execute(ctx context.Context, req StatsRequest) (*StatsResponse, error) {
	records, err := s.photoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	records = FilterByDate(records, req.Start, req.End)

	resp := &StatsResponse{Total: len(records)}
	if len(records) == 0 {
		return resp, nil
	}

	// Listing is newest first
	last := records[0]
	first := records[len(records)-1]
	resp.First = &first
	resp.Last = &last

	resp.Days = CountByDay(records)
	for _, d := range resp.Days {
		if d.Count > resp.Busiest.Count {
			resp.Busiest = d
		}
	}
	return resp, nil
}

// CountByDay buckets records by local calendar day, oldest day first,
// filling the gaps between the first and last day with zero counts.
func CountByDay(records []domain.PhotoRecord) []domain.DayCount {
	if len(records) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var minDay, maxDay time.Time
	for i, rec := range records {
		d := domain.StartOfDay(rec.Time())
		counts[d.Format(domain.DateInputLayout)]++
		if i == 0 || d.Before(minDay) {
			minDay = d
		}
		if i == 0 || d.After(maxDay) {
			maxDay = d
		}
	}

	var days []domain.DayCount
	for d := minDay; !d.After(maxDay); d = d.AddDate(0, 0, 1) {
		days = append(days, domain.DayCount{Day: d, Count: counts[d.Format(domain.DateInputLayout)]})
	}
	return days
}
