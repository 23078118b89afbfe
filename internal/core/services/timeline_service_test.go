package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports/mocks"
)

func recordAt(t time.Time) domain.PhotoRecord {
	ms := t.UnixMilli()
	return domain.PhotoRecord{
		ID:        domain.GenerateFilename(ms),
		Path:      domain.ReferenceFor(domain.PlatformDefault, "/photos/"+domain.GenerateFilename(ms)),
		CreatedAt: ms,
	}
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 12, 0, 0, 0, time.Local)
	return &t
}

func TestFilterByDate(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	t2 := time.Date(2024, 3, 1, 18, 30, 0, 0, time.Local)
	t3 := time.Date(2024, 3, 2, 7, 15, 0, 0, time.Local)
	midnight := time.Date(2024, 3, 3, 0, 0, 0, 0, time.Local)
	lastMs := time.Date(2024, 3, 3, 23, 59, 59, int(999*time.Millisecond), time.Local)
	prevDay := time.Date(2024, 2, 29, 23, 59, 59, int(999*time.Millisecond), time.Local)

	all := []domain.PhotoRecord{recordAt(lastMs), recordAt(midnight), recordAt(t3), recordAt(t2), recordAt(t1), recordAt(prevDay)}

	tests := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		expected []int // indexes into all
	}{
		{"no bounds", nil, nil, []int{0, 1, 2, 3, 4, 5}},
		{"single day", day(2024, 3, 1), day(2024, 3, 1), []int{3, 4}},
		{"start only", day(2024, 3, 2), nil, []int{0, 1, 2}},
		{"end only", nil, day(2024, 3, 1), []int{3, 4, 5}},
		{"midnight and last millisecond included", day(2024, 3, 3), day(2024, 3, 3), []int{0, 1}},
		{"leap day", day(2024, 2, 29), day(2024, 2, 29), []int{5}},
		{"inverted range", day(2024, 3, 3), day(2024, 3, 1), []int{}},
		{"no matches", day(2025, 1, 1), day(2025, 1, 2), []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByDate(all, tt.start, tt.end)
			if len(got) != len(tt.expected) {
				t.Fatalf("FilterByDate() returned %d records, want %d: %v", len(got), len(tt.expected), domain.IDs(got))
			}
			for i, idx := range tt.expected {
				if got[i].ID != all[idx].ID {
					t.Errorf("record %d = %s, want %s", i, got[i].ID, all[idx].ID)
				}
			}
		})
	}
}

func TestFilterByDate_IgnoresTimeOfDayInBounds(t *testing.T) {
	rec := recordAt(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))

	// Bounds carry a time later than the record; normalization widens them to the whole day
	start := time.Date(2024, 3, 1, 23, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 1, 1, 0, 0, 0, time.Local)

	got := FilterByDate([]domain.PhotoRecord{rec}, &start, &end)
	if len(got) != 1 {
		t.Errorf("expected record to be kept, got %d", len(got))
	}
}

func TestFilterByDate_Empty(t *testing.T) {
	if got := FilterByDate(nil, day(2024, 1, 1), nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestTimelineService_Execute(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	t2 := time.Date(2024, 3, 1, 18, 30, 0, 0, time.Local)
	t3 := time.Date(2024, 3, 2, 7, 15, 0, 0, time.Local)

	tests := []struct {
		name          string
		request       TimelineRequest
		expectedIDs   []string
		expectedTotal int
	}{
		{
			name:          "all photos newest first",
			request:       TimelineRequest{},
			expectedIDs:   []string{recordAt(t3).ID, recordAt(t2).ID, recordAt(t1).ID},
			expectedTotal: 3,
		},
		{
			name:          "first day only",
			request:       TimelineRequest{Start: &t1, End: &t1},
			expectedIDs:   []string{recordAt(t2).ID, recordAt(t1).ID},
			expectedTotal: 2,
		},
		{
			name:          "limit keeps total",
			request:       TimelineRequest{Limit: 1},
			expectedIDs:   []string{recordAt(t3).ID},
			expectedTotal: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockPhotoRepository(time.Now())
			repo.Add(recordAt(t1), recordAt(t2), recordAt(t3))

			svc := NewTimelineService(repo)
			resp, err := svc.Execute(context.Background(), tt.request)
			if err != nil {
				t.Fatalf("Execute() failed: %v", err)
			}

			if resp.Total != tt.expectedTotal {
				t.Errorf("Total = %d, want %d", resp.Total, tt.expectedTotal)
			}
			got := domain.IDs(resp.Photos)
			if len(got) != len(tt.expectedIDs) {
				t.Fatalf("ids = %v, want %v", got, tt.expectedIDs)
			}
			for i := range got {
				if got[i] != tt.expectedIDs[i] {
					t.Errorf("ids[%d] = %s, want %s", i, got[i], tt.expectedIDs[i])
				}
			}
		})
	}
}

func TestTimelineService_ListError(t *testing.T) {
	repo := mocks.NewMockPhotoRepository(time.Now())
	repo.ListErr = domain.ErrStorageUnavailable

	_, err := NewTimelineService(repo).Execute(context.Background(), TimelineRequest{})
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestResolveSequence(t *testing.T) {
	listing := []domain.PhotoRecord{
		{ID: "photo_3.jpg", CreatedAt: 3},
		{ID: "photo_2.jpg", CreatedAt: 2},
		{ID: "photo_1.jpg", CreatedAt: 1},
	}

	tests := []struct {
		name          string
		ids           []string
		startID       string
		expectedIDs   []string
		expectedIndex int
		expectError   bool
	}{
		{"all present", []string{"photo_3.jpg", "photo_2.jpg", "photo_1.jpg"}, "photo_2.jpg", []string{"photo_3.jpg", "photo_2.jpg", "photo_1.jpg"}, 1, false},
		{"deleted photo dropped", []string{"photo_3.jpg", "photo_9.jpg", "photo_1.jpg"}, "photo_1.jpg", []string{"photo_3.jpg", "photo_1.jpg"}, 1, false},
		{"start id gone", []string{"photo_2.jpg", "photo_1.jpg"}, "photo_9.jpg", []string{"photo_2.jpg", "photo_1.jpg"}, 0, false},
		{"order follows ids", []string{"photo_1.jpg", "photo_3.jpg"}, "photo_3.jpg", []string{"photo_1.jpg", "photo_3.jpg"}, 1, false},
		{"nothing left", []string{"photo_9.jpg"}, "photo_9.jpg", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := ResolveSequence(listing, tt.ids, tt.startID)
			if tt.expectError {
				if !errors.Is(err, domain.ErrPhotoNotFound) {
					t.Errorf("expected ErrPhotoNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveSequence() failed: %v", err)
			}

			got := domain.IDs(seq.Photos)
			if len(got) != len(tt.expectedIDs) {
				t.Fatalf("ids = %v, want %v", got, tt.expectedIDs)
			}
			for i := range got {
				if got[i] != tt.expectedIDs[i] {
					t.Errorf("ids[%d] = %s, want %s", i, got[i], tt.expectedIDs[i])
				}
			}
			if seq.StartIndex != tt.expectedIndex {
				t.Errorf("StartIndex = %d, want %d", seq.StartIndex, tt.expectedIndex)
			}
			if cur, ok := seq.Current(); !ok || cur.ID != tt.expectedIDs[tt.expectedIndex] {
				t.Errorf("Current() = %v, %v", cur.ID, ok)
			}
		})
	}
}
