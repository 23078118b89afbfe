package cmd

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kamal-hamza/secam/internal/core/domain"
)

func TestConfirmFrom(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		if got := confirmFrom(strings.NewReader(tt.input), "Delete?"); got != tt.expected {
			t.Errorf("confirmFrom(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseDateFlags(t *testing.T) {
	start, end, err := parseDateFlags("2024-03-01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start == nil || start.Day() != 1 || end != nil {
		t.Errorf("unexpected bounds: %v %v", start, end)
	}

	if _, _, err := parseDateFlags("", "03/07/2024"); err == nil || !strings.Contains(err.Error(), "--to") {
		t.Errorf("expected a --to error, got %v", err)
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := humanSize(tt.n); got != tt.expected {
			t.Errorf("humanSize(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}

func TestMask(t *testing.T) {
	if got := mask(""); got != "-" {
		t.Errorf("empty secret: %q", got)
	}
	if got := mask("abc"); got != "****" {
		t.Errorf("short secret: %q", got)
	}
	if got := mask("shared-token-1234"); got != "****1234" {
		t.Errorf("long secret: %q", got)
	}
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	defer d.stop()

	var runs int32
	for i := 0; i < 5; i++ {
		d.trigger("a.jpg", func() { atomic.AddInt32(&runs, 1) })
	}
	d.trigger("b.jpg", func() { atomic.AddInt32(&runs, 1) })

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&runs); got != 2 {
		t.Errorf("expected one run per key, got %d", got)
	}
}

func TestRenderDayBars(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	out := renderDayBars([]domain.DayCount{
		{Day: day, Count: 4},
		{Day: day.AddDate(0, 0, 1), Count: 0},
		{Day: day.AddDate(0, 0, 2), Count: 1},
	}, 4, 8)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], strings.Repeat("█", 8)) {
		t.Errorf("peak day should fill the width: %q", lines[0])
	}
	if !strings.Contains(lines[1], "2024-03-02") || !strings.Contains(lines[1], "·") {
		t.Errorf("empty day should show a dot: %q", lines[1])
	}
	if !strings.Contains(lines[2], "██") {
		t.Errorf("expected a quarter bar: %q", lines[2])
	}
}

func TestInfoRows(t *testing.T) {
	photo := domain.PhotoRecord{ID: "photo_1.jpg", Path: "file:///p/photo_1.jpg", CreatedAt: 1}

	rows := infoRows(photo, &domain.PhotoMetadata{Size: 10, ContentType: "image/jpeg"})
	if last := rows[len(rows)-1]; last[0] != "EXIF" || last[1] != "none" {
		t.Errorf("expected EXIF none row, got %v", last)
	}

	lat, lon := -23.5, -46.6
	rows = infoRows(photo, &domain.PhotoMetadata{HasExif: true, Model: "Pixel 8", Latitude: &lat, Longitude: &lon, Width: 4000, Height: 3000})
	joined := ""
	for _, r := range rows {
		joined += r[0] + "=" + r[1] + "\n"
	}
	for _, want := range []string{"Camera=Pixel 8", "Dimensions=4000x3000", "Location=-23.50000, -46.60000"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in\n%s", want, joined)
		}
	}
}

func TestRenderDeliveries(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	out := renderDeliveries([]domain.Delivery{
		{ID: "a", Recipients: []string{"guard@example.com"}, Filename: "photo_1.jpg", Status: domain.DeliverySent, CreatedAt: at},
		{ID: "b", Recipients: []string{"guard@example.com"}, Status: domain.DeliveryFailed, Error: "rate limited", CreatedAt: at},
	}, 0)

	for _, want := range []string{"guard@example.com", "photo_1.jpg", "rate limited", "sent", "failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
