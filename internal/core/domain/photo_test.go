package domain

import (
	"testing"
	"time"
)

func TestGenerateFilename(t *testing.T) {
	got := GenerateFilename(1731600000123)
	if got != "photo_1731600000123.jpg" {
		t.Errorf("GenerateFilename() = %q, want %q", got, "photo_1731600000123.jpg")
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantMS   int64
		wantOK   bool
	}{
		{"generated name", "photo_1731600000123.jpg", 1731600000123, true},
		{"upper case", "PHOTO_42.JPG", 42, true},
		{"jpeg extension", "photo_7.jpeg", 7, true},
		{"foreign name", "IMG_0001.jpg", 0, false},
		{"no digits", "photo_.jpg", 0, false},
		{"no extension", "photo_123", 0, false},
		{"garbage stamp", "photo_12ab.jpg", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, ok := ParseFilename(tt.filename)
			if ok != tt.wantOK || ms != tt.wantMS {
				t.Errorf("ParseFilename(%q) = (%d, %v), want (%d, %v)", tt.filename, ms, ok, tt.wantMS, tt.wantOK)
			}
		})
	}
}

func TestGenerateAndParseAgree(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	ms, ok := ParseFilename(GenerateFilename(ts))
	if !ok || ms != ts {
		t.Errorf("round trip gave (%d, %v), want (%d, true)", ms, ok, ts)
	}
}

func TestHasPhotoExtension(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"photo_1.jpg", true},
		{"photo_1.JPG", true},
		{"holiday.JpEg", true},
		{"photo_1.png", false},
		{"notes.txt", false},
		{"jpg", false},
	}

	for _, tt := range tests {
		if got := HasPhotoExtension(tt.name, DefaultExtensions); got != tt.expected {
			t.Errorf("HasPhotoExtension(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestPhotoRecord_GetDisplayDate(t *testing.T) {
	var empty PhotoRecord
	if got := empty.GetDisplayDate(""); got != "-" {
		t.Errorf("zero CreatedAt should render '-', got %q", got)
	}

	when := time.Date(2024, 3, 1, 8, 30, 0, 0, time.Local)
	p := PhotoRecord{CreatedAt: when.UnixMilli()}
	if got := p.GetDisplayDate("2006-01-02"); got != "2024-03-01" {
		t.Errorf("GetDisplayDate() = %q, want 2024-03-01", got)
	}
}

func TestIDs(t *testing.T) {
	records := []PhotoRecord{{ID: "b"}, {ID: "a"}}
	ids := IDs(records)
	if len(ids) != 2 || ids[0] != "b" || ids[1] != "a" {
		t.Errorf("IDs() = %v, want [b a]", ids)
	}
}
