package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PhotosDirName is the managed directory under the vault root
const PhotosDirName = "security_cam_photos"

const (
	filenamePrefix = "photo_"
	filenameExt    = ".jpg"
)

// DefaultExtensions are the file suffixes listed as photos
var DefaultExtensions = []string{".jpg", ".jpeg"}

// PhotoRecord is a single stored capture
// The filename is the identity; there is no other index
type PhotoRecord struct {
	ID        string `json:"id"`        // e.g. photo_1731600000000.jpg
	Path      string `json:"path"`      // file:// reference
	CreatedAt int64  `json:"createdAt"` // epoch ms
}

// Time returns CreatedAt as a local time
func (p PhotoRecord) Time() time.Time {
	return time.UnixMilli(p.CreatedAt)
}

// GetDisplayDate formats CreatedAt for tables
func (p PhotoRecord) GetDisplayDate(layout string) string {
	if p.CreatedAt == 0 {
		return "-"
	}
	if layout == "" {
		layout = "2006-01-02 15:04:05"
	}
	return p.Time().Format(layout)
}

// LocalPath returns the raw filesystem path behind the reference
func (p PhotoRecord) LocalPath() string {
	return FromReference(p.Path)
}

// GenerateFilename creates the stored name for a capture
// Format: photo_<epochMillis>.jpg
func GenerateFilename(epochMillis int64) string {
	return fmt.Sprintf("%s%d%s", filenamePrefix, epochMillis, filenameExt)
}

// ParseFilename extracts the epoch millis from a generated filename
// "photo_1731600000000.jpg" -> 1731600000000, true
func ParseFilename(filename string) (int64, bool) {
	lower := strings.ToLower(filename)
	if !strings.HasPrefix(lower, filenamePrefix) {
		return 0, false
	}

	stem := strings.TrimPrefix(lower, filenamePrefix)
	dot := strings.LastIndex(stem, ".")
	if dot <= 0 {
		return 0, false
	}

	ms, err := strconv.ParseInt(stem[:dot], 10, 64)
	if err != nil || ms < 0 {
		return 0, false
	}
	return ms, true
}

// HasPhotoExtension reports whether name ends with one of exts, ignoring case
func HasPhotoExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// IDs returns the identities of records in order
func IDs(records []PhotoRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
