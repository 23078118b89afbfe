package metadata

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports"
)

var registerOnce sync.Once

// Reader decodes EXIF data from stored photos
type Reader struct{}

// NewReader creates a reader with the maker-note parsers registered
func NewReader() *Reader {
	registerOnce.Do(func() {
		exif.RegisterParsers(mknote.All...)
	})
	return &Reader{}
}

// Ensure it implements the interface
var _ ports.MetadataReader = (*Reader)(nil)

// Read returns file facts plus any EXIF fields present.
// A file without EXIF is not an error.
func (r *Reader) Read(ctx context.Context, path string) (*domain.PhotoMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path = domain.FromReference(path)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPhotoNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat photo: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}

	meta := &domain.PhotoMetadata{
		Size:        info.Size(),
		ContentType: http.DetectContentType(content),
		ModifiedAt:  info.ModTime(),
	}

	x, err := exif.Decode(bytes.NewReader(content))
	if err != nil {
		return meta, nil
	}
	meta.HasExif = true

	meta.CameraMake = stringTag(x, exif.Make)
	meta.Model = stringTag(x, exif.Model)

	if tm, err := x.DateTime(); err == nil {
		meta.TakenAt = &tm
	}
	if lat, lon, err := x.LatLong(); err == nil {
		meta.Latitude = &lat
		meta.Longitude = &lon
	}

	meta.Width = intTag(x, exif.PixelXDimension)
	meta.Height = intTag(x, exif.PixelYDimension)

	return meta, nil
}

func stringTag(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	val, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(val)
}

func intTag(x *exif.Exif, name exif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	val, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return val
}
