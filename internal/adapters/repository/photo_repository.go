package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports"
	"github.com/kamal-hamza/secam/pkg/logging"
)

// FilePhotoRepository stores captures as files in a single managed directory.
// The directory listing is the only index.
type FilePhotoRepository struct {
	dir        string
	extensions []string
	now        func() time.Time
	chtimes    func(name string, atime, mtime time.Time) error
	logger     *logging.Logger
}

// PhotoRepositoryOption configures a FilePhotoRepository
type PhotoRepositoryOption func(*FilePhotoRepository)

// WithClock overrides the time source used to name new captures
func WithClock(now func() time.Time) PhotoRepositoryOption {
	return func(r *FilePhotoRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithExtensions overrides the suffixes recognized as photos
func WithExtensions(exts []string) PhotoRepositoryOption {
	return func(r *FilePhotoRepository) {
		if len(exts) > 0 {
			r.extensions = exts
		}
	}
}

// WithLogger sets the logger for non-fatal storage problems
func WithLogger(logger *logging.Logger) PhotoRepositoryOption {
	return func(r *FilePhotoRepository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewFilePhotoRepository creates a repository rooted at dir
func NewFilePhotoRepository(dir string, opts ...PhotoRepositoryOption) *FilePhotoRepository {
	r := &FilePhotoRepository{
		dir:        dir,
		extensions: domain.DefaultExtensions,
		now:        time.Now,
		chtimes:    os.Chtimes,
		logger:     logging.Discard("photos"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ensure it implements the interface
var _ ports.PhotoRepository = (*FilePhotoRepository)(nil)

// Dir returns the managed directory
func (r *FilePhotoRepository) Dir() string {
	return r.dir
}

// EnsureContainer creates the managed directory if it does not exist
func (r *FilePhotoRepository) EnsureContainer(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return r.dir, nil
}

// Persist moves the file at tempLocation into the managed directory
func (r *FilePhotoRepository) Persist(ctx context.Context, tempLocation string) (domain.PhotoRecord, error) {
	dir, err := r.EnsureContainer(ctx)
	if err != nil {
		return domain.PhotoRecord{}, err
	}

	ts := r.now().UnixMilli()
	name := domain.GenerateFilename(ts)
	dest := filepath.Join(dir, name)
	src := domain.FromReference(tempLocation)

	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.PhotoRecord{}, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, src)
		}
		return domain.PhotoRecord{}, fmt.Errorf("%w: %v", domain.ErrMoveFailed, err)
	}
	// List only sees regular files
	if !info.Mode().IsRegular() {
		return domain.PhotoRecord{}, fmt.Errorf("%w: %s is not a regular file", domain.ErrMoveFailed, src)
	}

	// Same millisecond as an existing capture
	if _, err := os.Lstat(dest); err == nil {
		return domain.PhotoRecord{}, fmt.Errorf("%w: %w: %s", domain.ErrMoveFailed, domain.ErrIdentityCollision, name)
	}

	if err := moveFile(src, dest); err != nil {
		return domain.PhotoRecord{}, fmt.Errorf("%w: %v", domain.ErrMoveFailed, err)
	}

	// Keep the list read-back in agreement with the filename
	stamp := time.UnixMilli(ts)
	if err := r.chtimes(dest, stamp, stamp); err != nil {
		r.logger.Warnf("failed to set mtime of %s: %v", name, err)
	}

	return domain.PhotoRecord{
		ID:        name,
		Path:      domain.ToReference(dest),
		CreatedAt: ts,
	}, nil
}

// List returns every stored photo, most recent first
func (r *FilePhotoRepository) List(ctx context.Context) ([]domain.PhotoRecord, error) {
	dir, err := r.EnsureContainer(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read photos directory: %v", domain.ErrStorageUnavailable, err)
	}

	records := make([]domain.PhotoRecord, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !domain.HasPhotoExtension(entry.Name(), r.extensions) {
			continue
		}

		var createdAt int64
		if info, err := entry.Info(); err == nil {
			createdAt = info.ModTime().UnixMilli()
		}

		records = append(records, domain.PhotoRecord{
			ID:        entry.Name(),
			Path:      domain.ToReference(filepath.Join(dir, entry.Name())),
			CreatedAt: createdAt,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt > records[j].CreatedAt
		}
		return records[i].ID > records[j].ID
	})

	return records, nil
}

// Remove deletes the record's file. A missing file is not an error.
func (r *FilePhotoRepository) Remove(ctx context.Context, record domain.PhotoRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := record.LocalPath()
	if path == "" {
		if record.ID == "" {
			return fmt.Errorf("photo record has neither path nor id")
		}
		path = filepath.Join(r.dir, record.ID)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat photo: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to remove directory: %s", path)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove photo: %w", err)
	}
	return nil
}

// Get retrieves a photo by identity from a fresh listing
func (r *FilePhotoRepository) Get(ctx context.Context, id string) (domain.PhotoRecord, error) {
	records, err := r.List(ctx)
	if err != nil {
		return domain.PhotoRecord{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return domain.PhotoRecord{}, fmt.Errorf("%w: %s", domain.ErrPhotoNotFound, id)
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// moveFile renames src to dest, copying across filesystems when needed
func moveFile(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		return copyAndRemove(src, dest)
	}
	return err
}

func copyAndRemove(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	// O_EXCL: never overwrite an existing capture
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}

	return os.Remove(src)
}
