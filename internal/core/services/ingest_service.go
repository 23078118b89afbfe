package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/pkg/logging"
)

// ErrIgnoredFile is returned for files the inbox does not pick up
var ErrIgnoredFile = errors.New("file does not match ingest patterns")

// IngestService moves camera drops from an inbox directory into the photo store
type IngestService struct {
	capture  *CaptureService
	inbox    string
	patterns []glob.Glob
	logger   *logging.Logger
}

// NewIngestService compiles the patterns (matched case-insensitively against base names)
func NewIngestService(capture *CaptureService, inbox string, patterns []string, logger *logging.Logger) (*IngestService, error) {
	if logger == nil {
		logger = logging.Discard("ingest")
	}

	svc := &IngestService{
		capture: capture,
		inbox:   inbox,
		logger:  logger,
	}
	for _, pattern := range patterns {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid ingest pattern '%s': %w", pattern, err)
		}
		svc.patterns = append(svc.patterns, g)
	}
	if len(svc.patterns) == 0 {
		return nil, fmt.Errorf("at least one ingest pattern is required")
	}
	return svc, nil
}

// Inbox returns the watched directory
func (s *IngestService) Inbox() string {
	return s.inbox
}

// Matches reports whether a path would be ingested
func (s *IngestService) Matches(path string) bool {
	name := filepath.Base(path)

	// Hidden files and editor/partial writes
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") {
		return false
	}

	lower := strings.ToLower(name)
	for _, g := range s.patterns {
		if g.Match(lower) {
			return true
		}
	}
	return false
}

// Ingest stores one inbox file
func (s *IngestService) Ingest(ctx context.Context, path string) (*CaptureResponse, error) {
	if !s.Matches(path) {
		return nil, fmt.Errorf("%w: %s", ErrIgnoredFile, filepath.Base(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s is empty or not a regular file", ErrIgnoredFile, filepath.Base(path))
	}

	resp, err := s.capture.Execute(ctx, CaptureRequest{TempLocation: path})
	if errors.Is(err, domain.ErrIdentityCollision) {
		// Two drops inside one millisecond; the next one gets a fresh name
		time.Sleep(time.Millisecond)
		resp, err = s.capture.Execute(ctx, CaptureRequest{TempLocation: path})
	}
	if err != nil {
		return nil, err
	}

	s.logger.Infof("ingested %s as %s", filepath.Base(path), resp.Record.ID)
	return resp, nil
}

// IngestSummary reports a Scan
type IngestSummary struct {
	Stored []domain.PhotoRecord
	Failed map[string]error
}

// Scan ingests every matching file already in the inbox, oldest first
func (s *IngestService) Scan(ctx context.Context) (*IngestSummary, error) {
	entries, err := os.ReadDir(s.inbox)
	if err != nil {
		return nil, fmt.Errorf("failed to read inbox: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}

	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() || !s.Matches(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:    filepath.Join(s.inbox, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].modTime.Before(candidates[j].modTime)
	})

	summary := &IngestSummary{Failed: make(map[string]error)}
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		resp, err := s.Ingest(ctx, c.path)
		if err != nil {
			if errors.Is(err, ErrIgnoredFile) {
				continue
			}
			summary.Failed[filepath.Base(c.path)] = err
			continue
		}
		summary.Stored = append(summary.Stored, resp.Record)
	}

	return summary, nil
}
