package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/pkg/ui"
)

// errCancelled is returned when the user backs out of a selection
var errCancelled = errors.New("operation cancelled")

// selectPhoto resolves the photo named by args, or lets the user pick one
// from the timeline with the fuzzy finder.
func selectPhoto(ctx context.Context, args []string, prompt string) (domain.PhotoRecord, error) {
	if len(args) > 0 {
		return photoRepo.Get(ctx, args[0])
	}

	resp, err := timelineService.Execute(ctx, services.TimelineRequest{})
	if err != nil {
		return domain.PhotoRecord{}, err
	}
	if resp.Total == 0 {
		return domain.PhotoRecord{}, fmt.Errorf("%w: the timeline is empty", domain.ErrPhotoNotFound)
	}
	if resp.Total == 1 {
		return resp.Photos[0], nil
	}

	idx, err := findPhoto(resp.Photos, prompt)
	if err != nil {
		return domain.PhotoRecord{}, err
	}
	return resp.Photos[idx], nil
}

func findPhoto(photos []domain.PhotoRecord, prompt string) (int, error) {
	idx, err := fuzzyfinder.Find(
		photos,
		func(i int) string {
			return photos[i].GetDisplayDate(displayLayout()) + "  " + photos[i].ID
		},
		fuzzyfinder.WithPromptString(prompt+" > "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return photoPreview(photos[i])
		}),
	)
	if err != nil {
		// Ctrl+C or ESC
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return -1, errCancelled
		}
		return -1, err
	}
	return idx, nil
}

func photoPreview(p domain.PhotoRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %s\nCaptured: %s\nPath: %s", p.ID, p.GetDisplayDate(displayLayout()), p.Path)

	if metadataReader == nil {
		return b.String()
	}
	meta, err := metadataReader.Read(getContext(), p.Path)
	if err != nil {
		return b.String()
	}
	fmt.Fprintf(&b, "\nSize: %s", humanSize(meta.Size))
	if meta.HasExif && meta.Model != "" {
		fmt.Fprintf(&b, "\nCamera: %s %s", meta.CameraMake, meta.Model)
	}
	return b.String()
}

// confirm asks a y/n question on stdin
func confirm(question string) bool {
	return confirmFrom(os.Stdin, question)
}

func confirmFrom(r io.Reader, question string) bool {
	fmt.Print(ui.StyleWarning.Render(question + " (y/n): "))
	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true
	}
	return false
}

// parseDateFlags turns --from/--to values into optional local dates
func parseDateFlags(from, to string) (*time.Time, *time.Time, error) {
	start, err := domain.ParseDate(from, time.Local)
	if err != nil {
		return nil, nil, fmt.Errorf("--from: %w", err)
	}
	end, err := domain.ParseDate(to, time.Local)
	if err != nil {
		return nil, nil, fmt.Errorf("--to: %w", err)
	}
	return start, end, nil
}

func displayLayout() string {
	if appConfig != nil && appConfig.DisplayDateFormat != "" {
		return appConfig.DisplayDateFormat
	}
	return "2006-01-02 15:04:05"
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// reportError prints a formatted failure; the caller returns err for the exit code
func reportError(msg string, err error) error {
	if errors.Is(err, errCancelled) {
		fmt.Println(ui.FormatInfo("Operation cancelled."))
		return nil
	}
	fmt.Println(ui.FormatError(msg + ": " + err.Error()))
	return err
}
