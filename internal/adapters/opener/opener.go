package opener

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports"
)

// SystemOpener hands photos to an image viewer
type SystemOpener struct {
	viewer string
	goos   string
	start  func(*exec.Cmd) error
}

// Ensure it implements the interface
var _ ports.FileOpener = (*SystemOpener)(nil)

// NewSystemOpener uses viewer when set, the platform default otherwise
func NewSystemOpener(viewer string) *SystemOpener {
	return &SystemOpener{
		viewer: viewer,
		goos:   runtime.GOOS,
		start:  (*exec.Cmd).Start,
	}
}

// Open accepts a raw path or a file:// reference. The viewer is started
// detached so the CLI can exit while it stays open.
func (o *SystemOpener) Open(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := o.command(domain.FromReference(path))
	if err := o.start(cmd); err != nil {
		if o.viewer != "" {
			return fmt.Errorf("failed to open '%s' with '%s': %w", path, o.viewer, err)
		}
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}
	return nil
}

func (o *SystemOpener) command(path string) *exec.Cmd {
	if o.viewer != "" {
		return exec.Command(o.viewer, path)
	}
	switch o.goos {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
