package opener

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestSystemOpener_Command(t *testing.T) {
	tests := []struct {
		name   string
		viewer string
		goos   string
		want   string
	}{
		{"custom viewer", "feh", "linux", "feh"},
		{"linux default", "", "linux", "xdg-open"},
		{"darwin default", "", "darwin", "open"},
		{"windows default", "", "windows", "cmd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *exec.Cmd
			o := &SystemOpener{viewer: tt.viewer, goos: tt.goos, start: func(c *exec.Cmd) error {
				got = c
				return nil
			}}

			if err := o.Open(context.Background(), "file:///photos/photo_1.jpg"); err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if filepath.Base(got.Args[0]) != tt.want {
				t.Errorf("expected %s, got %v", tt.want, got.Args)
			}
			if last := got.Args[len(got.Args)-1]; last != "/photos/photo_1.jpg" {
				t.Errorf("expected raw path as last argument, got %q", last)
			}
		})
	}
}

func TestSystemOpener_StartError(t *testing.T) {
	o := &SystemOpener{viewer: "feh", goos: "linux", start: func(*exec.Cmd) error {
		return errors.New("not installed")
	}}

	err := o.Open(context.Background(), "/photos/photo_1.jpg")
	if err == nil || !strings.Contains(err.Error(), "feh") {
		t.Fatalf("expected error naming the viewer, got %v", err)
	}
}

func TestSystemOpener_CancelledContext(t *testing.T) {
	called := false
	o := &SystemOpener{goos: "linux", start: func(*exec.Cmd) error {
		called = true
		return nil
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := o.Open(ctx, "/photos/photo_1.jpg"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("viewer should not start after cancellation")
	}
}
