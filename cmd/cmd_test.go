package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kamal-hamza/secam/internal/core/ports/mocks"
	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/pkg/config"
	"github.com/kamal-hamza/secam/pkg/vault"
)

// TestCommandStructure verifies that all commands are properly registered
func TestCommandStructure(t *testing.T) {
	commands := []string{
		"init", "capture", "list", "delete", "open", "view", "send",
		"info", "watch", "stats", "serve", "deliveries", "config", "version",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{cmdName})
			if err != nil {
				t.Fatalf("Command '%s' not found: %v", cmdName, err)
			}
			if cmd == nil || cmd.Name() != cmdName {
				t.Fatalf("Command '%s' resolved to %v", cmdName, cmd)
			}
			if cmd.Use == "" {
				t.Errorf("Command '%s' has no Use field", cmdName)
			}
		})
	}
}

// TestRootCommandExists verifies the root command is properly configured
func TestRootCommandExists(t *testing.T) {
	if rootCmd.Use != "secam" {
		t.Errorf("Expected root command Use to be 'secam', got '%s'", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("Root command Short description is empty")
	}
}

// TestCommandsHaveHelp verifies all commands have help text
func TestCommandsHaveHelp(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		t.Run(cmd.Name(), func(t *testing.T) {
			if cmd.Short == "" {
				t.Errorf("Command '%s' has no Short description", cmd.Name())
			}
		})
	}
}

func TestListFlags(t *testing.T) {
	for _, name := range []string{"from", "to", "limit"} {
		if listCmd.Flags().Lookup(name) == nil {
			t.Errorf("list is missing --%s", name)
		}
	}
	if sendCmd.Flags().Lookup("to") == nil {
		t.Error("send is missing --to")
	}
}

func TestWireServices(t *testing.T) {
	v := vault.NewAt(t.TempDir())

	t.Run("without relay", func(t *testing.T) {
		wireServices(v, config.DefaultConfig())

		if dispatchService != nil {
			t.Error("dispatch service should be nil without a relay endpoint")
		}
		if photoRepo.Dir() != v.PhotosPath {
			t.Errorf("expected photos in %s, got %s", v.PhotosPath, photoRepo.Dir())
		}
		if captureService == nil || timelineService == nil || statsService == nil {
			t.Error("services not initialized")
		}
	})

	t.Run("with relay and custom dir", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.RelayEndpoint = "https://relay.example.com/api/send-capture"
		cfg.RelayToken = "shared-token-123"
		cfg.PhotosDir = filepath.Join(t.TempDir(), "elsewhere")

		wireServices(v, cfg)

		if dispatchService == nil {
			t.Error("dispatch service should be wired when the relay is configured")
		}
		if photoRepo.Dir() != cfg.PhotosDir {
			t.Errorf("expected photos in %s, got %s", cfg.PhotosDir, photoRepo.Dir())
		}
	})
}

// TestCaptureThroughWiredServices runs capture and list end to end on disk
func TestCaptureThroughWiredServices(t *testing.T) {
	v := vault.NewAt(t.TempDir())
	wireServices(v, config.DefaultConfig())

	src := filepath.Join(t.TempDir(), "IMG_0001.jpg")
	if err := os.WriteFile(src, []byte("jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	resp, err := captureService.Execute(ctx, services.CaptureRequest{TempLocation: src})
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}

	list, err := timelineService.Execute(ctx, services.TimelineRequest{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if list.Total != 1 || list.Photos[0].ID != resp.Record.ID {
		t.Errorf("expected the capture in the timeline, got %+v", list.Photos)
	}

	got, err := selectPhoto(ctx, nil, "test")
	if err != nil || got.ID != resp.Record.ID {
		t.Errorf("single capture should be selected without prompting, got %v, %v", got, err)
	}
}

// TestServiceInitialization verifies services can be initialized with mocks
func TestServiceInitialization(t *testing.T) {
	repo := mocks.NewMockPhotoRepository(time.Now())
	relay := mocks.NewMockRelay()

	dispatch := services.NewDispatchService(relay, services.DispatchSettings{}, nil)
	if dispatch == nil {
		t.Error("DispatchService is nil")
	}
	if services.NewCaptureService(repo, dispatch, true, nil) == nil {
		t.Error("CaptureService is nil")
	}
	if services.NewTimelineService(repo) == nil {
		t.Error("TimelineService is nil")
	}
	if services.NewStatsService(repo) == nil {
		t.Error("StatsService is nil")
	}
}
