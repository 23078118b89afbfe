package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/pkg/logging"
	"github.com/kamal-hamza/secam/pkg/ui"
)

var (
	watchInbox string
	watchQuiet bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Store photos dropped into the inbox directory",
	Long: `Watch the inbox directory and store every photo the camera drops there.

Files already in the inbox are stored first, oldest first. New files
are stored once they have been quiet for watch_debounce_ms, so partial
writes are not picked up. Only names matching ingest_patterns are
stored; hidden files and names starting with '~' are ignored.

With auto_send enabled each stored photo is also sent through the relay.

Press Ctrl+C to stop.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchInbox, "inbox", "", "Directory to watch (defaults to inbox_dir or <vault>/inbox)")
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress per-photo output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(getContext(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inbox := watchInbox
	if inbox == "" {
		inbox = appConfig.InboxDir
	}
	if inbox == "" {
		inbox = appVault.InboxPath
	}
	if err := os.MkdirAll(inbox, 0755); err != nil {
		return reportError("Failed to create inbox", err)
	}

	ingest, err := services.NewIngestService(captureService, inbox, appConfig.IngestPatterns, logging.MustLogger("ingest"))
	if err != nil {
		return reportError("Invalid ingest patterns", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(inbox); err != nil {
		return fmt.Errorf("failed to watch inbox: %w", err)
	}

	fmt.Println(ui.FormatInfo(ui.IconWatch + " Watching: " + inbox))
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
	fmt.Println()

	// Drops made while nobody was watching
	summary, err := ingest.Scan(ctx)
	if err != nil {
		fmt.Println(ui.FormatWarning("Initial scan failed: " + err.Error()))
	} else {
		for _, rec := range summary.Stored {
			printStored(rec.ID, "")
		}
		for name, err := range summary.Failed {
			fmt.Println(ui.FormatError(name + ": " + err.Error()))
		}
	}

	d := newDebouncer(time.Duration(appConfig.WatchDebounceMS) * time.Millisecond)
	defer d.stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ingest.Matches(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				path := event.Name
				d.trigger(path, func() { ingestOne(ctx, ingest, path) })
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			appLogger.Errorf("watcher error: %v", err)

		case <-ctx.Done():
			fmt.Println()
			fmt.Println(ui.FormatMuted("Watcher stopped"))
			return nil
		}
	}
}

func ingestOne(ctx context.Context, ingest *services.IngestService, path string) {
	resp, err := ingest.Ingest(ctx, path)
	if err != nil {
		// The file was stored by an earlier event or removed by the camera
		if errors.Is(err, services.ErrIgnoredFile) || errors.Is(err, os.ErrNotExist) {
			return
		}
		fmt.Println(ui.FormatError(filepath.Base(path) + ": " + err.Error()))
		return
	}

	note := ""
	switch {
	case resp.Sent:
		note = "sent " + resp.MessageID
	case resp.SendErr != nil:
		note = "send failed: " + resp.SendErr.Error()
	}
	printStored(resp.Record.ID, note)
}

func printStored(id, note string) {
	if watchQuiet {
		return
	}
	line := ui.FormatCapture("Stored " + id)
	if note != "" {
		line += " " + ui.FormatMuted("("+note+")")
	}
	fmt.Println(line)
}

// debouncer runs an action once a key has been quiet for the delay
type debouncer struct {
	delay  time.Duration
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &debouncer{delay: delay, timers: make(map[string]*time.Timer)}
}

func (d *debouncer) trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
