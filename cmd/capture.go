package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/pkg/ui"
)

var captureNoClipboard bool

var captureCmd = &cobra.Command{
	Use:   "capture <file>",
	Short: "Store a captured photo in the vault",
	Long: `Move a freshly captured photo into the managed photos directory.

The file is renamed to photo_<epochMillis>.jpg and its reference
(file://...) is copied to the clipboard. When auto_send is enabled and
recipients are configured, the photo is also forwarded through the relay.

The source may be a plain path or a file:// reference.

Examples:
  secam capture /tmp/camera/IMG_0001.jpg
  secam capture file:///tmp/camera/IMG_0002.jpg --no-clipboard`,
	Args: cobra.ExactArgs(1),
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().BoolVar(&captureNoClipboard, "no-clipboard", false, "Do not copy the stored reference")
}

func runCapture(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	resp, err := captureService.Execute(ctx, services.CaptureRequest{TempLocation: args[0]})
	if err != nil {
		return reportError("Failed to store capture", err)
	}

	fmt.Println(ui.FormatCapture("Stored " + resp.Record.ID))
	fmt.Print(ui.RenderKeyValues([][2]string{
		{"Captured", resp.Record.GetDisplayDate(displayLayout())},
		{"Reference", resp.Record.Path},
	}))

	if !captureNoClipboard {
		if err := clipboard.WriteAll(resp.Record.Path); err == nil {
			fmt.Println(ui.FormatMuted("Reference copied to clipboard"))
		} else {
			appLogger.Debugf("clipboard unavailable: %v", err)
		}
	}

	switch {
	case resp.Sent:
		fmt.Println(ui.FormatSent("Sent, message " + resp.MessageID))
	case resp.SendErr != nil:
		fmt.Println(ui.FormatWarning("Stored, but sending failed: " + resp.SendErr.Error()))
	}
	return nil
}
