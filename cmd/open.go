package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/pkg/ui"
)

var openCmd = &cobra.Command{
	Use:   "open [id]",
	Short: "Open a capture in the image viewer",
	Long: `Open a capture with the configured viewer, or the system default
application when 'viewer' is not set in the config.

Examples:
  secam open
  secam open photo_1731600000000.jpg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	photo, err := selectPhoto(ctx, args, "open")
	if err != nil {
		return reportError("Failed to select capture", err)
	}

	if err := fileOpener.Open(ctx, photo.Path); err != nil {
		return reportError("Failed to open capture", err)
	}
	fmt.Println(ui.FormatInfo("Opened " + photo.ID))
	return nil
}
