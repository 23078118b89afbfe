package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/pkg/ui"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Short:   "Delete a stored capture",
	Aliases: []string{"rm"},
	Long: `Delete a capture from the photos directory.

Without an id, pick the capture with the fuzzy finder. Deleting a
capture whose file is already gone succeeds silently.

Examples:
  secam delete
  secam delete photo_1731600000000.jpg -y`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	photo, err := selectPhoto(ctx, args, "delete")
	if err != nil {
		return reportError("Failed to select capture", err)
	}

	if !deleteYes {
		fmt.Println(ui.FormatWarning("You are about to delete:"))
		fmt.Printf("  %s %s\n", ui.StyleBold.Render(photo.ID), ui.StyleMuted.Render("("+photo.GetDisplayDate(displayLayout())+")"))
		fmt.Println()
		if !confirm(ui.IconTrash + " Delete capture?") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := photoRepo.Remove(ctx, photo); err != nil {
		return reportError("Failed to delete capture", err)
	}
	appLogger.Infof("deleted %s", photo.ID)
	fmt.Println(ui.FormatSuccess("Capture deleted."))
	return nil
}
