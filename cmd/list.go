package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/pkg/ui"
)

var (
	listFrom  string
	listTo    string
	listLimit int
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the capture timeline",
	Aliases: []string{"ls"},
	Long: `List stored captures, newest first.

--from and --to take calendar dates (YYYY-MM-DD) in local time; --from
starts at 00:00:00 and --to ends at 23:59:59.999 of its day. Either may
be omitted.

Examples:
  secam list
  secam list --from 2024-03-01
  secam list --from 2024-03-01 --to 2024-03-07 --limit 20`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "First day to include (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Last day to include (YYYY-MM-DD)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Show at most n captures")
}

func runList(cmd *cobra.Command, args []string) error {
	start, end, err := parseDateFlags(listFrom, listTo)
	if err != nil {
		return reportError("Invalid date", err)
	}

	ctx := getContext()
	resp, err := timelineService.Execute(ctx, services.TimelineRequest{
		Start: start,
		End:   end,
		Limit: listLimit,
	})
	if err != nil {
		return reportError("Failed to list captures", err)
	}

	if resp.Total == 0 {
		if !resp.Range.IsOpen() {
			fmt.Println(ui.FormatWarning("No captures between " + resp.Range.String()))
		} else {
			fmt.Println(ui.FormatWarning("No captures found"))
			fmt.Println(ui.FormatInfo("Store your first photo with: secam capture <file>"))
		}
		return nil
	}

	if !resp.Range.IsOpen() {
		fmt.Println(ui.FormatTitle(fmt.Sprintf("%s Captures (%s)", ui.IconCalendar, resp.Range.String())))
	} else {
		fmt.Println(ui.FormatTitle("Captures"))
	}
	fmt.Println()

	table := ui.NewTable(
		ui.TableColumn{Header: "#", Align: ui.AlignRight},
		ui.TableColumn{Header: "Captured", MinWidth: 19},
		ui.TableColumn{Header: "ID"},
		ui.TableColumn{Header: "Reference"},
	)
	table.MaxWidth = appConfig.TableWidth

	for i, photo := range resp.Photos {
		table.AddRow(
			strconv.Itoa(i+1),
			photo.GetDisplayDate(displayLayout()),
			photo.ID,
			photo.Path,
		)
	}

	fmt.Print(table.Render())
	fmt.Println()

	summary := fmt.Sprintf("Total: %d captures", resp.Total)
	if len(resp.Photos) < resp.Total {
		summary = fmt.Sprintf("Showing %d of %d captures", len(resp.Photos), resp.Total)
	}
	fmt.Println(ui.FormatMuted(summary))

	return nil
}
