package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/internal/adapters/chart"
	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/pkg/ui"
)

var (
	statsFrom string
	statsTo   string
	statsHTML bool
	statsOut  string
	statsOpen bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show captures per day",
	Long: `Count captures per calendar day.

Prints a summary and a bar per day. --html also renders an interactive
bar chart to <vault>/cache/captures.html (or --out).

Examples:
  secam stats
  secam stats --from 2024-03-01 --to 2024-03-31 --html --open`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "First day to include (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "Last day to include (YYYY-MM-DD)")
	statsCmd.Flags().BoolVar(&statsHTML, "html", false, "Render an HTML chart")
	statsCmd.Flags().StringVarP(&statsOut, "out", "o", "", "Chart output path")
	statsCmd.Flags().BoolVar(&statsOpen, "open", false, "Open the chart after rendering")
}

func runStats(cmd *cobra.Command, args []string) error {
	start, end, err := parseDateFlags(statsFrom, statsTo)
	if err != nil {
		return reportError("Invalid date", err)
	}

	ctx := getContext()
	resp, err := statsService.Execute(ctx, services.StatsRequest{Start: start, End: end})
	if err != nil {
		return reportError("Failed to compute stats", err)
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No captures to analyze"))
		return nil
	}

	fmt.Println(ui.FormatTitle("Capture Activity"))
	fmt.Println()
	fmt.Print(ui.RenderKeyValues([][2]string{
		{"Total", fmt.Sprintf("%d captures over %d days", resp.Total, len(resp.Days))},
		{"First", resp.First.GetDisplayDate(displayLayout())},
		{"Last", resp.Last.GetDisplayDate(displayLayout())},
		{"Busiest", fmt.Sprintf("%s (%d)", resp.Busiest.Label(), resp.Busiest.Count)},
	}))
	fmt.Println()

	fmt.Println(ui.StyleHeader.Render(ui.IconCalendar + " Per day"))
	fmt.Print(renderDayBars(resp.Days, resp.Busiest.Count, 40))

	if !statsHTML {
		return nil
	}

	out := statsOut
	if out == "" {
		out = appVault.ChartPath()
	}
	subtitle := domain.NewDateRange(start, end).String()
	if err := chart.WriteCapturesFile(out, resp.Days, subtitle); err != nil {
		return reportError("Failed to render chart", err)
	}
	fmt.Println()
	fmt.Println(ui.FormatSuccess("Chart written to " + out))

	if statsOpen {
		if err := fileOpener.Open(ctx, out); err != nil {
			return reportError("Failed to open chart", err)
		}
	}
	return nil
}

// renderDayBars draws one proportional bar per day
func renderDayBars(days []domain.DayCount, peak, width int) string {
	if peak <= 0 {
		peak = 1
	}
	var b strings.Builder
	for _, d := range days {
		n := d.Count * width / peak
		if d.Count > 0 && n == 0 {
			n = 1
		}
		bar := ui.StyleSuccess.Render(strings.Repeat("█", n))
		if d.Count == 0 {
			bar = ui.StyleMuted.Render("·")
		}
		fmt.Fprintf(&b, "  %s %s %d\n", ui.StyleMuted.Render(d.Label()), bar, d.Count)
	}
	return b.String()
}
