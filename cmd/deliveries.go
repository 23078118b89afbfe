package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/internal/adapters/repository"
	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/server"
	"github.com/kamal-hamza/secam/pkg/ui"
)

var deliveriesLimit int

var deliveriesCmd = &cobra.Command{
	Use:   "deliveries",
	Short: "Show the relay delivery log",
	Long: `List the most recent relay outcomes recorded by 'secam serve' on this
machine (DELIVERY_DB, default <vault>/cache/deliveries.db).`,
	RunE: runDeliveries,
}

func init() {
	deliveriesCmd.Flags().IntVarP(&deliveriesLimit, "limit", "n", 20, "Number of deliveries to show")
}

func runDeliveries(cmd *cobra.Command, args []string) error {
	_ = server.LoadEnv()
	path := server.GetEnv("DELIVERY_DB", filepath.Join(appVault.CachePath, "deliveries.db"))

	log, err := repository.OpenDeliveryLog(path)
	if err != nil {
		return reportError("Failed to open delivery log", err)
	}
	defer log.Close()

	list, err := log.Recent(getContext(), deliveriesLimit)
	if err != nil {
		return reportError("Failed to read delivery log", err)
	}
	if len(list) == 0 {
		fmt.Println(ui.FormatWarning("No deliveries recorded"))
		return nil
	}

	fmt.Println(ui.FormatTitle(ui.IconMail + " Deliveries"))
	fmt.Println()
	fmt.Print(renderDeliveries(list, appConfig.TableWidth))
	return nil
}

func renderDeliveries(list []domain.Delivery, width int) string {
	table := ui.NewTable(
		ui.TableColumn{Header: "When", MinWidth: 19},
		ui.TableColumn{Header: "Status"},
		ui.TableColumn{Header: "File"},
		ui.TableColumn{Header: "To / Error"},
	)
	table.MaxWidth = width

	for _, d := range list {
		detail := strings.Join(d.Recipients, ", ")
		if d.Status == domain.DeliveryFailed && d.Error != "" {
			detail = d.Error
		}
		table.AddRow(
			d.CreatedAt.Local().Format(displayLayout()),
			ui.FormatStatus(string(d.Status)),
			orDash(d.Filename),
			detail,
		)
	}
	return table.Render()
}
