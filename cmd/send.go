package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/pkg/ui"
)

var (
	sendTo       []string
	sendSubject  string
	sendLat      float64
	sendLon      float64
	sendAccuracy float64
)

var sendCmd = &cobra.Command{
	Use:   "send [id]",
	Short: "Email a capture through the relay",
	Long: `Forward a capture to the email relay configured by relay_endpoint
and relay_token.

Recipients default to the 'recipients' config list; --to replaces them.
--lat/--lon attach the capture location to the email.

Examples:
  secam send
  secam send photo_1731600000000.jpg --to guard@example.com,chief@example.com
  secam send --lat -23.55052 --lon -46.63331 --accuracy 12`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringSliceVar(&sendTo, "to", nil, "Recipient emails (comma separated)")
	sendCmd.Flags().StringVar(&sendSubject, "subject", "", "Email subject")
	sendCmd.Flags().Float64Var(&sendLat, "lat", 0, "Capture latitude")
	sendCmd.Flags().Float64Var(&sendLon, "lon", 0, "Capture longitude")
	sendCmd.Flags().Float64Var(&sendAccuracy, "accuracy", 0, "Location accuracy in meters")
}

func runSend(cmd *cobra.Command, args []string) error {
	if dispatchService == nil {
		fmt.Println(ui.FormatError("Relay not configured"))
		fmt.Println(ui.FormatInfo("Set relay_endpoint and relay_token with: secam config"))
		return errors.New("relay not configured")
	}

	ctx := getContext()
	photo, err := selectPhoto(ctx, args, "send")
	if err != nil {
		return reportError("Failed to select capture", err)
	}

	req := services.DispatchRequest{
		Photo:      photo,
		Recipients: sendRecipients(),
		Subject:    sendSubject,
	}
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
		req.Location = domain.NewLocation(sendLat, sendLon)
		if cmd.Flags().Changed("accuracy") {
			acc := sendAccuracy
			req.Location.Accuracy = &acc
		}
	}

	resp, err := dispatchService.Execute(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecipients) {
			fmt.Println(ui.FormatInfo("Pass --to or set 'recipients' in the config"))
		}
		return reportError("Failed to send "+photo.ID, err)
	}

	fmt.Println(ui.FormatSent(fmt.Sprintf("Sent %s to %s", photo.ID, strings.Join(resp.Recipients, ", "))))
	fmt.Println(ui.FormatMuted("Message id: " + resp.MessageID))
	return nil
}

func sendRecipients() []string {
	var out []string
	for _, to := range sendTo {
		out = append(out, domain.ParseRecipients(to)...)
	}
	return out
}
