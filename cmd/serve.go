package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/internal/adapters/mailer"
	"github.com/kamal-hamza/secam/internal/adapters/repository"
	"github.com/kamal-hamza/secam/internal/core/ports"
	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/internal/server"
	"github.com/kamal-hamza/secam/pkg/logging"
	"github.com/kamal-hamza/secam/pkg/ui"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the email relay server",
	Long: `Run the HTTP relay that forwards captures to the email provider.

Configuration comes from the environment (a .env file in the working
directory is loaded first):
  PORT            Listen port (default 3001)
  RESEND_API_KEY  Email provider key
  API_TOKEN       Shared token clients must present
  MAIL_DOMAIN     Sender domain for no-reply@<domain>
  DELIVERY_DB     SQLite delivery log (default <vault>/cache/deliveries.db)
  CORS_ORIGINS    Allowed origins (default *)
  BODY_LIMIT_MB   Request size limit (default 20)

Endpoints:
  POST /api/send-capture   JSON capture payload
  POST /api/send-email     multipart form, Bearer token
  GET  /api/deliveries     recent deliveries, Bearer token
  GET  /health`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := server.LoadEnv(); err != nil {
		return err
	}
	settings := server.LoadSettings(filepath.Join(appVault.CachePath, "deliveries.db"))
	if servePort != "" {
		settings.Port = servePort
	}

	log := logging.MustLogger("relay")

	deliveries, err := repository.OpenDeliveryLog(settings.DeliveryDB)
	if err != nil {
		return reportError("Failed to open delivery log", err)
	}
	defer deliveries.Close()

	// A nil Mailer makes every send answer "Missing RESEND_API_KEY"
	var m ports.Mailer
	if settings.ResendAPIKey != "" {
		m = mailer.NewResendMailer(settings.ResendAPIKey)
	} else {
		fmt.Println(ui.FormatWarning("RESEND_API_KEY is not set; sends will fail"))
	}
	if settings.APIToken == "" {
		fmt.Println(ui.FormatWarning("API_TOKEN is not set; every request will be rejected"))
	}

	relay := services.NewRelayService(m, deliveries, services.RelaySettings{
		APIToken:   settings.APIToken,
		MailDomain: settings.MailDomain,
	}, log)

	app := server.New(relay, server.Options{
		CORSOrigins: settings.CORSOrigins,
		BodyLimitMB: settings.BodyLimitMB,
		Logger:      log,
	})

	addr := ":" + settings.Port
	fmt.Println(ui.FormatInfo("Relay listening on " + addr))
	fmt.Print(ui.RenderKeyValues([][2]string{
		{"Delivery log", settings.DeliveryDB},
		{"Mail domain", settings.MailDomain},
	}))
	return server.Run(app, addr, log)
}
