package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/pkg/ui"
)

var configShow bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the secam configuration file",
	Long: `Open config.yaml in $EDITOR, creating it with defaults first if needed.
--show prints the effective configuration instead.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShow, "show", false, "Print the effective configuration")
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := appVault.ConfigPath

	if configShow {
		fmt.Println(ui.FormatTitle("Configuration"))
		fmt.Println(ui.FormatMuted(path))
		fmt.Println()
		fmt.Print(ui.RenderKeyValues(configRows()))
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := appConfig.Save(path); err != nil {
			return reportError("Failed to create config", err)
		}
	}

	fmt.Println(ui.FormatInfo("Opening config: " + path))

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func configRows() [][2]string {
	photos := appConfig.PhotosDir
	if photos == "" {
		photos = appVault.PhotosPath
	}
	return [][2]string{
		{"photos_dir", photos},
		{"relay_endpoint", orDash(appConfig.RelayEndpoint)},
		{"relay_token", mask(appConfig.RelayToken)},
		{"recipients", fmt.Sprint(appConfig.Recipients)},
		{"auto_send", fmt.Sprint(appConfig.AutoSend)},
		{"inbox_dir", orDash(appConfig.InboxDir)},
		{"ingest_patterns", fmt.Sprint(appConfig.IngestPatterns)},
		{"viewer", orDash(appConfig.Viewer)},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// mask hides all but the last four characters of a secret
func mask(secret string) string {
	if secret == "" {
		return "-"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
