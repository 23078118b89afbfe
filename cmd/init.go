package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/pkg/config"
	"github.com/kamal-hamza/secam/pkg/ui"
	"github.com/kamal-hamza/secam/pkg/vault"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the secam vault",
	Long: `Initialize the secam vault directory structure.

This creates the managed vault at ~/.local/share/secam/ (or $SECAM_HOME):
  - security_cam_photos/ : Stored captures (photo_<epochMillis>.jpg)
  - inbox/               : Drop directory read by 'secam watch'
  - cache/               : Charts and the relay delivery log
  - logs/                : Session logs

The configuration lives at ~/.config/secam/config.yaml.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	v, err := vault.New()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine vault location"))
		return err
	}

	if v.Exists() {
		fmt.Println(ui.FormatWarning("Vault already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + v.RootPath))
		return nil
	}

	fmt.Println(ui.FormatCapture("Initializing secam vault..."))
	fmt.Println()

	if err := v.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to initialize vault"))
		return err
	}

	// Config is optional, defaults apply without it
	if _, err := os.Stat(v.ConfigPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		cfg.InboxDir = v.InboxPath
		if err := cfg.Save(v.ConfigPath); err != nil {
			fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
		} else {
			fmt.Println(ui.FormatSuccess("Default config created"))
		}
	}

	fmt.Println(ui.FormatSuccess("Vault initialized successfully!"))
	fmt.Println()
	fmt.Print(ui.RenderKeyValues([][2]string{
		{"Location", v.RootPath},
		{"Photos", v.PhotosPath},
		{"Inbox", v.InboxPath},
		{"Config", v.ConfigPath},
	}))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Store a capture: secam capture ./IMG_0001.jpg"))
	fmt.Println(ui.FormatMuted("  2. Browse the timeline: secam list --from 2024-03-01"))
	fmt.Println(ui.FormatMuted("  3. Set relay_endpoint and relay_token with: secam config"))

	return nil
}
