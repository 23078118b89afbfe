package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/internal/adapters/metadata"
	"github.com/kamal-hamza/secam/internal/adapters/opener"
	"github.com/kamal-hamza/secam/internal/adapters/relay"
	"github.com/kamal-hamza/secam/internal/adapters/repository"
	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/pkg/config"
	"github.com/kamal-hamza/secam/pkg/logging"
	"github.com/kamal-hamza/secam/pkg/ui"
	"github.com/kamal-hamza/secam/pkg/vault"
)

var (
	// Global vault instance
	appVault  *vault.Vault
	appConfig *config.Config
	appLogger *logging.Logger

	// Services
	captureService  *services.CaptureService
	dispatchService *services.DispatchService
	timelineService *services.TimelineService
	statsService    *services.StatsService

	// Adapters
	photoRepo      *repository.FilePhotoRepository
	metadataReader *metadata.Reader
	fileOpener     *opener.SystemOpener
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "secam",
	Short: "secam - security camera capture log",
	Long: ui.StyleTitle.Render("secam") + " - Security Cam\n\n" +
		"Stores captured photos with their timestamps, shows them as a\n" +
		"filterable timeline and forwards selected photos by email.",
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
	SilenceUsage:       true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(deliveriesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// init creates the vault; version needs nothing
	if cmd.Name() == "init" || cmd.Name() == "version" {
		return nil
	}

	v, err := vault.New()
	if err != nil {
		return fmt.Errorf("failed to initialize vault: %w", err)
	}
	appVault = v

	// serve may run in a container with only an environment
	if !appVault.Exists() && cmd.Name() != "serve" {
		fmt.Println(ui.FormatError("Vault not initialized"))
		fmt.Println(ui.FormatInfo("Run 'secam init' to initialize the vault"))
		os.Exit(1)
	}

	cfg, err := config.Load(appVault.ConfigPath)
	if err != nil {
		fmt.Println(ui.FormatWarning("Config unreadable, using defaults: " + err.Error()))
		cfg = config.DefaultConfig()
	}
	appConfig = cfg
	ui.SetTheme(appConfig.ColorTheme)

	if appVault.Exists() {
		if err := logging.Init(appVault.LogsPath); err != nil {
			fmt.Println(ui.FormatWarning("Logging to stderr: " + err.Error()))
		}
	}
	appLogger = logging.MustLogger("cli")

	wireServices(appVault, appConfig)
	return nil
}

// wireServices builds the adapters and services from the vault and config
func wireServices(v *vault.Vault, cfg *config.Config) {
	photosDir := cfg.PhotosDir
	if photosDir == "" {
		photosDir = v.PhotosPath
	}
	photoRepo = repository.NewFilePhotoRepository(photosDir,
		repository.WithExtensions(cfg.Extensions),
		repository.WithLogger(logging.MustLogger("photos")),
	)
	metadataReader = metadata.NewReader()
	fileOpener = opener.NewSystemOpener(cfg.Viewer)

	dispatchService = nil
	if cfg.RelayConfigured() {
		client := relay.NewClient(cfg.RelayEndpoint, cfg.RelayAPIKey, time.Duration(cfg.RelayTimeout)*time.Second)
		dispatchService = services.NewDispatchService(client, services.DispatchSettings{
			Recipients: cfg.Recipients,
			Subject:    cfg.Subject,
			FromName:   cfg.FromName,
			Token:      cfg.RelayToken,
		}, logging.MustLogger("dispatch"))
	}

	captureService = services.NewCaptureService(photoRepo, dispatchService, cfg.AutoSend, logging.MustLogger("capture"))
	timelineService = services.NewTimelineService(photoRepo)
	statsService = services.NewStatsService(photoRepo)
}

func shutdownApp(cmd *cobra.Command, args []string) error {
	if appLogger != nil {
		return appLogger.Close()
	}
	return nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
