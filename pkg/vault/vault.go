package vault

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamal-hamza/secam/internal/core/domain"
)

const appName = "secam"

// Vault represents the application's private storage for secam
type Vault struct {
	RootPath   string
	PhotosPath string
	InboxPath  string
	CachePath  string
	LogsPath   string
	ConfigPath string
}

// New creates a new Vault instance with XDG-compliant paths
func New() (*Vault, error) {
	rootPath, rootErr := getVaultRoot()
	configPath, configErr := getConfigPath()
	if rootErr != nil {
		return nil, fmt.Errorf("failed to determine vault root: %w", rootErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	v := NewAt(rootPath)
	v.ConfigPath = configPath
	return v, nil
}

// NewAt lays out a vault under an explicit root
func NewAt(rootPath string) *Vault {
	return &Vault{
		RootPath:   rootPath,
		PhotosPath: filepath.Join(rootPath, domain.PhotosDirName),
		InboxPath:  filepath.Join(rootPath, "inbox"),
		CachePath:  filepath.Join(rootPath, "cache"),
		LogsPath:   filepath.Join(rootPath, "logs"),
		ConfigPath: filepath.Join(rootPath, "config.yaml"),
	}
}

// getVaultRoot returns the vault root directory path
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getVaultRoot() (string, error) {
	if dir := os.Getenv("SECAM_HOME"); dir != "" {
		return dir, nil
	}

	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName), nil
	}

	return filepath.Join(homeDir, ".local", "share", appName), nil
}

func getConfigPath() (string, error) {
	if dir := os.Getenv("SECAM_HOME"); dir != "" {
		return filepath.Join(dir, "config.yaml"), nil
	}

	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName+"-config", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// Initialize creates the vault directory structure if it doesn't exist.
// The photos directory is left to the photo store, which ensures it on demand.
func (v *Vault) Initialize() error {
	directories := []string{
		v.RootPath,
		v.InboxPath,
		v.CachePath,
		v.LogsPath,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the vault has been initialized
func (v *Vault) Exists() bool {
	info, err := os.Stat(v.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// GetPhotoPath returns the full path for a stored photo
func (v *Vault) GetPhotoPath(filename string) string {
	return filepath.Join(v.PhotosPath, filename)
}

// GetCachePath returns the full path for a cached file
func (v *Vault) GetCachePath(filename string) string {
	return filepath.Join(v.CachePath, filename)
}

// ChartPath returns the default location of the stats chart
func (v *Vault) ChartPath() string {
	return filepath.Join(v.CachePath, "captures.html")
}

// CleanCache removes all files in the cache directory
func (v *Vault) CleanCache() error {
	entries, err := os.ReadDir(v.CachePath)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(v.CachePath, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	return nil
}
