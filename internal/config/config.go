package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mortardata/mortar/internal/branding"
	"github.com/mortardata/mortar/internal/platform"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyHost            = "host"
	KeyEmail           = "email"
	KeyAPIKey          = "api_key"
	KeyGitOrganization = "git_organization"
	KeyOrgID           = "org_id"
	KeyInstallURL      = "install_url"
	KeyLogLevel        = "log_level"
)

// Keys lists every setting accepted by Set.
var Keys = []string{KeyHost, KeyEmail, KeyAPIKey, KeyGitOrganization, KeyOrgID, KeyInstallURL, KeyLogLevel}

// Settings is the typed view of the loaded configuration.
type Settings struct {
	Host            string
	Email           string
	APIKey          string
	GitOrganization string
	OrgID           string
	InstallURL      string
	LogLevel        string
}

// Dir returns the path to the config directory (~/.mortar/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.mortar/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist. The
// directory holds credentials and is restricted to its owner.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, platform.DirPermSecure); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return platform.Secure(dir)
}

// LoadDotEnv loads .env from the working directory into the process
// environment. Variables that are already set win. A missing file is not an
// error.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyHost, branding.APIHost())
	viper.SetDefault(KeyInstallURL, branding.InstallURL())

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the loaded settings.
func Current() Settings {
	return Settings{
		Host:            Get(KeyHost),
		Email:           Get(KeyEmail),
		APIKey:          Get(KeyAPIKey),
		GitOrganization: Get(KeyGitOrganization),
		OrgID:           Get(KeyOrgID),
		InstallURL:      Get(KeyInstallURL),
		LogLevel:        Get(KeyLogLevel),
	}
}

// ValidKey reports whether key is a known setting.
func ValidKey(key string) bool {
	return slices.Contains(Keys, key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !ValidKey(key) {
		return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys, ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.OpenFile(configFile, os.O_CREATE|os.O_WRONLY, platform.FilePermSecure)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return platform.Secure(configFile)
}
