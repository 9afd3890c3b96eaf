// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with //go:embed; every value has a hard default
// so a missing or partial file still yields a working binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName             string `yaml:"cli_name"`
	DisplayName         string `yaml:"display_name"`
	Description         string `yaml:"description"`
	HomeDir             string `yaml:"home_dir"`
	EnvPrefix           string `yaml:"env_prefix"`
	APIHost             string `yaml:"api_host"`
	GitHost             string `yaml:"git_host"`
	InstallURL          string `yaml:"install_url"`
	RemoteConfigSection string `yaml:"remote_config_section"`
	RemoteConfigOption  string `yaml:"remote_config_option"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:             "mortar",
			DisplayName:         "Mortar",
			Description:         "Command line client for Mortar hosted data pipeline projects",
			HomeDir:             ".mortar",
			EnvPrefix:           "MORTAR",
			APIHost:             "api.mortardata.com",
			GitHost:             "github.com",
			InstallURL:          "http://install.mortardata.com",
			RemoteConfigSection: "mortar",
			RemoteConfigOption:  "remote",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "mortar").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Mortar").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".mortar").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "MORTAR").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// APIHost returns the default API host name.
func APIHost() string { load(); return defaults.APIHost }

// GitHost returns the host that serves project repositories.
func GitHost() string { load(); return defaults.GitHost }

// InstallURL returns the default location of the installer script.
func InstallURL() string { load(); return defaults.InstallURL }

// RemoteConfigSection returns the git config section holding the preferred
// remote, e.g. "mortar".
func RemoteConfigSection() string { load(); return defaults.RemoteConfigSection }

// RemoteConfigOption returns the option name within RemoteConfigSection, e.g. "remote".
func RemoteConfigOption() string { load(); return defaults.RemoteConfigOption }

// RemoteConfigKey returns the dotted git config key, e.g. "mortar.remote".
func RemoteConfigKey() string {
	load()
	return defaults.RemoteConfigSection + "." + defaults.RemoteConfigOption
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("install") → "MORTAR_INSTALL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
