package git

import (
	"fmt"

	"github.com/mortardata/mortar/internal/branding"
)

// ConfigStore reads and writes the preferred remote kept in the
// repository-local git config (.git/config), under mortar.remote.
type ConfigStore struct {
	dir string
}

// NewConfigStore creates a ConfigStore for the repository containing dir.
func NewConfigStore(dir string) *ConfigStore {
	return &ConfigStore{dir: dir}
}

// PreferredRemote returns the stored alias, or "" when none is set.
func (s *ConfigStore) PreferredRemote() (string, error) {
	repo, err := openRepository(s.dir)
	if err != nil {
		return "", err
	}

	cfg, err := repo.Config()
	if err != nil {
		return "", fmt.Errorf("reading git config: %w", err)
	}
	if cfg.Raw == nil || !cfg.Raw.HasSection(branding.RemoteConfigSection()) {
		return "", nil
	}
	return cfg.Raw.Section(branding.RemoteConfigSection()).Option(branding.RemoteConfigOption()), nil
}

// SetPreferredRemote records alias as the preferred remote. An empty alias
// removes the setting.
func (s *ConfigStore) SetPreferredRemote(alias string) error {
	repo, err := openRepository(s.dir)
	if err != nil {
		return err
	}

	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("reading git config: %w", err)
	}

	if alias == "" && !cfg.Raw.HasSection(branding.RemoteConfigSection()) {
		return nil
	}

	section := cfg.Raw.Section(branding.RemoteConfigSection())
	if alias == "" {
		section.RemoveOption(branding.RemoteConfigOption())
	} else {
		section.SetOption(branding.RemoteConfigOption(), alias)
	}

	if err := repo.Storer.SetConfig(cfg); err != nil {
		return fmt.Errorf("writing %s: %w", branding.RemoteConfigKey(), err)
	}
	return nil
}
