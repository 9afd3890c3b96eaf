package updater

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// NormalizeVersion validates a requested version and returns it without a
// leading "v", in the form the installer expects ("1.0", "1.2.3-beta").
func NormalizeVersion(version string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(version), "v")
	if _, err := semver.NewVersion(trimmed); err != nil {
		return "", fmt.Errorf("invalid version %q: %w", version, err)
	}
	return trimmed, nil
}
