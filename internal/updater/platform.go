package updater

import (
	"errors"

	"github.com/mortardata/mortar/internal/branding"
)

// ErrUnsupportedPlatform is returned by Upgrade outside macOS.
var ErrUnsupportedPlatform = errors.New(branding.CLIName() + " version:upgrade is currently only supported for OSX.")

// IsMac reports whether goos is macOS.
func IsMac(goos string) bool {
	return goos == "darwin"
}
