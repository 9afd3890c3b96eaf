package updater

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mortardata/mortar/internal/branding"
)

const installScript = "/tmp/install.sh"

// Runner executes a shell command line.
type Runner interface {
	Run(ctx context.Context, command string) error
}

// ShellRunner runs commands through /bin/sh with the given stdio.
type ShellRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes command and waits for it to finish.
func (s ShellRunner) Run(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running installer: %w", err)
	}
	return nil
}

// Updater upgrades the installed CLI.
type Updater struct {
	currentVersion string
	installURL     string
	goos           string
	runner         Runner
}

// Option configures an Updater.
type Option func(*Updater)

// WithInstallURL sets the installer location.
func WithInstallURL(u string) Option {
	return func(up *Updater) {
		if u != "" {
			up.installURL = u
		}
	}
}

// WithRunner sets the command runner (useful for testing).
func WithRunner(r Runner) Option {
	return func(up *Updater) {
		up.runner = r
	}
}

// WithGOOS overrides the detected operating system (useful for testing).
func WithGOOS(goos string) Option {
	return func(up *Updater) {
		up.goos = goos
	}
}

// New creates an Updater. The install URL defaults to the branded one and
// MORTAR_INSTALL, when set, takes precedence over both it and WithInstallURL.
func New(currentVersion string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		installURL:     branding.InstallURL(),
		goos:           runtime.GOOS,
		runner:         ShellRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr},
	}
	for _, opt := range opts {
		opt(u)
	}
	if env := os.Getenv(branding.EnvVar("install")); env != "" {
		u.installURL = env
	}
	return u
}

// CurrentVersion returns the version this updater was created with.
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}

// InstallURL returns the installer location in effect.
func (u *Updater) InstallURL() string {
	return u.installURL
}

// Command returns the shell command that downloads and runs the installer,
// optionally pinned to version.
func (u *Updater) Command(version string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "curl -sL -o %s %s && sudo bash %s", installScript, u.installURL, installScript)
	if version != "" {
		b.WriteString(" -v " + version)
	}
	return b.String()
}

// Upgrade runs the installer. version may be empty for the latest release;
// otherwise it must be a valid semantic version.
func (u *Updater) Upgrade(ctx context.Context, version string) error {
	if !IsMac(u.goos) {
		return ErrUnsupportedPlatform
	}
	if version != "" {
		normalized, err := NormalizeVersion(version)
		if err != nil {
			return err
		}
		version = normalized
	}
	return u.runner.Run(ctx, u.Command(version))
}
