package cli

import (
	"encoding/json"
	"fmt"

	"github.com/mortardata/mortar/internal/branding"
	"github.com/mortardata/mortar/internal/config"
	"github.com/mortardata/mortar/internal/logging"
	"github.com/mortardata/mortar/internal/updater"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	versionShort bool
	versionJSON  bool

	upgradeVersion string
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionUpgradeCmd.Flags().StringVarP(&upgradeVersion, "version", "v", "", "install this version instead of the latest")
	versionCmd.AddCommand(versionUpgradeCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			}
			b, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(b))
			return nil
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		return nil
	},
}

var versionUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Install the latest release, or the one given with --version",
	Long: `Download and run the ` + branding.DisplayName() + ` installer. Requires sudo.

The installer location can be overridden with ` + branding.EnvVar("INSTALL") + `.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u := updater.New(buildVersion,
			updater.WithInstallURL(config.Get(config.KeyInstallURL)),
			updater.WithRunner(updater.ShellRunner{
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			}),
		)
		logging.FromContext(cmd.Context()).Debug("upgrading",
			zap.String("from", u.CurrentVersion()),
			zap.String("to", upgradeVersion),
			zap.String("installer", u.InstallURL()))
		return u.Upgrade(cmd.Context(), upgradeVersion)
	},
}
