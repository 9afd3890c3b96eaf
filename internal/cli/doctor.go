package cli

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/mortardata/mortar/internal/branding"
	"github.com/mortardata/mortar/internal/config"
	"github.com/mortardata/mortar/internal/doctor"
	"github.com/mortardata/mortar/internal/git"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Restrict settings permissions when they are too open")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the " + branding.DisplayName() + " CLI",
	Long:  `Check required tools, settings and the project the current directory resolves to.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s := config.Current()

		problems := doctor.CheckTools(out, exec.LookPath, doctor.Tools...)
		problems += doctor.CheckSettings(out, doctor.SettingsState{
			Dir:      config.Dir(),
			File:     config.FilePath(),
			LoggedIn: s.Email != "" && s.APIKey != "",
		}, doctorFix)

		ws, err := openWorkspace(cmd.Context())
		switch {
		case errors.Is(err, git.ErrNotAProject):
			fmt.Fprintln(out, "Project check:\n  [INFO] not inside a project")
		case err != nil:
			fmt.Fprintf(out, "Project check:\n  [FAIL] %v\n", err)
			problems++
		default:
			problems += doctor.CheckProject(cmd.Context(), out, ws.resolver, ws.prefs, remoteFlag)
		}

		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		fmt.Fprintln(out, "No problems found.")
		return nil
	},
}
