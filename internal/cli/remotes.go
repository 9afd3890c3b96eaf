package cli

import (
	"fmt"
	"io"

	"github.com/mortardata/mortar/internal/branding"
	"github.com/mortardata/mortar/internal/project"
	"github.com/spf13/cobra"
)

var remotesDefaultUnset bool

func init() {
	remotesDefaultCmd.Flags().BoolVar(&remotesDefaultUnset, "unset", false, "remove the stored default remote")
	remotesCmd.AddCommand(remotesDefaultCmd)
	rootCmd.AddCommand(remotesCmd)
}

var remotesCmd = &cobra.Command{
	Use:   "remotes",
	Short: "List the git remotes that point at projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		candidates, err := ws.resolver.Candidates(cmd.Context())
		if err != nil {
			return err
		}
		preferred, err := ws.prefs.PreferredRemote()
		if err != nil {
			return err
		}
		printRemotes(cmd.OutOrStdout(), candidates, preferred)
		return nil
	},
}

var remotesDefaultCmd = &cobra.Command{
	Use:   "default <remote>",
	Short: "Set the remote used when several point at projects",
	Long: `Store the remote used to pick a project when more than one remote points
at a project and --remote is not given. The setting is kept in the
repository's .git/config as ` + branding.RemoteConfigKey() + `.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if remotesDefaultUnset {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if remotesDefaultUnset {
			if err := ws.prefs.SetPreferredRemote(""); err != nil {
				return err
			}
			fmt.Fprintln(out, "Default remote cleared.")
			return nil
		}

		candidates, err := ws.resolver.Candidates(cmd.Context())
		if err != nil {
			return err
		}
		alias := args[0]
		name, ok := candidates.Lookup(alias)
		if !ok {
			return &project.UnknownRemoteError{Remote: alias, Known: candidates.Aliases()}
		}
		if err := ws.prefs.SetPreferredRemote(alias); err != nil {
			return err
		}
		fmt.Fprintf(out, "Default remote set to %s (project %s).\n", alias, name)
		return nil
	},
}

func printRemotes(w io.Writer, candidates project.Candidates, preferred string) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No project remotes found.")
		return
	}

	width := 0
	for _, c := range candidates {
		width = max(width, len(c.Alias))
	}
	for _, c := range candidates {
		marker := "  "
		if c.Alias == preferred || len(candidates) == 1 {
			marker = "* "
		}
		fmt.Fprintf(w, "%s%-*s  %s\n", marker, width, c.Alias, c.ProjectName)
	}
}
