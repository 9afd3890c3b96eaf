package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mortardata/mortar/internal/branding"
	"github.com/mortardata/mortar/internal/config"
	"github.com/mortardata/mortar/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	remoteFlag  string
	verboseFlag bool
)

const errorPrefix = " !    "

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` manages hosted data pipeline projects from a local git checkout.

Commands that act on a project work out which one from the repository's git
remotes. When more than one remote points at a project, pick one with
--remote REMOTE or store a default with '` + branding.CLIName() + ` remotes default REMOTE'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		config.Load()

		logger, err := logging.New(logging.Options{
			Verbose: verboseFlag,
			Level:   config.Get(config.KeyLogLevel),
			Output:  cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		logger.Debug("command started", zap.String("command", cmd.CommandPath()), zap.String("version", buildVersion))
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync(logging.FromContext(cmd.Context()))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&remoteFlag, "remote", "r", "", "git remote of the project to use")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "V", false, "print debug logging to stderr")
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed to stderr in the CLI's error format.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	rootCmd.SetArgs(expandColonCommand(os.Args[1:]))
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

// expandColonCommand rewrites the "topic:command" form (config:set,
// version:upgrade) into separate words so both spellings work.
func expandColonCommand(args []string) []string {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return args
	}
	topic, command, ok := strings.Cut(args[0], ":")
	if !ok || topic == "" || command == "" {
		return args
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, topic, command)
	return append(out, args[1:]...)
}

func printError(w io.Writer, err error) {
	for _, line := range strings.Split(strings.TrimRight(err.Error(), "\n"), "\n") {
		fmt.Fprintln(w, errorPrefix+line)
	}
}

// usageError builds the two-line usage failure used by commands that need
// arguments.
func usageError(usage, reason string) error {
	return fmt.Errorf("Usage: %s %s\n%s", branding.CLIName(), usage, reason)
}
