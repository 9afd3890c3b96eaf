package cli

import (
	"fmt"
	"io"

	"github.com/mortardata/mortar/internal/scaffold"
	"github.com/spf13/cobra"
)

func init() {
	generateCmd.AddCommand(generateProjectCmd)
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate new project files",
}

var generateProjectCmd = &cobra.Command{
	Use:   "project <name>",
	Short: "Generate a new project skeleton in ./<name>",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := scaffold.GenerateProject(scaffold.NewProjectData(args[0]), ".")
		if err != nil {
			return err
		}
		printGenerated(cmd.OutOrStdout(), "project", result)
		fmt.Fprintf(cmd.OutOrStdout(), "\nNext steps:\n  cd %s && bundle install\n", args[0])
		return nil
	},
}

func printGenerated(w io.Writer, typeName string, result *scaffold.Result) {
	fmt.Fprintf(w, "Created %s at %s/\n", typeName, result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
}
