package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// configVarsAPI is the part of the API client the config commands use.
type configVarsAPI interface {
	GetConfigVars(ctx context.Context, project string) (map[string]any, error)
	PutConfigVars(ctx context.Context, project string, vars map[string]string) error
	DeleteConfigVar(ctx context.Context, project, key string) error
}

var newConfigVarsAPI = func() (configVarsAPI, error) {
	return newAPIClient()
}

var configShell bool

func init() {
	configCmd.Flags().BoolVarP(&configShell, "shell", "s", false, "output config vars in shell format")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the config vars for a project",
	Long: `Display the config vars for a project.

Config vars are passed to every job run for the project.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProjectConfig(cmd, func(ctx context.Context, client configVarsAPI, name string) error {
			return runConfigIndex(ctx, cmd.OutOrStdout(), client, name, configShell)
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Display a config var for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProjectConfig(cmd, func(ctx context.Context, client configVarsAPI, name string) error {
			return runConfigGet(ctx, cmd.OutOrStdout(), client, name, args[0])
		})
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY1=VALUE1 [KEY2=VALUE2 ...]",
	Short: "Set one or more config vars",
	RunE: func(cmd *cobra.Command, args []string) error {
		vars, err := parseConfigPairs(args)
		if err != nil {
			return err
		}
		return withProjectConfig(cmd, func(ctx context.Context, client configVarsAPI, name string) error {
			return runConfigSet(ctx, cmd.OutOrStdout(), client, name, vars)
		})
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset KEY1 [KEY2 ...]",
	Short: "Unset one or more config vars",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return usageError("config:unset KEY1 [KEY2 ...]", "Must specify KEY to unset.")
		}
		return withProjectConfig(cmd, func(ctx context.Context, client configVarsAPI, name string) error {
			return runConfigUnset(ctx, cmd.OutOrStdout(), client, name, args)
		})
	},
}

// withProjectConfig resolves the project and builds an API client before
// running fn.
func withProjectConfig(cmd *cobra.Command, fn func(context.Context, configVarsAPI, string) error) error {
	p, err := resolveProject(cmd)
	if err != nil {
		return err
	}
	client, err := newConfigVarsAPI()
	if err != nil {
		return err
	}
	return fn(cmd.Context(), client, p.Name)
}

func runConfigIndex(ctx context.Context, w io.Writer, client configVarsAPI, projectName string, shell bool) error {
	vars, err := client.GetConfigVars(ctx, projectName)
	if err != nil {
		return err
	}

	if shell {
		for _, key := range sortedKeys(vars) {
			fmt.Fprintf(w, "%s=%s\n", key, formatConfigValue(vars[key]))
		}
		return nil
	}

	if len(vars) == 0 {
		fmt.Fprintf(w, "%s has no config vars.\n", projectName)
		return nil
	}

	fmt.Fprintf(w, "=== %s Config Vars\n", projectName)
	writeStyledVars(w, vars)
	return nil
}

func runConfigGet(ctx context.Context, w io.Writer, client configVarsAPI, projectName, key string) error {
	vars, err := client.GetConfigVars(ctx, projectName)
	if err != nil {
		return err
	}
	value, ok := vars[key]
	if !ok {
		return fmt.Errorf("Config var %s is not defined for project %s.", key, projectName)
	}
	fmt.Fprintln(w, formatConfigValue(value))
	return nil
}

func runConfigSet(ctx context.Context, w io.Writer, client configVarsAPI, projectName string, vars map[string]string) error {
	fmt.Fprintf(w, "Setting config vars for project %s... ", projectName)
	if err := client.PutConfigVars(ctx, projectName, vars); err != nil {
		fmt.Fprintln(w, "failed")
		return err
	}
	fmt.Fprintln(w, "done")

	styled := make(map[string]any, len(vars))
	for k, v := range vars {
		styled[k] = v
	}
	writeStyledVars(w, styled)
	return nil
}

func runConfigUnset(ctx context.Context, w io.Writer, client configVarsAPI, projectName string, keys []string) error {
	for _, key := range keys {
		fmt.Fprintf(w, "Unsetting %s for project %s... ", key, projectName)
		if err := client.DeleteConfigVar(ctx, projectName, key); err != nil {
			fmt.Fprintln(w, "failed")
			return err
		}
		fmt.Fprintln(w, "done")
	}
	return nil
}

// parseConfigPairs splits KEY=VALUE arguments on the first "=". Key case is
// preserved.
func parseConfigPairs(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, usageError("config:set KEY1=VALUE1 [KEY2=VALUE2 ...]", "Must specify KEY and VALUE to set.")
	}
	vars := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, usageError("config:set KEY1=VALUE1 [KEY2=VALUE2 ...]", fmt.Sprintf("Invalid argument %q, expected KEY=VALUE.", arg))
		}
		vars[key] = value
	}
	return vars, nil
}

// writeStyledVars prints "KEY: value" lines sorted by key, with values
// aligned on the longest key.
func writeStyledVars(w io.Writer, vars map[string]any) {
	keys := sortedKeys(vars)
	width := 0
	for _, key := range keys {
		width = max(width, len(key)+1)
	}
	for _, key := range keys {
		fmt.Fprintf(w, "%-*s %s\n", width, key+":", formatConfigValue(vars[key]))
	}
}

func formatConfigValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func sortedKeys(vars map[string]any) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
