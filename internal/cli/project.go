package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mortardata/mortar/internal/api"
	"github.com/mortardata/mortar/internal/branding"
	"github.com/mortardata/mortar/internal/config"
	"github.com/mortardata/mortar/internal/git"
	"github.com/mortardata/mortar/internal/logging"
	"github.com/mortardata/mortar/internal/project"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(projectCmd)
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Print the project this directory belongs to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolveProject(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p.Name)
		return nil
	},
}

// workspace bundles the pieces that read the repository in the current
// directory.
type workspace struct {
	dir      string
	prefs    *git.ConfigStore
	resolver *project.Resolver
}

func openWorkspace(ctx context.Context) (*workspace, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	// A directory outside any repository must fail as such before the
	// account is looked up.
	if err := git.Probe(dir); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	org, err := currentOrg(ctx)
	if err != nil {
		return nil, err
	}

	prefs := git.NewConfigStore(dir)
	reader := git.NewReader(dir, git.WithLogger(logger))
	return &workspace{
		dir:      dir,
		prefs:    prefs,
		resolver: project.NewResolver(reader, prefs, org, logger),
	}, nil
}

// resolveProject resolves the project for cmd, honoring --remote.
func resolveProject(cmd *cobra.Command) (project.Project, error) {
	ws, err := openWorkspace(cmd.Context())
	if err != nil {
		return project.Project{}, err
	}
	return ws.resolver.Resolve(cmd.Context(), remoteFlag)
}

// currentOrg returns where project repositories live for the logged-in
// account. Settings win; when they are incomplete and credentials exist the
// account is looked up once. Without credentials every organization matches.
func currentOrg(ctx context.Context) (project.Org, error) {
	s := config.Current()
	org := project.Org{
		Host:            branding.GitHost(),
		GitOrganization: s.GitOrganization,
		ID:              s.OrgID,
	}
	if org.GitOrganization != "" && org.ID != "" {
		return org, nil
	}

	client, err := newAPIClient()
	if errors.Is(err, api.ErrNoCredentials) {
		logging.FromContext(ctx).Debug("no credentials, matching any organization")
		return org, nil
	}
	if err != nil {
		return project.Org{}, err
	}

	user, err := client.GetUser(ctx)
	if err != nil {
		return project.Org{}, err
	}
	if org.GitOrganization == "" {
		org.GitOrganization = user.GitOrganization
	}
	if org.ID == "" {
		org.ID = user.OrgID
	}
	logging.FromContext(ctx).Debug("loaded organization from account",
		zap.String("git_organization", org.GitOrganization),
		zap.String("org_id", org.ID))
	return org, nil
}

// newAPIClient builds a client from the loaded settings.
var newAPIClient = func() (*api.Client, error) {
	s := config.Current()
	return api.New(s.Host, s.Email, s.APIKey, api.WithUserAgent(branding.CLIName()+"-cli/"+buildVersion))
}
