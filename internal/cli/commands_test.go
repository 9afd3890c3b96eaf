package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"sync/atomic"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/mortardata/mortar/internal/git"
	"github.com/mortardata/mortar/internal/project"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrgID = "4dbbd83cae8d5bf8a4000000"

type testRemote struct {
	alias string
	url   string
}

// setupProjectRepo creates a repository with remotes and makes it the
// working directory. Settings are isolated in a temporary home.
func setupProjectRepo(t *testing.T, remotes ...testRemote) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	for _, r := range remotes {
		_, err := repo.CreateRemote(&gitconfig.RemoteConfig{Name: r.alias, URLs: []string{r.url}})
		require.NoError(t, err)
	}

	t.Setenv("HOME", t.TempDir())
	t.Setenv("MORTAR_EMAIL", "")
	t.Setenv("MORTAR_API_KEY", "")
	t.Setenv("MORTAR_ORG_ID", "")
	t.Setenv("MORTAR_GIT_ORGANIZATION", "")
	t.Chdir(dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func projectURL(name string) string {
	return "git@github.com:mortarcode/" + testOrgID + "_" + name + ".git"
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	remoteFlag = ""
	verboseFlag = false
	configShell = false
	remotesDefaultUnset = false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(expandColonCommand(args))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProjectCommandSingleRemote(t *testing.T) {
	setupProjectRepo(t, testRemote{"mortar", projectURL("myproject")})

	out, err := runCLI(t, "project")
	require.NoError(t, err)
	assert.Equal(t, "myproject\n", out)
}

func TestProjectCommandMultipleRemotes(t *testing.T) {
	setupProjectRepo(t,
		testRemote{"staging", projectURL("myproject-staging")},
		testRemote{"production", projectURL("myproject")},
		testRemote{"other", "git@github.com:someuser/not-a-project.git"},
	)

	_, err := runCLI(t, "project")
	var ambiguous *project.AmbiguousProjectError
	require.ErrorAs(t, err, &ambiguous)
	assert.ElementsMatch(t, []string{"staging", "production"}, ambiguous.Aliases)

	out, err := runCLI(t, "project", "--remote", "staging")
	require.NoError(t, err)
	assert.Equal(t, "myproject-staging\n", out)

	_, err = runCLI(t, "project", "-r", "other")
	var unknown *project.UnknownRemoteError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "other", unknown.Remote)
}

func TestRemotesDefault(t *testing.T) {
	setupProjectRepo(t,
		testRemote{"staging", projectURL("myproject-staging")},
		testRemote{"production", projectURL("myproject")},
	)

	out, err := runCLI(t, "remotes", "default", "production")
	require.NoError(t, err)
	assert.Equal(t, "Default remote set to production (project myproject).\n", out)

	out, err = runCLI(t, "project")
	require.NoError(t, err)
	assert.Equal(t, "myproject\n", out)

	out, err = runCLI(t, "remotes")
	require.NoError(t, err)
	assert.Contains(t, out, "* production  myproject\n")
	assert.Contains(t, out, "  staging     myproject-staging\n")

	_, err = runCLI(t, "remotes", "default", "nope")
	var unknown *project.UnknownRemoteError
	require.ErrorAs(t, err, &unknown)

	out, err = runCLI(t, "remotes", "default", "--unset")
	require.NoError(t, err)
	assert.Equal(t, "Default remote cleared.\n", out)

	_, err = runCLI(t, "project")
	var ambiguous *project.AmbiguousProjectError
	assert.ErrorAs(t, err, &ambiguous)
}

func TestConfigCommandUsesResolvedProject(t *testing.T) {
	setupProjectRepo(t, testRemote{"mortar", projectURL("myproject")})

	api := &fakeConfigAPI{vars: map[string]any{"BAR": "sheepdog"}}
	orig := newConfigVarsAPI
	newConfigVarsAPI = func() (configVarsAPI, error) { return api, nil }
	t.Cleanup(func() { newConfigVarsAPI = orig })

	out, err := runCLI(t, "config")
	require.NoError(t, err)
	assert.Equal(t, "=== myproject Config Vars\nBAR: sheepdog\n", out)

	out, err = runCLI(t, "config:get", "BAR")
	require.NoError(t, err)
	assert.Equal(t, "sheepdog\n", out)

	out, err = runCLI(t, "config:unset", "BAR")
	require.NoError(t, err)
	assert.Equal(t, "Unsetting BAR for project myproject... done\n", out)
	assert.Equal(t, []string{"BAR"}, api.deleted)
}

func TestProjectCommandOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := runCLI(t, "project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No project found in")
}

func TestProjectCommandOutsideRepositorySkipsAccountLookup(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, `{"error":"unavailable"}`, http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("MORTAR_EMAIL", "user@example.test")
	t.Setenv("MORTAR_API_KEY", "secret")
	t.Setenv("MORTAR_HOST", strings.TrimPrefix(srv.URL, "http://"))
	t.Setenv("MORTAR_GIT_ORGANIZATION", "")
	t.Setenv("MORTAR_ORG_ID", "")
	t.Chdir(t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := runCLI(t, "project")
	require.ErrorIs(t, err, git.ErrNotAProject)

	_, err = runCLI(t, "remotes")
	require.ErrorIs(t, err, git.ErrNotAProject)

	assert.Zero(t, hits.Load(), "account looked up outside a repository")
}

func TestPrintRemotes(t *testing.T) {
	var buf bytes.Buffer
	printRemotes(&buf, nil, "")
	assert.Equal(t, "No project remotes found.\n", buf.String())

	buf.Reset()
	printRemotes(&buf, project.Candidates{{Alias: "mortar", ProjectName: "myproject"}}, "")
	assert.Equal(t, "* mortar  myproject\n", buf.String())
}
