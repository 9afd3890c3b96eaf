package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mortardata/mortar/internal/git"
	"github.com/mortardata/mortar/internal/platform"
	"github.com/mortardata/mortar/internal/project"
)

// LookPathFunc finds an executable, like exec.LookPath.
type LookPathFunc func(name string) (string, error)

// Tools lists the external programs the CLI runs.
var Tools = []string{"git", "curl"}

// CheckTools reports whether each of names is on PATH.
func CheckTools(w io.Writer, lookPath LookPathFunc, names ...string) int {
	fmt.Fprintln(w, "Tools check:")
	problems := 0
	for _, name := range names {
		path, err := lookPath(name)
		if err != nil {
			fmt.Fprintf(w, "  [MISS] %s not found\n", name)
			problems++
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
	}
	return problems
}

// SettingsState is what CheckSettings inspects.
type SettingsState struct {
	Dir  string
	File string
	// LoggedIn is true when both email and api_key are set.
	LoggedIn bool
}

// CheckSettings validates the settings directory and file permissions. When
// fix is true, loose permissions are tightened.
func CheckSettings(w io.Writer, st SettingsState, fix bool) int {
	fmt.Fprintln(w, "Settings check:")

	if _, err := os.Stat(st.Dir); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", st.Dir)
		return 1
	}

	problems := checkSecure(w, st.Dir, fix)
	if _, err := os.Stat(st.File); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", st.File)
		problems++
	} else {
		problems += checkSecure(w, st.File, fix)
	}

	if st.LoggedIn {
		fmt.Fprintln(w, "  [ OK ] credentials configured")
	} else {
		fmt.Fprintln(w, "  [MISS] email and api_key are not set")
		problems++
	}
	return problems
}

func checkSecure(w io.Writer, path string, fix bool) int {
	ok, err := platform.IsSecure(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}
	if ok {
		fmt.Fprintf(w, "  [ OK ] %s\n", path)
		return 0
	}

	fmt.Fprintf(w, "  [WARN] %s is readable by other users\n", path)
	if !fix {
		return 1
	}
	if err := platform.Secure(path); err != nil {
		fmt.Fprintf(w, "  [FAIL] Could not fix permissions: %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "  [FIX ] Restricted %s to its owner\n", path)
	return 0
}

// CandidateLister lists the project remotes of the current repository.
type CandidateLister interface {
	Candidates(ctx context.Context) (project.Candidates, error)
}

// CheckProject reports which project the current directory resolves to.
// Remotes are listed once and the choice is made from that listing. Being
// outside a project is informational, not a problem.
func CheckProject(ctx context.Context, w io.Writer, lister CandidateLister, prefs project.PreferenceStore, explicitRemote string) int {
	fmt.Fprintln(w, "Project check:")

	candidates, err := lister.Candidates(ctx)
	if err != nil {
		if errors.Is(err, git.ErrNotAProject) {
			fmt.Fprintln(w, "  [INFO] not inside a project")
			return 0
		}
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	if len(candidates) == 0 {
		fmt.Fprintln(w, "  [INFO] no remotes point at a project")
		return 0
	}

	for _, c := range candidates {
		fmt.Fprintf(w, "  [ OK ] remote %s -> %s\n", c.Alias, c.ProjectName)
	}

	var preferred string
	if explicitRemote == "" && len(candidates) > 1 && prefs != nil {
		preferred, err = prefs.PreferredRemote()
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] reading preferred remote: %v\n", err)
			return 1
		}
	}

	p, _, err := project.Choose(candidates, explicitRemote, preferred)
	if err != nil {
		var ambiguous *project.AmbiguousProjectError
		if errors.As(err, &ambiguous) {
			fmt.Fprintln(w, "  [WARN] several remotes point at projects and no default is set")
			return 1
		}
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] using project %s (remote %s)\n", p.Name, p.Remote)
	return 0
}
