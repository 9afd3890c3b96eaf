package project

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/mortardata/mortar/internal/git"
)

var (
	projectNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	orgIDPattern       = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Org identifies where the authenticated account's project repositories
// live. Empty fields match anything.
type Org struct {
	// Host is the git hosting service, e.g. "github.com".
	Host string
	// GitOrganization is the owner segment of the repository path, e.g. "mortarcode".
	GitOrganization string
	// ID prefixes every project repository name, e.g. "4dbbd83cae8d5bf8a4000000".
	ID string
}

// Candidate is a remote that points at a hosted project.
type Candidate struct {
	Alias       string
	ProjectName string
}

// Candidates keeps the remote order of the listing it was extracted from.
type Candidates []Candidate

// Lookup returns the project name for alias.
func (c Candidates) Lookup(alias string) (string, bool) {
	for _, cand := range c {
		if cand.Alias == alias {
			return cand.ProjectName, true
		}
	}
	return "", false
}

// Aliases returns the candidate aliases in order.
func (c Candidates) Aliases() []string {
	out := make([]string, 0, len(c))
	for _, cand := range c {
		out = append(out, cand.Alias)
	}
	return out
}

// Map returns the alias to project name mapping.
func (c Candidates) Map() map[string]string {
	m := make(map[string]string, len(c))
	for _, cand := range c {
		m[cand.Alias] = cand.ProjectName
	}
	return m
}

// Extract returns a candidate for every remote whose URL names a project of
// org. Other remotes are dropped. Two aliases may map to the same project.
func Extract(remotes git.RemoteSet, org Org) Candidates {
	var out Candidates
	for _, r := range remotes {
		name, ok := ProjectName(r.URL, org)
		if !ok {
			continue
		}
		out = append(out, Candidate{Alias: r.Alias, ProjectName: name})
	}
	return out
}

// ProjectName extracts the project name from a remote URL. Both scp-like
// (git@host:owner/repo.git) and URL (ssh://, https://) forms are accepted.
func ProjectName(remoteURL string, org Org) (string, bool) {
	host, path, ok := splitRemoteURL(remoteURL)
	if !ok {
		return "", false
	}
	if org.Host != "" && !strings.EqualFold(host, org.Host) {
		return "", false
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	owner, repo, ok := strings.Cut(path, "/")
	if !ok || owner == "" || strings.Contains(repo, "/") {
		return "", false
	}
	if org.GitOrganization != "" && !strings.EqualFold(owner, org.GitOrganization) {
		return "", false
	}

	var name string
	if org.ID != "" {
		rest, found := strings.CutPrefix(repo, org.ID+"_")
		if !found {
			return "", false
		}
		name = rest
	} else {
		prefix, rest, found := strings.Cut(repo, "_")
		if !found || !orgIDPattern.MatchString(prefix) {
			return "", false
		}
		name = rest
	}

	if !projectNamePattern.MatchString(name) {
		return "", false
	}
	return name, true
}

func splitRemoteURL(raw string) (host, path string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return "", "", false
		}
		return u.Hostname(), u.Path, true
	}

	// scp-like syntax: [user@]host:path. A slash before the colon means a
	// local path.
	hostPart, path, found := strings.Cut(raw, ":")
	if !found || hostPart == "" || strings.Contains(hostPart, "/") {
		return "", "", false
	}
	if _, h, hasUser := strings.Cut(hostPart, "@"); hasUser {
		hostPart = h
	}
	return hostPart, path, true
}
