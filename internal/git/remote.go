package git

import (
	"bufio"
	"strings"
)

// Direction is the transfer direction git reports for a remote URL.
type Direction string

const (
	Fetch Direction = "fetch"
	Push  Direction = "push"
)

// Remote is one configured remote. Direction records which listing line the
// URL was taken from.
type Remote struct {
	Alias     string
	URL       string
	Direction Direction
}

// RemoteSet is the ordered list of remotes, one entry per alias, in the
// order git first reported them.
type RemoteSet []Remote

// Aliases returns the remote names in order.
func (rs RemoteSet) Aliases() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Alias)
	}
	return out
}

// Get returns the remote with the given alias.
func (rs RemoteSet) Get(alias string) (Remote, bool) {
	for _, r := range rs {
		if r.Alias == alias {
			return r, true
		}
	}
	return Remote{}, false
}

// ParseRemotes parses `git remote -v` output. Each line has the form
// "<alias>\t<url> (<fetch|push>)"; anything else is skipped. The fetch and
// push lines of one alias collapse into a single Remote, and when their URLs
// differ the fetch URL is kept.
func ParseRemotes(raw string) RemoteSet {
	var set RemoteSet
	index := make(map[string]int)

	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		r, ok := parseRemoteLine(scanner.Text())
		if !ok {
			continue
		}

		i, seen := index[r.Alias]
		if !seen {
			index[r.Alias] = len(set)
			set = append(set, r)
			continue
		}
		if r.Direction == Fetch && set[i].Direction != Fetch {
			set[i] = r
		}
	}

	return set
}

func parseRemoteLine(line string) (Remote, bool) {
	line = strings.TrimRight(line, "\r")
	alias, rest, ok := strings.Cut(line, "\t")
	if !ok || alias == "" || strings.ContainsAny(alias, " \t") {
		return Remote{}, false
	}

	rest = strings.TrimSpace(rest)
	var dir Direction
	switch {
	case strings.HasSuffix(rest, " (fetch)"):
		dir = Fetch
	case strings.HasSuffix(rest, " (push)"):
		dir = Push
	default:
		return Remote{}, false
	}

	url := strings.TrimSpace(strings.TrimSuffix(rest, " ("+string(dir)+")"))
	if url == "" {
		return Remote{}, false
	}

	return Remote{Alias: alias, URL: url, Direction: dir}, true
}
