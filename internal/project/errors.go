package project

import (
	"fmt"
	"strings"

	"github.com/mortardata/mortar/internal/branding"
)

// UnknownRemoteError is returned when --remote names an alias that does not
// point at a project.
type UnknownRemoteError struct {
	Remote string
	Known  []string
}

func (e *UnknownRemoteError) Error() string {
	msg := fmt.Sprintf("No project is associated with remote %q.", e.Remote)
	if len(e.Known) > 0 {
		msg += "\nValid remotes: " + strings.Join(e.Known, ", ")
	}
	return msg
}

// AmbiguousProjectError is returned when no single project can be chosen.
// Aliases lists every candidate, in listing order; it is empty when the
// repository has no project remotes at all.
type AmbiguousProjectError struct {
	Aliases []string
}

func (e *AmbiguousProjectError) Error() string {
	if len(e.Aliases) == 0 {
		return "No project found.\nThis repository has no remotes that point at a " + branding.DisplayName() + " project."
	}
	return fmt.Sprintf("Multiple projects in folder and no project specified.\n"+
		"Specify which project to use with --remote REMOTE, or set a default with '%s remotes default REMOTE'.\n"+
		"Valid remotes: %s", branding.CLIName(), strings.Join(e.Aliases, ", "))
}
