package project

import (
	"context"
	"fmt"

	"github.com/mortardata/mortar/internal/git"
	"go.uber.org/zap"
)

// Project is the result of a successful resolution.
type Project struct {
	Name string
	// Remote is the alias the project was resolved from.
	Remote string
}

// Rule names the step of Choose that produced a Project.
type Rule string

const (
	RuleExplicit   Rule = "explicit"
	RuleSingle     Rule = "single"
	RulePreference Rule = "preference"
)

// Choose picks the project for candidates. The first applicable rule wins:
//
//  1. explicitRemote, when set, must name a candidate.
//  2. A single candidate is used as is.
//  3. preferred, when it names a candidate, breaks the tie.
//
// Anything else is an *AmbiguousProjectError.
func Choose(candidates Candidates, explicitRemote, preferred string) (Project, Rule, error) {
	if explicitRemote != "" {
		name, ok := candidates.Lookup(explicitRemote)
		if !ok {
			return Project{}, "", &UnknownRemoteError{Remote: explicitRemote, Known: candidates.Aliases()}
		}
		return Project{Name: name, Remote: explicitRemote}, RuleExplicit, nil
	}

	if len(candidates) == 1 {
		return Project{Name: candidates[0].ProjectName, Remote: candidates[0].Alias}, RuleSingle, nil
	}

	if preferred != "" {
		if name, ok := candidates.Lookup(preferred); ok {
			return Project{Name: name, Remote: preferred}, RulePreference, nil
		}
	}

	return Project{}, "", &AmbiguousProjectError{Aliases: candidates.Aliases()}
}

// RemoteLister lists the remotes of the current repository.
type RemoteLister interface {
	ListRemotes(ctx context.Context) (git.RemoteSet, error)
}

// PreferenceStore returns the stored preferred remote, or "" when unset.
type PreferenceStore interface {
	PreferredRemote() (string, error)
}

// Resolver resolves the project for one command invocation. It holds no
// state between calls, so every call observes the repository as it is.
type Resolver struct {
	remotes RemoteLister
	prefs   PreferenceStore
	org     Org
	logger  *zap.Logger
}

// NewResolver creates a Resolver. prefs may be nil, in which case no stored
// preference is consulted.
func NewResolver(remotes RemoteLister, prefs PreferenceStore, org Org, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{remotes: remotes, prefs: prefs, org: org, logger: logger}
}

// Candidates lists the project remotes of the repository.
func (r *Resolver) Candidates(ctx context.Context) (Candidates, error) {
	remotes, err := r.remotes.ListRemotes(ctx)
	if err != nil {
		return nil, err
	}
	return Extract(remotes, r.org), nil
}

// Resolve returns the project for explicitRemote ("" when the user gave
// none). The stored preference is only read when it can matter.
func (r *Resolver) Resolve(ctx context.Context, explicitRemote string) (Project, error) {
	candidates, err := r.Candidates(ctx)
	if err != nil {
		return Project{}, err
	}

	var preferred string
	if explicitRemote == "" && len(candidates) > 1 && r.prefs != nil {
		preferred, err = r.prefs.PreferredRemote()
		if err != nil {
			return Project{}, fmt.Errorf("reading preferred remote: %w", err)
		}
	}

	p, rule, err := Choose(candidates, explicitRemote, preferred)
	if err != nil {
		r.logger.Debug("project resolution failed",
			zap.Strings("candidates", candidates.Aliases()),
			zap.String("remote", explicitRemote),
			zap.String("preferred", preferred),
			zap.Error(err))
		return Project{}, err
	}

	r.logger.Debug("resolved project",
		zap.String("project", p.Name),
		zap.String("remote", p.Remote),
		zap.String("rule", string(rule)))
	return p, nil
}
