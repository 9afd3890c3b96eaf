package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// Prober reports whether dir belongs to a git repository.
type Prober func(dir string) error

// Probe opens the repository containing dir, walking up parent directories
// the same way git does. It returns *NotAProjectError when none is found.
func Probe(dir string) error {
	_, err := openRepository(dir)
	return err
}

func openRepository(dir string) (*gogit.Repository, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, &NotAProjectError{Dir: abs}
		}
		return nil, fmt.Errorf("opening repository at %s: %w", abs, err)
	}
	return repo, nil
}
