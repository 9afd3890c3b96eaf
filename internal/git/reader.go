package git

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"
)

var remoteArgs = []string{"remote", "-v"}

// Reader lists the remotes of the repository containing Dir.
type Reader struct {
	dir    string
	runner Runner
	probe  Prober
	logger *zap.Logger
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithRunner replaces the git process runner (useful for testing).
func WithRunner(r Runner) ReaderOption {
	return func(rd *Reader) {
		rd.runner = r
	}
}

// WithProber replaces the repository probe (useful for testing).
func WithProber(p Prober) ReaderOption {
	return func(rd *Reader) {
		rd.probe = p
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) ReaderOption {
	return func(rd *Reader) {
		rd.logger = l
	}
}

// NewReader creates a Reader for dir.
func NewReader(dir string, opts ...ReaderOption) *Reader {
	r := &Reader{
		dir:    dir,
		runner: ExecRunner{},
		probe:  Probe,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListRemotes probes for a repository and then runs `git remote -v`. The probe
// runs first so that a plain directory fails with *NotAProjectError without
// spawning git.
func (r *Reader) ListRemotes(ctx context.Context) (RemoteSet, error) {
	if err := r.probe(r.dir); err != nil {
		return nil, err
	}

	r.logger.Debug("listing remotes", zap.String("dir", r.dir), zap.Strings("args", remoteArgs))

	out, err := r.runner.Run(ctx, r.dir, remoteArgs...)
	if err != nil {
		var toolErr *ToolInvocationError
		if errors.As(err, &toolErr) {
			return nil, toolErr
		}
		return nil, &ToolInvocationError{Args: remoteArgs, Err: err}
	}
	if !utf8.Valid(out) {
		return nil, &ToolInvocationError{Args: remoteArgs, Err: errors.New("output is not valid UTF-8")}
	}

	remotes := ParseRemotes(string(out))
	r.logger.Debug("parsed remotes", zap.Strings("aliases", remotes.Aliases()))
	return remotes, nil
}
