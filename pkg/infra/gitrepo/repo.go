package gitrepo

import (
	"context"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/goerr/v2"

	"github.com/ltth-app/siteops/pkg/domain/interfaces"
	"github.com/ltth-app/siteops/pkg/domain/types"
	"github.com/ltth-app/siteops/pkg/utils/logging"
)

// Signature identifies the release committer.
type Signature struct {
	Name  string
	Email string
}

// Repo commits release changes in the git working tree that contains dir.
type Repo struct {
	dir string
	who Signature
	now func() time.Time
}

var _ interfaces.Committer = (*Repo)(nil)

// Option configures Repo
type Option func(*Repo)

// WithClock overrides the commit timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(r *Repo) {
		if now != nil {
			r.now = now
		}
	}
}

// New returns a Repo for the working tree containing dir.
func New(dir string, who Signature, opts ...Option) *Repo {
	r := &Repo{dir: dir, who: who, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Commit stages all changes, removals included, and commits them. A clean
// tree yields an empty hash and no error.
func (r *Repo) Commit(ctx context.Context, message string) (string, error) {
	logger := logging.From(ctx)

	if r.who.Name == "" || r.who.Email == "" {
		return "", goerr.New("committer name and email are required", goerr.T(types.ErrTagConfig))
	}

	repo, err := git.PlainOpenWithOptions(r.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", goerr.Wrap(err, "failed to open git repository", goerr.V("dir", r.dir), goerr.T(types.ErrTagIO))
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", goerr.Wrap(err, "failed to open worktree", goerr.V("dir", r.dir), goerr.T(types.ErrTagIO))
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", goerr.Wrap(err, "failed to stage changes", goerr.T(types.ErrTagIO))
	}

	status, err := wt.Status()
	if err != nil {
		return "", goerr.Wrap(err, "failed to read worktree status", goerr.T(types.ErrTagIO))
	}
	if status.IsClean() {
		logger.Info("Nothing to commit", "dir", r.dir)
		return "", nil
	}

	sig := &object.Signature{Name: r.who.Name, Email: r.who.Email, When: r.now()}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		return "", goerr.Wrap(err, "failed to commit", goerr.V("message", message), goerr.T(types.ErrTagIO))
	}

	logger.Info("Committed release changes", "hash", hash.String(), "message", message)
	return hash.String(), nil
}
