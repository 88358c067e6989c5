package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	gitc "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var errNotInitialized = errors.New("repository not initialized")

// Repository serves file snapshots and pull request commits from a local clone.
// go-git storers are not safe for concurrent use, so every read holds mu.
type Repository struct {
	repo *gitc.Repository
	name string

	mu        sync.Mutex
	proposals map[int]proposalRefs
}

// NewLocalRepository will attempt to open a pre-existing git repository in the given directory
// If no repository is found, it will return an empty Repository
func NewLocalRepository(dir string) (*Repository, error) {
	repo, err := gitc.PlainOpenWithOptions(dir, &gitc.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, gitc.ErrRepositoryNotExists) {
		return &Repository{}, nil
	} else if err != nil {
		return &Repository{}, fmt.Errorf("git: %w", err)
	}

	return newRepository(repo, dir), nil
}

func newRepository(repo *gitc.Repository, dir string) *Repository {
	name := filepath.Base(dir)
	if wt, err := repo.Worktree(); err == nil {
		name = filepath.Base(wt.Filesystem.Root())
	}

	return &Repository{
		repo:      repo,
		name:      name,
		proposals: map[int]proposalRefs{},
	}
}

func (r *Repository) IsNil() bool {
	return r.repo == nil
}

// Name is the directory name of the work tree.
func (r *Repository) Name() string {
	return r.name
}

func (r *Repository) HeadHash() (string, error) {
	if r.IsNil() {
		return "", nil
	}

	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("git: %w", err)
	}

	return head.Hash().String(), nil
}

// resolve turns a branch, tag, remote ref or (abbreviated) hash into a commit hash.
func (r *Repository) resolve(ref string) (plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("git: failed to resolve %q: %w", ref, err)
	}

	return *hash, nil
}
