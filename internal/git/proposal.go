package git

import (
	"context"
	"fmt"

	gitc "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/samber/lo"
	"github.com/speakeasy-api/recentfile/internal/recent"
)

// LocalOwner is the owner reported for proposals opened on a local repository.
const LocalOwner = "local"

type proposalRefs struct {
	base plumbing.Hash
	head plumbing.Hash
}

// Propose registers a pull request merging headRef into baseRef and describes it.
// Its commits are those reachable from head but not from base, as `git rev-list base..head` lists them.
func (r *Repository) Propose(ctx context.Context, baseRef, headRef string) (recent.Proposal, error) {
	if r.IsNil() {
		return recent.Proposal{}, errNotInitialized
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	base, err := r.resolve(baseRef)
	if err != nil {
		return recent.Proposal{}, err
	}
	head, err := r.resolve(headRef)
	if err != nil {
		return recent.Proposal{}, err
	}

	refs := proposalRefs{base: base, head: head}

	commits, err := r.commits(ctx, refs)
	if err != nil {
		return recent.Proposal{}, err
	}

	number := len(r.proposals) + 1
	r.proposals[number] = refs

	return recent.Proposal{
		Number:  number,
		Commits: len(commits),
		Head: recent.Branch{
			Owner: LocalOwner,
			Repo:  r.name,
			Ref:   headRef,
			SHA:   head.String(),
		},
		Base: recent.Branch{
			Owner: LocalOwner,
			Repo:  r.name,
			Ref:   baseRef,
			SHA:   base.String(),
		},
	}, nil
}

func (r *Repository) GetCommitsFromPR(ctx context.Context, _, _ string, number int) ([]recent.Commit, error) {
	if r.IsNil() {
		return nil, errNotInitialized
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	refs, ok := r.proposals[number]
	if !ok {
		return nil, fmt.Errorf("git: unknown proposal #%d", number)
	}

	return r.commits(ctx, refs)
}

// commits lists base..head oldest first.
func (r *Repository) commits(ctx context.Context, refs proposalRefs) ([]recent.Commit, error) {
	reachable := map[plumbing.Hash]struct{}{}
	err := r.walk(ctx, refs.base, func(c *object.Commit) error {
		reachable[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var commits []recent.Commit
	err = r.walk(ctx, refs.head, func(c *object.Commit) error {
		if _, ok := reachable[c.Hash]; ok {
			return nil
		}
		commits = append(commits, recent.Commit{
			Hash: c.Hash.String(),
			Parents: lo.Map(c.ParentHashes, func(h plumbing.Hash, _ int) string {
				return h.String()
			}),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lo.Reverse(commits), nil
}

func (r *Repository) walk(ctx context.Context, from plumbing.Hash, fn func(c *object.Commit) error) error {
	iter, err := r.repo.Log(&gitc.LogOptions{From: from, Order: gitc.LogOrderCommitterTime})
	if err != nil {
		return fmt.Errorf("git: failed to walk history from %s: %w", from, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(c)
	})
	if err != nil {
		return fmt.Errorf("git: failed to walk history from %s: %w", from, err)
	}

	return nil
}
