package recent

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"github.com/speakeasy-api/recentfile/internal/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxCommits is the GitHub limit of commits listed for a single pull request.
const DefaultMaxCommits = 250

type Resolver struct {
	provider   Provider
	maxCommits int
}

type Option func(r *Resolver)

// WithMaxCommits overrides DefaultMaxCommits. Values <= 0 are ignored.
func WithMaxCommits(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxCommits = n
		}
	}
}

func New(provider Provider, opts ...Option) *Resolver {
	r := &Resolver{
		provider:   provider,
		maxCommits: DefaultMaxCommits,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) MaxCommits() int {
	return r.maxCommits
}

// ResolveCurrentFile returns the decoded content of the current version of path.
func (r *Resolver) ResolveCurrentFile(ctx context.Context, p Proposal, path string) ([]byte, error) {
	res, err := r.Resolve(ctx, p, path)
	if err != nil {
		return nil, err
	}
	return res.Content, nil
}

// Resolve compares the file between head and base and, if they differ, against the
// fork point of the pull request to find out which side changed it.
func (r *Resolver) Resolve(ctx context.Context, p Proposal, path string) (*Resolution, error) {
	logger := log.From(ctx).With(zap.String("pr", p.ID()))

	logger.Debugf("try to get file %q from pull-request", path)
	logger.Debugf("get files from head-ref %q and base-ref %q", p.headRef(), p.Base.Ref)

	var head, base *Snapshot

	// Errors are never returned; a failed fetch means the file is absent on that side.
	var g errgroup.Group
	g.Go(func() error {
		s, err := r.provider.GetRepoContent(ctx, p.Head.Owner, p.headRepo(), path, p.headRef())
		if err != nil {
			logger.Debug("head fetch failed", zap.Error(err))
			return nil
		}
		head = s
		return nil
	})
	g.Go(func() error {
		s, err := r.provider.GetRepoContent(ctx, p.Base.Owner, p.Base.Repo, path, p.Base.Ref)
		if err != nil {
			logger.Debug("base fetch failed", zap.Error(err))
			return nil
		}
		base = s
		return nil
	})
	_ = g.Wait()

	switch {
	case head == nil && base == nil:
		return nil, notFound("could not fetch file from head and base branches", path, "")
	case head == nil:
		logger.Debug("file exists only in base branch, use base")
		return resolution(path, SourceBase, ReasonOnlyInBase, base, "")
	case base == nil:
		logger.Debug("file exists only in head branch, use head")
		return resolution(path, SourceHead, ReasonOnlyInHead, head, "")
	}

	logger.Debugf("found files, head: %s base: %s", head.Hash, base.Hash)

	if head.Hash == base.Hash {
		logger.Debug("head == base, use base")
		return resolution(path, SourceBase, ReasonIdentical, base, "")
	}

	forkPointRef, err := r.ForkPoint(ctx, p)
	if err != nil {
		return nil, err
	}

	forkPoint, err := r.provider.GetRepoContent(ctx, p.Base.Owner, p.Base.Repo, path, forkPointRef)
	if err != nil {
		return nil, notFound(fmt.Sprintf("could not fetch file from fork-point commit %s", forkPointRef), path, forkPointRef)
	}

	logger.Debugf("found fork-point-ref %q and file %s", forkPointRef, forkPoint.Hash)

	baseChanged := base.Hash != forkPoint.Hash
	headChanged := head.Hash != forkPoint.Hash

	switch {
	case baseChanged && !headChanged:
		logger.Debug("file changed only in base branch, use base")
		return resolution(path, SourceBase, ReasonChangedInBase, base, forkPointRef)
	case headChanged && !baseChanged:
		logger.Debug("file changed only in head branch, use head")
		return resolution(path, SourceHead, ReasonChangedInHead, head, forkPointRef)
	}

	logger.Debug("head, base and fork-point differ, pull-request rebase required")

	return nil, conflict("file %q has changes in head and base branches", path)
}

// ForkPoint returns the commit the pull request branched off from.
func (r *Resolver) ForkPoint(ctx context.Context, p Proposal) (string, error) {
	logger := log.From(ctx).With(zap.String("pr", p.ID()))

	logger.Debugf("found pull-request commits: %d", p.Commits)

	if p.Commits > r.maxCommits {
		return "", tooManyCommits(p.Commits, r.maxCommits)
	}

	commits, err := r.provider.GetCommitsFromPR(ctx, p.Base.Owner, p.Base.Repo, p.Number)
	if err != nil {
		return "", fmt.Errorf("failed to list commits of %s: %w", p.ID(), err)
	}

	return FindForkPoint(commits)
}

// ResolveFiles resolves each path in turn. Failed paths are missing from the
// returned map and their errors are combined into the returned error.
func (r *Resolver) ResolveFiles(ctx context.Context, p Proposal, paths ...string) (map[string]*Resolution, error) {
	var errs *multierror.Error

	out := make(map[string]*Resolution, len(paths))
	for _, path := range lo.Uniq(paths) {
		res, err := r.Resolve(ctx, p, path)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		out[path] = res
	}

	return out, errs.ErrorOrNil()
}

func resolution(path string, source Source, reason Reason, s *Snapshot, forkPoint string) (*Resolution, error) {
	content, err := Decode(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s file %s: %w", source, path, err)
	}

	return &Resolution{
		Path:        path,
		Source:      source,
		Reason:      reason,
		ContentHash: s.Hash,
		ForkPoint:   forkPoint,
		Content:     content,
	}, nil
}

// Size returns the human readable size of the resolved content.
func (r *Resolution) Size() string {
	return humanize.Bytes(uint64(len(r.Content)))
}
