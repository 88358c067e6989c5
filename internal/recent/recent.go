// Package recent decides which version of a file is current for a pull request
// by comparing content hashes at the head, base and fork-point commits.
package recent

import (
	"context"
	"fmt"
)

// Commit is a single commit of a pull request together with its parent hashes.
type Commit struct {
	Hash    string
	Parents []string
}

// Snapshot is the state of one file at one ref.
type Snapshot struct {
	Hash     string
	Content  []byte
	Encoding string
}

type Branch struct {
	Owner string
	Repo  string
	Ref   string
	SHA   string
}

// Proposal describes a pull request. Head is read at Head.SHA, base at Base.Ref.
type Proposal struct {
	Number  int
	Commits int
	Head    Branch
	Base    Branch
}

// ID returns owner/repo#number of the base repository.
func (p Proposal) ID() string {
	return fmt.Sprintf("%s/%s#%d", p.Base.Owner, p.Base.Repo, p.Number)
}

func (p Proposal) headRef() string {
	if p.Head.SHA != "" {
		return p.Head.SHA
	}
	return p.Head.Ref
}

func (p Proposal) headRepo() string {
	if p.Head.Repo != "" {
		return p.Head.Repo
	}
	return p.Base.Repo
}

// Provider fetches repository content from a hosting backend.
type Provider interface {
	// GetRepoContent returns the file at path for ref. It fails if the file does not exist at ref.
	GetRepoContent(ctx context.Context, owner, repo, path, ref string) (*Snapshot, error)
	// GetCommitsFromPR returns the commits that belong to the pull request.
	GetCommitsFromPR(ctx context.Context, owner, repo string, number int) ([]Commit, error)
}

type Source string

const (
	SourceHead Source = "head"
	SourceBase Source = "base"
)

type Reason string

const (
	ReasonOnlyInHead    Reason = "only-in-head"
	ReasonOnlyInBase    Reason = "only-in-base"
	ReasonIdentical     Reason = "identical"
	ReasonChangedInBase Reason = "changed-in-base"
	ReasonChangedInHead Reason = "changed-in-head"
)

// Resolution is the outcome of resolving a single path.
type Resolution struct {
	Path        string `json:"path" yaml:"path"`
	Source      Source `json:"source" yaml:"source"`
	Reason      Reason `json:"reason" yaml:"reason"`
	ContentHash string `json:"contentHash" yaml:"contentHash"`
	ForkPoint   string `json:"forkPoint,omitempty" yaml:"forkPoint,omitempty"`
	Content     []byte `json:"-" yaml:"-"`
}
