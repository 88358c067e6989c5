// Package github binds the resolver to the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/AlekSi/pointer"
	gh "github.com/google/go-github/v58/github"
	"github.com/pkg/errors"
	"github.com/speakeasy-api/recentfile/internal/recent"
)

// commitsPerPage is the maximum page size of the pull request commits endpoint.
const commitsPerPage = 100

type Client struct {
	client *gh.Client
}

var _ recent.Provider = (*Client)(nil)

const defaultAPIURL = "https://api.github.com"

// New creates a client for github.com, or for a GitHub Enterprise server when apiURL is set.
func New(token, apiURL string) (*Client, error) {
	client := gh.NewClient(http.DefaultClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	if apiURL != "" && strings.TrimSuffix(apiURL, "/") != defaultAPIURL {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid github api url %q", apiURL)
		}
	}

	return &Client{client: client}, nil
}

func NewFromClient(client *gh.Client) *Client {
	return &Client{client: client}
}

func (c *Client) GetRepoContent(ctx context.Context, owner, repo, path, ref string) (*recent.Snapshot, error) {
	file, _, _, err := c.client.Repositories.GetContents(ctx, owner, repo, path, &gh.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s/%s/%s at %s", owner, repo, path, ref)
	}
	if file == nil {
		return nil, fmt.Errorf("%s/%s/%s at %s is a directory", owner, repo, path, ref)
	}

	encoding := file.GetEncoding()

	// Files above 1MB are listed without content.
	if encoding == "none" {
		raw, _, err := c.client.Git.GetBlobRaw(ctx, owner, repo, file.GetSHA())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get blob %s of %s", file.GetSHA(), path)
		}
		return &recent.Snapshot{Hash: file.GetSHA(), Content: raw}, nil
	}

	return &recent.Snapshot{
		Hash:     file.GetSHA(),
		Content:  []byte(pointer.GetString(file.Content)),
		Encoding: encoding,
	}, nil
}

func (c *Client) GetCommitsFromPR(ctx context.Context, owner, repo string, number int) ([]recent.Commit, error) {
	var commits []recent.Commit

	opts := &gh.ListOptions{PerPage: commitsPerPage}
	for {
		page, resp, err := c.client.PullRequests.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list commits of %s/%s#%d", owner, repo, number)
		}

		for _, commit := range page {
			parents := make([]string, 0, len(commit.Parents))
			for _, parent := range commit.Parents {
				parents = append(parents, parent.GetSHA())
			}
			commits = append(commits, recent.Commit{Hash: commit.GetSHA(), Parents: parents})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

// GetProposal fetches a pull request and describes it for the resolver.
func (c *Client) GetProposal(ctx context.Context, owner, repo string, number int) (recent.Proposal, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return recent.Proposal{}, errors.Wrapf(err, "failed to get pull request %s/%s#%d", owner, repo, number)
	}

	return ProposalFromPullRequest(pr)
}

// ProposalFromPullRequest maps the GitHub representation of a pull request.
// The head owner falls back to the head user when the fork repository is gone.
func ProposalFromPullRequest(pr *gh.PullRequest) (recent.Proposal, error) {
	if pr == nil {
		return recent.Proposal{}, fmt.Errorf("pull request is nil")
	}

	base := pr.GetBase()
	head := pr.GetHead()

	p := recent.Proposal{
		Number:  pr.GetNumber(),
		Commits: pr.GetCommits(),
		Head: recent.Branch{
			Owner: head.GetRepo().GetOwner().GetLogin(),
			Repo:  head.GetRepo().GetName(),
			Ref:   head.GetRef(),
			SHA:   head.GetSHA(),
		},
		Base: recent.Branch{
			Owner: base.GetRepo().GetOwner().GetLogin(),
			Repo:  base.GetRepo().GetName(),
			Ref:   base.GetRef(),
			SHA:   base.GetSHA(),
		},
	}
	if p.Head.Owner == "" {
		p.Head.Owner = head.GetUser().GetLogin()
	}

	var missing []string
	if p.Number == 0 {
		missing = append(missing, "number")
	}
	if p.Base.Owner == "" || p.Base.Repo == "" {
		missing = append(missing, "base.repo")
	}
	if p.Base.Ref == "" {
		missing = append(missing, "base.ref")
	}
	if p.Head.Owner == "" {
		missing = append(missing, "head.repo.owner")
	}
	if p.Head.SHA == "" && p.Head.Ref == "" {
		missing = append(missing, "head.sha")
	}
	if len(missing) > 0 {
		return recent.Proposal{}, fmt.Errorf("pull request is missing %s", strings.Join(missing, ", "))
	}

	return p, nil
}
