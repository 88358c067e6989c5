package cmd

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"

	"github.com/speakeasy-api/recentfile/internal/config"
	"github.com/speakeasy-api/recentfile/internal/env"
	"github.com/speakeasy-api/recentfile/internal/git"
	"github.com/speakeasy-api/recentfile/internal/github"
	"github.com/speakeasy-api/recentfile/internal/log"
	"github.com/speakeasy-api/recentfile/internal/model/flag"
	"github.com/speakeasy-api/recentfile/internal/recent"
)

// source selects where a pull request is read from: a URL, a local clone or the running workflow
type source struct {
	PR      string
	RepoDir string
	Base    string
	Head    string
}

// target is an opened pull request and the provider serving its files
type target struct {
	provider recent.Provider
	proposal recent.Proposal
	// action is set when running inside a GitHub Actions pull request workflow
	action *githubactions.Action
}

var sourceFlags = []flag.Flag{
	flag.StringFlag{
		Name:        "pr",
		Description: "URL of the pull request, e.g. https://github.com/{owner}/{repo}/pull/{number}",
		Hidden:      true,
	},
	flag.StringFlag{
		Name:        "repo-dir",
		Description: "local git repository to read the pull request from, used with --base and --head",
		Directory:   true,
	},
	flag.StringFlag{
		Name:        "base",
		Description: "base branch, tag or commit of a local pull request",
	},
	flag.StringFlag{
		Name:        "head",
		Description: "head branch, tag or commit of a local pull request",
	},
	flag.IntFlag{
		Name:        "max-commits",
		Description: "maximum number of commits a pull request may have (defaults to max_commits from the config)",
	},
}

// setPRFromArgs moves the optional positional pull request URL into the hidden pr flag
func setPRFromArgs(cmd *cobra.Command) error {
	if args := cmd.Flags().Args(); len(args) > 0 {
		return cmd.Flags().Set("pr", args[0])
	}
	return nil
}

func maxCommits(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return config.GetMaxCommits()
}

func openTarget(ctx context.Context, s source) (*target, error) {
	logger := log.From(ctx)

	switch {
	case s.PR != "":
		prURL, err := github.ParsePullRequestURL(s.PR)
		if err != nil {
			return nil, err
		}

		client, err := github.New(config.GetGithubToken(), config.GetGithubAPIURL())
		if err != nil {
			return nil, err
		}

		logger.Debugf("reading pull request %s/%s#%d", prURL.Owner, prURL.Repo, prURL.Number)

		p, err := client.GetProposal(ctx, prURL.Owner, prURL.Repo, prURL.Number)
		if err != nil {
			return nil, err
		}

		return &target{provider: client, proposal: p}, nil
	case s.RepoDir != "" || s.Base != "" || s.Head != "":
		if s.Base == "" || s.Head == "" {
			return nil, fmt.Errorf("--base and --head are both required for a local pull request")
		}

		dir := s.RepoDir
		if dir == "" {
			dir = "."
		}

		repo, err := git.NewLocalRepository(dir)
		if err != nil {
			return nil, err
		}
		if repo.IsNil() {
			return nil, fmt.Errorf("no git repository found in %s", dir)
		}

		logger.Debugf("reading local pull request %s..%s in %s", s.Base, s.Head, repo.Name())

		p, err := repo.Propose(ctx, s.Base, s.Head)
		if err != nil {
			return nil, err
		}

		return &target{provider: repo, proposal: p}, nil
	case env.IsGithubAction():
		action := githubactions.New()

		ghCtx, err := action.Context()
		if err != nil {
			return nil, fmt.Errorf("failed to read workflow context: %w", err)
		}

		p, err := github.ProposalFromEvent(ghCtx)
		if err != nil {
			return nil, err
		}

		client, err := github.New(config.GetGithubToken(), config.GetGithubAPIURL())
		if err != nil {
			return nil, err
		}

		logger.Debugf("reading pull request %s from %s event", p.ID(), ghCtx.EventName)

		return &target{provider: client, proposal: p, action: action}, nil
	}

	return nil, fmt.Errorf("a pull request URL is required (or --base and --head for a local repository)")
}
