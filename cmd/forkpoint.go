package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/speakeasy-api/recentfile/internal/log"
	"github.com/speakeasy-api/recentfile/internal/model"
	"github.com/speakeasy-api/recentfile/internal/recent"
)

type forkPointFlags struct {
	PR         string `json:"pr"`
	RepoDir    string `json:"repo-dir"`
	Base       string `json:"base"`
	Head       string `json:"head"`
	MaxCommits int    `json:"max-commits"`
}

var forkPointCmd = &model.ExecutableCommand[forkPointFlags]{
	Usage: "fork-point [pr-url]",
	Short: "Print the commit a pull request branched off from",
	Long:  "Print the commit a pull request branched off from. Pull requests containing merge commits have no fork point.",
	Args:  cobra.MaximumNArgs(1),
	Flags: sourceFlags,
	PreRun: func(cmd *cobra.Command, flags *forkPointFlags) error {
		return setPRFromArgs(cmd)
	},
	Run: runForkPoint,
}

func runForkPoint(ctx context.Context, flags forkPointFlags) error {
	t, err := openTarget(ctx, source{PR: flags.PR, RepoDir: flags.RepoDir, Base: flags.Base, Head: flags.Head})
	if err != nil {
		return err
	}

	sha, err := recent.New(t.provider, recent.WithMaxCommits(maxCommits(flags.MaxCommits))).ForkPoint(ctx, t.proposal)
	if err != nil {
		return err
	}

	if t.action != nil {
		t.action.SetOutput("fork-point", sha)
	}

	log.From(ctx).WithWriter(os.Stdout).Println(sha)

	return nil
}
