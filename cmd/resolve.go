package cmd

import (
	"context"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/speakeasy-api/recentfile/internal/github"
	"github.com/speakeasy-api/recentfile/internal/log"
	"github.com/speakeasy-api/recentfile/internal/model"
	"github.com/speakeasy-api/recentfile/internal/model/flag"
	"github.com/speakeasy-api/recentfile/internal/recent"
	"github.com/speakeasy-api/recentfile/internal/report"
)

type resolveFlags struct {
	PR         string   `json:"pr"`
	RepoDir    string   `json:"repo-dir"`
	Base       string   `json:"base"`
	Head       string   `json:"head"`
	MaxCommits int      `json:"max-commits"`
	Paths      []string `json:"path"`
	Output     string   `json:"output"`
}

func (f resolveFlags) source() source {
	return source{PR: f.PR, RepoDir: f.RepoDir, Base: f.Base, Head: f.Head}
}

var resolveCmd = &model.ExecutableCommand[resolveFlags]{
	Usage: "resolve [pr-url]",
	Short: "Print the current version of files changed around a pull request",
	Long: `Print the current version of each --path, taken from the head or base branch of the pull request.

If both branches changed a file since the pull request branched off, the command fails and the pull request needs a rebase.

The pull request is read from a GitHub URL, from a local repository with --repo-dir, --base and --head,
or, without either, from the pull_request event of the running GitHub Actions workflow.`,
	Args: cobra.MaximumNArgs(1),
	Flags: append([]flag.Flag{
		flag.StringSliceFlag{
			Name:        "path",
			Shorthand:   "p",
			Description: "path of the file to resolve, relative to the repository root",
			Required:    true,
		},
		flag.EnumFlag{
			Name:          "output",
			Shorthand:     "o",
			Description:   "output format",
			DefaultValue:  string(report.FormatRaw),
			AllowedValues: report.Formats,
		},
	}, sourceFlags...),
	PreRun: func(cmd *cobra.Command, flags *resolveFlags) error {
		return setPRFromArgs(cmd)
	},
	Run: runResolve,
}

func runResolve(ctx context.Context, flags resolveFlags) error {
	t, err := openTarget(ctx, flags.source())
	if err != nil {
		return err
	}

	logger := log.From(ctx)
	resolver := recent.New(t.provider, recent.WithMaxCommits(maxCommits(flags.MaxCommits)))
	paths := lo.Uniq(flags.Paths)

	logger.Debugf("resolving %d file(s) of %s with a limit of %d commits", len(paths), t.proposal.ID(), resolver.MaxCommits())

	resolutions, resolveErr := resolver.ResolveFiles(ctx, t.proposal, paths...)

	if t.action != nil {
		if len(paths) == 1 && resolutions[paths[0]] != nil {
			github.WriteOutputs(t.action, resolutions[paths[0]])
		}
		github.GenerateResolutionSummary(ctx, t.action, t.proposal, resolutions, resolveErr)
	}

	ordered := lo.FilterMap(paths, func(path string, _ int) (*recent.Resolution, bool) {
		res, ok := resolutions[path]
		return res, ok && res != nil
	})

	if err := report.Render(os.Stdout, report.Format(flags.Output), ordered); err != nil {
		return err
	}

	return resolveErr
}
