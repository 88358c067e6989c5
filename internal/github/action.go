package github

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	gh "github.com/google/go-github/v58/github"
	"github.com/sethvargo/go-githubactions"
	"github.com/speakeasy-api/recentfile/internal/log"
	"github.com/speakeasy-api/recentfile/internal/recent"
	"github.com/speakeasy-api/recentfile/internal/report"
	"go.uber.org/zap"
)

// ProposalFromEvent reads the pull request of a pull_request or pull_request_target workflow event.
func ProposalFromEvent(ghCtx *githubactions.GitHubContext) (recent.Proposal, error) {
	raw, ok := ghCtx.Event["pull_request"]
	if !ok {
		return recent.Proposal{}, fmt.Errorf("workflow event %q has no pull_request", ghCtx.EventName)
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return recent.Proposal{}, fmt.Errorf("failed to read pull_request from event: %w", err)
	}

	var pr gh.PullRequest
	if err := json.Unmarshal(data, &pr); err != nil {
		return recent.Proposal{}, fmt.Errorf("failed to read pull_request from event: %w", err)
	}

	return ProposalFromPullRequest(&pr)
}

// WriteOutputs exposes a single resolution as step outputs.
func WriteOutputs(action *githubactions.Action, res *recent.Resolution) {
	action.SetOutput("source", string(res.Source))
	action.SetOutput("reason", string(res.Reason))
	action.SetOutput("content-hash", res.ContentHash)
	action.SetOutput("content", string(res.Content))
	if res.ForkPoint != "" {
		action.SetOutput("fork-point", res.ForkPoint)
	}
}

// GenerateResolutionSummary adds a markdown table of the resolved paths to the job summary.
func GenerateResolutionSummary(ctx context.Context, action *githubactions.Action, p recent.Proposal, resolutions map[string]*recent.Resolution, resolveErr error) {
	defer func() {
		if r := recover(); r != nil {
			log.From(ctx).Debug("failed to generate github step summary", zap.Any("panic", r))
		}
	}()

	paths := make([]string, 0, len(resolutions))
	for path := range resolutions {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	ordered := make([]*recent.Resolution, 0, len(paths))
	for _, path := range paths {
		ordered = append(ordered, resolutions[path])
	}

	md := fmt.Sprintf("# Current files of %s\n\n%s", p.ID(), report.Markdown(ordered))
	if resolveErr != nil {
		md += fmt.Sprintf("\n\n:stop_sign: %s", resolveErr.Error())
	}

	action.AddStepSummary(md)
}
