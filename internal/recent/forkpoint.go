package recent

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// FindForkPoint returns the parent of the first commit whose parent is not part of commits.
// Any merge commit in the list fails the lookup, wherever it appears.
func FindForkPoint(commits []Commit) (string, error) {
	for _, commit := range commits {
		switch {
		case len(commit.Parents) > 1:
			return "", conflict("commit %s has more than one parent", commit.Hash)
		case len(commit.Parents) == 0:
			return "", conflict("commit %s has no parent", commit.Hash)
		}
	}

	hashes := lo.SliceToMap(commits, func(c Commit) (string, struct{}) {
		return c.Hash, struct{}{}
	})

	for _, commit := range commits {
		if _, ok := hashes[commit.Parents[0]]; !ok {
			return commit.Parents[0], nil
		}
	}

	return "", conflict("not found fork-point commit sha %s", formatCommits(commits))
}

func formatCommits(commits []Commit) string {
	pairs := lo.Map(commits, func(c Commit, _ int) string {
		return fmt.Sprintf(" [ commit: %s parent: %s ]", c.Hash, lo.FirstOr(c.Parents, ""))
	})
	return strings.Join(pairs, "")
}
