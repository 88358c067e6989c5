package recent_test

import (
	"testing"

	"github.com/speakeasy-api/recentfile/internal/recent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prCommits() []recent.Commit {
	return []recent.Commit{
		{Hash: "a444", Parents: []string{"a333"}},
		{Hash: "a222", Parents: []string{"a111"}},
		{Hash: "a333", Parents: []string{"a222"}},
		{Hash: "a111", Parents: []string{"fork-point-sha"}},
	}
}

func TestFindForkPoint(t *testing.T) {
	t.Parallel()

	actual, err := recent.FindForkPoint(prCommits())
	require.NoError(t, err)
	assert.Equal(t, "fork-point-sha", actual)
}

func TestFindForkPoint_OrderIndependent(t *testing.T) {
	t.Parallel()

	commits := prCommits()
	permutations := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{2, 0, 3, 1},
	}

	for _, perm := range permutations {
		shuffled := make([]recent.Commit, 0, len(perm))
		for _, i := range perm {
			shuffled = append(shuffled, commits[i])
		}

		actual, err := recent.FindForkPoint(shuffled)
		require.NoError(t, err)
		assert.Equal(t, "fork-point-sha", actual, "permutation %v", perm)
	}
}

func TestFindForkPoint_Errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		commits []recent.Commit
		wantMsg string
	}{
		"merge commit": {
			commits: []recent.Commit{
				{Hash: "a555", Parents: []string{"a666", "a777"}},
			},
			wantMsg: "commit a555 has more than one parent",
		},
		"merge commit after a valid fork point": {
			commits: []recent.Commit{
				{Hash: "a111", Parents: []string{"fork-point-sha"}},
				{Hash: "a555", Parents: []string{"a111", "a777"}},
			},
			wantMsg: "commit a555 has more than one parent",
		},
		"merge commit before a valid fork point": {
			commits: []recent.Commit{
				{Hash: "a555", Parents: []string{"a111", "a777"}},
				{Hash: "a111", Parents: []string{"fork-point-sha"}},
			},
			wantMsg: "commit a555 has more than one parent",
		},
		"closed list": {
			commits: []recent.Commit{
				{Hash: "a444", Parents: []string{"a222"}},
				{Hash: "a222", Parents: []string{"a444"}},
			},
			wantMsg: "not found fork-point commit sha  [ commit: a444 parent: a222 ] [ commit: a222 parent: a444 ]",
		},
		"no commits": {
			commits: nil,
			wantMsg: "not found fork-point commit sha ",
		},
		"root commit": {
			commits: []recent.Commit{
				{Hash: "a000"},
			},
			wantMsg: "commit a000 has no parent",
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			actual, err := recent.FindForkPoint(tc.commits)
			require.Error(t, err)
			assert.ErrorIs(t, err, recent.ErrConflict)
			assert.Equal(t, recent.KindConflict, recent.KindOf(err))
			assert.EqualError(t, err, tc.wantMsg)
			assert.Empty(t, actual)
		})
	}
}
