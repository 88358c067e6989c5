package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speakeasy-api/recentfile/internal/config"
	"github.com/speakeasy-api/recentfile/internal/recent"
)

func TestOpenTarget_Errors(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "")

	testCases := []struct {
		name    string
		source  source
		wantErr string
	}{
		{
			name:    "no source",
			wantErr: "a pull request URL is required (or --base and --head for a local repository)",
		},
		{
			name:    "base without head",
			source:  source{Base: "main"},
			wantErr: "--base and --head are both required for a local pull request",
		},
		{
			name:    "not a repository",
			source:  source{RepoDir: t.TempDir(), Base: "main", Head: "feature"},
			wantErr: "no git repository found in ",
		},
		{
			name:    "not a pull request URL",
			source:  source{PR: "https://github.com/octocat/Hello-World/issues/1"},
			wantErr: "invalid pull request URL format",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := openTarget(context.Background(), tc.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestMaxCommits(t *testing.T) {
	require.NoError(t, config.LoadFrom(t.TempDir()))

	assert.Equal(t, 10, maxCommits(10))
	assert.Equal(t, recent.DefaultMaxCommits, maxCommits(0))
	assert.Equal(t, recent.DefaultMaxCommits, maxCommits(-1))
}
