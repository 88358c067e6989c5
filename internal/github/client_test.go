package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/AlekSi/pointer"
	gh "github.com/google/go-github/v58/github"
	"github.com/speakeasy-api/recentfile/internal/recent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := gh.NewClient(nil)
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return NewFromClient(client)
}

func TestGetRepoContent(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/Hello-World/contents/docs/test.md", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("ref") {
		case "master":
			fmt.Fprintf(w, `{"type":"file","encoding":"base64","sha":"abc123","content":%q}`, base64.StdEncoding.EncodeToString([]byte("# hello\n")))
		default:
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		}
	})

	c := newTestClient(t, mux)

	s, err := c.GetRepoContent(context.Background(), "octocat", "Hello-World", "docs/test.md", "master")
	require.NoError(t, err)
	assert.Equal(t, "abc123", s.Hash)
	assert.Equal(t, "base64", s.Encoding)

	content, err := recent.Decode(s)
	require.NoError(t, err)
	assert.Equal(t, "# hello\n", string(content))

	_, err = c.GetRepoContent(context.Background(), "octocat", "Hello-World", "docs/test.md", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get octocat/Hello-World/docs/test.md at missing")
}

func TestGetRepoContent_LargeFile(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/Hello-World/contents/big.bin", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"file","encoding":"none","sha":"bigsha","content":""}`)
	})
	mux.HandleFunc("/repos/octocat/Hello-World/git/blobs/bigsha", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "raw blob")
	})

	s, err := newTestClient(t, mux).GetRepoContent(context.Background(), "octocat", "Hello-World", "big.bin", "master")
	require.NoError(t, err)
	assert.Equal(t, "bigsha", s.Hash)
	assert.Empty(t, s.Encoding)
	assert.Equal(t, "raw blob", string(s.Content))
}

func TestGetRepoContent_Directory(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/Hello-World/contents/docs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"type":"file","name":"test.md","path":"docs/test.md","sha":"abc123"}]`)
	})

	_, err := newTestClient(t, mux).GetRepoContent(context.Background(), "octocat", "Hello-World", "docs", "master")
	assert.EqualError(t, err, "octocat/Hello-World/docs at master is a directory")
}

func TestGetCommitsFromPR_Paginates(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	var srvURL string
	mux.HandleFunc("/repos/octocat/Hello-World/pulls/1347/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, strconv.Itoa(commitsPerPage), r.URL.Query().Get("per_page"))

		switch r.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/octocat/Hello-World/pulls/1347/commits?per_page=100&page=2>; rel="next"`, srvURL))
			fmt.Fprint(w, `[{"sha":"a111","parents":[{"sha":"fork-point-sha"}]},{"sha":"a222","parents":[{"sha":"a111"}]}]`)
		case "2":
			fmt.Fprint(w, `[{"sha":"a333","parents":[{"sha":"a222"},{"sha":"b999"}]}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	srvURL = srv.URL

	client := gh.NewClient(nil)
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	commits, err := NewFromClient(client).GetCommitsFromPR(context.Background(), "octocat", "Hello-World", 1347)
	require.NoError(t, err)
	assert.Equal(t, []recent.Commit{
		{Hash: "a111", Parents: []string{"fork-point-sha"}},
		{Hash: "a222", Parents: []string{"a111"}},
		{Hash: "a333", Parents: []string{"a222", "b999"}},
	}, commits)
}

func TestGetCommitsFromPR_Error(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/Hello-World/pulls/1/commits", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})

	_, err := newTestClient(t, mux).GetCommitsFromPR(context.Background(), "octocat", "Hello-World", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list commits of octocat/Hello-World#1")
}

func TestGetProposal(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/Hello-World/pulls/1347", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"number": 1347,
			"commits": 3,
			"head": {"ref": "new-topic", "sha": "6dcb09b5b57875", "repo": {"name": "Hello-World", "owner": {"login": "octocat-fork"}}},
			"base": {"ref": "master", "sha": "6dcb09b5b57875f334f61aebed695e2e4193db5e", "repo": {"name": "Hello-World", "owner": {"login": "octocat"}}}
		}`)
	})

	p, err := newTestClient(t, mux).GetProposal(context.Background(), "octocat", "Hello-World", 1347)
	require.NoError(t, err)
	assert.Equal(t, recent.Proposal{
		Number:  1347,
		Commits: 3,
		Head:    recent.Branch{Owner: "octocat-fork", Repo: "Hello-World", Ref: "new-topic", SHA: "6dcb09b5b57875"},
		Base:    recent.Branch{Owner: "octocat", Repo: "Hello-World", Ref: "master", SHA: "6dcb09b5b57875f334f61aebed695e2e4193db5e"},
	}, p)
}

func TestProposalFromPullRequest(t *testing.T) {
	t.Parallel()

	repo := func(owner, name string) *gh.Repository {
		return &gh.Repository{Name: pointer.ToString(name), Owner: &gh.User{Login: pointer.ToString(owner)}}
	}

	testCases := map[string]struct {
		pr      *gh.PullRequest
		want    recent.Proposal
		wantErr string
	}{
		"fork": {
			pr: &gh.PullRequest{
				Number:  pointer.ToInt(1347),
				Commits: pointer.ToInt(1),
				Head:    &gh.PullRequestBranch{Ref: pointer.ToString("new-topic"), SHA: pointer.ToString("6dcb09b5b57875"), Repo: repo("octocat-fork", "Hello-World")},
				Base:    &gh.PullRequestBranch{Ref: pointer.ToString("master"), Repo: repo("octocat", "Hello-World")},
			},
			want: recent.Proposal{
				Number:  1347,
				Commits: 1,
				Head:    recent.Branch{Owner: "octocat-fork", Repo: "Hello-World", Ref: "new-topic", SHA: "6dcb09b5b57875"},
				Base:    recent.Branch{Owner: "octocat", Repo: "Hello-World", Ref: "master"},
			},
		},
		"deleted fork": {
			pr: &gh.PullRequest{
				Number: pointer.ToInt(7),
				Head:   &gh.PullRequestBranch{SHA: pointer.ToString("abc"), User: &gh.User{Login: pointer.ToString("someone")}},
				Base:   &gh.PullRequestBranch{Ref: pointer.ToString("main"), Repo: repo("octocat", "Hello-World")},
			},
			want: recent.Proposal{
				Number: 7,
				Head:   recent.Branch{Owner: "someone", SHA: "abc"},
				Base:   recent.Branch{Owner: "octocat", Repo: "Hello-World", Ref: "main"},
			},
		},
		"missing fields": {
			pr:      &gh.PullRequest{},
			wantErr: "pull request is missing number, base.repo, base.ref, head.repo.owner, head.sha",
		},
		"nil": {
			wantErr: "pull request is nil",
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := ProposalFromPullRequest(tc.pr)
			if tc.wantErr != "" {
				assert.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, p)
		})
	}
}

func TestNew_EnterpriseURL(t *testing.T) {
	t.Parallel()

	c, err := New("token", "https://ghe.example.com/api/v3/")
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", c.client.BaseURL.String())

	for _, apiURL := range []string{"", "https://api.github.com", "https://api.github.com/"} {
		c, err = New("", apiURL)
		require.NoError(t, err)
		assert.Equal(t, "https://api.github.com/", c.client.BaseURL.String())
	}
}
