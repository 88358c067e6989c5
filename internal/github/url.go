package github

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type PullRequestURL struct {
	Owner  string
	Repo   string
	Number int
	// URL is the normalized URL without query or fragment.
	URL string
}

// ParsePullRequestURL parses https://{host}/{owner}/{repo}/pull/{number}.
// Trailing path segments (e.g. /files), queries and fragments are ignored.
func ParsePullRequestURL(rawURL string) (*PullRequestURL, error) {
	rawURL = strings.TrimSpace(rawURL)

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return nil, fmt.Errorf("expected an http(s) URL, got %q", rawURL)
	}

	path := strings.Trim(parsed.Path, "/")
	parts := strings.Split(path, "/")

	if len(parts) < 4 || parts[2] != "pull" || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid pull request URL format. Expected: https://github.com/{owner}/{repo}/pull/{number}")
	}

	number, err := strconv.Atoi(parts[3])
	if err != nil || number <= 0 {
		return nil, fmt.Errorf("invalid pull request number '%s'", parts[3])
	}

	return &PullRequestURL{
		Owner:  parts[0],
		Repo:   parts[1],
		Number: number,
		URL:    fmt.Sprintf("%s://%s/%s/%s/pull/%d", parsed.Scheme, parsed.Host, parts[0], parts[1], number),
	}, nil
}
