package env

import "os"

func IsGithubAction() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

func IsGithubDebugMode() bool {
	return os.Getenv("RUNNER_DEBUG") == "1" || os.Getenv("RUNNER_DEBUG") == "true"
}

// GithubToken returns the token exported by the environment, GITHUB_TOKEN first, then GH_TOKEN.
func GithubToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GH_TOKEN")
}

// GithubAPIURL is set by Actions runners on GitHub Enterprise Server.
func GithubAPIURL() string {
	return os.Getenv("GITHUB_API_URL")
}
