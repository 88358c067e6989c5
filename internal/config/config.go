package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/speakeasy-api/recentfile/internal/env"
	"github.com/speakeasy-api/recentfile/internal/recent"

	"github.com/spf13/viper"
)

var (
	vCfg   = viper.New()
	cfgDir string
)

const (
	githubTokenKey  = "github_token"
	githubAPIURLKey = "github_api_url"
	maxCommitsKey   = "max_commits"
)

func Load() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	return LoadFrom(filepath.Join(home, ".recentfile"))
}

// LoadFrom reads config.yaml from dir. A missing file leaves the defaults in place.
func LoadFrom(dir string) error {
	cfgDir = dir

	vCfg = viper.New()
	vCfg.SetConfigName("config")
	vCfg.SetConfigType("yaml")
	vCfg.AddConfigPath(cfgDir)

	vCfg.SetEnvPrefix("recentfile")
	vCfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vCfg.AutomaticEnv()

	vCfg.SetDefault(maxCommitsKey, recent.DefaultMaxCommits)

	if err := vCfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}

func Dir() string {
	return cfgDir
}

func GetGithubToken() string {
	token := env.GithubToken()
	if token == "" {
		return vCfg.GetString(githubTokenKey)
	}

	return token
}

func GetGithubAPIURL() string {
	if url := vCfg.GetString(githubAPIURLKey); url != "" {
		return url
	}

	return env.GithubAPIURL()
}

func GetMaxCommits() int {
	return vCfg.GetInt(maxCommitsKey)
}
