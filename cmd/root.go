package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/speakeasy-api/recentfile/internal/charm/styles"
	"github.com/speakeasy-api/recentfile/internal/config"
	"github.com/speakeasy-api/recentfile/internal/log"
	"github.com/speakeasy-api/recentfile/internal/model"
	"github.com/speakeasy-api/recentfile/internal/recent"
)

var rootCmd = &cobra.Command{
	Use:   "recentfile",
	Short: "Find the most recent version of a file across the head and base of a pull request",
	Long: `recentfile decides which side of a pull request holds the current version of a file:
	- the head branch, when only the pull request changed it
	- the base branch, when it moved on after the pull request branched off
	- neither, when both sides changed it and the pull request needs a rebase
`,
}

var l = log.New()

func init() {
	// We want our commands to be sorted in defined order, not alphabetically
	cobra.EnableCommandSorting = false
	if err := config.Load(); err != nil {
		l.Error("", zap.Error(err))
		os.Exit(1)
	}
}

func Init(version string) {
	rootCmd.PersistentFlags().String("logLevel", string(log.LevelInfo), fmt.Sprintf("the log level (available options: [%s])", strings.Join(log.Levels, ", ")))

	addCommand(rootCmd, resolveCmd)
	addCommand(rootCmd, forkPointCmd)
}

func addCommand(cmd *cobra.Command, command model.Command) {
	c, err := command.Init()
	if err != nil {
		l.Error("", zap.Error(err))
		os.Exit(1)
	}
	cmd.AddCommand(c)
}

func CmdForTest(version string) *cobra.Command {
	setupRootCmd(version)

	return rootCmd
}

func Execute(version string) {
	setupRootCmd(version)

	if err := rootCmd.Execute(); err != nil {
		if kind := recent.KindOf(err); kind != 0 {
			l.Error("", zap.String("kind", kind.String()), zap.Error(err))
		} else {
			l.Error("", zap.Error(err))
			l.WithInteractiveOnly().PrintfStyled(styles.DimmedItalic, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
		}
		os.Exit(1)
	}
}

func setupRootCmd(version string) {
	rootCmd.Version = version
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setLogLevel(cmd)
	}

	Init(version)
}

func setLogLevel(cmd *cobra.Command) error {
	logLevel, err := cmd.Flags().GetString("logLevel")
	if err != nil {
		return err
	}
	if !slices.Contains(log.Levels, logLevel) {
		return fmt.Errorf("log level must be one of: %s", strings.Join(log.Levels, ", "))
	}

	// Without the flag, keep the level log.New picked (debug on a runner with RUNNER_DEBUG)
	if cmd.Flags().Changed("logLevel") {
		l = l.WithLevel(log.Level(logLevel))
	}
	ctx := log.With(cmd.Context(), l)
	cmd.SetContext(ctx)

	return nil
}
