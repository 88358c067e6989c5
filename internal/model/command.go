package model

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/fatih/structs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/speakeasy-api/recentfile/internal/model/flag"
)

type Command interface {
	Init() (*cobra.Command, error)
}

// ExecutableCommand is a runnable "leaf" command that can be executed directly and has no subcommands
// F is a struct type that represents the flags for the command. The json tags on the struct fields are used to map to the command line flags
type ExecutableCommand[F interface{}] struct {
	Usage, Short, Long string
	Flags              []flag.Flag
	Args               cobra.PositionalArgs
	// PreRun may adjust flag values through cmd.Flags().Set before Run reads them
	PreRun func(cmd *cobra.Command, flags *F) error
	Run    func(ctx context.Context, flags F) error
	Hidden bool
}

func (c ExecutableCommand[F]) Init() (*cobra.Command, error) {
	preRun := func(cmd *cobra.Command, args []string) error {
		if c.PreRun == nil {
			return nil
		}

		flags, err := c.GetFlagValues(cmd)
		if err != nil {
			return err
		}

		return c.PreRun(cmd, flags)
	}

	run := func(cmd *cobra.Command, args []string) error {
		if c.Run == nil {
			return fmt.Errorf("command %s has nothing to run", c.Usage)
		}

		flags, err := c.GetFlagValues(cmd)
		if err != nil {
			return err
		}

		return c.Run(cmd.Context(), *flags)
	}

	// Assert that the flags are valid
	if err := c.checkFlags(); err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:     c.Usage,
		Short:   c.Short,
		Long:    c.Long,
		Args:    c.Args,
		PreRunE: preRun,
		RunE:    run,
		Hidden:  c.Hidden,
	}

	for _, flag := range c.Flags {
		if err := flag.Init(cmd); err != nil {
			return nil, err
		}
	}

	return cmd, nil
}

func (c ExecutableCommand[F]) checkFlags() error {
	var f F
	fields := structs.Fields(f)

	tags := make([]string, len(fields))
	for i, field := range fields {
		tags[i] = field.Tag("json")
	}

	for _, flag := range c.Flags {
		if !slices.Contains(tags, flag.GetName()) {
			return fmt.Errorf("flag %s is missing from flags type for command %s", flag.GetName(), c.Usage)
		}
	}

	return nil
}

func (c ExecutableCommand[F]) GetFlagValues(cmd *cobra.Command) (*F, error) {
	var flagValues F

	findFlagDef := func(name string) flag.Flag {
		for _, f := range c.Flags {
			if f.GetName() == name {
				return f
			}
		}
		return nil
	}

	var parseErr error
	jsonFlags := make(map[string]interface{})
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		flag := findFlagDef(f.Name)
		if flag == nil || parseErr != nil {
			return
		}

		v, err := flag.ParseValue(f.Value.String())
		if err != nil {
			parseErr = fmt.Errorf("invalid value for --%s: %w", f.Name, err)
			return
		}
		jsonFlags[f.Name] = v
	})
	if parseErr != nil {
		return nil, parseErr
	}

	jsonBytes, err := json.Marshal(jsonFlags)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(jsonBytes, &flagValues); err != nil {
		return nil, err
	}

	return &flagValues, nil
}

// Verify that the command types implement the Command interface
var _ = []Command{
	&ExecutableCommand[interface{}]{},
}
