// Package console is the rio command line.
package console

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-rio/framework/config"
)

// Kernel holds what every command shares: the env files to load.
type Kernel struct {
	envFiles []string
}

// NewRootCommand returns the "rio" command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	k := &Kernel{}
	root := &cobra.Command{
		Use:           "rio",
		Short:         "Rio micro framework",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringSliceVar(&k.envFiles, "env", nil, "env files to load (default .env)")

	root.AddCommand(
		NewServeCommand(k).Command(),
		NewRoutesCommand(k).Command(),
		NewServicesCommand(k).Command(),
		NewSettingsCommand(k).Command(),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (k *Kernel) config() *config.Config {
	return config.Load(k.envFiles...)
}
