package console

import (
	"github.com/spf13/cobra"

	"github.com/km-arc/go-rio/app"
	foundation "github.com/km-arc/go-rio/framework/app"
	"github.com/km-arc/go-rio/framework/config"
)

type SettingsCommand struct {
	kernel *Kernel
}

func NewSettingsCommand(k *Kernel) *SettingsCommand {
	return &SettingsCommand{kernel: k}
}

func (c *SettingsCommand) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings as YAML",
		RunE:  c.Run,
	}
}

func (c *SettingsCommand) Run(cmd *cobra.Command, _ []string) error {
	user, err := app.LoadSettings(c.kernel.config())
	if err != nil {
		return err
	}
	ctr, err := foundation.NewContainer(user)
	if err != nil {
		return err
	}
	settings, err := foundation.Settings(ctr)
	if err != nil {
		return err
	}
	out, err := config.Dump(settings)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
