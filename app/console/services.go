package console

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-rio/app"
	foundation "github.com/km-arc/go-rio/framework/app"
	"github.com/km-arc/go-rio/framework/container"
	"github.com/km-arc/go-rio/framework/providers"
)

type ServicesCommand struct {
	kernel *Kernel
}

func NewServicesCommand(k *Kernel) *ServicesCommand {
	return &ServicesCommand{kernel: k}
}

func (c *ServicesCommand) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the services a request container holds",
		RunE:  c.Run,
	}
}

func (c *ServicesCommand) Run(cmd *cobra.Command, _ []string) error {
	settings, err := app.LoadSettings(c.kernel.config())
	if err != nil {
		return err
	}
	ctr, err := foundation.NewContainer(settings)
	if err != nil {
		return err
	}

	all := append([]container.ServiceProvider{
		&providers.ConfigServiceProvider{EnvFiles: c.kernel.envFiles},
		&providers.LogServiceProvider{},
	}, app.Providers()...)
	for _, p := range all {
		if err := ctr.RegisterProvider(p, nil); err != nil {
			return err
		}
	}

	for _, id := range ctr.Keys() {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
