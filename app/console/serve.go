package console

import (
	"github.com/spf13/cobra"

	"github.com/km-arc/go-rio/app"
	"github.com/km-arc/go-rio/framework/providers"
)

type ServeCommand struct {
	kernel *Kernel
}

func NewServeCommand(k *Kernel) *ServeCommand {
	return &ServeCommand{kernel: k}
}

func (c *ServeCommand) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  c.Run,
	}
	cmd.Flags().String("port", "", "port to listen on (overrides APP_PORT)")
	return cmd
}

func (c *ServeCommand) Run(cmd *cobra.Command, _ []string) error {
	cfg := c.kernel.config()
	port, err := cmd.Flags().GetString("port")
	if err != nil {
		return err
	}
	if port != "" {
		cfg.App.Port = port
	}

	settings, err := app.LoadSettings(cfg)
	if err != nil {
		return err
	}
	logger, err := providers.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return app.New(cfg, settings, logger).Run(cmd.Context())
}
