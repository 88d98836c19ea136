package console

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/km-arc/go-rio/app"
)

type RoutesCommand struct {
	kernel *Kernel
}

func NewRoutesCommand(k *Kernel) *RoutesCommand {
	return &RoutesCommand{kernel: k}
}

func (c *RoutesCommand) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the registered routes",
		RunE:  c.Run,
	}
}

func (c *RoutesCommand) Run(cmd *cobra.Command, _ []string) error {
	application := app.New(c.kernel.config(), nil, zap.NewNop())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATTERN\tNAME\tACTION")
	for _, r := range application.Router().Routes() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", strings.Join(r.Methods(), "|"), r.Pattern(), r.Name(), describe(r.Callable()))
	}
	return w.Flush()
}

func describe(callable any) string {
	if id, ok := callable.(string); ok {
		return id
	}
	return "Closure"
}
