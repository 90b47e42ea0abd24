package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/codalotl/textcompare/internal/config"
	qcli "github.com/codalotl/textcompare/internal/q/cli"
)

func newConfigCommand() *qcli.Command {
	return &qcli.Command{
		Name:  "config",
		Short: "Print the effective settings and where each one comes from",
		Long: `Print every configuration key with its effective value and its source: default, file PATH, env VARIABLE or flag --NAME.
Global flags given on the command line are applied, so 'textcompare config -p trim' shows their effect.`,
		Args: qcli.NoArgs,
		Run: func(c *qcli.Context) error {
			cfg, err := loadSettings(c)
			if err != nil {
				return err
			}
			values := cfg.Values()
			tw := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
			for _, key := range config.Keys() {
				fmt.Fprintf(tw, "%s\t%v\t%v\n", key, values[key], cfg.Sources[key])
			}
			return tw.Flush()
		},
	}
}
