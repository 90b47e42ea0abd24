package cli

import (
	"github.com/codalotl/textcompare/internal/comparison"
	qcli "github.com/codalotl/textcompare/internal/q/cli"
)

func newEqualCommand() *qcli.Command {
	return &qcli.Command{
		Name:     "equal",
		Synopsis: "A B",
		Short:    "Exit 0 if two texts are equal under the whitespace policy, 1 otherwise",
		Long: `Exit 0 if A and B are equal under the whitespace policy, 1 otherwise. Nothing is printed.

Policies:
  default  the texts are identical
  trim     same number of lines, equal once each line is trimmed
  ignore   equal once all whitespace, line breaks included, is removed`,
		Args: qcli.All(qcli.ExactArgs(2), checkStdin),
		Run: func(c *qcli.Context) error {
			cfg, err := loadSettings(c)
			if err != nil {
				return err
			}
			policy, err := comparison.ParsePolicy(cfg.Policy)
			if err != nil {
				return usage(err)
			}
			stdin, err := readStdin(c.In, c.Args)
			if err != nil {
				return err
			}
			a, err := readInput(c.Args[0], stdin)
			if err != nil {
				return err
			}
			b, err := readInput(c.Args[1], stdin)
			if err != nil {
				return err
			}
			if !comparison.IsEquals(a, b, policy) {
				return qcli.ExitError{Code: 1, Err: ErrDifferent, Silent: true}
			}
			return nil
		},
	}
}
