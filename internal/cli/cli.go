package cli

import (
	"context"
	"fmt"
	"io"

	qcli "github.com/codalotl/textcompare/internal/q/cli"
	"github.com/codalotl/textcompare/internal/simplelogger"
)

// Version is the textcompare version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (ex: the texts differ, conflicts remain, a file can't be read).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr, except for the expected outcomes of `equal` (ErrDifferent).
// Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}
	var o qcli.Options
	if opts != nil {
		o = qcli.Options{In: opts.In, Out: opts.Out, Err: opts.Err}
	}
	o.Args = argv

	simplelogger.Log("run %q", argv)
	code, err := qcli.Run(context.Background(), newRootCommand(), o)
	if err != nil {
		simplelogger.Log("exit %d: %v", code, err)
	}
	return code, err
}

func newRootCommand() *qcli.Command {
	root := &qcli.Command{
		Name:    "textcompare",
		Short:   "Compare and merge texts",
		Version: Version,
		Long: `textcompare compares texts by characters, words or lines, and merges two versions of a text that derive from a common base.

Settings come from ~/.config/textcompare/config.toml, the nearest .textcompare.toml, TEXTCOMPARE_* environment variables and flags, in increasing
order of precedence. 'textcompare config' shows the effective settings.`,
	}

	pf := root.PersistentFlags()
	pf.String("policy", 'p', "default", "whitespace policy (default|trim|ignore)")
	pf.String("color", 0, "auto", "colorize output (auto|on|off)")
	pf.Duration("timeout", 0, 0, "abort a comparison that takes longer than this (ex: 10s)")

	root.AddCommand(newDiffCommand(), newMergeCommand(), newEqualCommand(), newConfigCommand(), newVersionCommand())
	return root
}

func newVersionCommand() *qcli.Command {
	return &qcli.Command{
		Name:  "version",
		Short: "Print the textcompare version",
		Args:  qcli.NoArgs,
		Run: func(c *qcli.Context) error {
			_, err := fmt.Fprintf(c.Out, "textcompare %s\n", Version)
			return err
		},
	}
}
