package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type Options struct {
	// Args is argv without the program name (typically os.Args[1:]).
	Args []string

	// In/Out/Err override standard I/O. If nil, defaults are used.
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Context is passed to a command handler. Flag values are read through the variables bound when the command was built (ex: fs.Bool(...)).
type Context struct {
	context.Context

	Command *Command
	Args    []string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// VisitChanged calls fn for every flag given on the command line, in name order, among the flags active for the selected command.
func (c *Context) VisitChanged(fn func(f *Flag)) {
	for _, f := range c.Command.active().sorted() {
		if f.changed {
			fn(f)
		}
	}
}

// Run executes the command tree rooted at root and returns a process exit code along with the error that caused it, if any:
//   - 0: success, or help/version was printed.
//   - 2: a UsageError (bad flag, bad args, unknown command, or one returned by a handler). Printed as "Error: ..." plus a hint to run --help.
//   - otherwise: the handler's error; its ExitCode if it is an ExitCoder, else 1. Printed as "Error: ..." unless it is a Silent ExitError.
func Run(ctx context.Context, root *Command, opts Options) (int, error) {
	if root == nil || root.Name == "" {
		panic("cli: Run called with a nil or unnamed root")
	}
	c := &Context{Context: ctx, In: opts.In, Out: opts.Out, Err: opts.Err}
	if c.In == nil {
		c.In = os.Stdin
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Err == nil {
		c.Err = os.Stderr
	}

	selected, args, err := parseArgv(root, opts.Args, c.Out)
	if errors.Is(err, errPrinted) {
		return 0, nil
	}
	if err == nil {
		err = validate(selected, args)
	}
	if err == nil {
		c.Command, c.Args = selected, args
		err = selected.Run(c)
	}
	if err == nil {
		return 0, nil
	}
	return report(c.Err, selected, err), err
}

var errPrinted = errors.New("help or version printed")

func validate(cmd *Command, args []string) error {
	if cmd.Run == nil {
		if len(args) == 0 {
			return Usagef("missing command")
		}
		return Usagef("unknown command %q", args[0])
	}
	if cmd.Args == nil {
		return nil
	}
	err := cmd.Args(args)
	var ec ExitCoder
	if err != nil && !errors.As(err, &ec) {
		return UsageError{Message: err.Error()}
	}
	return err
}

// report prints err for cmd and returns its exit code.
func report(w io.Writer, cmd *Command, err error) int {
	code := 1
	var ec ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	var ee ExitError
	if errors.As(err, &ee) && ee.Silent {
		return code
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
	if code == 2 {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", cmd.Path())
	}
	return code
}

// parseArgv selects the command named by the leading non-flag tokens and parses the flags found anywhere before "--".
func parseArgv(root *Command, argv []string, out io.Writer) (*Command, []string, error) {
	selected := root
	selecting := true
	var positional []string

	for i := 0; i < len(argv); i++ {
		token := argv[i]
		switch {
		case token == "--":
			return selected, append(positional, argv[i+1:]...), nil
		case token == "-h" || token == "--help":
			writeHelp(out, selected)
			return selected, nil, errPrinted
		case token == "--version" && root.Version != "":
			fmt.Fprintf(out, "%s %s\n", root.Name, root.Version)
			return selected, nil, errPrinted
		case strings.HasPrefix(token, "-") && token != "-":
			var next *string
			if i+1 < len(argv) {
				next = &argv[i+1]
			}
			consumed, err := selected.active().parse(token, next)
			if err != nil {
				return selected, nil, err
			}
			if consumed {
				i++
			}
			continue
		}

		if selecting {
			if child := selected.child(token); child != nil {
				selected = child
				continue
			}
			selecting = false
		}
		positional = append(positional, token)
	}
	return selected, positional, nil
}
