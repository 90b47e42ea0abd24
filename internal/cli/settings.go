package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/term"

	"github.com/codalotl/textcompare/internal/config"
	qcli "github.com/codalotl/textcompare/internal/q/cli"
	"github.com/codalotl/textcompare/internal/render"
)

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"policy":           "policy",
	"granularity":      "granularity",
	"format":           "format",
	"context":          "context",
	"color":            "color",
	"timeout":          "timeout",
	"max-inner-length": "max_inner_length",
	"width":            "side_by_side_width",
	"jobs":             "jobs",
}

// loadSettings loads the configuration with the flags given to c's command on top, except those named in local (flags the command interprets itself).
// Configuration errors are usage errors.
func loadSettings(c *qcli.Context, local ...string) (config.Config, error) {
	var flags []config.Flag
	c.VisitChanged(func(f *qcli.Flag) {
		if key, ok := flagKeys[f.Name]; ok && !slices.Contains(local, f.Name) {
			flags = append(flags, config.Flag{Key: key, Name: "--" + f.Name, Value: f.Value()})
		}
	})

	dir, err := os.Getwd()
	if err != nil {
		dir = ""
	}
	cfg, err := config.Load(dir, flags...)
	if err != nil {
		return config.Config{}, usage(err)
	}
	return cfg, nil
}

// useColor decides whether to colorize output written to w.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// outputWidth returns the side-by-side width: the configured one, else the width of the terminal behind w, else render.DefaultWidth.
func outputWidth(cfg config.Config, w io.Writer) int {
	if cfg.SideBySideWidth > 0 {
		return cfg.SideBySideWidth
	}
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return render.DefaultWidth
}

// checkStdin allows "-" (standard input) as at most one of args.
func checkStdin(args []string) error {
	n := 0
	for _, a := range args {
		if a == "-" {
			n++
		}
	}
	if n > 1 {
		return qcli.Usagef("standard input (-) can be used for only one argument")
	}
	return nil
}

// readStdin reads standard input if one of names is "-".
func readStdin(in io.Reader, names []string) (string, error) {
	if !slices.Contains(names, "-") {
		return "", nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read standard input: %w", err)
	}
	return string(data), nil
}

// readInput returns the text named name: stdin if name is "-", otherwise the file's content.
func readInput(name, stdin string) (string, error) {
	if name == "-" {
		return stdin, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
