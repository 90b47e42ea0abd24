package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/codalotl/textcompare/internal/comparison"
	"github.com/codalotl/textcompare/internal/merge"
	qcli "github.com/codalotl/textcompare/internal/q/cli"
	"github.com/codalotl/textcompare/internal/report"
	"github.com/codalotl/textcompare/internal/simplelogger"
)

// mergeFlags holds the flags `merge` interprets itself.
type mergeFlags struct {
	granularity *string
	format      *string
	output      *string
}

func newMergeCommand() *qcli.Command {
	var mf mergeFlags
	cmd := &qcli.Command{
		Name:     "merge",
		Synopsis: "LEFT BASE RIGHT",
		Short:    "Merge two versions of a text derived from a common base",
		Long: `Merge LEFT and RIGHT, two versions derived from BASE. Changes made on one side only are applied; ranges changed differently on both
sides are conflicts, written between diff3-style markers:

  <<<<<<< left
  ...
  ||||||| base
  ...
  =======
  ...
  >>>>>>> right

With -g words, markers are written where the conflicting words start, so they can share a line with the text before them.

merge exits 1 if conflicts remain.`,
		Args: qcli.All(qcli.ExactArgs(3), checkStdin),
		Run: func(c *qcli.Context) error {
			return runMerge(c, mf)
		},
	}

	f := cmd.Flags()
	mf.granularity = f.String("granularity", 'g', "lines", "unit of merging (lines|words)")
	mf.format = f.String("format", 'f', "markers", "output format (markers|json|msgpack)")
	mf.output = f.String("output", 'o', "", "write the merged text to this file instead of standard output")
	return cmd
}

func runMerge(c *qcli.Context, mf mergeFlags) error {
	cfg, err := loadSettings(c, "granularity", "format")
	if err != nil {
		return err
	}
	policy, err := comparison.ParsePolicy(cfg.Policy)
	if err != nil {
		return usage(err)
	}
	granularity, format, output := *mf.granularity, *mf.format, *mf.output
	if granularity != "lines" && granularity != "words" {
		return qcli.Usagef("invalid granularity %q (want lines or words)", granularity)
	}
	var reportFormat report.Format
	if format != "markers" {
		if reportFormat, err = report.ParseFormat(format); err != nil {
			return usage(err)
		}
	}
	args := c.Args

	stdin, err := readStdin(c.In, args)
	if err != nil {
		return err
	}
	var texts [3]string
	for i, name := range args {
		if texts[i], err = readInput(name, stdin); err != nil {
			return err
		}
	}
	left, base, right := texts[merge.Left], texts[merge.Base], texts[merge.Right]

	ctx := c.Context
	if cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout.Duration)
		defer cancel()
	}

	done := simplelogger.Timed("merge by " + granularity)
	var (
		ranges []merge.MergeRange
		types  []merge.ConflictType
		res    merge.Resolution
	)
	if granularity == "lines" {
		fragments, err := merge.MergeLines(ctx, left, base, right, policy)
		if err != nil {
			done()
			return err
		}
		for _, f := range fragments {
			ranges = append(ranges, f.MergeRange)
		}
		types = merge.ClassifyLines(fragments, left, base, right, policy)
		res = merge.ResolveLines(fragments, left, base, right, policy)
	} else {
		fragments, err := merge.CompareWordsThreeWay(ctx, left, base, right, policy)
		if err != nil {
			done()
			return err
		}
		for _, f := range fragments {
			ranges = append(ranges, f.MergeRange)
		}
		types = merge.ClassifyWords(fragments, left, base, right, policy)
		res = merge.ResolveWords(fragments, left, base, right, policy)
	}
	done()

	if reportFormat != "" {
		r := report.NewThreeWay([3]string{args[0], args[1], args[2]}, granularity, policy, ranges, types, res)
		if err := report.Write(c.Out, reportFormat, r); err != nil {
			return err
		}
	} else if err := writeMerged(c.Out, output, res.Text); err != nil {
		return err
	}

	if res.Conflicts > 0 {
		return fmt.Errorf("%d conflict(s) left unresolved", res.Conflicts)
	}
	return nil
}

func writeMerged(w io.Writer, output, text string) error {
	if output == "" {
		_, err := fmt.Fprint(w, text)
		return err
	}
	return os.WriteFile(output, []byte(text), 0o644)
}
