package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/codalotl/textcompare/internal/comparison"
	"github.com/codalotl/textcompare/internal/config"
	qcli "github.com/codalotl/textcompare/internal/q/cli"
	"github.com/codalotl/textcompare/internal/render"
	"github.com/codalotl/textcompare/internal/report"
	"github.com/codalotl/textcompare/internal/simplelogger"
)

// pair is one OLD NEW argument pair of `diff` and, once compared, its result.
type pair struct {
	oldName, newName string
	text1, text2     string

	fragments []comparison.DiffFragment // chars and words
	lines     []comparison.LineFragment // lines, inner and word-first
}

func (p *pair) changed() bool {
	return len(p.fragments) > 0 || len(p.lines) > 0
}

// diffFlags holds the flags `diff` interprets itself.
type diffFlags struct {
	squash *bool
	trim   *bool
}

func newDiffCommand() *qcli.Command {
	var df diffFlags
	cmd := &qcli.Command{
		Name:     "diff",
		Synopsis: "OLD NEW [OLD NEW ...]",
		Short:    "Show the differences between pairs of texts",
		Long: `Show the differences between pairs of texts. Use - to read one of the texts from standard input.

Granularities:
  chars       minimal edit, character by character
  words       whole words, then punctuation and whitespace
  lines       whole lines
  inner       lines, with the changed words inside each changed line
  word-first  words first, then lines; follows text reflowed across lines

Formats: pretty, unified and side-by-side print a human-readable diff (chars and words print the first text with changes marked inline);
json and msgpack print one report for all pairs.

diff exits 0 whether or not the texts differ; use 'textcompare equal' as a predicate.`,
		Example: "textcompare diff old.txt new.txt\ntextcompare diff -g words -f json a1 b1 a2 b2\ngit show HEAD:README | textcompare diff - README",
		Args: qcli.All(qcli.MinimumArgs(2), func(args []string) error {
			if len(args)%2 != 0 {
				return fmt.Errorf("diff takes pairs of texts: OLD NEW [OLD NEW ...], got %d argument(s)", len(args))
			}
			return checkStdin(args)
		}),
		Run: func(c *qcli.Context) error {
			return runDiff(c, df)
		},
	}

	f := cmd.Flags()
	f.String("granularity", 'g', "inner", "unit of comparison (chars|words|lines|inner|word-first)")
	f.String("format", 'f', "pretty", "output format (pretty|unified|side-by-side|json|msgpack)")
	f.Int("context", 'C', 3, "unchanged lines shown around changes")
	f.Int("jobs", 'j', 0, "pairs compared concurrently (0: one per CPU)")
	f.Int("width", 0, 0, "side-by-side width (0: terminal width)")
	f.Int("max-inner-length", 0, comparison.DefaultMaxInnerLength, "skip word-level changes in line blocks longer than this many bytes")
	df.squash = f.Bool("squash", 0, true, "merge touching line changes")
	df.trim = f.Bool("trim", 0, true, "trim unchanged blank lines from the edges of line changes")
	return cmd
}

func runDiff(c *qcli.Context, df diffFlags) error {
	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	policy, err := comparison.ParsePolicy(cfg.Policy)
	if err != nil {
		return usage(err)
	}
	args := c.Args

	stdin, err := readStdin(c.In, args)
	if err != nil {
		return err
	}
	pairs := make([]*pair, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		p := &pair{oldName: args[i], newName: args[i+1]}
		if p.text1, err = readInput(p.oldName, stdin); err != nil {
			return err
		}
		if p.text2, err = readInput(p.newName, stdin); err != nil {
			return err
		}
		pairs = append(pairs, p)
	}

	ctx := c.Context
	if cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout.Duration)
		defer cancel()
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	done := simplelogger.Timed(fmt.Sprintf("diff %d pair(s) by %s", len(pairs), cfg.Granularity))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(pairs)))
	for _, p := range pairs {
		g.Go(func() error {
			return comparePair(gctx, p, cfg, policy, *df.squash, *df.trim)
		})
	}
	err = g.Wait()
	done()
	if err != nil {
		return err
	}

	return writeDiff(c.Out, cfg, policy, pairs)
}

// comparePair compares p by cfg.Granularity and stores the result in p.
func comparePair(ctx context.Context, p *pair, cfg config.Config, policy comparison.Policy, squash, trim bool) error {
	var err error
	switch cfg.Granularity {
	case "chars":
		p.fragments, err = comparison.CompareChars(ctx, p.text1, p.text2, policy)
	case "words":
		p.fragments, err = comparison.CompareWords(ctx, p.text1, p.text2, policy)
	case "lines":
		p.lines, err = comparison.CompareLines(ctx, p.text1, p.text2, policy)
	case "inner":
		p.lines, err = comparison.CompareLinesInnerLimit(ctx, p.text1, p.text2, policy, cfg.MaxInnerLength)
	case "word-first":
		p.lines, err = comparison.CompareLinesWordFirst(ctx, p.text1, p.text2, comparison.LineOffsetsFor(p.text1), comparison.LineOffsetsFor(p.text2), policy)
	default:
		return fmt.Errorf("unknown granularity %q", cfg.Granularity)
	}
	if err != nil {
		return fmt.Errorf("%s vs %s: %w", p.oldName, p.newName, err)
	}
	if p.lines != nil {
		p.lines, err = comparison.ProcessBlocks(p.lines, p.text1, p.text2, policy, squash, trim)
		if err != nil {
			return fmt.Errorf("%s vs %s: %w", p.oldName, p.newName, err)
		}
	}
	return nil
}

func writeDiff(w io.Writer, cfg config.Config, policy comparison.Policy, pairs []*pair) error {
	switch cfg.Format {
	case "json", "msgpack":
		batch := make(report.Batch, 0, len(pairs))
		for _, p := range pairs {
			if isLineGranularity(cfg.Granularity) {
				batch = append(batch, report.NewTwoWayLines(p.oldName, p.newName, cfg.Granularity, policy, p.lines))
			} else {
				batch = append(batch, report.NewTwoWay(p.oldName, p.newName, cfg.Granularity, policy, p.fragments))
			}
		}
		format, err := report.ParseFormat(cfg.Format)
		if err != nil {
			return err
		}
		return report.Write(w, format, batch)
	}

	color := useColor(cfg.Color, w)
	var out []string
	for _, p := range pairs {
		if !p.changed() {
			continue
		}
		opts := render.Options{OldName: p.oldName, NewName: p.newName, Context: cfg.Context, Color: color, Width: outputWidth(cfg, w)}
		if !isLineGranularity(cfg.Granularity) {
			out = append(out, render.Header(opts)+"\n"+render.Inline(p.text1, p.text2, p.fragments, opts))
			continue
		}
		switch cfg.Format {
		case "unified":
			out = append(out, render.Unified(p.text1, p.text2, p.lines, opts))
		case "side-by-side":
			out = append(out, render.SideBySide(p.text1, p.text2, p.lines, opts))
		default:
			out = append(out, render.Pretty(p.text1, p.text2, p.lines, opts))
		}
	}
	if len(out) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.Join(out, "\n"))
	return err
}

func isLineGranularity(g string) bool {
	return g != "chars" && g != "words"
}
