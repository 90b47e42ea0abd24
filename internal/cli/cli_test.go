package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codalotl/textcompare/internal/merge"
	"github.com/codalotl/textcompare/internal/report"
)

// setup isolates the test from the user's configuration and changes into a temporary directory holding files (name -> content).
func setup(t *testing.T, files map[string]string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	t.Chdir(dir)
}

func run(t *testing.T, stdin string, args ...string) (int, error, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code, err := Run(append([]string{"textcompare"}, args...), &RunOptions{In: strings.NewReader(stdin), Out: &out, Err: &errOut})
	return code, err, out.String(), errOut.String()
}

func TestRun_Help(t *testing.T) {
	setup(t, nil)
	code, err, out, errOut := run(t, "", "-h")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "diff")
	assert.Contains(t, out, "merge")
	assert.Empty(t, errOut)
}

func TestRun_Version(t *testing.T) {
	setup(t, nil)
	code, err, out, _ := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "textcompare "+Version+"\n", out)
}

func TestRun_VersionFlagAndCommandHelp(t *testing.T) {
	setup(t, nil)
	code, err, out, _ := run(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "textcompare "+Version+"\n", out)

	code, err, out, _ = run(t, "", "diff", "--help")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage:\n  textcompare diff [flags] OLD NEW [OLD NEW ...]\n")
	assert.Contains(t, out, "-p, --policy <string>")
	assert.Contains(t, out, "--squash")
}

func TestRun_Config(t *testing.T) {
	setup(t, map[string]string{".textcompare.toml": "context = 1\n"})
	t.Setenv("TEXTCOMPARE_JOBS", "2")
	code, err, out, _ := run(t, "", "config", "-p", "trim", "--timeout", "1m")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Regexp(t, `(?m)^context\s+1\s+file \S*\.textcompare\.toml$`, out)
	assert.Regexp(t, `(?m)^jobs\s+2\s+env TEXTCOMPARE_JOBS$`, out)
	assert.Regexp(t, `(?m)^policy\s+trim\s+flag --policy$`, out)
	assert.Regexp(t, `(?m)^timeout\s+1m0s\s+flag --timeout$`, out)
	assert.Regexp(t, `(?m)^format\s+pretty\s+default$`, out)
}

func TestRun_BadConfigFileIsAUsageError(t *testing.T) {
	setup(t, map[string]string{".textcompare.toml": "colour = \"on\"\n", "a": "x"})
	code, err, _, errOut := run(t, "", "equal", "a", "a")
	require.Error(t, err)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "colour: unknown key")
	assert.Contains(t, errOut, "Run 'textcompare equal --help' for usage.")
}

func TestRun_UsageErrors(t *testing.T) {
	setup(t, map[string]string{"a": "x\n", "b": "y\n"})
	tests := []struct {
		name string
		args []string
	}{
		{name: "diff odd arguments", args: []string{"diff", "a"}},
		{name: "diff no arguments", args: []string{"diff"}},
		{name: "two stdin", args: []string{"diff", "-", "-"}},
		{name: "unknown flag", args: []string{"diff", "--bogus", "a", "b"}},
		{name: "unknown command", args: []string{"bogus"}},
		{name: "invalid policy", args: []string{"equal", "-p", "bogus", "a", "b"}},
		{name: "invalid granularity", args: []string{"diff", "-g", "bogus", "a", "b"}},
		{name: "merge arguments", args: []string{"merge", "a", "b"}},
		{name: "merge granularity", args: []string{"merge", "-g", "chars", "a", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err, _, errOut := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, 2, code)
			assert.Contains(t, errOut, "Error:")
			assert.Contains(t, errOut, "--help")
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	setup(t, map[string]string{"a": "x\n"})
	code, err, _, errOut := run(t, "", "diff", "a", "missing")
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "missing")
}

func TestRun_DiffUnified(t *testing.T) {
	setup(t, map[string]string{"a": "a\nb\nc\n", "b": "a\nx\nc\n"})
	code, err, out, _ := run(t, "", "diff", "-f", "unified", "-C", "1", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "--- a\n+++ b\n@@ -1,3 +1,3 @@\n a\n-b\n+x\n c\n", out)
}

func TestRun_DiffEqualPrintsNothing(t *testing.T) {
	setup(t, map[string]string{"a": "same\n"})
	code, err, out, _ := run(t, "", "diff", "a", "a")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestRun_DiffPretty(t *testing.T) {
	setup(t, map[string]string{"a": "a\nb\n", "b": "a\nc\n"})
	code, err, out, _ := run(t, "", "diff", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "a -> b:\n a\n-b\n+c\n", out)
}

func TestRun_DiffJSONBatch(t *testing.T) {
	setup(t, map[string]string{"a": "a\nb\nc\n", "b": "a\nx\nc\n", "c": "a\nb\nc\n"})
	code, err, out, _ := run(t, "", "diff", "-f", "json", "-g", "lines", "-j", "2", "a", "b", "a", "c")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	var batch report.Batch
	require.NoError(t, json.Unmarshal([]byte(out), &batch))
	require.Len(t, batch, 2)

	assert.Equal(t, "a", batch[0].Old)
	assert.Equal(t, "b", batch[0].New)
	assert.False(t, batch[0].Equal)
	require.Len(t, batch[0].Lines, 1)
	assert.Equal(t, report.Fragment{Start1: 1, End1: 2, Start2: 1, End2: 2}, batch[0].Lines[0].Lines)

	assert.Equal(t, "c", batch[1].New)
	assert.True(t, batch[1].Equal)
}

func TestRun_DiffFormatFromEnv(t *testing.T) {
	setup(t, map[string]string{"a": "x", "b": "y"})
	t.Setenv("TEXTCOMPARE_FORMAT", "json")
	t.Setenv("TEXTCOMPARE_GRANULARITY", "chars")
	code, err, out, _ := run(t, "", "diff", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	var batch report.Batch
	require.NoError(t, json.Unmarshal([]byte(out), &batch))
	require.Len(t, batch, 1)
	assert.Equal(t, "chars", batch[0].Granularity)
	assert.Equal(t, []report.Fragment{{Start1: 0, End1: 1, Start2: 0, End2: 1}}, batch[0].Fragments)
}

func TestRun_DiffFlagOverridesProjectFile(t *testing.T) {
	setup(t, map[string]string{
		".textcompare.toml": "format = \"json\"\n",
		"a":                 "a\nb\nc\n",
		"b":                 "a\nx\nc\n",
	})
	_, err, out, _ := run(t, "", "diff", "a", "b")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), out)

	_, err, out, _ = run(t, "", "diff", "-f", "unified", "a", "b")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "--- a\n+++ b\n"), out)
}

func TestRun_DiffWordsFromStdin(t *testing.T) {
	setup(t, map[string]string{"b": "foo baz"})
	code, err, out, _ := run(t, "foo bar", "diff", "-g", "words", "-", "b")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "- -> b:\nfoo [-bar-]{+baz+}\n", out)
}

func TestRun_Equal(t *testing.T) {
	setup(t, map[string]string{"a": "a \nb\n", "b": "a\nb\n"})

	code, err, out, errOut := run(t, "", "equal", "a", "b")
	require.ErrorIs(t, err, ErrDifferent)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Empty(t, errOut)

	code, err, _, _ = run(t, "", "equal", "-p", "trim", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	code, err, _, _ = run(t, "a\nb\n", "equal", "-", "b")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestRun_MergeClean(t *testing.T) {
	setup(t, map[string]string{"left": "a\nL\nc\nd\n", "base": "a\nb\nc\nd\n", "right": "a\nb\nc\nD\n"})
	code, err, out, _ := run(t, "", "merge", "left", "base", "right")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "a\nL\nc\nD\n", out)

	code, err, out, _ = run(t, "", "merge", "-o", "merged", "left", "base", "right")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
	data, err := os.ReadFile("merged")
	require.NoError(t, err)
	assert.Equal(t, "a\nL\nc\nD\n", string(data))
}

func TestRun_MergeConflict(t *testing.T) {
	setup(t, map[string]string{"left": "a\nX\nc\n", "base": "a\nb\nc\n", "right": "a\nY\nc\n"})
	code, err, out, errOut := run(t, "", "merge", "left", "base", "right")
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, merge.MarkerLeft+"\nX\n"+merge.MarkerBase+"\nb\n"+merge.MarkerSeparator+"\nY\n"+merge.MarkerRight)
	assert.Contains(t, errOut, "1 conflict(s) left unresolved")
}

func TestRun_MergeJSON(t *testing.T) {
	setup(t, map[string]string{"left": "a\nX\nc\n", "base": "a\nb\nc\n", "right": "a\nY\nc\n"})
	code, _, out, _ := run(t, "", "merge", "-f", "json", "left", "base", "right")
	assert.Equal(t, 1, code)

	var r report.ThreeWay
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 1, r.Conflicts)
	require.Len(t, r.Fragments, 1)
	assert.Equal(t, "conflict", r.Fragments[0].Kind)
	assert.Equal(t, [2]int{1, 2}, r.Fragments[0].Base)
}

func TestRun_MergeWords(t *testing.T) {
	setup(t, map[string]string{"left": "one two three", "base": "one 2 three", "right": "one 2 THREE"})
	code, err, out, _ := run(t, "", "merge", "-g", "words", "left", "base", "right")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "one two THREE", out)
}
