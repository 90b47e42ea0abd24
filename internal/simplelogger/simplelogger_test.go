package simplelogger

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock makes now return start, then advance by step on every call.
func fakeClock(t *testing.T, start time.Time, step time.Duration) {
	t.Helper()
	old := now
	t.Cleanup(func() { now = old })
	cur := start
	now = func() time.Time {
		at := cur
		cur = cur.Add(step)
		return at
	}
}

func readLog(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(os.Getenv(EnvVar))
	require.NoError(t, err)
	return string(b)
}

func TestLog_WritesAndAppends(t *testing.T) {
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "textcompare.log"))
	fakeClock(t, time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC), time.Second)

	Log("hello %s", "world")
	Log(" %d\n", 123)

	require.Equal(t, "03:04:05.000006 hello world\n03:04:06.000006  123\n", readLog(t))
}

func TestLog_MultiLineMessage(t *testing.T) {
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "textcompare.log"))
	fakeClock(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), 0)

	Log("a\nb")

	require.Equal(t, "03:04:05.000000 a\n03:04:05.000000 b\n", readLog(t))
}

func TestLog_NoOpWhenUnset(t *testing.T) {
	t.Setenv(EnvVar, "")
	Log("should not %s", "panic")
	Timed("nothing")()
}

func TestLog_NoOpWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvVar, dir)

	Log("ignored %d", 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestTimed(t *testing.T) {
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "textcompare.log"))
	// Calls to now: Timed's start, the "started" line, the duration, the "done" line.
	fakeClock(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), 1500*time.Microsecond+400)

	done := Timed("diff a b")
	done()

	lines := strings.Split(strings.TrimSuffix(readLog(t), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "03:04:05.001500 diff a b: started", lines[0])
	require.Equal(t, "03:04:05.004501 diff a b: done in 3.001ms", lines[1])
}

func TestTimed_RealClock(t *testing.T) {
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "textcompare.log"))

	Timed("x")()

	re := regexp.MustCompile(`^\d\d:\d\d:\d\d\.\d{6} x: started\n\d\d:\d\d:\d\d\.\d{6} x: done in (0s|[0-9.]+(µs|ms|s))\n$`)
	require.Regexp(t, re, readLog(t))
}
