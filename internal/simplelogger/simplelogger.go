// Package simplelogger appends timestamped printf-style lines to the file named by the TEXTCOMPARE_LOG_FILE environment variable. It is a no-op when the
// variable is unset, so callers log unconditionally.
package simplelogger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// EnvVar names the log file.
const EnvVar = "TEXTCOMPARE_LOG_FILE"

// stampLayout prefixes every line.
const stampLayout = "15:04:05.000000"

var (
	mu  sync.Mutex
	now = time.Now
)

// Log appends "<time> <message>" to the log file. Each line of a multi-line message gets its own prefix.
//
// If TEXTCOMPARE_LOG_FILE is unset/empty or the path can't be opened as a file, Log is a no-op.
func Log(format string, args ...any) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return
	}
	write(path, now(), fmt.Sprintf(format, args...))
}

func write(path string, at time.Time, msg string) {
	stamp := at.Format(stampLayout)
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(msg, "\n"), "\n") {
		sb.WriteString(stamp)
		sb.WriteByte(' ')
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	mu.Lock()
	defer mu.Unlock()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(sb.String())
}

// Timed logs "<what>: started" and returns a func that logs "<what>: done in <duration>", the duration rounded to the microsecond. Typical use:
// defer simplelogger.Timed("diff a b")().
func Timed(what string) func() {
	if os.Getenv(EnvVar) == "" {
		return func() {}
	}
	start := now()
	Log("%s: started", what)
	return func() {
		Log("%s: done in %v", what, now().Sub(start).Round(time.Microsecond))
	}
}
