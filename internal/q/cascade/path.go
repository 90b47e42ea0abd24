package cascade

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading "~" to the current user's home directory and makes path absolute.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	expanded := path
	if strings.HasPrefix(expanded, "~") {
		if home, _ := os.UserHomeDir(); home != "" {
			switch {
			case expanded == "~" || expanded == "~/" || expanded == `~\`:
				expanded = home
			case strings.HasPrefix(expanded, "~/") || strings.HasPrefix(expanded, `~\`):
				expanded = filepath.Join(home, expanded[2:])
			}
		}
	}
	if abs, err := filepath.Abs(expanded); err == nil {
		expanded = abs
	}
	return expanded
}

// InUserConfigDirectory joins subPath to the OS's per-user configuration directory (os.UserConfigDir, ex: $XDG_CONFIG_HOME or ~/.config on Linux).
func InUserConfigDirectory(subPath string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, subPath), nil
}

// nearest searches upward from start (a directory or file; the working directory if "") for the first non-empty file named fileName.
func nearest(fileName, start string) (string, bool) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		start = wd
	}
	if fi, err := os.Stat(start); err == nil && !fi.IsDir() {
		start = filepath.Dir(start)
	}
	for dir := start; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, fileName)
		if data, err := os.ReadFile(candidate); err == nil && strings.TrimSpace(string(data)) != "" {
			return candidate, true
		}
		if filepath.Dir(dir) == dir {
			return "", false
		}
	}
}
