// Package config loads textcompare's settings from layered sources with predictable precedence: built-in defaults, the user's config file, the nearest
// project file, TEXTCOMPARE_* environment variables, then command-line flags. Layering is done by q/cascade.
//
// Files are TOML. Unknown keys and values of the wrong type are errors; missing, unreadable or empty files are skipped.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/codalotl/textcompare/internal/comparison"
	"github.com/codalotl/textcompare/internal/q/cascade"
)

const (
	// ProjectFileName is the name of the per-project file, searched upward from the working directory.
	ProjectFileName = ".textcompare.toml"

	// EnvPrefix prefixes the environment variable of each key (ex: TEXTCOMPARE_POLICY).
	EnvPrefix = "TEXTCOMPARE_"
)

// Config holds every setting. Field tags are the keys used in files; the environment variable of a key is EnvPrefix followed by the key in upper case.
type Config struct {
	Policy          string   `toml:"policy"`             // default|trim|ignore
	Granularity     string   `toml:"granularity"`        // chars|words|lines|inner|word-first
	Format          string   `toml:"format"`             // pretty|unified|side-by-side|json|msgpack
	Context         int      `toml:"context"`            // context lines around changes
	Color           string   `toml:"color"`              // auto|on|off
	Timeout         Duration `toml:"timeout"`            // 0 means no timeout
	MaxInnerLength  int      `toml:"max_inner_length"`   // see comparison.CompareLinesInnerLimit
	SideBySideWidth int      `toml:"side_by_side_width"` // 0 means the terminal width
	Jobs            int      `toml:"jobs"`               // 0 means GOMAXPROCS

	// Sources records where each key's value came from.
	Sources map[string]Source `toml:"-"`
}

// Source identifies where a configuration value came from.
type Source struct {
	Kind string // "default", "file", "env" or "flag"
	Name string // file path, variable name or flag; "" for defaults
}

func (s Source) String() string {
	if s.Name == "" {
		return s.Kind
	}
	return s.Kind + " " + s.Name
}

// Duration is a time.Duration written as a Go duration string (ex: "30s"). A bare integer is not accepted.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		Policy:         comparison.PolicyDefault.String(),
		Granularity:    "inner",
		Format:         "pretty",
		Context:        3,
		Color:          "auto",
		MaxInnerLength: comparison.DefaultMaxInnerLength,
		Sources:        map[string]Source{},
	}
	for _, k := range Keys() {
		cfg.Sources[k] = Source{Kind: "default"}
	}
	return cfg
}

// Keys returns every configuration key, sorted.
func Keys() []string {
	return cascade.Keys(&Config{})
}

// Values returns c as a map keyed by configuration key. The timeout is a duration string.
func (c Config) Values() map[string]any {
	return map[string]any{
		"policy":             c.Policy,
		"granularity":        c.Granularity,
		"format":             c.Format,
		"context":            c.Context,
		"color":              c.Color,
		"timeout":            c.Timeout.Duration.String(),
		"max_inner_length":   c.MaxInnerLength,
		"side_by_side_width": c.SideBySideWidth,
		"jobs":               c.Jobs,
	}
}

// Validate checks that every value is in range.
func (c Config) Validate() error {
	var errs []error
	if _, err := comparison.ParsePolicy(c.Policy); err != nil {
		errs = append(errs, err)
	}
	oneOf := func(name, value string, allowed ...string) {
		if !slices.Contains(allowed, value) {
			errs = append(errs, fmt.Errorf("%s must be one of %s (got %q)", name, strings.Join(allowed, "|"), value))
		}
	}
	oneOf("granularity", c.Granularity, "chars", "words", "lines", "inner", "word-first")
	oneOf("format", c.Format, "pretty", "unified", "side-by-side", "json", "msgpack")
	oneOf("color", c.Color, "auto", "on", "off")
	if c.Context < 0 {
		errs = append(errs, fmt.Errorf("context must be >= 0 (got %d)", c.Context))
	}
	if c.Timeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("timeout must be >= 0 (got %v)", c.Timeout.Duration))
	}
	if c.MaxInnerLength <= 0 {
		errs = append(errs, fmt.Errorf("max_inner_length must be > 0 (got %d)", c.MaxInnerLength))
	}
	if c.SideBySideWidth < 0 {
		errs = append(errs, fmt.Errorf("side_by_side_width must be >= 0 (got %d)", c.SideBySideWidth))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must be >= 0 (got %d)", c.Jobs))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Flag is a command-line flag that overrides a configuration key.
type Flag struct {
	Key   string // configuration key, ex: "side_by_side_width"
	Name  string // flag as typed, ex: "--width"
	Value string
}

// Loader layers sources over Default, from lowest to highest priority. The zero value is not ready to use; call New.
type Loader struct {
	c *cascade.Loader
}

// New returns a Loader holding only the defaults.
func New() *Loader {
	return &Loader{c: cascade.New().WithDefaults(Default().Values())}
}

// WithFile adds the TOML file at path. A leading "~" is expanded to the home directory. The file is read by Load.
func (l *Loader) WithFile(path string) *Loader {
	l.c.WithTOMLFile(path)
	return l
}

// WithNearestFile searches upward from dir (or the working directory if dir is "") for the first non-empty file named fileName and adds it. fileName must
// be relative; WithNearestFile panics otherwise.
func (l *Loader) WithNearestFile(fileName, dir string) *Loader {
	l.c.WithNearestTOMLFile(fileName, dir)
	return l
}

// WithEnv reads every key from the environment variable prefix+KEY through lookup (nil means os.LookupEnv).
func (l *Loader) WithEnv(prefix string, lookup func(string) (string, bool)) *Loader {
	m := map[string]string{}
	for _, k := range Keys() {
		m[k] = prefix + strings.ToUpper(k)
	}
	l.c.WithEnv(m, lookup)
	return l
}

// WithFlags adds flags as the highest-priority source.
func (l *Loader) WithFlags(flags ...Flag) *Loader {
	if len(flags) == 0 {
		return l
	}
	values := map[string]any{}
	names := map[string]string{}
	for _, f := range flags {
		values[f.Key] = f.Value
		names[f.Key] = f.Name
	}
	l.c.WithValues("flag", values, names)
	return l
}

// Load applies the sources and validates the result. Errors name the offending source.
func (l *Loader) Load() (Config, error) {
	var cfg Config
	prov, err := l.c.StrictlyLoad(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load configuration: %w", err)
	}
	cfg.Sources = make(map[string]Source, len(prov))
	for key, p := range prov {
		cfg.Sources[key] = sourceOf(p)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func sourceOf(p cascade.Provenance) Source {
	switch p.SourceType {
	case "toml_file":
		return Source{Kind: "file", Name: p.SourceIdentifier}
	default:
		return Source{Kind: p.SourceType, Name: p.SourceIdentifier}
	}
}

// UserFile returns the path of the user's config file: textcompare/config.toml in os.UserConfigDir.
func UserFile() (string, error) {
	return cascade.InUserConfigDirectory(filepath.Join("textcompare", "config.toml"))
}

// Load loads the configuration from the standard sources: the user file, the nearest ProjectFileName from dir, the environment, then flags.
func Load(dir string, flags ...Flag) (Config, error) {
	l := New()
	if path, err := UserFile(); err == nil {
		l = l.WithFile(path)
	}
	return l.WithNearestFile(ProjectFileName, dir).WithEnv(EnvPrefix, os.LookupEnv).WithFlags(flags...).Load()
}
