package cli

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// value is the typed storage behind a flag.
type value interface {
	set(raw string) error
	String() string
	kind() string // shown in help; "bool" flags take no value
}

type boolValue struct{ p *bool }

func (v boolValue) set(raw string) error {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return err
	}
	*v.p = b
	return nil
}

func (v boolValue) String() string {
	return strconv.FormatBool(*v.p)
}

func (boolValue) kind() string {
	return "bool"
}

type stringValue struct{ p *string }

func (v stringValue) set(raw string) error {
	*v.p = raw
	return nil
}

func (v stringValue) String() string {
	return *v.p
}

func (stringValue) kind() string {
	return "string"
}

type intValue struct{ p *int }

func (v intValue) set(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	*v.p = n
	return nil
}

func (v intValue) String() string {
	return strconv.Itoa(*v.p)
}

func (intValue) kind() string {
	return "int"
}

type durationValue struct{ p *time.Duration }

func (v durationValue) set(raw string) error {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*v.p = d
	return nil
}

func (v durationValue) String() string {
	return v.p.String()
}

func (durationValue) kind() string {
	return "duration"
}

// Flag describes one registered flag.
type Flag struct {
	Name      string
	Shorthand rune
	Usage     string
	Default   string

	value   value
	changed bool
}

// Value is the flag's current value, formatted.
func (f *Flag) Value() string {
	return f.value.String()
}

// Changed reports whether the flag was given on the command line.
func (f *Flag) Changed() bool {
	return f.changed
}

func (f *Flag) display() string {
	if f.Shorthand != 0 {
		return fmt.Sprintf("-%c/--%s", f.Shorthand, f.Name)
	}
	return "--" + f.Name
}

// FlagSet is the typed flag registry of a command.
type FlagSet struct {
	byName  map[string]*Flag
	byShort map[rune]*Flag
}

func newFlagSet() *FlagSet {
	return &FlagSet{byName: map[string]*Flag{}, byShort: map[rune]*Flag{}}
}

// Bool defines a bool flag. A shorthand of 0 means none.
func (fs *FlagSet) Bool(name string, shorthand rune, def bool, usage string) *bool {
	p := &def
	fs.add(name, shorthand, usage, boolValue{p})
	return p
}

// String defines a string flag.
func (fs *FlagSet) String(name string, shorthand rune, def string, usage string) *string {
	p := &def
	fs.add(name, shorthand, usage, stringValue{p})
	return p
}

// Int defines an int flag.
func (fs *FlagSet) Int(name string, shorthand rune, def int, usage string) *int {
	p := &def
	fs.add(name, shorthand, usage, intValue{p})
	return p
}

// Duration defines a time.Duration flag, parsed with time.ParseDuration.
func (fs *FlagSet) Duration(name string, shorthand rune, def time.Duration, usage string) *time.Duration {
	p := &def
	fs.add(name, shorthand, usage, durationValue{p})
	return p
}

// Lookup returns the flag named name, or nil.
func (fs *FlagSet) Lookup(name string) *Flag {
	return fs.byName[name]
}

func (fs *FlagSet) add(name string, shorthand rune, usage string, v value) {
	if name == "" {
		panic("cli: flag name must be non-empty")
	}
	if _, ok := fs.byName[name]; ok {
		panic("cli: duplicate flag: --" + name)
	}
	f := &Flag{Name: name, Shorthand: shorthand, Usage: usage, Default: v.String(), value: v}
	fs.byName[name] = f
	if shorthand != 0 {
		if _, ok := fs.byShort[shorthand]; ok {
			panic(fmt.Sprintf("cli: duplicate shorthand flag: -%c", shorthand))
		}
		fs.byShort[shorthand] = f
	}
}

// active merges the persistent flags of c's lineage with c's local flags. Names and shorthands must be unique across them.
func (c *Command) active() *FlagSet {
	out := newFlagSet()
	merge := func(fs *FlagSet) {
		if fs == nil {
			return
		}
		for name, f := range fs.byName {
			if existing, ok := out.byName[name]; ok && existing != f {
				panic("cli: flag name conflict across command path: --" + name)
			}
			out.byName[name] = f
			if f.Shorthand != 0 {
				if existing, ok := out.byShort[f.Shorthand]; ok && existing != f {
					panic(fmt.Sprintf("cli: shorthand conflict across command path: -%c", f.Shorthand))
				}
				out.byShort[f.Shorthand] = f
			}
		}
	}
	for _, cmd := range c.lineage() {
		merge(cmd.persistentFlags)
	}
	merge(c.localFlags)
	return out
}

// sorted returns the flags of fs ordered by name.
func (fs *FlagSet) sorted() []*Flag {
	out := make([]*Flag, 0, len(fs.byName))
	for _, f := range fs.byName {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// parse sets the flag named by token ("--format", "--format=json", "-f", "-f=json" or "-format") and reports whether it consumed next, the following
// argv token, as the value.
func (fs *FlagSet) parse(token string, next *string) (bool, error) {
	var (
		f     *Flag
		raw   *string
		inner string
	)
	if len(token) > 2 && token[1] == '-' {
		inner = token[2:]
	} else {
		inner = token[1:]
	}
	name, v, hasValue := cut(inner)
	if hasValue {
		raw = &v
	}
	switch {
	case len(token) > 2 && token[1] == '-':
		f = fs.byName[name]
	case len([]rune(name)) == 1:
		f = fs.byShort[[]rune(name)[0]]
	default:
		// Single-dash long form: -name.
		f = fs.byName[name]
	}
	if f == nil {
		return false, Usagef("unknown flag: %s", token)
	}

	consumed := false
	if raw == nil {
		switch {
		case f.value.kind() == "bool":
			t := "true"
			if next != nil {
				if _, err := strconv.ParseBool(*next); err == nil {
					t, consumed = *next, true
				}
			}
			raw = &t
		case next == nil || *next == "--":
			return false, Usagef("flag needs a value: %s", token)
		default:
			raw, consumed = next, true
		}
	}
	if err := f.value.set(*raw); err != nil {
		return false, Usagef("invalid value %q for %s: %v", *raw, f.display(), err)
	}
	f.changed = true
	return consumed, nil
}

func cut(s string) (name, value string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}
