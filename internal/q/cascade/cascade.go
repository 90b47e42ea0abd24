package cascade

import (
	"encoding"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Provenance identifies where a loaded value came from.
type Provenance struct {
	SourceType       string // "default", "toml_file", "env", or the type given to WithValues (ex: "flag")
	SourceIdentifier string // ex: "/path/to/config.toml" or "APP_POLICY"; "" for defaults
}

func (p Provenance) IsSet() bool {
	return p.SourceType != ""
}

func (p Provenance) Default() bool {
	return p.SourceType == "default"
}

func (p Provenance) String() string {
	if p.SourceIdentifier == "" {
		return p.SourceType
	}
	return p.SourceType + " " + p.SourceIdentifier
}

// Loader builds a prioritized cascade of configuration sources. Sources are registered from lowest to highest priority.
type Loader struct {
	sources []source
}

// New returns an empty Loader. It is equivalent to &Loader{}.
func New() *Loader {
	return &Loader{}
}

// WithDefaults registers m as a source of default values. Keys may use dot-notation; values must be scalars, slices of scalars or nested maps.
func (c *Loader) WithDefaults(m map[string]any) *Loader {
	c.sources = append(c.sources, &sourceMap{typ: "default", m: m, desc: "Defaults"})
	return c
}

// WithValues registers m as a source whose values are reported with SourceType typ. ids optionally gives a SourceIdentifier per key (ex: the flag that set
// it).
func (c *Loader) WithValues(typ string, m map[string]any, ids map[string]string) *Loader {
	norm := make(map[string]string, len(ids))
	for k, id := range ids {
		norm[strings.ToLower(k)] = id
	}
	c.sources = append(c.sources, &sourceMap{typ: typ, m: m, ids: norm, desc: typ})
	return c
}

// WithTOMLFile registers the TOML file at path (absolute, relative to the working directory, or starting with "~"). The file is read by StrictlyLoad.
func (c *Loader) WithTOMLFile(path string) *Loader {
	c.sources = append(c.sources, &sourceTOMLFile{path: path})
	return c
}

// WithNearestTOMLFile searches upward from start (a directory or file; the working directory if "") for the first non-empty file named fileName and registers
// it. fileName must be relative and may contain directories; WithNearestTOMLFile panics if it is absolute. If no file is found, the Loader is unchanged.
func (c *Loader) WithNearestTOMLFile(fileName, start string) *Loader {
	if filepath.IsAbs(fileName) {
		panic("fileName shouldn't be absolute")
	}
	if path, ok := nearest(fileName, start); ok {
		c.sources = append(c.sources, &sourceTOMLFile{path: path})
	}
	return c
}

// WithEnv registers environment variables: m maps a key (dots denote nesting) to a variable name. lookup reads variables; nil means os.LookupEnv.
func (c *Loader) WithEnv(m map[string]string, lookup func(string) (string, bool)) *Loader {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	c.sources = append(c.sources, &sourceEnv{keyToEnv: m, lookup: lookup})
	return c
}

// StrictlyLoad applies c's sources to dest, a non-nil pointer to a struct, from low to high priority. It returns the provenance of every key that some
// source set, by lower-case dotted key.
//
// It fails fast, naming the source, when a readable source cannot be parsed, sets an unknown key, or supplies a value that cannot be coerced to the field
// type. Missing or unreadable files are skipped.
func (c *Loader) StrictlyLoad(dest any) (map[string]Provenance, error) {
	rv := reflect.ValueOf(dest)
	if dest == nil || rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("dest must be a non-nil pointer to struct, got %T", dest)
	}

	prov := map[string]Provenance{}
	for _, src := range c.sources {
		m, err := src.values()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}
			return nil, fmt.Errorf("%s: %w", src.name(""), err)
		}
		set := func(path string) { prov[path] = src.provenance(path) }
		if err := applyMap(rv.Elem(), m, "", set); err != nil {
			var fe *fieldError
			if errors.As(err, &fe) {
				return nil, fmt.Errorf("%s: %w", src.name(fe.path), err)
			}
			return nil, fmt.Errorf("%s: %w", src.name(""), err)
		}
	}
	return prov, nil
}

// Keys returns the dotted keys of the leaf fields of the struct that dest points to (or of dest, a struct), sorted.
func Keys(dest any) []string {
	t := reflect.TypeOf(dest)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var out []string
	var walk func(t reflect.Type, base string)
	walk = func(t reflect.Type, base string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			key := fieldKey(f)
			if !f.IsExported() || key == "-" {
				continue
			}
			path := joinPath(base, key)
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && !isTextField(ft) {
				walk(ft, path)
				continue
			}
			out = append(out, path)
		}
	}
	walk(t, "")
	sort.Strings(out)
	return out
}

// fieldError is a problem with the value at a dotted key.
type fieldError struct {
	path string
	err  error
}

func (e *fieldError) Error() string { return e.path + ": " + e.err.Error() }
func (e *fieldError) Unwrap() error { return e.err }

func fieldErrorf(path, format string, args ...any) error {
	return &fieldError{path: path, err: fmt.Errorf(format, args...)}
}

// fieldKey is the cascade tag name, else the toml tag name, else the field name, in lower case. "-" means skip.
func fieldKey(f reflect.StructField) string {
	for _, tag := range []string{"cascade", "toml"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		name = strings.TrimSpace(name)
		if name == "-" {
			return "-"
		}
		if name != "" {
			return strings.ToLower(name)
		}
	}
	return strings.ToLower(f.Name)
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

func isTextField(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// applyMap writes m into structVal, recursing into nested objects, and calls set with the dotted path of every assigned leaf.
func applyMap(structVal reflect.Value, m map[string]any, base string, set func(path string)) error {
	t := structVal.Type()
	index := map[string]int{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := fieldKey(f)
		if !f.IsExported() || key == "-" {
			continue
		}
		if prev, ok := index[key]; ok {
			return fmt.Errorf("struct contains field key collision for %q: %s and %s", key, t.Field(prev).Name, f.Name)
		}
		index[key] = i
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		path := joinPath(base, key)
		i, ok := index[key]
		if !ok {
			return &fieldError{path: path, err: errors.New("unknown key")}
		}
		if err := setField(structVal.Field(i), m[key], path, set); err != nil {
			return err
		}
	}
	return nil
}

func setField(fv reflect.Value, raw any, path string, set func(string)) error {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return setField(fv.Elem(), raw, path, set)
	}

	if isTextField(fv.Type()) {
		s, ok := raw.(string)
		if !ok {
			return fieldErrorf(path, "expected a string, got %T", raw)
		}
		if err := fv.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return fieldErrorf(path, "%w", err)
		}
		set(path)
		return nil
	}

	switch fv.Kind() {
	case reflect.Struct:
		obj, ok := raw.(map[string]any)
		if !ok {
			return fieldErrorf(path, "expected a table, got %T", raw)
		}
		return applyMap(fv, obj, path, set)
	case reflect.Slice:
		items, ok := raw.([]any)
		if !ok {
			if s, isString := raw.(string); isString {
				items = splitList(s)
			} else {
				return fieldErrorf(path, "expected an array, got %T", raw)
			}
		}
		slice := reflect.MakeSlice(fv.Type(), len(items), len(items))
		for i, item := range items {
			if err := setScalar(slice.Index(i), item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		fv.Set(slice)
	default:
		if err := setScalar(fv, raw, path); err != nil {
			return err
		}
	}
	set(path)
	return nil
}

// splitList splits a comma-separated environment value into list items.
func splitList(s string) []any {
	var out []any
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// setScalar coerces raw to fv's kind: strings parse into numbers and bools, numbers and bools format into strings, and floats truncate toward zero into
// ints.
func setScalar(fv reflect.Value, raw any, path string) error {
	switch fv.Kind() {
	case reflect.String:
		switch v := raw.(type) {
		case string:
			fv.SetString(v)
		case int:
			fv.SetString(strconv.Itoa(v))
		case float64:
			fv.SetString(strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			fv.SetString(strconv.FormatBool(v))
		default:
			return fieldErrorf(path, "cannot coerce %T to string", raw)
		}
	case reflect.Bool:
		switch v := raw.(type) {
		case bool:
			fv.SetBool(v)
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fieldErrorf(path, "cannot parse bool from %q", v)
			}
			fv.SetBool(b)
		default:
			return fieldErrorf(path, "cannot coerce %T to bool", raw)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		switch v := raw.(type) {
		case int:
			n = int64(v)
		case float64:
			n = int64(v)
		case string:
			parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return fieldErrorf(path, "cannot parse int from %q", v)
			}
			n = parsed
		default:
			return fieldErrorf(path, "cannot coerce %T to int", raw)
		}
		if fv.OverflowInt(n) {
			return fieldErrorf(path, "%d overflows %s", n, fv.Type())
		}
		fv.SetInt(n)
	case reflect.Float32, reflect.Float64:
		switch v := raw.(type) {
		case float64:
			fv.SetFloat(v)
		case int:
			fv.SetFloat(float64(v))
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fieldErrorf(path, "cannot parse float from %q", v)
			}
			fv.SetFloat(f)
		default:
			return fieldErrorf(path, "cannot coerce %T to float", raw)
		}
	default:
		return fieldErrorf(path, "unsupported field kind %s", fv.Kind())
	}
	return nil
}
