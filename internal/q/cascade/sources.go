package cascade

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// source supplies key/value data to a Loader.
type source interface {
	// name labels the source in error messages about key ("" if the error is not about a key).
	name(key string) string

	// values returns a normalized map: keys are lower case without "." (dotted keys become nested maps), nested objects are map[string]any, and leaves
	// are int, float64, bool, string or []any of those. A missing file returns an error wrapping fs.ErrNotExist.
	values() (map[string]any, error)

	// provenance describes the origin of the value at the normalized dotted path key.
	provenance(key string) Provenance
}

// sourceMap adapts a Go map. Keys may use dot-notation to create nested objects.
type sourceMap struct {
	typ  string            // provenance type, ex: "default"
	ids  map[string]string // optional per-key provenance identifiers, by normalized key
	m    map[string]any
	desc string
}

// sourceTOMLFile is a TOML file read at load time. Empty or whitespace-only files contribute no values.
type sourceTOMLFile struct {
	path string // expanded with ExpandPath when read
}

// sourceEnv maps keys ("." allowed for nesting) to environment variables read through lookup.
type sourceEnv struct {
	keyToEnv map[string]string
	lookup   func(string) (string, bool)
}

func (s *sourceMap) name(string) string { return s.desc }

func (s *sourceMap) values() (map[string]any, error) {
	out := map[string]any{}
	for k, v := range s.m {
		nv, err := normalizeValue(v)
		if err != nil {
			return nil, fmt.Errorf("key '%s': %w", k, err)
		}
		if err := mergeIntoObject(out, strings.Split(k, "."), nv, k); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *sourceMap) provenance(key string) Provenance {
	return Provenance{SourceType: s.typ, SourceIdentifier: s.ids[key]}
}

func (s *sourceTOMLFile) name(string) string { return "TOML file " + ExpandPath(s.path) }

func (s *sourceTOMLFile) values() (map[string]any, error) {
	data, err := os.ReadFile(ExpandPath(s.path))
	if err != nil {
		return nil, fmt.Errorf("read toml file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	out := map[string]any{}
	for k, v := range raw {
		nv, err := normalizeValue(v)
		if err != nil {
			return nil, fmt.Errorf("key '%s': %w", k, err)
		}
		if err := mergeIntoObject(out, []string{k}, nv, k); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *sourceTOMLFile) provenance(string) Provenance {
	return Provenance{SourceType: "toml_file", SourceIdentifier: ExpandPath(s.path)}
}

func (s *sourceEnv) name(key string) string {
	if id := s.provenance(key).SourceIdentifier; id != "" {
		return "ENV " + id
	}
	return "ENV"
}

// values skips missing and empty variables: an exported-but-empty variable should not override a file.
func (s *sourceEnv) values() (map[string]any, error) {
	out := map[string]any{}
	for key, envVar := range s.keyToEnv {
		if envVar == "" {
			continue
		}
		val, ok := s.lookup(envVar)
		if !ok || val == "" {
			continue
		}
		if err := mergeIntoObject(out, strings.Split(key, "."), val, key); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *sourceEnv) provenance(key string) Provenance {
	for k, envVar := range s.keyToEnv {
		if strings.ToLower(k) == key {
			return Provenance{SourceType: "env", SourceIdentifier: envVar}
		}
	}
	return Provenance{SourceType: "env"}
}

// mergeIntoObject inserts value into obj along parts, lowercasing each segment. A map value at the leaf is deep-merged. fullKey annotates errors.
func mergeIntoObject(obj map[string]any, parts []string, value any, fullKey string) error {
	part := strings.ToLower(parts[0])
	if part == "" {
		return fmt.Errorf("invalid key '%s'", fullKey)
	}
	existing, exists := obj[part]

	if len(parts) > 1 {
		if !exists {
			child := map[string]any{}
			obj[part] = child
			return mergeIntoObject(child, parts[1:], value, fullKey)
		}
		if m, ok := existing.(map[string]any); ok {
			return mergeIntoObject(m, parts[1:], value, fullKey)
		}
		return fmt.Errorf("key conflict at '%s': '%s' is not an object", fullKey, part)
	}

	if mv, ok := value.(map[string]any); ok {
		dest, isMap := existing.(map[string]any)
		if exists && !isMap {
			return fmt.Errorf("key conflict: key '%s' was already set", fullKey)
		}
		if !exists {
			dest = map[string]any{}
			obj[part] = dest
		}
		for k, v := range mv {
			if err := mergeIntoObject(dest, strings.Split(k, "."), v, fullKey+"."+k); err != nil {
				return err
			}
		}
		return nil
	}
	if exists {
		return fmt.Errorf("key conflict: key '%s' was already set", fullKey)
	}
	obj[part] = value
	return nil
}

// normalizeValue converts Go and TOML-decoded values (int64 integers, []any or typed arrays, nested tables) into the normalized forms described on source.
func normalizeValue(v any) (any, error) {
	switch vv := v.(type) {
	case nil, bool, string, float64, int:
		return vv, nil
	case int64:
		return int(vv), nil
	case int32:
		return int(vv), nil
	case float32:
		return float64(vv), nil
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			ne, err := normalizeValue(e)
			if err != nil {
				return nil, fmt.Errorf("key '%s': %w", k, err)
			}
			out[k] = ne
		}
		return out, nil
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			ne, err := normalizeValue(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			if _, isMap := ne.(map[string]any); isMap {
				return nil, fmt.Errorf("index %d: arrays of tables are not supported", i)
			}
			out[i] = ne
		}
		return out, nil
	case []string:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = e
		}
		return out, nil
	case []int:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = e
		}
		return out, nil
	default:
		return nil, fmt.Errorf("type %T is not allowed", v)
	}
}
