// Package cascade loads layered configuration into a Go struct from multiple sources with predictable precedence, and reports where each value came from.
//
// Register sources from lowest to highest priority with the With* methods, then call StrictlyLoad. The zero value of Loader is ready to use; New exists for
// fluent chaining (ex: New().WithDefaults(...).WithTOMLFile(...).WithEnv(...).StrictlyLoad(&cfg)).
//
// Sources
//   - Defaults and other Go maps (WithDefaults, WithValues), whose keys may use dot-notation to denote nesting.
//   - TOML files read at load time. WithTOMLFile registers a specific path; WithNearestTOMLFile searches upward from a directory for the first non-empty file
//     with a given relative name.
//   - Environment variables mapped to keys via WithEnv. Missing or empty variables are ignored; present values are strings.
//
// Keys are case-insensitive and dot-separated for nesting. A field's key is its cascade tag name, else its toml tag name, else its name. Values are coerced to
// the field type when reasonable (ex: "4" to 4 for an int field), and fields whose pointer implements encoding.TextUnmarshaler are set from strings.
//
// StrictlyLoad is strict about content: unknown keys, unparsable files and values that cannot be coerced are errors naming the source. Missing, unreadable
// and empty files are skipped.
//
// Example
//
//	type Config struct {
//	    Policy  string `toml:"policy"`
//	    Context int    `toml:"context"`
//	}
//
//	var cfg Config
//	prov, err := New().
//	    WithDefaults(map[string]any{"policy": "default"}).
//	    WithNearestTOMLFile(".app.toml", "").
//	    WithEnv(map[string]string{"policy": "APP_POLICY"}, nil).
//	    StrictlyLoad(&cfg)
package cascade
