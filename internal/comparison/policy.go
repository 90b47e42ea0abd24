package comparison

import (
	"errors"
	"fmt"
	"strings"
)

// Policy controls how whitespace takes part in a comparison.
type Policy int

const (
	PolicyDefault           Policy = iota // compare exactly
	PolicyTrimWhitespaces                 // ignore leading and trailing whitespace of each line
	PolicyIgnoreWhitespaces               // ignore all whitespace
)

// ErrInvalidInput is wrapped by errors caused by malformed arguments (ex: a line index that does not match its text, or unsorted fragments).
var ErrInvalidInput = errors.New("invalid input")

func (p Policy) String() string {
	switch p {
	case PolicyDefault:
		return "default"
	case PolicyTrimWhitespaces:
		return "trim"
	case PolicyIgnoreWhitespaces:
		return "ignore"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses the String form of a Policy. It also accepts "trim-whitespaces" and "ignore-whitespaces".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return PolicyDefault, nil
	case "trim", "trim-whitespaces":
		return PolicyTrimWhitespaces, nil
	case "ignore", "ignore-whitespaces":
		return PolicyIgnoreWhitespaces, nil
	}
	return PolicyDefault, fmt.Errorf("%w: unknown policy %q", ErrInvalidInput, s)
}
