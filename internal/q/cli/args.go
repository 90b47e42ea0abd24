package cli

import "fmt"

// NoArgs accepts no positional args.
func NoArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	return Usagef("expected no arguments, got %d", len(args))
}

// ExactArgs accepts exactly n positional args.
func ExactArgs(n int) ArgsFunc {
	return func(args []string) error {
		if len(args) == n {
			return nil
		}
		return Usagef("expected %s, got %d", pluralArgs(n), len(args))
	}
}

// MinimumArgs accepts n or more positional args.
func MinimumArgs(n int) ArgsFunc {
	return func(args []string) error {
		if len(args) >= n {
			return nil
		}
		return Usagef("expected at least %s, got %d", pluralArgs(n), len(args))
	}
}

// All runs checks in order and returns the first error.
func All(checks ...ArgsFunc) ArgsFunc {
	return func(args []string) error {
		for _, check := range checks {
			if err := check(args); err != nil {
				return err
			}
		}
		return nil
	}
}

func pluralArgs(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", n)
}
