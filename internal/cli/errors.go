package cli

import (
	"errors"

	qcli "github.com/codalotl/textcompare/internal/q/cli"
)

// ErrDifferent is returned by `equal` when the texts differ.
var ErrDifferent = errors.New("texts differ")

// usage marks err as a usage error (exit 2). It returns nil if err is nil.
func usage(err error) error {
	if err == nil {
		return nil
	}
	return qcli.UsageError{Message: err.Error()}
}
