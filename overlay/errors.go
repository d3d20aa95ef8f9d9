package overlay

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrBackendFault is matched by every error caused by a failing surface primitive.
	// It is fatal: the manager stops after reporting it.
	ErrBackendFault = errors.New("[overlay] drawing backend fault")
	// ErrFormattingOverflow is returned when a payload does not fit the text field of its banner.
	// The screen and the live deadlines are left untouched.
	ErrFormattingOverflow = errors.New("[overlay] payload does not fit its text field")
	// ErrStopped is returned once the manager loop has exited
	ErrStopped = errors.New("[overlay] manager is not running")
	// ErrInvalidTimeout is returned by New for a negative deadline
	ErrInvalidTimeout = errors.New("[overlay] deadline must be positive")
)

type backendFault struct {
	op  string
	err error
}

func (f *backendFault) Error() string {
	return fmt.Sprintf("[overlay] backend fault in %s: %v", f.op, f.err)
}

func (f *backendFault) Unwrap() error { return f.err }

func (f *backendFault) Is(target error) bool { return target == ErrBackendFault }

func fault(op string, err error) error {
	if err == nil {
		return nil
	}
	return &backendFault{op: op, err: err}
}

func overflow(format string, args ...interface{}) error {
	return errors.Wrapf(ErrFormattingOverflow, format, args...)
}
