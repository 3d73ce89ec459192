package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/sundial/internal/logger"
)

// Kind classifies a failure so callers can decide whether it is fatal.
// Kinds are comparable and match with errors.Is.
type Kind string

func (k Kind) Error() string {
	return string(k)
}

const (
	// ErrConfig marks an unreadable or malformed configuration file.
	ErrConfig Kind = "config error"
	// ErrFetch marks a failure retrieving sunrise and sunset times.
	ErrFetch Kind = "fetch error"
	// ErrCache marks an I/O or decoding failure in the sun-times cache.
	ErrCache Kind = "cache error"
)

// Wrap tags err with kind. The result matches both kind and err with errors.Is.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// Wrapf tags a formatted message with kind.
func Wrapf(kind Kind, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Run failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
