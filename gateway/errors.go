package gateway

import (
	"errors"
	"fmt"

	"github.com/jacentio/quill/blog"
)

var (
	// ErrInvalidArgument is returned when a request's arguments or selection
	// are malformed.
	ErrInvalidArgument = errors.New("quill: invalid argument")

	// ErrUnknownOperation is returned when a request names no known operation.
	ErrUnknownOperation = errors.New("quill: unknown operation")
)

// Error kinds added by the gateway to those of [blog.Kind].
const (
	KindInvalidArgument  = "InvalidArgument"
	KindUnknownOperation = "UnknownOperation"
)

// Kind returns the kind reported for err.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrUnknownOperation):
		return KindUnknownOperation
	default:
		return blog.Kind(err)
	}
}

func unknownOperation(op string) error {
	return fmt.Errorf("%w: %q", ErrUnknownOperation, op)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
