package lyra2

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

const (
	// ErrInvalidArgument indicates a zero output length, a zero row or
	// column count, or an unknown version.
	ErrInvalidArgument = ErrorKind("ErrInvalidArgument")

	// ErrMatrixTooLarge indicates the requested memory matrix cannot be
	// addressed on this platform.
	ErrMatrixTooLarge = ErrorKind("ErrMatrixTooLarge")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a failed Lyra2 call.  It has full support for errors.Is
// and errors.As through Unwrap.
type Error struct {
	Description string
	Err         error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
