package retrieval

import (
	"errors"
	"fmt"
)

// DownloadError is the terminal failure for one source after its retry budget
// is spent, or after a permanent failure such as failed validation.
type DownloadError struct {
	Location string
	Attempts int
	Cause    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed for %s after %d attempt(s): %v", e.Location, e.Attempts, e.Cause)
}

func (e *DownloadError) Unwrap() error {
	return e.Cause
}

var (
	// ErrBadSignature means the content did not start with an accepted signature.
	ErrBadSignature = errors.New("content signature not accepted")
	// ErrTooLarge means the content exceeded the size ceiling.
	ErrTooLarge = errors.New("content exceeds size limit")
	// ErrInvalidLocation means the location is not a usable http(s) URL.
	ErrInvalidLocation = errors.New("invalid location")
)

// permanentError marks failures that retrying cannot fix.
type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

func permanent(err error) error { return &permanentError{err: err} }

func isPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP status %d", e.StatusCode)
}
