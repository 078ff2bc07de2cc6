package studypal

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrIdleTimeout indicates the transport delivered nothing within the
	// configured idle timeout.
	ErrIdleTimeout = errors.New("stream idle timeout")

	// ErrInvalidImage indicates an image source is neither a base64 data URI
	// nor an http(s) URL.
	ErrInvalidImage = errors.New("invalid image format")
)

// BackendError is an error the backend reported inside a stream. Its
// message is shown to the user verbatim.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string { return e.Message }
