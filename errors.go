package vkfft

import (
	"errors"
	"fmt"

	"github.com/cwbudde/vkfft-go/sys"
	"github.com/cwbudde/vkfft-go/vk"
)

// Sentinel errors returned by plan construction and submission.
var (
	// ErrMissingField is matched by *MissingFieldError.
	ErrMissingField = errors.New("vkfft: missing mandatory field")

	// ErrInvalidConfig is returned for descriptions the projection cannot
	// express, such as half-memory precision with unformatted I/O or an
	// invalid dimension list.
	ErrInvalidConfig = errors.New("vkfft: invalid configuration")

	// ErrNoCommandStream is returned when launch parameters carry no command
	// buffer.
	ErrNoCommandStream = errors.New("vkfft: no command stream")

	// Role conflicts: the configuration already binds the role, so the
	// launch parameters may not override it.
	ErrConfigSpecifiesBuffer       = errors.New("vkfft: buffer already specified by configuration")
	ErrConfigSpecifiesTempBuffer   = errors.New("vkfft: temp buffer already specified by configuration")
	ErrConfigSpecifiesInputBuffer  = errors.New("vkfft: input buffer already specified by configuration")
	ErrConfigSpecifiesOutputBuffer = errors.New("vkfft: output buffer already specified by configuration")

	// ErrEngine is matched by *EngineError.
	ErrEngine = errors.New("vkfft: engine error")

	// ErrAppClosed is returned when a closed App is invoked.
	ErrAppClosed = errors.New("vkfft: app closed")

	// ErrStreamClosed is returned when a command stream is used after it was
	// submitted or closed.
	ErrStreamClosed = errors.New("vkfft: command stream closed")

	// ErrStreamMismatch is returned when launch parameters name a command
	// buffer other than the stream being chained onto.
	ErrStreamMismatch = errors.New("vkfft: launch parameters record into another command stream")

	// ErrContextClosed is returned by a closed Context.
	ErrContextClosed = errors.New("vkfft: context closed")
)

// MissingFieldError names a mandatory resource absent from a description.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "vkfft: missing mandatory field: " + e.Field
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// EngineError carries a non-success code from the engine. Codes are not
// interpreted beyond their name.
type EngineError struct {
	Op   string
	Code sys.Result
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("vkfft: %s: %s (%d)", e.Op, e.Code, int32(e.Code))
}

func (e *EngineError) Is(target error) bool {
	return target == ErrEngine
}

// SubmitError is the panic value raised when the queue rejects a submission.
// The queue state after a failed submission is undefined, so it is never
// returned as an error.
type SubmitError struct {
	Path   SubmitPath
	Result vk.Result
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("vkfft: queue submission via %s failed: %s", e.Path, e.Result)
}

func (e *SubmitError) Unwrap() error {
	return e.Result.Err()
}
