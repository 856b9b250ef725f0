package gpu

import "errors"

var (
	// ErrReleased is returned when a resource is used after its last reference
	// was dropped.
	ErrReleased = errors.New("vkfft/gpu: resource released")

	// ErrNullHandle is returned when a wrapper is built from VK_NULL_HANDLE.
	ErrNullHandle = errors.New("vkfft/gpu: null handle")

	// ErrUnknownHandle is returned by the mock backend for handles it did not
	// create.
	ErrUnknownHandle = errors.New("vkfft/gpu: unknown handle")

	// ErrLengthMismatch is returned when host data does not fit a buffer.
	ErrLengthMismatch = errors.New("vkfft/gpu: length mismatch")

	// ErrNotRecording is returned when work is recorded into a command buffer
	// that is not between begin and end.
	ErrNotRecording = errors.New("vkfft/gpu: command buffer not recording")
)
