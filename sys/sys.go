// Package sys mirrors the slice of the VkFFT C ABI used by vkfft.
//
// Configuration and LaunchParams carry the same information as
// VkFFTConfiguration and VkFFTLaunchParams. Their pointer fields are typed Go
// pointers that must reference memory the Go collector does not manage, since
// the engine keeps the configuration pointers for the lifetime of an
// application. The root package allocates both records in such memory.
//
// The real engine is compiled in with the vkfft build tag (and cgo). Without
// it DefaultEngine reports ErrEngineUnavailable and callers supply their own
// Engine, typically gpu.MockEngine in tests.
package sys

import "errors"

// ErrEngineUnavailable is returned by DefaultEngine when the module was built
// without the vkfft build tag.
var ErrEngineUnavailable = errors.New("sys: VkFFT engine not compiled in (build with -tags vkfft)")

var errMallocFailed = errors.New("sys: " + MallocFailed.String())

// Direction is the inverse flag of VkFFTAppend.
type Direction int32

const (
	Forward Direction = -1
	Inverse Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Inverse:
		return "inverse"
	default:
		return "direction(?)"
	}
}

// Engine creates applications and reports the engine version.
type Engine interface {
	NewApplication() (Application, error)
	Version() int
}

// Application is one VkFFTApplication. It starts zeroed; Initialize reads the
// configuration once and may keep pointers derived from it until Delete.
type Application interface {
	Initialize(cfg *Configuration) Result
	Append(dir Direction, params *LaunchParams) Result
	Delete()
}
