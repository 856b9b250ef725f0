package vkfft

import "github.com/cwbudde/vkfft-go/gpu"

// Config describes one transform. The zero value is a single precision
// complex transform with no dimensions; Dims and the device handles must be
// filled in. When a plan is built through a Context, the Context supplies
// the device handles.
//
// At most one of R2C, DCT and DST should be set. This is not checked here;
// the engine rejects unsupported combinations when the plan is initialized.
type Config struct {
	// Dims holds one to three positive extents, x first.
	Dims []uint32

	// BatchCount is the number of batched systems; 0 leaves the engine
	// default of one.
	BatchCount uint32

	Precision Precision

	// Normalize scales the inverse transform by 1/N.
	Normalize bool

	// R2C selects the real-to-complex transform.
	R2C bool

	// DCT and DST select a discrete cosine or sine transform of type 1 to 4.
	// Zero disables them.
	DCT uint32
	DST uint32

	// KernelConvolution marks a plan that prepares a convolution kernel.
	KernelConvolution bool

	// Convolution multiplies by Kernel in the frequency domain. The plan is
	// configured with a single kernel.
	Convolution     bool
	SymmetricKernel bool

	// CoordinateFeatures is the feature vector length; 0 means 1.
	CoordinateFeatures uint32

	// MatrixConvolution is the leading dimension of a matrix convolution;
	// 0 leaves it unset.
	MatrixConvolution uint32

	DisableReorderFourStep bool

	// UseLUT makes the engine use precomputed twiddle tables.
	UseLUT bool

	ZeroPadding  [3]bool
	ZeropadLeft  [3]uint32
	ZeropadRight [3]uint32

	// InputFormatted and OutputFormatted declare that the input and output
	// buffers hold unpadded data. Nil leaves the engine default.
	InputFormatted  *bool
	OutputFormatted *bool

	// InverseReturnToInput writes the inverse result to InputBuffer.
	InverseReturnToInput bool

	Buffer       gpu.Buffer
	TempBuffer   gpu.Buffer
	InputBuffer  gpu.Buffer
	OutputBuffer gpu.Buffer
	Kernel       gpu.Buffer

	PhysicalDevice gpu.PhysicalDevice
	Device         gpu.Device
	Queue          gpu.Queue
	CommandPool    gpu.CommandPool
	Fence          gpu.Fence
}

// inputFormatted reports the explicit value of InputFormatted, if any.
func (c *Config) inputFormatted() (value, set bool) {
	if c.InputFormatted == nil {
		return false, false
	}
	return *c.InputFormatted, true
}

func (c *Config) outputFormatted() (value, set bool) {
	if c.OutputFormatted == nil {
		return false, false
	}
	return *c.OutputFormatted, true
}
