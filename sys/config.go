package sys

import "github.com/cwbudde/vkfft-go/vk"

// MaxDimensions is the number of axis slots in a configuration.
const MaxDimensions = 4

// Configuration mirrors VkFFTConfiguration. Numeric fields are pfUINT on the C
// side. A nil size pointer tells the engine the caller does not manage that
// buffer.
type Configuration struct {
	FFTDim uint64
	Size   [MaxDimensions]uint64

	PhysicalDevice *vk.PhysicalDevice
	Device         *vk.Device
	Queue          *vk.Queue
	CommandPool    *vk.CommandPool
	Fence          *vk.Fence

	UserTempBuffer uint64

	BufferSize       *uint64
	Buffer           *vk.Buffer
	TempBufferSize   *uint64
	TempBuffer       *vk.Buffer
	InputBufferSize  *uint64
	InputBuffer      *vk.Buffer
	OutputBufferSize *uint64
	OutputBuffer     *vk.Buffer
	KernelSize       *uint64
	Kernel           *vk.Buffer

	Normalize              uint64
	PerformZeropadding     [MaxDimensions]uint64
	ZeropadLeft            [MaxDimensions]uint64
	ZeropadRight           [MaxDimensions]uint64
	PerformConvolution     uint64
	NumberKernels          uint64
	KernelConvolution      uint64
	SymmetricKernel        uint64
	CoordinateFeatures     uint64
	MatrixConvolution      uint64
	PerformR2C             uint64
	PerformDCT             uint64
	PerformDST             uint64
	DisableReorderFourStep uint64
	UseLUT                 uint64

	IsInputFormatted           uint64
	IsOutputFormatted          uint64
	InverseReturnToInputBuffer uint64

	DoublePrecision         uint64
	HalfPrecision           uint64
	HalfPrecisionMemoryOnly uint64

	NumberBatches uint64
}

// LaunchParams mirrors VkFFTLaunchParams for the Vulkan backend.
type LaunchParams struct {
	CommandBuffer *vk.CommandBuffer
	Buffer        *vk.Buffer
	TempBuffer    *vk.Buffer
	InputBuffer   *vk.Buffer
	OutputBuffer  *vk.Buffer
	Kernel        *vk.Buffer
}
