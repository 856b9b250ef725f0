package vkfft

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/vkfft-go/gpu"
	"github.com/cwbudde/vkfft-go/internal/arena"
	"github.com/cwbudde/vkfft-go/sys"
	"github.com/cwbudde/vkfft-go/vk"
)

// configRecord is the address-stable record handed to the engine. The
// pointer fields of native point at the sibling fields below, never at
// caller memory.
type configRecord struct {
	native sys.Configuration

	physicalDevice vk.PhysicalDevice
	device         vk.Device
	queue          vk.Queue
	commandPool    vk.CommandPool
	fence          vk.Fence

	bufferSize       uint64
	tempBufferSize   uint64
	inputBufferSize  uint64
	outputBufferSize uint64
	kernelSize       uint64

	buffer       vk.Buffer
	tempBuffer   vk.Buffer
	inputBuffer  vk.Buffer
	outputBuffer vk.Buffer
	kernel       vk.Buffer
}

// bufferRole is one of the buffer bindings a plan can carry.
type bufferRole uint8

const (
	roleBuffer bufferRole = iota
	roleTempBuffer
	roleInputBuffer
	roleOutputBuffer
	roleKernel
	numRoles
)

var roleNames = [numRoles]string{"buffer", "temp buffer", "input buffer", "output buffer", "kernel"}

func (r bufferRole) String() string { return roleNames[r] }

// configProjection owns a configRecord and the references that keep every
// resource it names alive.
type configProjection struct {
	block     *arena.Block[configRecord]
	keepAlive []gpu.Retainer
	bound     [numRoles]bool
}

// newConfigProjection validates cfg and builds its native record.
func newConfigProjection(cfg *Config) (*configProjection, error) {
	switch {
	case cfg.PhysicalDevice == nil:
		return nil, &MissingFieldError{Field: "physical device"}
	case cfg.Device == nil:
		return nil, &MissingFieldError{Field: "device"}
	case cfg.Queue == nil:
		return nil, &MissingFieldError{Field: "queue"}
	case cfg.Fence == nil:
		return nil, &MissingFieldError{Field: "fence"}
	case cfg.CommandPool == nil:
		return nil, &MissingFieldError{Field: "command pool"}
	}

	if n := len(cfg.Dims); n == 0 || n > 3 {
		return nil, fmt.Errorf("%w: %d dimensions, want 1 to 3", ErrInvalidConfig, n)
	}
	for i, d := range cfg.Dims {
		if d == 0 {
			return nil, fmt.Errorf("%w: dimension %d is zero", ErrInvalidConfig, i)
		}
	}

	inFormatted, inSet := cfg.inputFormatted()
	outFormatted, outSet := cfg.outputFormatted()
	if cfg.Precision == HalfMemory {
		if (inSet && !inFormatted) || (outSet && !outFormatted) {
			return nil, fmt.Errorf("%w: half-memory precision requires formatted input and output", ErrInvalidConfig)
		}
		inFormatted, inSet = true, true
		outFormatted, outSet = true, true
	}

	block, err := arena.New[configRecord]()
	if err != nil {
		return nil, err
	}
	p := &configProjection{block: block}
	rec := block.Value()

	rec.physicalDevice = cfg.PhysicalDevice.Handle()
	rec.device = cfg.Device.Handle()
	rec.queue = cfg.Queue.Handle()
	rec.commandPool = cfg.CommandPool.Handle()
	rec.fence = cfg.Fence.Handle()

	p.hold(cfg.Device)
	p.hold(cfg.Queue)
	p.hold(cfg.CommandPool)

	n := &rec.native
	n.PhysicalDevice = &rec.physicalDevice
	n.Device = &rec.device
	n.Queue = &rec.queue
	n.CommandPool = &rec.commandPool
	n.Fence = &rec.fence

	n.FFTDim = uint64(len(cfg.Dims))
	for i, d := range cfg.Dims {
		n.Size[i] = uint64(d)
	}

	if b := cfg.Buffer; b != nil {
		p.bind(roleBuffer, b, &rec.buffer, &rec.bufferSize, &n.Buffer, &n.BufferSize)
	}
	if b := cfg.TempBuffer; b != nil {
		p.bind(roleTempBuffer, b, &rec.tempBuffer, &rec.tempBufferSize, &n.TempBuffer, &n.TempBufferSize)
		n.UserTempBuffer = 1
	}
	if b := cfg.InputBuffer; b != nil {
		p.bind(roleInputBuffer, b, &rec.inputBuffer, &rec.inputBufferSize, &n.InputBuffer, &n.InputBufferSize)
	}
	if b := cfg.OutputBuffer; b != nil {
		p.bind(roleOutputBuffer, b, &rec.outputBuffer, &rec.outputBufferSize, &n.OutputBuffer, &n.OutputBufferSize)
	}
	if b := cfg.Kernel; b != nil {
		p.bind(roleKernel, b, &rec.kernel, &rec.kernelSize, &n.Kernel, &n.KernelSize)
	}

	n.Normalize = flag(cfg.Normalize)
	for i := range 3 {
		n.PerformZeropadding[i] = flag(cfg.ZeroPadding[i])
		n.ZeropadLeft[i] = uint64(cfg.ZeropadLeft[i])
		n.ZeropadRight[i] = uint64(cfg.ZeropadRight[i])
	}
	n.PerformConvolution = flag(cfg.Convolution)
	if cfg.Convolution {
		n.NumberKernels = 1
	}
	n.KernelConvolution = flag(cfg.KernelConvolution)
	n.SymmetricKernel = flag(cfg.SymmetricKernel)
	n.CoordinateFeatures = uint64(max(cfg.CoordinateFeatures, 1))
	n.MatrixConvolution = uint64(cfg.MatrixConvolution)
	n.PerformR2C = flag(cfg.R2C)
	n.PerformDCT = uint64(cfg.DCT)
	n.PerformDST = uint64(cfg.DST)
	n.DisableReorderFourStep = flag(cfg.DisableReorderFourStep)
	n.UseLUT = flag(cfg.UseLUT)
	n.NumberBatches = uint64(cfg.BatchCount)

	if inSet {
		n.IsInputFormatted = flag(inFormatted)
	}
	if outSet {
		n.IsOutputFormatted = flag(outFormatted)
	}
	n.InverseReturnToInputBuffer = flag(cfg.InverseReturnToInput)

	switch cfg.Precision {
	case Double:
		n.DoublePrecision = 1
	case Half:
		n.HalfPrecision = 1
	case HalfMemory:
		n.HalfPrecisionMemoryOnly = 1
	}

	Logger().Debug("vkfft: configuration projected",
		slog.Any("dims", cfg.Dims),
		slog.String("precision", cfg.Precision.String()),
		slog.Bool("r2c", cfg.R2C),
		slog.Bool("convolution", cfg.Convolution),
		slog.Int("retained", len(p.keepAlive)))

	return p, nil
}

// bind copies the handle and size of b into the record, points the native
// fields at those copies and retains b.
func (p *configProjection) bind(role bufferRole, b gpu.Buffer, handle *vk.Buffer, size *uint64, nativeHandle **vk.Buffer, nativeSize **uint64) {
	*handle = b.Handle()
	*size = b.Size()
	*nativeHandle = handle
	*nativeSize = size
	p.bound[role] = true
	p.hold(b)
}

func (p *configProjection) hold(r gpu.Retainer) {
	r.Retain()
	p.keepAlive = append(p.keepAlive, r)
}

// native returns the configuration to pass to the engine.
func (p *configProjection) native() *sys.Configuration {
	return &p.block.Value().native
}

func (p *configProjection) record() *configRecord {
	return p.block.Value()
}

// binds reports whether the configuration binds role.
func (p *configProjection) binds(role bufferRole) bool {
	return p.bound[role]
}

// release drops every reference and unmaps the record. Only call it once the
// engine no longer holds pointers into the record.
func (p *configProjection) release() error {
	for _, r := range p.keepAlive {
		r.Release()
	}
	p.keepAlive = nil
	return p.block.Free()
}

func flag(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
