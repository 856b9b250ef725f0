package gpu

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/vkfft-go/sys"
	"github.com/cwbudde/vkfft-go/vk"
)

// engineRig holds the handles a mock configuration points at.
type engineRig struct {
	backend *MockBackend
	engine  *MockEngine
	pool    *VulkanCommandPool

	physical vk.PhysicalDevice
	device   vk.Device
	queue    vk.Queue
	cmdPool  vk.CommandPool
	fence    vk.Fence
}

func newEngineRig() *engineRig {
	b := NewMockBackend(MockOptions{})
	pool := b.NewCommandPool()
	return &engineRig{
		backend:  b,
		engine:   NewMockEngine(b),
		pool:     pool,
		physical: b.PhysicalDevice().Handle(),
		device:   b.Device().Handle(),
		queue:    b.Queue().Handle(),
		cmdPool:  pool.Handle(),
		fence:    b.NewFence().Handle(),
	}
}

// config returns a one-dimensional configuration over buf.
func (r *engineRig) config(n uint64, buf *MockBuffer) *sys.Configuration {
	handle := buf.Handle()
	size := buf.Size()
	return &sys.Configuration{
		FFTDim:         1,
		Size:           [sys.MaxDimensions]uint64{n},
		PhysicalDevice: &r.physical,
		Device:         &r.device,
		Queue:          &r.queue,
		CommandPool:    &r.cmdPool,
		Fence:          &r.fence,
		Buffer:         &handle,
		BufferSize:     &size,
	}
}

// run appends one transform of app and submits it.
func (r *engineRig) run(t *testing.T, app sys.Application, dir sys.Direction) {
	t.Helper()

	cb := beginCommandBuffer(t, r.backend, r.pool, vk.CommandBufferUsageOneTimeSubmit)
	require.Equal(t, sys.Success, app.Append(dir, &sys.LaunchParams{CommandBuffer: &cb}))
	require.Equal(t, vk.Success, r.backend.EndCommandBuffer(cb))
	require.Equal(t, vk.Success, submitLegacy(r.backend, cb, vk.NullHandle))
	r.backend.FreeCommandBuffers(r.device, r.cmdPool, 1, &cb)
}

func directDFT(in []complex128) []complex128 {
	n := len(in)
	out := make([]complex128, n)
	for k := range n {
		var sum complex128
		for j, v := range in {
			sum += v * cmplx.Rect(1, -2*math.Pi*float64(j*k)/float64(n))
		}
		out[k] = sum
	}
	return out
}

func assertApproxComplex(t *testing.T, got, want []complex128, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if cmplx.Abs(got[i]-want[i]) > tol {
			t.Fatalf("[%d] got %v, want %v (tol %g)", i, got[i], want[i], tol)
		}
	}
}

func complexes(f []float64) []complex128 {
	out := make([]complex128, len(f)/2)
	for i := range out {
		out[i] = complex(f[2*i], f[2*i+1])
	}
	return out
}

func TestMockEngineMatchesDirectDFT(t *testing.T) {
	t.Parallel()

	r := newEngineRig()
	in := []complex128{1, 2 - 1i, 0.5i, -3, 4 + 4i, 0, -1 - 2i, 0.25}
	buf := r.backend.NewBuffer(vk.DeviceSize(16 * len(in)))
	require.NoError(t, buf.Upload(in))

	cfg := r.config(uint64(len(in)), buf)
	cfg.DoublePrecision = 1

	app, err := r.engine.NewApplication()
	require.NoError(t, err)
	require.Equal(t, sys.Success, app.Initialize(cfg))

	r.run(t, app, sys.Forward)
	assertApproxComplex(t, complexes(buf.Float64s()), directDFT(in), 1e-12)

	cfg.Normalize = 1
	norm, err := r.engine.NewApplication()
	require.NoError(t, err)
	require.Equal(t, sys.Success, norm.Initialize(cfg))
	r.run(t, norm, sys.Inverse)
	assertApproxComplex(t, complexes(buf.Float64s()), in, 1e-12)

	app.Delete()
	norm.Delete()
	st := r.engine.Stats()
	assert.Equal(t, 2, st.Applications)
	assert.Equal(t, 2, st.Initialized)
	assert.Equal(t, 2, st.Appends)
	assert.Equal(t, 2, st.Deletes)
}

func TestMockEngineTwoDimensional(t *testing.T) {
	t.Parallel()

	r := newEngineRig()
	const nx, ny = 4, 3
	in := make([]complex128, nx*ny)
	for i := range in {
		in[i] = complex(float64(i), float64(i%3))
	}
	buf := r.backend.NewBuffer(vk.DeviceSize(16 * len(in)))
	require.NoError(t, buf.Upload(in))

	cfg := r.config(nx, buf)
	cfg.FFTDim = 2
	cfg.Size[1] = ny
	cfg.DoublePrecision = 1

	app, err := r.engine.NewApplication()
	require.NoError(t, err)
	require.Equal(t, sys.Success, app.Initialize(cfg))
	r.run(t, app, sys.Forward)

	// Separable reference: rows, then columns.
	want := make([]complex128, len(in))
	for y := range ny {
		copy(want[y*nx:], directDFT(in[y*nx:(y+1)*nx]))
	}
	for x := range nx {
		col := make([]complex128, ny)
		for y := range ny {
			col[y] = want[y*nx+x]
		}
		for y, v := range directDFT(col) {
			want[y*nx+x] = v
		}
	}
	assertApproxComplex(t, complexes(buf.Float64s()), want, 1e-10)
}

func TestMockEngineRejectsConfigurations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*sys.Configuration)
		want   sys.Result
	}{
		{"physical device", func(c *sys.Configuration) { c.PhysicalDevice = nil }, sys.ErrorInvalidPhysicalDevice},
		{"device", func(c *sys.Configuration) { c.Device = nil }, sys.ErrorInvalidDevice},
		{"queue", func(c *sys.Configuration) { c.Queue = nil }, sys.ErrorInvalidQueue},
		{"command pool", func(c *sys.Configuration) { c.CommandPool = nil }, sys.ErrorInvalidCommandPool},
		{"fence", func(c *sys.Configuration) { c.Fence = nil }, sys.ErrorInvalidFence},
		{"no dimensions", func(c *sys.Configuration) { c.FFTDim = 0 }, sys.ErrorEmptyFFTDim},
		{"zero size", func(c *sys.Configuration) { c.Size[0] = 0 }, sys.ErrorEmptySize},
		{"odd r2c", func(c *sys.Configuration) { c.PerformR2C = 1; c.Size[0] = 7 }, sys.ErrorUnsupportedR2COmit},
		{"half", func(c *sys.Configuration) { c.HalfPrecision = 1 }, sys.ErrorUnsupportedFFTLength},
		{"dct", func(c *sys.Configuration) { c.PerformDCT = 2 }, sys.ErrorUnsupportedDCT},
		{"no buffer size", func(c *sys.Configuration) { c.BufferSize = nil }, sys.ErrorEmptyBufferSize},
		{"temp buffer size", func(c *sys.Configuration) { c.UserTempBuffer = 1 }, sys.ErrorEmptyTempBufferSize},
		{"input buffer size", func(c *sys.Configuration) { c.IsInputFormatted = 1 }, sys.ErrorEmptyInputBufferSize},
		{"output buffer size", func(c *sys.Configuration) { c.IsOutputFormatted = 1 }, sys.ErrorEmptyOutputBufferSize},
		{"kernel size", func(c *sys.Configuration) { c.PerformConvolution = 1 }, sys.ErrorEmptyKernelSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := newEngineRig()
			cfg := r.config(8, r.backend.NewBuffer(64))
			tc.mutate(cfg)

			app, err := r.engine.NewApplication()
			require.NoError(t, err)
			assert.Equal(t, tc.want, app.Initialize(cfg))
			assert.Equal(t, 0, r.engine.Stats().Initialized)
		})
	}
}

func TestMockEngineInjectedFailures(t *testing.T) {
	t.Parallel()

	r := newEngineRig()
	cfg := r.config(8, r.backend.NewBuffer(64))

	r.engine.FailInitialize(sys.ErrorFailedToAllocate)
	app, err := r.engine.NewApplication()
	require.NoError(t, err)
	assert.Equal(t, sys.ErrorFailedToAllocate, app.Initialize(cfg))

	r.engine.FailInitialize(sys.Success)
	require.Equal(t, sys.Success, app.Initialize(cfg))

	r.engine.FailAppend(sys.ErrorFailedToSubmitQueue)
	cb := beginCommandBuffer(t, r.backend, r.pool, 0)
	assert.Equal(t, sys.ErrorFailedToSubmitQueue, app.Append(sys.Forward, &sys.LaunchParams{CommandBuffer: &cb}))
	assert.Equal(t, 0, r.engine.Stats().Appends)
}

func TestMockEngineAppendChecks(t *testing.T) {
	t.Parallel()

	r := newEngineRig()
	buf := r.backend.NewBuffer(64)
	app, err := r.engine.NewApplication()
	require.NoError(t, err)

	cb := beginCommandBuffer(t, r.backend, r.pool, 0)
	params := &sys.LaunchParams{CommandBuffer: &cb}
	assert.Equal(t, sys.ErrorEmptyApplication, app.Append(sys.Forward, params), "append before initialize")

	require.Equal(t, sys.Success, app.Initialize(r.config(8, buf)))
	assert.Equal(t, sys.ErrorEmptyLaunchParams, app.Append(sys.Forward, nil))
	assert.Equal(t, sys.ErrorEmptyLaunchParams, app.Append(sys.Forward, &sys.LaunchParams{}))

	require.Equal(t, vk.Success, r.backend.EndCommandBuffer(cb))
	assert.Equal(t, sys.ErrorFailedToBeginCommandBuffer, app.Append(sys.Forward, params), "command buffer not recording")

	small := r.backend.NewBuffer(16)
	cb2 := beginCommandBuffer(t, r.backend, r.pool, 0)
	override := small.Handle()
	assert.Equal(t, sys.ErrorEmptyBufferSize,
		app.Append(sys.Forward, &sys.LaunchParams{CommandBuffer: &cb2, Buffer: &override}))

	app.Delete()
	app.Delete()
	assert.Equal(t, 1, r.engine.Stats().Deletes)
	assert.Equal(t, sys.ErrorEmptyApplication, app.Append(sys.Forward, &sys.LaunchParams{CommandBuffer: &cb2}))
}
