package vkfft

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/vkfft-go/gpu"
)

// rig is a Context over the CPU mock driver and engine.
type rig struct {
	backend *gpu.MockBackend
	engine  *gpu.MockEngine
	pool    *gpu.VulkanCommandPool
	fence   gpu.VulkanFence
	ctx     *Context
}

func newRig(t *testing.T, opts gpu.MockOptions, path SubmitPath) *rig {
	t.Helper()

	b := gpu.NewMockBackend(opts)
	r := &rig{
		backend: b,
		engine:  gpu.NewMockEngine(b),
		pool:    b.NewCommandPool(),
		fence:   b.NewFence(),
	}
	ctx, err := NewContext(ContextOptions{
		PhysicalDevice: b.PhysicalDevice(),
		Device:         b.Device(),
		Queue:          b.Queue(),
		CommandPool:    r.pool,
		Fence:          r.fence,
		Engine:         r.engine,
		SubmitPath:     path,
	})
	require.NoError(t, err)
	r.ctx = ctx
	t.Cleanup(func() { _ = ctx.Close() })
	return r
}

// withDevice fills the device handles of cfg for plans built without the
// Context.
func (r *rig) withDevice(cfg Config) Config {
	cfg.PhysicalDevice = r.backend.PhysicalDevice()
	cfg.Device = r.backend.Device()
	cfg.Queue = r.backend.Queue()
	cfg.CommandPool = r.pool
	cfg.Fence = r.fence
	return cfg
}

// planeWave returns exp(2*pi*i*k*x/n) for x in [0, n) as interleaved float32.
func planeWave(n, k int) []float32 {
	out := make([]float32, 2*n)
	kx := float64(k) * 2 * math.Pi / float64(n)
	for x := range n {
		out[2*x] = float32(math.Cos(kx * float64(x)))
		out[2*x+1] = float32(math.Sin(kx * float64(x)))
	}
	return out
}

func assertApproxFloat32s(t *testing.T, got, want []float32, tol float64) {
	t.Helper()
	require.GreaterOrEqual(t, len(got), len(want))
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > tol {
			t.Fatalf("[%d] got %v, want %v (tol %g)", i, got[i], want[i], tol)
		}
	}
}

// recoverSubmitError runs fn and returns the *SubmitError it panicked with.
func recoverSubmitError(t *testing.T, fn func()) (serr *SubmitError) {
	t.Helper()
	defer func() {
		v := recover()
		require.NotNil(t, v, "expected a panic")
		err, ok := v.(error)
		require.True(t, ok, "panic value %v is not an error", v)
		require.True(t, errors.As(err, &serr), "panic value %v is not a *SubmitError", err)
	}()
	fn()
	return nil
}
