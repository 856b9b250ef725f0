package vkfft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/vkfft-go/gpu"
	"github.com/cwbudde/vkfft-go/sys"
)

func TestAppRequiresCommandStream(t *testing.T) {
	t.Parallel()

	r := newRig(t, gpu.MockOptions{}, SubmitPathAuto)
	app, err := NewApp(r.engine, r.withDevice(Config{Dims: []uint32{8}, Buffer: r.backend.NewBuffer(64)}))
	require.NoError(t, err)
	defer app.Close()

	assert.ErrorIs(t, app.Forward(nil), ErrNoCommandStream)
	assert.ErrorIs(t, app.Inverse(&LaunchParams{}), ErrNoCommandStream)
	assert.Equal(t, 0, r.engine.Stats().Appends)
}

func TestAppRejectsRoleConflicts(t *testing.T) {
	t.Parallel()

	r := newRig(t, gpu.MockOptions{}, SubmitPathAuto)
	cfg := Config{
		Dims:         []uint32{8},
		Buffer:       r.backend.NewBuffer(64),
		TempBuffer:   r.backend.NewBuffer(64),
		InputBuffer:  r.backend.NewBuffer(64),
		OutputBuffer: r.backend.NewBuffer(64),
	}
	app, params, stream, err := r.ctx.StartFFTChain(cfg, Forward)
	require.NoError(t, err)
	defer stream.Close()
	defer app.Close()
	appends := r.engine.Stats().Appends

	other := r.backend.NewBuffer(64)
	cb := params.CommandBuffer
	tests := []struct {
		params LaunchParams
		want   error
	}{
		{LaunchParams{CommandBuffer: cb, Buffer: other}, ErrConfigSpecifiesBuffer},
		{LaunchParams{CommandBuffer: cb, TempBuffer: other}, ErrConfigSpecifiesTempBuffer},
		{LaunchParams{CommandBuffer: cb, InputBuffer: other}, ErrConfigSpecifiesInputBuffer},
		{LaunchParams{CommandBuffer: cb, OutputBuffer: other}, ErrConfigSpecifiesOutputBuffer},
		{LaunchParams{CommandBuffer: cb, Buffer: other, OutputBuffer: other}, ErrConfigSpecifiesBuffer},
	}
	for _, tc := range tests {
		assert.ErrorIs(t, app.Forward(&tc.params), tc.want)
	}
	assert.Equal(t, appends, r.engine.Stats().Appends, "conflicting launches must not reach the engine")
	assert.Equal(t, int64(1), other.Count(), "rejected launches must not retain buffers")
}

func TestAppKernelMayBeRebound(t *testing.T) {
	t.Parallel()

	r := newRig(t, gpu.MockOptions{}, SubmitPathAuto)
	cfg := Config{
		Dims:   []uint32{8},
		Buffer: r.backend.NewBuffer(64),
		Kernel: r.backend.NewBuffer(64),
	}
	app, params, stream, err := r.ctx.StartFFTChain(cfg, Forward)
	require.NoError(t, err)
	defer app.Close()

	other := r.backend.NewBuffer(64)
	require.NoError(t, app.Forward(&LaunchParams{CommandBuffer: params.CommandBuffer, Kernel: other}))
	assert.Equal(t, 2, r.engine.Stats().Appends)
	require.NoError(t, r.ctx.Submit(stream))
}

func TestAppInitializeFailureReleasesEverything(t *testing.T) {
	t.Parallel()

	r := newRig(t, gpu.MockOptions{}, SubmitPathAuto)
	buf := r.backend.NewBuffer(64)
	r.engine.FailInitialize(sys.ErrorFailedToAllocate)

	_, err := NewApp(r.engine, r.withDevice(Config{Dims: []uint32{8}, Buffer: buf}))
	require.ErrorIs(t, err, ErrEngine)
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "initialize", ee.Op)
	assert.Equal(t, sys.ErrorFailedToAllocate, ee.Code)

	st := r.engine.Stats()
	assert.Equal(t, 1, st.Applications)
	assert.Equal(t, 1, st.Deletes)
	assert.Equal(t, int64(1), buf.Count())
	assert.Equal(t, int64(2), r.backend.Device().Count())
	assert.Equal(t, int64(2), r.pool.Count())
}

func TestAppEngineRejectsConfiguration(t *testing.T) {
	t.Parallel()

	r := newRig(t, gpu.MockOptions{}, SubmitPathAuto)
	_, err := NewApp(r.engine, r.withDevice(Config{Dims: []uint32{7}, R2C: true, Buffer: r.backend.NewBuffer(64)}))

	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, sys.ErrorUnsupportedR2COmit, ee.Code)
	assert.Contains(t, err.Error(), "VKFFT_ERROR_UNSUPPORTED_FFT_LENGTH_R2C")
}

func TestAppAppendFailure(t *testing.T) {
	t.Parallel()

	r := newRig(t, gpu.MockOptions{}, SubmitPathAuto)
	r.engine.FailAppend(sys.ErrorFailedToSubmitQueue)

	err := r.ctx.SingleFFT(Config{Dims: []uint32{8}, Buffer: r.backend.NewBuffer(64)}, Forward)
	var ee *EngineError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "append", ee.Op)
	assert.Equal(t, 0, r.backend.Stats().Submits)
	assert.Equal(t, 1, r.engine.Stats().Deletes)
	assert.Equal(t, 0, r.backend.LiveCommandBuffers())
}

func TestAppClose(t *testing.T) {
	t.Parallel()

	r := newRig(t, gpu.MockOptions{}, SubmitPathAuto)
	buf := r.backend.NewBuffer(64)
	app, err := NewApp(r.engine, r.withDevice(Config{Dims: []uint32{8}, Buffer: buf}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), buf.Count())

	require.NoError(t, app.Close())
	require.NoError(t, app.Close())
	assert.Equal(t, 1, r.engine.Stats().Deletes)
	assert.Equal(t, int64(1), buf.Count())

	assert.ErrorIs(t, app.Forward(&LaunchParams{CommandBuffer: 1}), ErrAppClosed)
}

func TestAppReusesLaunchRecord(t *testing.T) {
	t.Parallel()

	r := newRig(t, gpu.MockOptions{}, SubmitPathAuto)
	data := r.backend.NewFloat32Buffer(planeWave(8, 1))
	app, params, stream, err := r.ctx.StartFFTChain(Config{Dims: []uint32{8}, Buffer: data}, Forward)
	require.NoError(t, err)
	defer app.Close()

	native := app.state.launch.native()
	for range 4 {
		require.NoError(t, r.ctx.ChainFFTWithApp(app, params, stream, Inverse))
		assert.Same(t, native, app.state.launch.native())
	}
	require.NoError(t, r.ctx.Submit(stream))
	assert.Equal(t, 5, r.engine.Stats().Appends)
}
