package vkfft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/vkfft-go/gpu"
)

func TestLaunchProjection(t *testing.T) {
	t.Parallel()

	b := gpu.NewMockBackend(gpu.MockOptions{})
	buf := b.NewBuffer(64)
	kernel := b.NewBuffer(64)

	lp, err := newLaunchProjection()
	require.NoError(t, err)
	defer lp.release()

	_, err = lp.load(nil)
	assert.ErrorIs(t, err, ErrNoCommandStream)
	_, err = lp.load(&LaunchParams{Buffer: buf})
	assert.ErrorIs(t, err, ErrNoCommandStream)

	n, err := lp.load(&LaunchParams{CommandBuffer: 0x42, Buffer: buf, Kernel: kernel})
	require.NoError(t, err)

	rec := lp.block.Value()
	assert.Same(t, &rec.native, n)
	assert.Same(t, &rec.commandBuffer, n.CommandBuffer)
	assert.Same(t, &rec.buffer, n.Buffer)
	assert.Same(t, &rec.kernel, n.Kernel)
	assert.EqualValues(t, 0x42, *n.CommandBuffer)
	assert.Equal(t, buf.Handle(), *n.Buffer)
	assert.Equal(t, kernel.Handle(), *n.Kernel)
	assert.Nil(t, n.TempBuffer)
	assert.Nil(t, n.InputBuffer)
	assert.Nil(t, n.OutputBuffer)
}

func TestLaunchProjectionReload(t *testing.T) {
	t.Parallel()

	b := gpu.NewMockBackend(gpu.MockOptions{})
	in, out := b.NewBuffer(64), b.NewBuffer(64)

	lp, err := newLaunchProjection()
	require.NoError(t, err)
	defer lp.release()

	first, err := lp.load(&LaunchParams{CommandBuffer: 1, InputBuffer: in, OutputBuffer: out})
	require.NoError(t, err)
	require.NotNil(t, first.InputBuffer)

	second, err := lp.load(&LaunchParams{CommandBuffer: 2, OutputBuffer: in})
	require.NoError(t, err)
	assert.Same(t, first, second, "the record is reused in place")
	assert.EqualValues(t, 2, *second.CommandBuffer)
	assert.Nil(t, second.InputBuffer, "roles of the previous launch are cleared")
	assert.Equal(t, in.Handle(), *second.OutputBuffer)
	assert.Zero(t, lp.block.Value().inputBuffer)
}

func TestLaunchParamsBuffers(t *testing.T) {
	t.Parallel()

	b := gpu.NewMockBackend(gpu.MockOptions{})
	in, out := b.NewBuffer(8), b.NewBuffer(8)
	p := &LaunchParams{InputBuffer: in, OutputBuffer: out}

	assert.Equal(t, []gpu.Buffer{in, out}, p.buffers())
	assert.Nil(t, p.role(roleBuffer))
	assert.Equal(t, gpu.Buffer(in), p.role(roleInputBuffer))
}

func TestSubmitPathString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "auto", SubmitPathAuto.String())
	assert.Equal(t, "vkQueueSubmit2", SubmitPathCore13.String())
	assert.Equal(t, "vkQueueSubmit2KHR", SubmitPathSynchronization2.String())
	assert.Equal(t, "vkQueueSubmit", SubmitPathLegacy.String())
	assert.Equal(t, "submit-path(?)", SubmitPath(9).String())
}

func TestPrecisionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "single", Single.String())
	assert.Equal(t, "half-memory", HalfMemory.String())
	assert.Equal(t, "precision(?)", Precision(7).String())
}
