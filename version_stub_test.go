//go:build !(vkfft && cgo)

package vkfft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/vkfft-go/gpu"
	"github.com/cwbudde/vkfft-go/sys"
)

func TestWithoutEngineBinding(t *testing.T) {
	t.Parallel()

	_, err := Version()
	require.ErrorIs(t, err, sys.ErrEngineUnavailable)

	b := gpu.NewMockBackend(gpu.MockOptions{})
	_, err = NewContext(ContextOptions{
		PhysicalDevice: b.PhysicalDevice(),
		Device:         b.Device(),
		Queue:          b.Queue(),
		CommandPool:    b.NewCommandPool(),
		Fence:          b.NewFence(),
	})
	assert.ErrorIs(t, err, sys.ErrEngineUnavailable)

	_, err = NewApp(nil, Config{})
	assert.ErrorIs(t, err, sys.ErrEngineUnavailable)
}
