package vk

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultString(t *testing.T) {
	assert.Equal(t, "VK_SUCCESS", Success.String())
	assert.Equal(t, "VK_ERROR_DEVICE_LOST", ErrorDeviceLost.String())
	assert.Equal(t, "VkResult(-1000)", Result(-1000).String())
}

func TestResultErr(t *testing.T) {
	require.NoError(t, Success.Err())

	err := ErrorOutOfDeviceMemory.Err()
	require.Error(t, err)
	assert.Equal(t, "vk: VK_ERROR_OUT_OF_DEVICE_MEMORY", err.Error())

	wrapped := fmt.Errorf("submit: %w", err)
	r, ok := ResultOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrorOutOfDeviceMemory, r)

	_, ok = ResultOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestTimeoutIsReportedAsError(t *testing.T) {
	require.Error(t, Timeout.Err())
}
