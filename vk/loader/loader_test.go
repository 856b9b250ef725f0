package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenMissingLibrary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-vulkan-loader")

	_, err := Open(missing)
	require.ErrorIs(t, err, ErrNotAvailable)
}

func TestOpenHonoursEnvironment(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "env-loader")
	t.Setenv(EnvLibrary, missing)

	_, err := Open("")
	require.ErrorIs(t, err, ErrNotAvailable)
	require.Contains(t, err.Error(), "env-loader")
}

func TestDeviceCommandsRejectsNullDevice(t *testing.T) {
	l := &Loader{}
	_, err := l.DeviceCommands(0)
	require.ErrorIs(t, err, ErrNullDevice)
}

func TestUnresolvedSubmit2Reports(t *testing.T) {
	c := &DeviceCommands{}
	require.False(t, c.HasQueueSubmit2())
	require.False(t, c.HasQueueSubmit2KHR())
	require.NotEqual(t, 0, int(c.QueueSubmit2(0, 0, nil, 0)))
	require.NotEqual(t, 0, int(c.QueueSubmit2KHR(0, 0, nil, 0)))
}
