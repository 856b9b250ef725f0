// Package loader resolves the Vulkan entry points vkfft needs from the system
// Vulkan loader at runtime, without cgo.
//
// The loader library is located through the VKFFT_VULKAN_LIBRARY environment
// variable when set, otherwise through the platform default names. Device
// level functions are resolved with vkGetDeviceProcAddr so that extension
// entry points such as vkQueueSubmit2KHR are found when the device enabled
// them.
package loader

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/cwbudde/vkfft-go/vk"
)

// EnvLibrary overrides the Vulkan loader path.
const EnvLibrary = "VKFFT_VULKAN_LIBRARY"

var (
	// ErrNotAvailable is returned when no Vulkan loader could be opened.
	ErrNotAvailable = errors.New("loader: Vulkan loader not available")

	// ErrNullDevice is returned when DeviceCommands is called with a null device.
	ErrNullDevice = errors.New("loader: null device handle")
)

// Loader is an opened Vulkan loader library.
type Loader struct {
	lib  uintptr
	path string

	getDeviceProcAddr func(device vk.Device, name string) uintptr
}

var (
	defaultOnce   sync.Once
	defaultLoader *Loader
	defaultErr    error
)

// Default opens the system loader once and returns the shared instance.
func Default() (*Loader, error) {
	defaultOnce.Do(func() {
		defaultLoader, defaultErr = Open("")
	})
	return defaultLoader, defaultErr
}

// Open opens the Vulkan loader at path. An empty path consults EnvLibrary and
// then the platform default names.
func Open(path string) (*Loader, error) {
	candidates := libraryNames
	if path == "" {
		path = os.Getenv(EnvLibrary)
	}
	if path != "" {
		candidates = []string{path}
	}

	var lastErr error
	for _, name := range candidates {
		lib, err := openLibrary(name)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", name, err)
			continue
		}
		l := &Loader{lib: lib, path: name}
		sym, err := lookup(lib, "vkGetDeviceProcAddr")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAvailable, name, err)
		}
		purego.RegisterFunc(&l.getDeviceProcAddr, sym)
		return l, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no candidate library names")
	}
	return nil, fmt.Errorf("%w: %v", ErrNotAvailable, lastErr)
}

// Path reports which library file was opened.
func (l *Loader) Path() string {
	return l.path
}

// DeviceCommands resolves the device-level commands for device. Functions the
// device does not expose are left unresolved; calling them reports
// VK_ERROR_FEATURE_NOT_PRESENT.
func (l *Loader) DeviceCommands(device vk.Device) (*DeviceCommands, error) {
	if device == 0 {
		return nil, ErrNullDevice
	}

	c := &DeviceCommands{}
	bind := func(fptr any, name string) bool {
		addr := l.getDeviceProcAddr(device, name)
		if addr == 0 {
			return false
		}
		purego.RegisterFunc(fptr, addr)
		return true
	}

	required := []struct {
		fptr any
		name string
	}{
		{&c.allocateCommandBuffers, "vkAllocateCommandBuffers"},
		{&c.freeCommandBuffers, "vkFreeCommandBuffers"},
		{&c.beginCommandBuffer, "vkBeginCommandBuffer"},
		{&c.endCommandBuffer, "vkEndCommandBuffer"},
		{&c.queueSubmit, "vkQueueSubmit"},
		{&c.waitForFences, "vkWaitForFences"},
		{&c.resetFences, "vkResetFences"},
	}
	for _, fn := range required {
		if !bind(fn.fptr, fn.name) {
			return nil, fmt.Errorf("loader: %s not exported by device", fn.name)
		}
	}

	c.hasSubmit2 = bind(&c.queueSubmit2, "vkQueueSubmit2")
	c.hasSubmit2KHR = bind(&c.queueSubmit2KHR, "vkQueueSubmit2KHR")

	return c, nil
}

// DeviceCommands implements vk.Commands with functions resolved from the
// loader.
type DeviceCommands struct {
	allocateCommandBuffers func(vk.Device, *vk.CommandBufferAllocateInfo, *vk.CommandBuffer) vk.Result
	freeCommandBuffers     func(vk.Device, vk.CommandPool, uint32, *vk.CommandBuffer)
	beginCommandBuffer     func(vk.CommandBuffer, *vk.CommandBufferBeginInfo) vk.Result
	endCommandBuffer       func(vk.CommandBuffer) vk.Result
	queueSubmit            func(vk.Queue, uint32, *vk.SubmitInfo, vk.Fence) vk.Result
	queueSubmit2           func(vk.Queue, uint32, *vk.SubmitInfo2, vk.Fence) vk.Result
	queueSubmit2KHR        func(vk.Queue, uint32, *vk.SubmitInfo2, vk.Fence) vk.Result
	waitForFences          func(vk.Device, uint32, *vk.Fence, vk.Bool32, uint64) vk.Result
	resetFences            func(vk.Device, uint32, *vk.Fence) vk.Result

	hasSubmit2    bool
	hasSubmit2KHR bool
}

var _ vk.Commands = (*DeviceCommands)(nil)

// HasQueueSubmit2 reports whether vkQueueSubmit2 was resolved.
func (c *DeviceCommands) HasQueueSubmit2() bool { return c.hasSubmit2 }

// HasQueueSubmit2KHR reports whether vkQueueSubmit2KHR was resolved.
func (c *DeviceCommands) HasQueueSubmit2KHR() bool { return c.hasSubmit2KHR }

func (c *DeviceCommands) AllocateCommandBuffers(device vk.Device, info *vk.CommandBufferAllocateInfo, buffers *vk.CommandBuffer) vk.Result {
	return c.allocateCommandBuffers(device, info, buffers)
}

func (c *DeviceCommands) FreeCommandBuffers(device vk.Device, pool vk.CommandPool, count uint32, buffers *vk.CommandBuffer) {
	c.freeCommandBuffers(device, pool, count, buffers)
}

func (c *DeviceCommands) BeginCommandBuffer(buffer vk.CommandBuffer, info *vk.CommandBufferBeginInfo) vk.Result {
	return c.beginCommandBuffer(buffer, info)
}

func (c *DeviceCommands) EndCommandBuffer(buffer vk.CommandBuffer) vk.Result {
	return c.endCommandBuffer(buffer)
}

func (c *DeviceCommands) QueueSubmit(queue vk.Queue, count uint32, submits *vk.SubmitInfo, fence vk.Fence) vk.Result {
	return c.queueSubmit(queue, count, submits, fence)
}

func (c *DeviceCommands) QueueSubmit2(queue vk.Queue, count uint32, submits *vk.SubmitInfo2, fence vk.Fence) vk.Result {
	if !c.hasSubmit2 {
		return vk.ErrorFeatureNotPresent
	}
	return c.queueSubmit2(queue, count, submits, fence)
}

func (c *DeviceCommands) QueueSubmit2KHR(queue vk.Queue, count uint32, submits *vk.SubmitInfo2, fence vk.Fence) vk.Result {
	if !c.hasSubmit2KHR {
		return vk.ErrorExtensionNotPresent
	}
	return c.queueSubmit2KHR(queue, count, submits, fence)
}

func (c *DeviceCommands) WaitForFences(device vk.Device, count uint32, fences *vk.Fence, waitAll vk.Bool32, timeout uint64) vk.Result {
	return c.waitForFences(device, count, fences, waitAll, timeout)
}

func (c *DeviceCommands) ResetFences(device vk.Device, count uint32, fences *vk.Fence) vk.Result {
	return c.resetFences(device, count, fences)
}
