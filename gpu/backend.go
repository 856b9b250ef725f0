package gpu

import "github.com/cwbudde/vkfft-go/vk"

// Retainer is a reference counted resource. Retain adds a holder, Release
// drops one; the resource is destroyed when the last holder releases it.
type Retainer interface {
	Retain()
	Release()
}

// PhysicalDevice identifies the adapter a device was created from.
type PhysicalDevice interface {
	Handle() vk.PhysicalDevice
}

// Device is a logical device together with the commands resolved for it.
type Device interface {
	Retainer
	Handle() vk.Device
	Commands() vk.Commands
	APIVersion() uint32
	ExtensionEnabled(name string) bool
}

// Queue is a device queue.
type Queue interface {
	Retainer
	Handle() vk.Queue
	FamilyIndex() uint32
}

// CommandPool allocates the command buffers vkfft records into.
type CommandPool interface {
	Retainer
	Handle() vk.CommandPool
}

// Fence is borrowed, never retained; its owner outlives every submission.
type Fence interface {
	Handle() vk.Fence
}

// Buffer is device memory with a known byte size.
type Buffer interface {
	Retainer
	Handle() vk.Buffer
	Size() vk.DeviceSize
}
