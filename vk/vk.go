// Package vk declares the slice of the Vulkan C ABI that vkfft consumes.
//
// Handles keep their C representation: dispatchable handles (instance,
// physical device, device, queue, command buffer) are pointer sized, the
// non-dispatchable ones (buffer, fence, command pool) are 64-bit integers on
// every platform. Descriptor structs are laid out exactly like their C
// counterparts so that a pointer to them can be handed to the driver.
//
// Nothing in this package talks to a driver. The entry points vkfft needs are
// described by the Commands interface; vk/loader implements it on top of the
// system Vulkan loader and gpu.MockBackend implements it on the CPU.
package vk

// Dispatchable handles.
type (
	Instance       uintptr
	PhysicalDevice uintptr
	Device         uintptr
	Queue          uintptr
	CommandBuffer  uintptr
)

// Non-dispatchable handles.
type (
	Buffer      uint64
	Fence       uint64
	CommandPool uint64
	Semaphore   uint64
)

// DeviceSize is VkDeviceSize.
type DeviceSize = uint64

// Bool32 is VkBool32.
type Bool32 uint32

const (
	False Bool32 = 0
	True  Bool32 = 1
)

// NullHandle is VK_NULL_HANDLE for the non-dispatchable handle types.
const NullHandle = 0

// WholeTimeout is UINT64_MAX, an indefinite fence wait.
const WholeTimeout = ^uint64(0)

// Commands is the set of device-level entry points vkfft drives. Method
// signatures follow the C prototypes; pointers must reference memory that
// stays put for the duration of the call.
type Commands interface {
	AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo, buffers *CommandBuffer) Result
	FreeCommandBuffers(device Device, pool CommandPool, count uint32, buffers *CommandBuffer)
	BeginCommandBuffer(buffer CommandBuffer, info *CommandBufferBeginInfo) Result
	EndCommandBuffer(buffer CommandBuffer) Result

	// QueueSubmit is the Vulkan 1.0 vkQueueSubmit.
	QueueSubmit(queue Queue, count uint32, submits *SubmitInfo, fence Fence) Result
	// QueueSubmit2 is the Vulkan 1.3 core vkQueueSubmit2.
	QueueSubmit2(queue Queue, count uint32, submits *SubmitInfo2, fence Fence) Result
	// QueueSubmit2KHR is vkQueueSubmit2KHR from VK_KHR_synchronization2.
	QueueSubmit2KHR(queue Queue, count uint32, submits *SubmitInfo2, fence Fence) Result

	WaitForFences(device Device, count uint32, fences *Fence, waitAll Bool32, timeout uint64) Result
	ResetFences(device Device, count uint32, fences *Fence) Result
}
