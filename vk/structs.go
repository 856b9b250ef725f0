package vk

// StructureType is VkStructureType.
type StructureType uint32

const (
	StructureTypeSubmitInfo                StructureType = 4
	StructureTypeCommandBufferAllocateInfo StructureType = 40
	StructureTypeCommandBufferBeginInfo    StructureType = 42
	StructureTypeSubmitInfo2               StructureType = 1000314004
	StructureTypeCommandBufferSubmitInfo   StructureType = 1000314006
)

// CommandBufferLevel is VkCommandBufferLevel.
type CommandBufferLevel uint32

const (
	CommandBufferLevelPrimary   CommandBufferLevel = 0
	CommandBufferLevelSecondary CommandBufferLevel = 1
)

// CommandBufferUsageFlags is VkCommandBufferUsageFlags.
type CommandBufferUsageFlags uint32

const (
	CommandBufferUsageOneTimeSubmit      CommandBufferUsageFlags = 0x1
	CommandBufferUsageRenderPassContinue CommandBufferUsageFlags = 0x2
	CommandBufferUsageSimultaneousUse    CommandBufferUsageFlags = 0x4
)

// KHRSynchronization2ExtensionName enables vkQueueSubmit2KHR on pre-1.3 devices.
const KHRSynchronization2ExtensionName = "VK_KHR_synchronization2"

// CommandBufferAllocateInfo mirrors VkCommandBufferAllocateInfo.
type CommandBufferAllocateInfo struct {
	SType              StructureType
	PNext              uintptr
	CommandPool        CommandPool
	Level              CommandBufferLevel
	CommandBufferCount uint32
}

// CommandBufferBeginInfo mirrors VkCommandBufferBeginInfo.
type CommandBufferBeginInfo struct {
	SType            StructureType
	PNext            uintptr
	Flags            CommandBufferUsageFlags
	PInheritanceInfo uintptr
}

// SubmitInfo mirrors VkSubmitInfo.
type SubmitInfo struct {
	SType                StructureType
	PNext                uintptr
	WaitSemaphoreCount   uint32
	PWaitSemaphores      *Semaphore
	PWaitDstStageMask    *uint32
	CommandBufferCount   uint32
	PCommandBuffers      *CommandBuffer
	SignalSemaphoreCount uint32
	PSignalSemaphores    *Semaphore
}

// CommandBufferSubmitInfo mirrors VkCommandBufferSubmitInfo.
type CommandBufferSubmitInfo struct {
	SType         StructureType
	PNext         uintptr
	CommandBuffer CommandBuffer
	DeviceMask    uint32
}

// SubmitInfo2 mirrors VkSubmitInfo2. Semaphore infos are never used by vkfft
// and are kept opaque.
type SubmitInfo2 struct {
	SType                    StructureType
	PNext                    uintptr
	Flags                    uint32
	WaitSemaphoreInfoCount   uint32
	PWaitSemaphoreInfos      uintptr
	CommandBufferInfoCount   uint32
	PCommandBufferInfos      *CommandBufferSubmitInfo
	SignalSemaphoreInfoCount uint32
	PSignalSemaphoreInfos    uintptr
}
