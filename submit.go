package vkfft

import (
	"github.com/cwbudde/vkfft-go/gpu"
	"github.com/cwbudde/vkfft-go/vk"
)

// SubmitPath is the queue submission entry point a Context uses.
type SubmitPath uint8

const (
	// SubmitPathAuto picks the best path the device supports.
	SubmitPathAuto SubmitPath = iota
	// SubmitPathCore13 uses vkQueueSubmit2 from Vulkan 1.3.
	SubmitPathCore13
	// SubmitPathSynchronization2 uses vkQueueSubmit2KHR from
	// VK_KHR_synchronization2.
	SubmitPathSynchronization2
	// SubmitPathLegacy uses vkQueueSubmit.
	SubmitPathLegacy
)

func (p SubmitPath) String() string {
	switch p {
	case SubmitPathAuto:
		return "auto"
	case SubmitPathCore13:
		return "vkQueueSubmit2"
	case SubmitPathSynchronization2:
		return "vkQueueSubmit2KHR"
	case SubmitPathLegacy:
		return "vkQueueSubmit"
	default:
		return "submit-path(?)"
	}
}

// selectSubmitPath resolves SubmitPathAuto for device.
func selectSubmitPath(device gpu.Device) SubmitPath {
	switch {
	case vk.AtLeast(device.APIVersion(), 1, 3):
		return SubmitPathCore13
	case device.ExtensionEnabled(vk.KHRSynchronization2ExtensionName):
		return SubmitPathSynchronization2
	default:
		return SubmitPathLegacy
	}
}

// submitRecord holds submission descriptors at a fixed address outside the
// Go heap, since they point at each other and at the command buffer handle.
type submitRecord struct {
	commandBuffer vk.CommandBuffer
	fence         vk.Fence

	legacy     vk.SubmitInfo
	bufferInfo vk.CommandBufferSubmitInfo
	info2      vk.SubmitInfo2
}

// submit builds the descriptor for path around rec.commandBuffer and hands it
// to the queue with rec.fence as the completion signal.
func (p SubmitPath) submit(cmds vk.Commands, queue vk.Queue, rec *submitRecord) vk.Result {
	switch p {
	case SubmitPathCore13, SubmitPathSynchronization2:
		rec.bufferInfo = vk.CommandBufferSubmitInfo{
			SType:         vk.StructureTypeCommandBufferSubmitInfo,
			CommandBuffer: rec.commandBuffer,
		}
		rec.info2 = vk.SubmitInfo2{
			SType:                  vk.StructureTypeSubmitInfo2,
			CommandBufferInfoCount: 1,
			PCommandBufferInfos:    &rec.bufferInfo,
		}
		if p == SubmitPathCore13 {
			return cmds.QueueSubmit2(queue, 1, &rec.info2, rec.fence)
		}
		return cmds.QueueSubmit2KHR(queue, 1, &rec.info2, rec.fence)
	default:
		rec.legacy = vk.SubmitInfo{
			SType:              vk.StructureTypeSubmitInfo,
			CommandBufferCount: 1,
			PCommandBuffers:    &rec.commandBuffer,
		}
		return cmds.QueueSubmit(queue, 1, &rec.legacy, rec.fence)
	}
}
