package gpu

import (
	"slices"

	"github.com/cwbudde/vkfft-go/vk"
)

// VulkanPhysicalDevice wraps a raw VkPhysicalDevice.
type VulkanPhysicalDevice vk.PhysicalDevice

// Handle returns the raw handle.
func (p VulkanPhysicalDevice) Handle() vk.PhysicalDevice { return vk.PhysicalDevice(p) }

// VulkanFence wraps a raw VkFence.
type VulkanFence vk.Fence

// Handle returns the raw handle.
func (f VulkanFence) Handle() vk.Fence { return vk.Fence(f) }

// VulkanDevice wraps a VkDevice created elsewhere.
type VulkanDevice struct {
	Ref
	handle     vk.Device
	commands   vk.Commands
	apiVersion uint32
	extensions []string
}

// NewDevice wraps handle. cmds are the device-level commands, usually from
// vk/loader.
func NewDevice(handle vk.Device, cmds vk.Commands, opts DeviceOptions) (*VulkanDevice, error) {
	if handle == 0 {
		return nil, ErrNullHandle
	}
	api := opts.APIVersion
	if api == 0 {
		api = vk.APIVersion1_0
	}
	d := &VulkanDevice{
		handle:     handle,
		commands:   cmds,
		apiVersion: api,
		extensions: slices.Clone(opts.Extensions),
	}
	d.init(opts.Release)
	return d, nil
}

func (d *VulkanDevice) Handle() vk.Device     { return d.handle }
func (d *VulkanDevice) Commands() vk.Commands { return d.commands }
func (d *VulkanDevice) APIVersion() uint32    { return d.apiVersion }

func (d *VulkanDevice) ExtensionEnabled(name string) bool {
	return slices.Contains(d.extensions, name)
}

// VulkanQueue wraps a VkQueue.
type VulkanQueue struct {
	Ref
	handle vk.Queue
	family uint32
}

// NewQueue wraps handle from queue family family.
func NewQueue(handle vk.Queue, family uint32, release func()) (*VulkanQueue, error) {
	if handle == 0 {
		return nil, ErrNullHandle
	}
	q := &VulkanQueue{handle: handle, family: family}
	q.init(release)
	return q, nil
}

func (q *VulkanQueue) Handle() vk.Queue    { return q.handle }
func (q *VulkanQueue) FamilyIndex() uint32 { return q.family }

// VulkanCommandPool wraps a VkCommandPool.
type VulkanCommandPool struct {
	Ref
	handle vk.CommandPool
}

// NewCommandPool wraps handle.
func NewCommandPool(handle vk.CommandPool, release func()) (*VulkanCommandPool, error) {
	if handle == vk.NullHandle {
		return nil, ErrNullHandle
	}
	p := &VulkanCommandPool{handle: handle}
	p.init(release)
	return p, nil
}

func (p *VulkanCommandPool) Handle() vk.CommandPool { return p.handle }

// VulkanBuffer wraps a VkBuffer of size bytes.
type VulkanBuffer struct {
	Ref
	handle vk.Buffer
	size   vk.DeviceSize
}

// NewBuffer wraps handle. release typically destroys the buffer and frees its
// memory through the caller's own Vulkan binding.
func NewBuffer(handle vk.Buffer, size vk.DeviceSize, release func()) (*VulkanBuffer, error) {
	if handle == vk.NullHandle {
		return nil, ErrNullHandle
	}
	b := &VulkanBuffer{handle: handle, size: size}
	b.init(release)
	return b, nil
}

func (b *VulkanBuffer) Handle() vk.Buffer   { return b.handle }
func (b *VulkanBuffer) Size() vk.DeviceSize { return b.size }

var (
	_ PhysicalDevice = VulkanPhysicalDevice(0)
	_ Fence          = VulkanFence(0)
	_ Device         = (*VulkanDevice)(nil)
	_ Queue          = (*VulkanQueue)(nil)
	_ CommandPool    = (*VulkanCommandPool)(nil)
	_ Buffer         = (*VulkanBuffer)(nil)
)
