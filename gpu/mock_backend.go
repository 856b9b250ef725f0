package gpu

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/cwbudde/vkfft-go/vk"
)

// MockEntry names a mock driver entry point for failure injection.
type MockEntry int

const (
	EntryAllocateCommandBuffers MockEntry = iota
	EntryBeginCommandBuffer
	EntryEndCommandBuffer
	EntryQueueSubmit
	EntryWaitForFences
	EntryResetFences
)

// Submit entry point names reported by MockStats.LastSubmit.
const (
	SubmitEntryLegacy = "vkQueueSubmit"
	SubmitEntryCore   = "vkQueueSubmit2"
	SubmitEntryKHR    = "vkQueueSubmit2KHR"
)

// MockStats counts driver calls.
type MockStats struct {
	CommandBuffersAllocated int
	CommandBuffersFreed     int
	Begins                  int
	Ends                    int
	Submits                 int
	LastSubmit              string
	LastBeginFlags          vk.CommandBufferUsageFlags
	CommandsExecuted        int
	FenceWaits              int
	FenceResets             int
}

type commandBufferState uint8

const (
	cbInitial commandBufferState = iota
	cbRecording
	cbExecutable
	cbInvalid
)

type mockCommandBuffer struct {
	pool  vk.CommandPool
	state commandBufferState
	flags vk.CommandBufferUsageFlags
	ops   []func()
}

type mockFence struct {
	signaled bool
}

// MockBackend is a CPU-backed Vulkan driver for development and tests.
// It implements vk.Commands; recorded work runs synchronously inside the
// queue submission, so fences are signaled by the time submit returns.
type MockBackend struct {
	mu   sync.Mutex
	opts MockOptions

	next uint64

	physical vk.PhysicalDevice
	device   *VulkanDevice
	queue    *VulkanQueue

	pools          map[vk.CommandPool]bool
	commandBuffers map[vk.CommandBuffer]*mockCommandBuffer
	fences         map[vk.Fence]*mockFence
	buffers        map[vk.Buffer]*MockBuffer

	failures map[MockEntry]vk.Result
	stats    MockStats
}

// NewMockBackend returns a backend with one device and one queue.
func NewMockBackend(opts MockOptions) *MockBackend {
	b := &MockBackend{
		opts:           opts,
		next:           0x1000,
		pools:          make(map[vk.CommandPool]bool),
		commandBuffers: make(map[vk.CommandBuffer]*mockCommandBuffer),
		fences:         make(map[vk.Fence]*mockFence),
		buffers:        make(map[vk.Buffer]*MockBuffer),
		failures:       make(map[MockEntry]vk.Result),
	}
	b.physical = vk.PhysicalDevice(b.nextHandle())
	b.device = &VulkanDevice{
		handle:     vk.Device(b.nextHandle()),
		commands:   b,
		apiVersion: opts.apiVersion(),
		extensions: opts.Extensions,
	}
	b.device.init(nil)
	b.queue = &VulkanQueue{handle: vk.Queue(b.nextHandle())}
	b.queue.init(nil)
	return b
}

// Info describes the mock driver and the API version it reports.
func (b *MockBackend) Info() BackendInfo {
	return BackendInfo{
		Name:        "mock",
		Version:     vk.FormatAPIVersion(b.opts.apiVersion()),
		Description: "CPU-backed mock Vulkan driver",
	}
}

func (b *MockBackend) nextHandle() uint64 {
	b.next += 0x10
	return b.next
}

// PhysicalDevice returns the mock adapter.
func (b *MockBackend) PhysicalDevice() VulkanPhysicalDevice {
	return VulkanPhysicalDevice(b.physical)
}

// Device returns the mock device. Its commands are the backend itself.
func (b *MockBackend) Device() *VulkanDevice {
	return b.device
}

// Queue returns the mock queue.
func (b *MockBackend) Queue() *VulkanQueue {
	return b.queue
}

// NewCommandPool creates a command pool.
func (b *MockBackend) NewCommandPool() *VulkanCommandPool {
	b.mu.Lock()
	defer b.mu.Unlock()

	h := vk.CommandPool(b.nextHandle())
	b.pools[h] = true
	p := &VulkanCommandPool{handle: h}
	p.init(func() {
		b.mu.Lock()
		delete(b.pools, h)
		b.mu.Unlock()
	})
	return p
}

// NewFence creates an unsignaled fence.
func (b *MockBackend) NewFence() VulkanFence {
	b.mu.Lock()
	defer b.mu.Unlock()

	h := vk.Fence(b.nextHandle())
	b.fences[h] = &mockFence{}
	return VulkanFence(h)
}

// FenceSignaled reports the state of f.
func (b *MockBackend) FenceSignaled(f vk.Fence) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	mf, ok := b.fences[f]
	return ok && mf.signaled
}

// NewBuffer creates a zeroed host-visible buffer of size bytes.
func (b *MockBackend) NewBuffer(size vk.DeviceSize) *MockBuffer {
	b.mu.Lock()
	defer b.mu.Unlock()

	h := vk.Buffer(b.nextHandle())
	buf := &MockBuffer{
		handle: h,
		size:   size,
		words:  make([]uint64, (size+7)/8),
	}
	buf.init(func() {
		b.mu.Lock()
		delete(b.buffers, h)
		b.mu.Unlock()
	})
	b.buffers[h] = buf
	return buf
}

// NewFloat32Buffer creates a buffer holding data.
func (b *MockBackend) NewFloat32Buffer(data []float32) *MockBuffer {
	buf := b.NewBuffer(vk.DeviceSize(4 * len(data)))
	copy(buf.Float32s(), data)
	return buf
}

// Buffer looks up a live buffer by handle.
func (b *MockBackend) Buffer(h vk.Buffer) (*MockBuffer, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf, ok := b.buffers[h]
	return buf, ok
}

// LiveCommandBuffers reports how many command buffers are allocated.
func (b *MockBackend) LiveCommandBuffers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.commandBuffers)
}

// HasPhysicalDevice, HasDevice, HasQueue, HasCommandPool and HasFence
// validate handles the way a driver would.
func (b *MockBackend) HasPhysicalDevice(h vk.PhysicalDevice) bool { return h == b.physical }
func (b *MockBackend) HasDevice(h vk.Device) bool                 { return h == b.device.handle }
func (b *MockBackend) HasQueue(h vk.Queue) bool                   { return h == b.queue.handle }

func (b *MockBackend) HasCommandPool(h vk.CommandPool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pools[h]
}

func (b *MockBackend) HasFence(h vk.Fence) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.fences[h]
	return ok
}

// Record appends op to a command buffer in the recording state.
func (b *MockBackend) Record(cb vk.CommandBuffer, op func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	mcb, ok := b.commandBuffers[cb]
	if !ok {
		return fmt.Errorf("record %#x: %w", cb, ErrUnknownHandle)
	}
	if mcb.state != cbRecording {
		return fmt.Errorf("record %#x: %w", cb, ErrNotRecording)
	}
	mcb.ops = append(mcb.ops, op)
	return nil
}

// InjectFailure makes entry return r until cleared with vk.Success.
func (b *MockBackend) InjectFailure(entry MockEntry, r vk.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r == vk.Success {
		delete(b.failures, entry)
		return
	}
	b.failures[entry] = r
}

// Stats returns a snapshot of the call counters.
func (b *MockBackend) Stats() MockStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

func (b *MockBackend) failure(entry MockEntry) vk.Result {
	if r, ok := b.failures[entry]; ok {
		return r
	}
	return vk.Success
}

func (b *MockBackend) AllocateCommandBuffers(device vk.Device, info *vk.CommandBufferAllocateInfo, buffers *vk.CommandBuffer) vk.Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r := b.failure(EntryAllocateCommandBuffers); r != vk.Success {
		return r
	}
	if device != b.device.handle || info == nil || buffers == nil {
		return vk.ErrorInitializationFailed
	}
	if info.SType != vk.StructureTypeCommandBufferAllocateInfo || !b.pools[info.CommandPool] {
		return vk.ErrorInitializationFailed
	}

	out := unsafe.Slice(buffers, info.CommandBufferCount)
	for i := range out {
		h := vk.CommandBuffer(b.nextHandle())
		b.commandBuffers[h] = &mockCommandBuffer{pool: info.CommandPool}
		out[i] = h
	}
	b.stats.CommandBuffersAllocated += len(out)
	return vk.Success
}

func (b *MockBackend) FreeCommandBuffers(device vk.Device, pool vk.CommandPool, count uint32, buffers *vk.CommandBuffer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if buffers == nil {
		return
	}
	for _, h := range unsafe.Slice(buffers, count) {
		if mcb, ok := b.commandBuffers[h]; ok && mcb.pool == pool {
			delete(b.commandBuffers, h)
			b.stats.CommandBuffersFreed++
		}
	}
}

func (b *MockBackend) BeginCommandBuffer(cb vk.CommandBuffer, info *vk.CommandBufferBeginInfo) vk.Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r := b.failure(EntryBeginCommandBuffer); r != vk.Success {
		return r
	}
	mcb, ok := b.commandBuffers[cb]
	if !ok || info == nil || info.SType != vk.StructureTypeCommandBufferBeginInfo {
		return vk.ErrorInitializationFailed
	}
	mcb.state = cbRecording
	mcb.flags = info.Flags
	mcb.ops = nil
	b.stats.Begins++
	b.stats.LastBeginFlags = info.Flags
	return vk.Success
}

func (b *MockBackend) EndCommandBuffer(cb vk.CommandBuffer) vk.Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r := b.failure(EntryEndCommandBuffer); r != vk.Success {
		return r
	}
	mcb, ok := b.commandBuffers[cb]
	if !ok || mcb.state != cbRecording {
		return vk.ErrorInitializationFailed
	}
	mcb.state = cbExecutable
	b.stats.Ends++
	return vk.Success
}

func (b *MockBackend) QueueSubmit(queue vk.Queue, count uint32, submits *vk.SubmitInfo, fence vk.Fence) vk.Result {
	var cbs []vk.CommandBuffer
	if submits != nil {
		for _, s := range unsafe.Slice(submits, count) {
			if s.SType != vk.StructureTypeSubmitInfo {
				return vk.ErrorInitializationFailed
			}
			if s.CommandBufferCount > 0 {
				cbs = append(cbs, unsafe.Slice(s.PCommandBuffers, s.CommandBufferCount)...)
			}
		}
	}
	return b.execute(SubmitEntryLegacy, queue, cbs, fence)
}

func (b *MockBackend) QueueSubmit2(queue vk.Queue, count uint32, submits *vk.SubmitInfo2, fence vk.Fence) vk.Result {
	if !vk.AtLeast(b.device.apiVersion, 1, 3) {
		return vk.ErrorFeatureNotPresent
	}
	return b.submit2(SubmitEntryCore, queue, count, submits, fence)
}

func (b *MockBackend) QueueSubmit2KHR(queue vk.Queue, count uint32, submits *vk.SubmitInfo2, fence vk.Fence) vk.Result {
	if !b.device.ExtensionEnabled(vk.KHRSynchronization2ExtensionName) {
		return vk.ErrorExtensionNotPresent
	}
	return b.submit2(SubmitEntryKHR, queue, count, submits, fence)
}

func (b *MockBackend) submit2(entry string, queue vk.Queue, count uint32, submits *vk.SubmitInfo2, fence vk.Fence) vk.Result {
	var cbs []vk.CommandBuffer
	if submits != nil {
		for _, s := range unsafe.Slice(submits, count) {
			if s.SType != vk.StructureTypeSubmitInfo2 {
				return vk.ErrorInitializationFailed
			}
			if s.CommandBufferInfoCount == 0 {
				continue
			}
			for _, info := range unsafe.Slice(s.PCommandBufferInfos, s.CommandBufferInfoCount) {
				if info.SType != vk.StructureTypeCommandBufferSubmitInfo {
					return vk.ErrorInitializationFailed
				}
				cbs = append(cbs, info.CommandBuffer)
			}
		}
	}
	return b.execute(entry, queue, cbs, fence)
}

// execute runs the recorded work of cbs in order and signals fence.
func (b *MockBackend) execute(entry string, queue vk.Queue, cbs []vk.CommandBuffer, fence vk.Fence) vk.Result {
	b.mu.Lock()
	if r := b.failure(EntryQueueSubmit); r != vk.Success {
		b.mu.Unlock()
		return r
	}
	if queue != b.queue.handle {
		b.mu.Unlock()
		return vk.ErrorDeviceLost
	}
	var mf *mockFence
	if fence != vk.NullHandle {
		var ok bool
		if mf, ok = b.fences[fence]; !ok || mf.signaled {
			b.mu.Unlock()
			return vk.ErrorInitializationFailed
		}
	}
	var ops []func()
	for _, h := range cbs {
		mcb, ok := b.commandBuffers[h]
		if !ok || mcb.state != cbExecutable {
			b.mu.Unlock()
			return vk.ErrorInitializationFailed
		}
		ops = append(ops, mcb.ops...)
		if mcb.flags&vk.CommandBufferUsageOneTimeSubmit != 0 {
			mcb.state = cbInvalid
		}
	}
	b.stats.Submits++
	b.stats.LastSubmit = entry
	b.mu.Unlock()

	// Recorded work may look up buffers, so it runs without the lock.
	for _, op := range ops {
		op()
	}

	b.mu.Lock()
	b.stats.CommandsExecuted += len(ops)
	if mf != nil {
		mf.signaled = true
	}
	b.mu.Unlock()
	return vk.Success
}

func (b *MockBackend) WaitForFences(device vk.Device, count uint32, fences *vk.Fence, waitAll vk.Bool32, timeout uint64) vk.Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r := b.failure(EntryWaitForFences); r != vk.Success {
		return r
	}
	if device != b.device.handle || fences == nil {
		return vk.ErrorDeviceLost
	}
	b.stats.FenceWaits++
	signaled := 0
	list := unsafe.Slice(fences, count)
	for _, h := range list {
		if mf, ok := b.fences[h]; ok && mf.signaled {
			signaled++
		}
	}
	if signaled == len(list) || (waitAll == vk.False && signaled > 0) {
		return vk.Success
	}
	// Nothing is in flight, so an unsignaled fence would never signal.
	return vk.Timeout
}

func (b *MockBackend) ResetFences(device vk.Device, count uint32, fences *vk.Fence) vk.Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r := b.failure(EntryResetFences); r != vk.Success {
		return r
	}
	if device != b.device.handle || fences == nil {
		return vk.ErrorDeviceLost
	}
	for _, h := range unsafe.Slice(fences, count) {
		mf, ok := b.fences[h]
		if !ok {
			return vk.ErrorDeviceLost
		}
		mf.signaled = false
	}
	b.stats.FenceResets++
	return vk.Success
}

var _ vk.Commands = (*MockBackend)(nil)

// MockBuffer is host memory posing as a device buffer.
type MockBuffer struct {
	Ref
	handle vk.Buffer
	size   vk.DeviceSize
	words  []uint64
}

func (m *MockBuffer) Handle() vk.Buffer   { return m.handle }
func (m *MockBuffer) Size() vk.DeviceSize { return m.size }

// Bytes returns the buffer contents.
func (m *MockBuffer) Bytes() []byte {
	if len(m.words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&m.words[0])), m.size)
}

// Float32s views the buffer as float32 values.
func (m *MockBuffer) Float32s() []float32 {
	if len(m.words) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&m.words[0])), m.size/4)
}

// Float64s views the buffer as float64 values.
func (m *MockBuffer) Float64s() []float64 {
	if len(m.words) == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&m.words[0])), m.size/8)
}

// Upload copies src into the buffer. src must be []float32, []float64,
// []complex64 or []complex128.
func (m *MockBuffer) Upload(src any) error {
	switch data := src.(type) {
	case []float32:
		return copyChecked(m.Float32s(), data)
	case []float64:
		return copyChecked(m.Float64s(), data)
	case []complex64:
		dst := m.Float32s()
		if 2*len(data) > len(dst) {
			return ErrLengthMismatch
		}
		for i, c := range data {
			dst[2*i], dst[2*i+1] = real(c), imag(c)
		}
		return nil
	case []complex128:
		dst := m.Float64s()
		if 2*len(data) > len(dst) {
			return ErrLengthMismatch
		}
		for i, c := range data {
			dst[2*i], dst[2*i+1] = real(c), imag(c)
		}
		return nil
	default:
		return fmt.Errorf("vkfft/gpu: cannot upload %T", src)
	}
}

func copyChecked[T any](dst, src []T) error {
	if len(src) > len(dst) {
		return ErrLengthMismatch
	}
	copy(dst, src)
	return nil
}

var _ Buffer = (*MockBuffer)(nil)
