package vkfft

import (
	"fmt"
	"sync"

	"github.com/cwbudde/vkfft-go/gpu"
	"github.com/cwbudde/vkfft-go/vk"
)

// CommandStream is an open primary command buffer that transforms are
// recorded into. It keeps every plan and buffer recorded into it alive until
// it is submitted or closed.
type CommandStream struct {
	mu     sync.Mutex
	cmds   vk.Commands
	device gpu.Device
	pool   gpu.CommandPool
	handle vk.CommandBuffer
	flags  vk.CommandBufferUsageFlags

	ended  bool
	closed bool

	plans []*appState
	held  []gpu.Retainer
}

// newCommandStream allocates a primary command buffer from pool and begins
// recording with flags.
func newCommandStream(device gpu.Device, pool gpu.CommandPool, flags vk.CommandBufferUsageFlags) (*CommandStream, error) {
	cmds := device.Commands()

	info := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool.Handle(),
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	var handle vk.CommandBuffer
	if r := cmds.AllocateCommandBuffers(device.Handle(), &info, &handle); r != vk.Success {
		return nil, fmt.Errorf("vkfft: allocate command buffer: %w", r.Err())
	}

	begin := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: flags,
	}
	if r := cmds.BeginCommandBuffer(handle, &begin); r != vk.Success {
		cmds.FreeCommandBuffers(device.Handle(), pool.Handle(), 1, &handle)
		return nil, fmt.Errorf("vkfft: begin command buffer: %w", r.Err())
	}

	device.Retain()
	pool.Retain()
	return &CommandStream{
		cmds:   cmds,
		device: device,
		pool:   pool,
		handle: handle,
		flags:  flags,
	}, nil
}

// Handle returns the command buffer being recorded.
func (s *CommandStream) Handle() vk.CommandBuffer {
	return s.handle
}

// attach keeps app alive until the stream is released.
func (s *CommandStream) attach(app *App) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ended {
		return ErrStreamClosed
	}
	s.plans = append(s.plans, app.retain())
	return nil
}

// hold keeps the buffers of params alive until the stream is released.
func (s *CommandStream) hold(params *LaunchParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range params.buffers() {
		b.Retain()
		s.held = append(s.held, b)
	}
}

// recording reports an error unless transforms may still be recorded.
func (s *CommandStream) recording() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ended {
		return ErrStreamClosed
	}
	return nil
}

// finish ends recording.
func (s *CommandStream) finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ended {
		return ErrStreamClosed
	}
	if r := s.cmds.EndCommandBuffer(s.handle); r != vk.Success {
		return fmt.Errorf("vkfft: end command buffer: %w", r.Err())
	}
	s.ended = true
	return nil
}

// Close abandons the stream without submitting it. Recorded plans and
// buffers are released. Close after a successful Submit is a no-op. After a
// failed fence wait it releases the stream Submit kept alive.
func (s *CommandStream) Close() error {
	s.release()
	return nil
}

// release frees the command buffer and drops every hold. The caller must
// ensure the GPU no longer executes the command buffer.
func (s *CommandStream) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true

	handle := s.handle
	s.cmds.FreeCommandBuffers(s.device.Handle(), s.pool.Handle(), 1, &handle)

	for _, p := range s.plans {
		p.release()
	}
	s.plans = nil
	for _, r := range s.held {
		r.Release()
	}
	s.held = nil

	s.pool.Release()
	s.device.Release()
}
