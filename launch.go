package vkfft

import (
	"github.com/cwbudde/vkfft-go/gpu"
	"github.com/cwbudde/vkfft-go/internal/arena"
	"github.com/cwbudde/vkfft-go/sys"
	"github.com/cwbudde/vkfft-go/vk"
)

// LaunchParams are the per-invocation arguments of a plan. CommandBuffer is
// required and must be recording. Buffers override the plan's bindings for
// one invocation; a role the plan already binds may not be overridden,
// except Kernel.
type LaunchParams struct {
	CommandBuffer vk.CommandBuffer

	Buffer       gpu.Buffer
	TempBuffer   gpu.Buffer
	InputBuffer  gpu.Buffer
	OutputBuffer gpu.Buffer
	Kernel       gpu.Buffer
}

func (p *LaunchParams) role(r bufferRole) gpu.Buffer {
	switch r {
	case roleBuffer:
		return p.Buffer
	case roleTempBuffer:
		return p.TempBuffer
	case roleInputBuffer:
		return p.InputBuffer
	case roleOutputBuffer:
		return p.OutputBuffer
	case roleKernel:
		return p.Kernel
	}
	return nil
}

// buffers lists the buffers p references.
func (p *LaunchParams) buffers() []gpu.Buffer {
	var out []gpu.Buffer
	for r := range numRoles {
		if b := p.role(r); b != nil {
			out = append(out, b)
		}
	}
	return out
}

type launchRecord struct {
	native sys.LaunchParams

	commandBuffer vk.CommandBuffer
	buffer        vk.Buffer
	tempBuffer    vk.Buffer
	inputBuffer   vk.Buffer
	outputBuffer  vk.Buffer
	kernel        vk.Buffer
}

// launchProjection is the native form of the LaunchParams of one append.
// Each plan owns one and refills it under its lock, since the engine reads
// the record only during Append.
type launchProjection struct {
	block *arena.Block[launchRecord]
}

func newLaunchProjection() (*launchProjection, error) {
	block, err := arena.New[launchRecord]()
	if err != nil {
		return nil, err
	}
	return &launchProjection{block: block}, nil
}

// load overwrites the record with p. Roles p leaves unset are nil in the
// native form.
func (l *launchProjection) load(p *LaunchParams) (*sys.LaunchParams, error) {
	if p == nil || p.CommandBuffer == 0 {
		return nil, ErrNoCommandStream
	}
	rec := l.block.Value()
	*rec = launchRecord{commandBuffer: p.CommandBuffer}
	rec.native.CommandBuffer = &rec.commandBuffer

	set := func(b gpu.Buffer, handle *vk.Buffer, native **vk.Buffer) {
		if b == nil {
			return
		}
		*handle = b.Handle()
		*native = handle
	}
	set(p.Buffer, &rec.buffer, &rec.native.Buffer)
	set(p.TempBuffer, &rec.tempBuffer, &rec.native.TempBuffer)
	set(p.InputBuffer, &rec.inputBuffer, &rec.native.InputBuffer)
	set(p.OutputBuffer, &rec.outputBuffer, &rec.native.OutputBuffer)
	set(p.Kernel, &rec.kernel, &rec.native.Kernel)

	return &rec.native, nil
}

func (l *launchProjection) native() *sys.LaunchParams {
	return &l.block.Value().native
}

func (l *launchProjection) release() {
	_ = l.block.Free()
}
