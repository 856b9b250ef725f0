package vkfft

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cwbudde/vkfft-go/gpu"
	"github.com/cwbudde/vkfft-go/internal/arena"
	"github.com/cwbudde/vkfft-go/sys"
	"github.com/cwbudde/vkfft-go/vk"
)

// ContextOptions configures NewContext. The device handles are mandatory.
type ContextOptions struct {
	PhysicalDevice gpu.PhysicalDevice
	Device         gpu.Device
	Queue          gpu.Queue
	CommandPool    gpu.CommandPool
	Fence          gpu.Fence

	// Engine defaults to sys.DefaultEngine.
	Engine sys.Engine

	// SubmitPath forces a queue submission entry point. The zero value
	// selects one from the device's API version and extensions.
	SubmitPath SubmitPath
}

// Context drives plans on one queue and synchronizes with one fence.
//
// Every submission waits for the fence and resets it before returning, and
// submissions are serialized, so at most one is in flight. The fence must be
// unsignaled when the Context is created.
type Context struct {
	mu sync.Mutex

	physical gpu.PhysicalDevice
	device   gpu.Device
	queue    gpu.Queue
	pool     gpu.CommandPool
	fence    gpu.Fence
	cmds     vk.Commands
	engine   sys.Engine
	path     SubmitPath

	submission *arena.Block[submitRecord]
	closed     bool
}

// NewContext validates opts and selects the submission path.
func NewContext(opts ContextOptions) (*Context, error) {
	switch {
	case opts.PhysicalDevice == nil:
		return nil, &MissingFieldError{Field: "physical device"}
	case opts.Device == nil:
		return nil, &MissingFieldError{Field: "device"}
	case opts.Queue == nil:
		return nil, &MissingFieldError{Field: "queue"}
	case opts.Fence == nil:
		return nil, &MissingFieldError{Field: "fence"}
	case opts.CommandPool == nil:
		return nil, &MissingFieldError{Field: "command pool"}
	case opts.Device.Commands() == nil:
		return nil, &MissingFieldError{Field: "device commands"}
	}

	engine := opts.Engine
	if engine == nil {
		var err error
		if engine, err = sys.DefaultEngine(); err != nil {
			return nil, err
		}
	}

	path := opts.SubmitPath
	if path == SubmitPathAuto {
		path = selectSubmitPath(opts.Device)
	}
	if path > SubmitPathLegacy {
		return nil, fmt.Errorf("%w: unknown submit path %d", ErrInvalidConfig, path)
	}

	submission, err := arena.New[submitRecord]()
	if err != nil {
		return nil, err
	}

	opts.Device.Retain()
	opts.Queue.Retain()
	opts.CommandPool.Retain()

	c := &Context{
		physical:   opts.PhysicalDevice,
		device:     opts.Device,
		queue:      opts.Queue,
		pool:       opts.CommandPool,
		fence:      opts.Fence,
		cmds:       opts.Device.Commands(),
		engine:     engine,
		path:       path,
		submission: submission,
	}

	Logger().Info("vkfft: context created",
		slog.String("api_version", vk.FormatAPIVersion(opts.Device.APIVersion())),
		slog.String("submit_path", path.String()),
		slog.Int("engine_version", engine.Version()))
	return c, nil
}

// SubmitPath reports the submission entry point in use.
func (c *Context) SubmitPath() SubmitPath {
	return c.path
}

// EngineVersion reports the engine version.
func (c *Context) EngineVersion() int {
	return c.engine.Version()
}

// bind fills the device handles of cfg from the Context.
func (c *Context) bind(cfg Config) Config {
	cfg.PhysicalDevice = c.physical
	cfg.Device = c.device
	cfg.Queue = c.queue
	cfg.CommandPool = c.pool
	cfg.Fence = c.fence
	return cfg
}

// SingleFFT runs one transform described by cfg and waits for it. The plan
// and command buffer exist only for the duration of the call, except when
// the fence wait fails: see Submit.
func (c *Context) SingleFFT(cfg Config, dir Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrContextClosed
	}

	stream, err := newCommandStream(c.device, c.pool, vk.CommandBufferUsageOneTimeSubmit)
	if err != nil {
		return err
	}

	app, err := NewApp(c.engine, c.bind(cfg))
	if err != nil {
		stream.release()
		return err
	}
	defer app.Close()

	if err := c.record(stream, app, &LaunchParams{CommandBuffer: stream.Handle()}, dir); err != nil {
		stream.release()
		return err
	}
	return c.submit(stream)
}

// StartFFTChain begins a command stream and records the first transform of
// cfg into it. The returned App and LaunchParams can be passed to
// ChainFFTWithApp to record more transforms with the same plan. The caller
// owns the App and closes it when done; the stream keeps the plan alive until
// it is submitted or closed. The chain ends with Submit.
func (c *Context) StartFFTChain(cfg Config, dir Direction) (*App, *LaunchParams, *CommandStream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, nil, nil, ErrContextClosed
	}

	stream, err := newCommandStream(c.device, c.pool, 0)
	if err != nil {
		return nil, nil, nil, err
	}

	app, err := NewApp(c.engine, c.bind(cfg))
	if err != nil {
		stream.release()
		return nil, nil, nil, err
	}

	params := &LaunchParams{CommandBuffer: stream.Handle()}
	if err := c.record(stream, app, params, dir); err != nil {
		app.Close()
		stream.release()
		return nil, nil, nil, err
	}
	return app, params, stream, nil
}

// ChainFFTWithApp records another transform with app into stream. A zero
// params.CommandBuffer is filled in from stream.
func (c *Context) ChainFFTWithApp(app *App, params *LaunchParams, stream *CommandStream, dir Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrContextClosed
	}
	if stream == nil {
		return ErrStreamClosed
	}
	if app == nil {
		return ErrAppClosed
	}
	if params == nil {
		params = &LaunchParams{}
	}
	switch params.CommandBuffer {
	case 0:
		params.CommandBuffer = stream.Handle()
	case stream.Handle():
	default:
		return ErrStreamMismatch
	}
	return c.record(stream, app, params, dir)
}

// ChainFFTWithConfig records a transform with a new plan built from cfg into
// stream. The plan is not returned; it is deleted once the stream has been
// submitted or closed.
func (c *Context) ChainFFTWithConfig(cfg Config, stream *CommandStream, dir Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrContextClosed
	}
	if stream == nil {
		return ErrStreamClosed
	}
	if err := stream.recording(); err != nil {
		return err
	}

	app, err := NewApp(c.engine, c.bind(cfg))
	if err != nil {
		return err
	}
	defer app.Close()

	return c.record(stream, app, &LaunchParams{CommandBuffer: stream.Handle()}, dir)
}

// record appends one transform and ties the plan and buffers to stream.
func (c *Context) record(stream *CommandStream, app *App, params *LaunchParams, dir Direction) error {
	if err := stream.attach(app); err != nil {
		return err
	}
	if err := app.invoke(params, dir); err != nil {
		return err
	}
	stream.hold(params)
	return nil
}

// Submit ends stream, submits it, waits for completion and resets the fence.
// The stream is released afterwards.
//
// A submission the queue rejects leaves the device in an undefined state and
// panics with a *SubmitError. If the fence wait fails the GPU may still be
// executing the command buffer, so the stream and every plan and buffer it
// holds stay alive; close it once the device is known to be idle.
func (c *Context) Submit(stream *CommandStream) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrContextClosed
	}
	if stream == nil {
		return ErrStreamClosed
	}
	return c.submit(stream)
}

// submit owns the release of stream. It is skipped only when the fence wait
// fails.
func (c *Context) submit(stream *CommandStream) error {
	if err := stream.finish(); err != nil {
		if !errors.Is(err, ErrStreamClosed) {
			stream.release()
		}
		return err
	}

	rec := c.submission.Value()
	rec.commandBuffer = stream.Handle()
	rec.fence = c.fence.Handle()

	log := Logger()
	log.Debug("vkfft: submit",
		slog.String("path", c.path.String()),
		slog.Uint64("command_buffer", uint64(rec.commandBuffer)))

	if r := c.path.submit(c.cmds, c.queue.Handle(), rec); r != vk.Success {
		err := &SubmitError{Path: c.path, Result: r}
		log.Error("vkfft: queue submission failed", slog.String("path", c.path.String()), slog.String("result", r.String()))
		stream.release()
		panic(err)
	}

	log.Debug("vkfft: waiting for fence", slog.Uint64("fence", uint64(rec.fence)))
	if r := c.cmds.WaitForFences(c.device.Handle(), 1, &rec.fence, vk.True, vk.WholeTimeout); r != vk.Success {
		log.Error("vkfft: fence wait failed, keeping command stream",
			slog.Uint64("command_buffer", uint64(rec.commandBuffer)),
			slog.String("result", r.String()))
		return fmt.Errorf("vkfft: wait for fence: %w", r.Err())
	}
	stream.release()
	if r := c.cmds.ResetFences(c.device.Handle(), 1, &rec.fence); r != vk.Success {
		return fmt.Errorf("vkfft: reset fence: %w", r.Err())
	}
	return nil
}

// Close releases the Context's holds on the device, queue and command pool.
// Streams and plans created from it must be submitted or closed first.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.pool.Release()
	c.queue.Release()
	c.device.Release()
	return c.submission.Free()
}

// Version reports the version of the compiled-in engine.
func Version() (int, error) {
	e, err := sys.DefaultEngine()
	if err != nil {
		return 0, err
	}
	return e.Version(), nil
}
