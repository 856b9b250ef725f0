package vkfft

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/vkfft-go/sys"
)

// App is an initialized execution plan. It owns the engine application and
// the configuration projection the engine reads from.
//
// Close releases the caller's hold on the plan. The engine object is deleted
// once no command stream that recorded the plan is still pending, so closing
// an App right after chaining it is safe. An App that becomes unreachable
// without Close is released by a runtime cleanup.
type App struct {
	state   *appState
	closed  atomic.Bool
	once    sync.Once
	cleanup runtime.Cleanup
}

// appState outlives the App handle while command streams still reference
// the plan.
type appState struct {
	mu     sync.Mutex
	refs   int
	engine sys.Application
	proj   *configProjection
	launch *launchProjection
}

// NewApp builds and initializes a plan for cfg on engine. A nil engine means
// sys.DefaultEngine.
func NewApp(engine sys.Engine, cfg Config) (*App, error) {
	if engine == nil {
		var err error
		if engine, err = sys.DefaultEngine(); err != nil {
			return nil, err
		}
	}

	proj, err := newConfigProjection(&cfg)
	if err != nil {
		return nil, err
	}

	launch, err := newLaunchProjection()
	if err != nil {
		_ = proj.release()
		return nil, err
	}

	ea, err := engine.NewApplication()
	if err != nil {
		launch.release()
		_ = proj.release()
		return nil, fmt.Errorf("vkfft: new application: %w", err)
	}

	if r := ea.Initialize(proj.native()); r != sys.Success {
		ea.Delete()
		launch.release()
		_ = proj.release()
		return nil, &EngineError{Op: "initialize", Code: r}
	}

	s := &appState{refs: 1, engine: ea, proj: proj, launch: launch}
	a := &App{state: s}
	a.cleanup = runtime.AddCleanup(a, (*appState).release, s)
	return a, nil
}

// Forward records a forward transform into params.CommandBuffer.
func (a *App) Forward(params *LaunchParams) error {
	return a.invoke(params, Forward)
}

// Inverse records an inverse transform into params.CommandBuffer.
func (a *App) Inverse(params *LaunchParams) error {
	return a.invoke(params, Inverse)
}

// invoke checks params against the plan's bindings and appends one transform.
// Nothing reaches the engine when a check fails.
func (a *App) invoke(params *LaunchParams, dir Direction) error {
	if a.closed.Load() {
		return ErrAppClosed
	}
	if params == nil || params.CommandBuffer == 0 {
		return ErrNoCommandStream
	}

	s := a.state
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return ErrAppClosed
	}

	for _, c := range roleConflicts {
		if s.proj.binds(c.role) && params.role(c.role) != nil {
			return c.err
		}
	}

	native, err := s.launch.load(params)
	if err != nil {
		return err
	}

	held := params.buffers()
	for _, b := range held {
		b.Retain()
	}
	defer func() {
		for _, b := range held {
			b.Release()
		}
	}()

	r := s.engine.Append(dir, native)
	Logger().Debug("vkfft: append",
		slog.String("direction", dir.String()),
		slog.Uint64("command_buffer", uint64(params.CommandBuffer)),
		slog.String("result", r.String()))
	if r != sys.Success {
		return &EngineError{Op: "append", Code: r}
	}
	return nil
}

// roleConflicts lists the roles a launch may not override. The kernel may be
// rebound on every launch.
var roleConflicts = [...]struct {
	role bufferRole
	err  error
}{
	{roleBuffer, ErrConfigSpecifiesBuffer},
	{roleTempBuffer, ErrConfigSpecifiesTempBuffer},
	{roleInputBuffer, ErrConfigSpecifiesInputBuffer},
	{roleOutputBuffer, ErrConfigSpecifiesOutputBuffer},
}

// Close releases the caller's hold on the plan. It is safe to call more than
// once.
func (a *App) Close() error {
	a.once.Do(func() {
		a.closed.Store(true)
		a.cleanup.Stop()
		a.state.release()
	})
	return nil
}

// retain adds a hold for a command stream that recorded the plan.
func (a *App) retain() *appState {
	s := a.state
	s.mu.Lock()
	s.refs++
	s.mu.Unlock()
	return s
}

// release drops one hold and tears the plan down with the last one.
func (s *appState) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs--
	if s.refs > 0 || s.engine == nil {
		return
	}
	s.engine.Delete()
	s.engine = nil
	_ = s.proj.release()
	s.proj = nil
	s.launch.release()
	s.launch = nil
}
