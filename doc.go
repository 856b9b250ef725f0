// Package vkfft runs VkFFT transforms on Vulkan resources the caller already
// owns.
//
// A Config describes one transform: its shape, precision, mode flags and the
// buffers bound to it. NewApp projects the Config into the native
// configuration record the engine expects and initializes a plan from it.
// The record lives outside the Go heap at a fixed address, so the engine may
// keep pointers into it for the plan's lifetime, and the plan holds a
// reference on every device resource and buffer it names.
//
// A Context owns the use of one queue and one fence and submits recorded
// work synchronously:
//
//	ctx, err := vkfft.NewContext(vkfft.ContextOptions{
//		PhysicalDevice: physical,
//		Device:         device,
//		Queue:          queue,
//		CommandPool:    pool,
//		Fence:          fence,
//	})
//	if err != nil {
//		return err
//	}
//	defer ctx.Close()
//
//	err = ctx.SingleFFT(vkfft.Config{Dims: []uint32{1024}, Buffer: data}, vkfft.Forward)
//
// Many transforms can share one submission. StartFFTChain opens a command
// stream and records the first transform, ChainFFTWithApp and
// ChainFFTWithConfig record more, and Submit runs them in order and waits.
//
// The real engine is linked with the vkfft build tag. Without it,
// ContextOptions.Engine must be set; gpu.MockEngine together with
// gpu.MockBackend runs everything on the CPU.
package vkfft
