// Package gpu describes the GPU resources vkfft borrows from the caller.
//
// vkfft never creates devices, queues or memory. Callers hand it the raw
// Vulkan handles they already own, wrapped in the small interfaces declared
// here, and vkfft keeps the shared ones alive through reference counting for
// as long as an execution plan may use them.
//
// The package also carries a CPU-backed driver (MockBackend) and engine
// (MockEngine) that implement the same ABI as the real Vulkan loader and the
// VkFFT library, so that plans and submissions can be exercised without a GPU.
package gpu
