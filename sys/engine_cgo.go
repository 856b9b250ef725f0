//go:build vkfft && cgo

package sys

/*
#cgo CFLAGS: -DVKFFT_BACKEND=0 -w
#cgo linux LDFLAGS: -lvulkan -lglslang -lSPIRV -lMachineIndependent -lGenericCodeGen -lOSDependent -lSPIRV-Tools-opt -lSPIRV-Tools -lstdc++ -lm -lpthread
#cgo darwin LDFLAGS: -lvulkan -lglslang -lSPIRV -lMachineIndependent -lGenericCodeGen -lOSDependent -lSPIRV-Tools-opt -lSPIRV-Tools -lc++ -lm
#cgo windows LDFLAGS: -lvulkan-1 -lglslang -lSPIRV -lMachineIndependent -lGenericCodeGen -lOSDependent -lSPIRV-Tools-opt -lSPIRV-Tools -lstdc++

#include <stdlib.h>
#include "vkFFT.h"

static VkFFTResult vkfft_initialize(VkFFTApplication* app, VkFFTConfiguration* cfg) {
	return initializeVkFFT(app, *cfg);
}

static VkFFTResult vkfft_append(VkFFTApplication* app, int inverse, VkFFTLaunchParams* params) {
	return VkFFTAppend(app, inverse, params);
}

static void vkfft_delete(VkFFTApplication* app) {
	deleteVkFFT(app);
}

static int vkfft_version(void) {
	return VkFFTGetVersion();
}
*/
import "C"

import (
	"unsafe"
)

type cgoEngine struct{}

// DefaultEngine returns the linked VkFFT library.
func DefaultEngine() (Engine, error) {
	return cgoEngine{}, nil
}

func (cgoEngine) Version() int {
	return int(C.vkfft_version())
}

func (cgoEngine) NewApplication() (Application, error) {
	app := (*C.VkFFTApplication)(C.calloc(1, C.sizeof_VkFFTApplication))
	if app == nil {
		return nil, errMallocFailed
	}
	return &cgoApplication{app: app}, nil
}

type cgoApplication struct {
	app *C.VkFFTApplication
}

func (a *cgoApplication) Initialize(cfg *Configuration) Result {
	var c C.VkFFTConfiguration

	c.FFTdim = C.pfUINT(cfg.FFTDim)
	for i := range MaxDimensions {
		c.size[i] = C.pfUINT(cfg.Size[i])
		c.performZeropadding[i] = C.pfUINT(cfg.PerformZeropadding[i])
		c.fft_zeropad_left[i] = C.pfUINT(cfg.ZeropadLeft[i])
		c.fft_zeropad_right[i] = C.pfUINT(cfg.ZeropadRight[i])
	}

	c.physicalDevice = (*C.VkPhysicalDevice)(unsafe.Pointer(cfg.PhysicalDevice))
	c.device = (*C.VkDevice)(unsafe.Pointer(cfg.Device))
	c.queue = (*C.VkQueue)(unsafe.Pointer(cfg.Queue))
	c.commandPool = (*C.VkCommandPool)(unsafe.Pointer(cfg.CommandPool))
	c.fence = (*C.VkFence)(unsafe.Pointer(cfg.Fence))

	c.userTempBuffer = C.pfUINT(cfg.UserTempBuffer)
	c.bufferSize = (*C.pfUINT)(unsafe.Pointer(cfg.BufferSize))
	c.buffer = (*C.VkBuffer)(unsafe.Pointer(cfg.Buffer))
	c.tempBufferSize = (*C.pfUINT)(unsafe.Pointer(cfg.TempBufferSize))
	c.tempBuffer = (*C.VkBuffer)(unsafe.Pointer(cfg.TempBuffer))
	c.inputBufferSize = (*C.pfUINT)(unsafe.Pointer(cfg.InputBufferSize))
	c.inputBuffer = (*C.VkBuffer)(unsafe.Pointer(cfg.InputBuffer))
	c.outputBufferSize = (*C.pfUINT)(unsafe.Pointer(cfg.OutputBufferSize))
	c.outputBuffer = (*C.VkBuffer)(unsafe.Pointer(cfg.OutputBuffer))
	c.kernelSize = (*C.pfUINT)(unsafe.Pointer(cfg.KernelSize))
	c.kernel = (*C.VkBuffer)(unsafe.Pointer(cfg.Kernel))

	c.normalize = C.pfUINT(cfg.Normalize)
	c.performConvolution = C.pfUINT(cfg.PerformConvolution)
	c.numberKernels = C.pfUINT(cfg.NumberKernels)
	c.kernelConvolution = C.pfUINT(cfg.KernelConvolution)
	c.symmetricKernel = C.pfUINT(cfg.SymmetricKernel)
	c.coordinateFeatures = C.pfUINT(cfg.CoordinateFeatures)
	c.matrixConvolution = C.pfUINT(cfg.MatrixConvolution)
	c.performR2C = C.pfUINT(cfg.PerformR2C)
	c.performDCT = C.pfUINT(cfg.PerformDCT)
	c.performDST = C.pfUINT(cfg.PerformDST)
	c.disableReorderFourStep = C.pfUINT(cfg.DisableReorderFourStep)
	c.useLUT = C.pfUINT(cfg.UseLUT)
	c.isInputFormatted = C.pfUINT(cfg.IsInputFormatted)
	c.isOutputFormatted = C.pfUINT(cfg.IsOutputFormatted)
	c.inverseReturnToInputBuffer = C.pfUINT(cfg.InverseReturnToInputBuffer)
	c.doublePrecision = C.pfUINT(cfg.DoublePrecision)
	c.halfPrecision = C.pfUINT(cfg.HalfPrecision)
	c.halfPrecisionMemoryOnly = C.pfUINT(cfg.HalfPrecisionMemoryOnly)
	c.numberBatches = C.pfUINT(cfg.NumberBatches)

	return Result(C.vkfft_initialize(a.app, &c))
}

func (a *cgoApplication) Append(dir Direction, params *LaunchParams) Result {
	var p C.VkFFTLaunchParams
	p.commandBuffer = (*C.VkCommandBuffer)(unsafe.Pointer(params.CommandBuffer))
	p.buffer = (*C.VkBuffer)(unsafe.Pointer(params.Buffer))
	p.tempBuffer = (*C.VkBuffer)(unsafe.Pointer(params.TempBuffer))
	p.inputBuffer = (*C.VkBuffer)(unsafe.Pointer(params.InputBuffer))
	p.outputBuffer = (*C.VkBuffer)(unsafe.Pointer(params.OutputBuffer))
	p.kernel = (*C.VkBuffer)(unsafe.Pointer(params.Kernel))

	return Result(C.vkfft_append(a.app, C.int(dir), &p))
}

func (a *cgoApplication) Delete() {
	if a.app == nil {
		return
	}
	C.vkfft_delete(a.app)
	C.free(unsafe.Pointer(a.app))
	a.app = nil
}
