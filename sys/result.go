package sys

import "fmt"

// Result is VkFFTResult.
type Result int32

const (
	Success      Result = 0
	MallocFailed Result = 1

	ErrorInvalidPhysicalDevice Result = 1001
	ErrorInvalidDevice         Result = 1002
	ErrorInvalidQueue          Result = 1003
	ErrorInvalidCommandPool    Result = 1004
	ErrorInvalidFence          Result = 1005
	ErrorOnlyForwardFFTInit    Result = 1006
	ErrorOnlyInverseFFTInit    Result = 1007
	ErrorInvalidContext        Result = 1008

	ErrorEmptyFFTDim           Result = 2001
	ErrorEmptySize             Result = 2002
	ErrorEmptyBufferSize       Result = 2003
	ErrorEmptyBuffer           Result = 2004
	ErrorEmptyTempBufferSize   Result = 2005
	ErrorEmptyTempBuffer       Result = 2006
	ErrorEmptyInputBufferSize  Result = 2007
	ErrorEmptyInputBuffer      Result = 2008
	ErrorEmptyOutputBufferSize Result = 2009
	ErrorEmptyOutputBuffer     Result = 2010
	ErrorEmptyKernelSize       Result = 2011
	ErrorEmptyKernel           Result = 2012
	ErrorEmptyApplication      Result = 2015
	ErrorEmptyLaunchParams     Result = 2016

	ErrorUnsupportedRadix     Result = 3001
	ErrorUnsupportedFFTLength Result = 3002
	ErrorUnsupportedR2COmit   Result = 3003
	ErrorUnsupportedDCT       Result = 3004
	ErrorUnsupportedFFTOmit   Result = 3005

	ErrorFailedToAllocate               Result = 4001
	ErrorFailedToMapMemory              Result = 4002
	ErrorFailedToAllocateCommandBuffers Result = 4003
	ErrorFailedToBeginCommandBuffer     Result = 4004
	ErrorFailedToEndCommandBuffer       Result = 4005
	ErrorFailedToSubmitQueue            Result = 4006
	ErrorFailedToWaitForFences          Result = 4007
	ErrorFailedToResetFences            Result = 4008
)

var resultNames = map[Result]string{
	Success:                             "VKFFT_SUCCESS",
	MallocFailed:                        "VKFFT_ERROR_MALLOC_FAILED",
	ErrorInvalidPhysicalDevice:          "VKFFT_ERROR_INVALID_PHYSICAL_DEVICE",
	ErrorInvalidDevice:                  "VKFFT_ERROR_INVALID_DEVICE",
	ErrorInvalidQueue:                   "VKFFT_ERROR_INVALID_QUEUE",
	ErrorInvalidCommandPool:             "VKFFT_ERROR_INVALID_COMMAND_POOL",
	ErrorInvalidFence:                   "VKFFT_ERROR_INVALID_FENCE",
	ErrorOnlyForwardFFTInit:             "VKFFT_ERROR_ONLY_FORWARD_FFT_INITIALIZED",
	ErrorOnlyInverseFFTInit:             "VKFFT_ERROR_ONLY_INVERSE_FFT_INITIALIZED",
	ErrorInvalidContext:                 "VKFFT_ERROR_INVALID_CONTEXT",
	ErrorEmptyFFTDim:                    "VKFFT_ERROR_EMPTY_FFTdim",
	ErrorEmptySize:                      "VKFFT_ERROR_EMPTY_size",
	ErrorEmptyBufferSize:                "VKFFT_ERROR_EMPTY_bufferSize",
	ErrorEmptyBuffer:                    "VKFFT_ERROR_EMPTY_buffer",
	ErrorEmptyTempBufferSize:            "VKFFT_ERROR_EMPTY_tempBufferSize",
	ErrorEmptyTempBuffer:                "VKFFT_ERROR_EMPTY_tempBuffer",
	ErrorEmptyInputBufferSize:           "VKFFT_ERROR_EMPTY_inputBufferSize",
	ErrorEmptyInputBuffer:               "VKFFT_ERROR_EMPTY_inputBuffer",
	ErrorEmptyOutputBufferSize:          "VKFFT_ERROR_EMPTY_outputBufferSize",
	ErrorEmptyOutputBuffer:              "VKFFT_ERROR_EMPTY_outputBuffer",
	ErrorEmptyKernelSize:                "VKFFT_ERROR_EMPTY_kernelSize",
	ErrorEmptyKernel:                    "VKFFT_ERROR_EMPTY_kernel",
	ErrorEmptyApplication:               "VKFFT_ERROR_EMPTY_app",
	ErrorEmptyLaunchParams:              "VKFFT_ERROR_EMPTY_launchParams",
	ErrorUnsupportedRadix:               "VKFFT_ERROR_UNSUPPORTED_RADIX",
	ErrorUnsupportedFFTLength:           "VKFFT_ERROR_UNSUPPORTED_FFT_LENGTH",
	ErrorUnsupportedR2COmit:             "VKFFT_ERROR_UNSUPPORTED_FFT_LENGTH_R2C",
	ErrorUnsupportedDCT:                 "VKFFT_ERROR_UNSUPPORTED_FFT_LENGTH_DCT",
	ErrorUnsupportedFFTOmit:             "VKFFT_ERROR_UNSUPPORTED_FFT_OMIT",
	ErrorFailedToAllocate:               "VKFFT_ERROR_FAILED_TO_ALLOCATE",
	ErrorFailedToMapMemory:              "VKFFT_ERROR_FAILED_TO_MAP_MEMORY",
	ErrorFailedToAllocateCommandBuffers: "VKFFT_ERROR_FAILED_TO_ALLOCATE_COMMAND_BUFFERS",
	ErrorFailedToBeginCommandBuffer:     "VKFFT_ERROR_FAILED_TO_BEGIN_COMMAND_BUFFER",
	ErrorFailedToEndCommandBuffer:       "VKFFT_ERROR_FAILED_TO_END_COMMAND_BUFFER",
	ErrorFailedToSubmitQueue:            "VKFFT_ERROR_FAILED_TO_SUBMIT_QUEUE",
	ErrorFailedToWaitForFences:          "VKFFT_ERROR_FAILED_TO_WAIT_FOR_FENCES",
	ErrorFailedToResetFences:            "VKFFT_ERROR_FAILED_TO_RESET_FENCES",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("VkFFTResult(%d)", int32(r))
}
