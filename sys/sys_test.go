package sys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionMatchesVkFFT(t *testing.T) {
	assert.Equal(t, Direction(-1), Forward)
	assert.Equal(t, Direction(1), Inverse)
	assert.Equal(t, "forward", Forward.String())
	assert.Equal(t, "inverse", Inverse.String())
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "VKFFT_SUCCESS", Success.String())
	assert.Equal(t, "VKFFT_ERROR_EMPTY_bufferSize", ErrorEmptyBufferSize.String())
	assert.Equal(t, "VKFFT_ERROR_FAILED_TO_SUBMIT_QUEUE", ErrorFailedToSubmitQueue.String())
	assert.Equal(t, "VkFFTResult(9999)", Result(9999).String())
}
