//go:build !(vkfft && cgo)

package sys

// DefaultEngine reports ErrEngineUnavailable; the VkFFT binding is only
// compiled with the vkfft build tag.
func DefaultEngine() (Engine, error) {
	return nil, ErrEngineUnavailable
}
