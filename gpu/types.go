package gpu

import "github.com/cwbudde/vkfft-go/vk"

// BackendInfo describes a driver implementation.
type BackendInfo struct {
	Name        string
	Version     string
	Description string
}

// DeviceOptions describes capabilities of an externally created device.
type DeviceOptions struct {
	// APIVersion is the packed API version the device was created with.
	// Zero means Vulkan 1.0.
	APIVersion uint32

	// Extensions lists the device extensions that were enabled.
	Extensions []string

	// Release runs when the last reference is dropped. Nil leaves destruction
	// to the caller.
	Release func()
}

// MockOptions controls NewMockBackend.
type MockOptions struct {
	// APIVersion defaults to Vulkan 1.3.
	APIVersion uint32

	// Extensions enabled on the mock device.
	Extensions []string
}

func (o MockOptions) apiVersion() uint32 {
	if o.APIVersion == 0 {
		return vk.APIVersion1_3
	}
	return o.APIVersion
}
