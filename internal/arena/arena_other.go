//go:build !unix && !windows

package arena

import "unsafe"

type region struct{}

func mapRegion(uintptr) (region, error) {
	return region{}, ErrUnsupported
}

func (region) pointer() unsafe.Pointer { return nil }

func (region) unmap() error { return nil }
