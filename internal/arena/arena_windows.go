//go:build windows

package arena

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

type region uintptr

func mapRegion(size uintptr) (region, error) {
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return 0, err
	}
	return region(addr), nil
}

func (r region) pointer() unsafe.Pointer {
	return unsafe.Pointer(uintptr(r)) //nolint:govet // VirtualAlloc memory is not Go managed
}

func (r region) unmap() error {
	return windows.VirtualFree(uintptr(r), 0, windows.MEM_RELEASE)
}
