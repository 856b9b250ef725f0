//go:build unix

package arena

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

type region []byte

func mapRegion(size uintptr) (region, error) {
	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return region(b), nil
}

func (r region) pointer() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(r))
}

func (r region) unmap() error {
	return unix.Munmap(r)
}
