//go:build !darwin && !freebsd && !linux && !windows

package loader

import "errors"

var libraryNames []string

var errUnsupportedPlatform = errors.New("loader: dynamic loading unsupported on this platform")

func openLibrary(string) (uintptr, error) {
	return 0, errUnsupportedPlatform
}

func lookup(uintptr, string) (uintptr, error) {
	return 0, errUnsupportedPlatform
}
