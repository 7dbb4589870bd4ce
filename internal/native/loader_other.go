//go:build !(darwin || freebsd || linux || windows)

package native

import "errors"

func openLibrary(string) (uintptr, error) {
	return 0, errors.ErrUnsupported
}

func lookupSymbol(uintptr, string) (uintptr, error) {
	return 0, errors.ErrUnsupported
}

func closeLibrary(uintptr) error {
	return nil
}
