// ABOUTME: Library loading primitives for Windows
// ABOUTME: Wraps LoadLibrary/GetProcAddress from golang.org/x/sys
//go:build windows

package al

import "golang.org/x/sys/windows"

func openLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func closeLibrary(handle uintptr) {
	windows.FreeLibrary(windows.Handle(handle))
}
