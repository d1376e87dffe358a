// ABOUTME: Library loading primitives for unix-like platforms
// ABOUTME: Wraps purego dlopen/dlsym/dlclose
//go:build !windows

package al

import "github.com/ebitengine/purego"

func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func closeLibrary(handle uintptr) {
	purego.Dlclose(handle)
}
