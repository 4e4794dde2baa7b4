//go:build darwin

package platform

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func nativeHandle(win *glfw.Window) (NativeHandle, error) {
	nswindow := uintptr(unsafe.Pointer(win.GetCocoaWindow()))
	if nswindow == 0 {
		return NativeHandle{}, errors.New("platform: NSWindow is nil")
	}
	return NativeHandle{Window: nswindow}, nil
}
