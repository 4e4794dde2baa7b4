//go:build linux && !wayland

package platform

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func nativeHandle(win *glfw.Window) (NativeHandle, error) {
	xid := uintptr(win.GetX11Window())
	if xid == 0 {
		return NativeHandle{}, errors.New("platform: X11 window is 0")
	}
	return NativeHandle{
		Window:  xid,
		Display: uintptr(unsafe.Pointer(glfw.GetX11Display())),
	}, nil
}
