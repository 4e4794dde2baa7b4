//go:build windows

package platform

import (
	"errors"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func nativeHandle(win *glfw.Window) (NativeHandle, error) {
	hwnd := uintptr(unsafe.Pointer(win.GetWin32Window()))
	if hwnd == 0 {
		return NativeHandle{}, errors.New("platform: HWND is null")
	}
	return NativeHandle{Window: hwnd}, nil
}
