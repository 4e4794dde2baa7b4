//go:build !windows && !darwin && (!linux || wayland)

package platform

import "github.com/go-gl/glfw/v3.3/glfw"

func nativeHandle(*glfw.Window) (NativeHandle, error) {
	return NativeHandle{}, ErrUnsupportedPlatform
}
