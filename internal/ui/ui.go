// Package ui is the immediate-mode overlay: widgets are declared every frame
// between NewFrame and Render.
package ui

import (
	"cube-demo/internal/platform"
)

// Vec2 is a position or size in logical pixels.
type Vec2 struct {
	X, Y float32
}

// Layer is an immediate-mode UI bound to one window.
type Layer interface {
	// ProcessEvent feeds input the UI tracks for itself.
	ProcessEvent(ev platform.Event)
	NewFrame()
	// SetNextWindow places the next Begin window on its first use only.
	SetNextWindow(pos, size Vec2)
	// Begin opens a window and reports whether its contents are visible.
	// End must be called either way.
	Begin(title string) bool
	// ColorEdit4 edits color in place and reports whether it changed.
	ColorEdit4(label string, color *[4]float32) bool
	End()
	// Render finalizes the frame and queues its draw lists on the backend.
	Render()
	// WantCaptureMouse reports whether the UI claims mouse input.
	WantCaptureMouse() bool
	Shutdown()
}
