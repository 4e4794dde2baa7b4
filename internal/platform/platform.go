// Package platform abstracts the windowing subsystem: window creation, the
// event pump, polled mouse state and native window handles.
package platform

import (
	"errors"
)

// ErrUnsupportedPlatform is returned by NativeHandle on targets without a
// handle implementation.
var ErrUnsupportedPlatform = errors.New("platform: native window handle not supported on this target")

// EventType tags an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventMouseButtonDown
	EventMouseButtonUp
	EventMouseMotion
	EventMouseWheel
	EventKeyDown
	EventKeyUp
	EventTextInput
	EventWindowResized
	EventWindowPixelSizeChanged
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventMouseButtonDown:
		return "mouse-button-down"
	case EventMouseButtonUp:
		return "mouse-button-up"
	case EventMouseMotion:
		return "mouse-motion"
	case EventMouseWheel:
		return "mouse-wheel"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventTextInput:
		return "text-input"
	case EventWindowResized:
		return "window-resized"
	case EventWindowPixelSizeChanged:
		return "window-pixel-size-changed"
	default:
		return "none"
	}
}

// IsMouse reports whether the event is a button or motion event.
func (t EventType) IsMouse() bool {
	return t == EventMouseButtonDown || t == EventMouseButtonUp || t == EventMouseMotion
}

// MouseButton indexes a mouse button.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// ButtonMask is a set of held mouse buttons.
type ButtonMask uint8

// Mask returns the bit for b.
func (b MouseButton) Mask() ButtonMask { return 1 << uint(b) }

// Has reports whether b is held.
func (m ButtonMask) Has(b MouseButton) bool { return m&b.Mask() != 0 }

// Event is a single platform event. Which fields are set depends on Type:
// X/Y for motion and buttons, WheelX/WheelY for wheel, Key for key events,
// Text for text input, Width/Height for the two resize events.
type Event struct {
	Type   EventType
	Button MouseButton
	X, Y   float64

	WheelX, WheelY float64

	Key  Key
	Text string

	Width, Height int
}

// NativeHandle is the OS-level window (and display, where one exists).
type NativeHandle struct {
	Window  uintptr
	Display uintptr
}

// WindowConfig describes the window to create.
type WindowConfig struct {
	Title            string
	Width, Height    int
	Resizable        bool
	Hidden           bool
	HighPixelDensity bool
}

// Window is a created top-level window. It also acts as the GL surface.
type Window interface {
	Size() (width, height int)
	PixelSize() (width, height int)
	MouseState() (buttons ButtonMask, x, y float64)
	NativeHandle() (NativeHandle, error)

	Center()
	Show()
	Destroy()

	MakeContextCurrent()
	SwapBuffers()
	SetSwapInterval(interval int)
}

// Platform is the windowing subsystem.
type Platform interface {
	Init() error
	Terminate()
	// ContentScale is the primary display's content scale, 1 when unknown.
	ContentScale() float32
	CreateWindow(cfg WindowConfig) (Window, error)
	// PollEvents pumps the OS queue and returns everything received since
	// the previous call, in arrival order.
	PollEvents() []Event
}
