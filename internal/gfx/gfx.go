// Package gfx is a small view-based graphics abstraction. Draw calls are
// recorded against numbered views and executed in ascending view order when
// Frame is called.
package gfx

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ViewID identifies a render pass. Views run in ascending order at Frame.
type ViewID uint16

// MaxViews is the number of addressable views.
const MaxViews = 256

const invalidID = math.MaxUint16

// Handle types. The zero value is a valid id, so constructors hand out
// Invalid* values on failure and callers check IsValid.
type (
	VertexBufferHandle struct{ ID uint16 }
	IndexBufferHandle  struct{ ID uint16 }
	ShaderHandle       struct{ ID uint16 }
	ProgramHandle      struct{ ID uint16 }
	UniformHandle      struct{ ID uint16 }
)

var (
	InvalidVertexBuffer = VertexBufferHandle{invalidID}
	InvalidIndexBuffer  = IndexBufferHandle{invalidID}
	InvalidShader       = ShaderHandle{invalidID}
	InvalidProgram      = ProgramHandle{invalidID}
	InvalidUniform      = UniformHandle{invalidID}
)

func (h VertexBufferHandle) IsValid() bool { return h.ID != invalidID }
func (h IndexBufferHandle) IsValid() bool  { return h.ID != invalidID }
func (h ShaderHandle) IsValid() bool       { return h.ID != invalidID }
func (h ProgramHandle) IsValid() bool      { return h.ID != invalidID }
func (h UniformHandle) IsValid() bool      { return h.ID != invalidID }

// ClearFlags select which attachments a view clears.
type ClearFlags uint16

const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
	ClearStencil

	ClearNone ClearFlags = 0
)

// ResetFlags control back-buffer behaviour on Init and Reset.
type ResetFlags uint32

const (
	ResetNone  ResetFlags = 0
	ResetVSync ResetFlags = 1
)

// UniformType is the shape of a uniform value.
type UniformType int

const (
	UniformVec4 UniformType = iota
	UniformMat4
)

// Components returns the number of floats a value of type t holds.
func (t UniformType) Components() int {
	if t == UniformMat4 {
		return 16
	}
	return 4
}

// RendererType selects a backend implementation.
type RendererType int

const (
	RendererOpenGL RendererType = iota
)

func (t RendererType) String() string {
	switch t {
	case RendererOpenGL:
		return "OpenGL"
	default:
		return "unknown"
	}
}

// Surface is the presentable target the backend renders to. For OpenGL it
// owns the context.
type Surface interface {
	MakeContextCurrent()
	SwapBuffers()
	SetSwapInterval(interval int)
}

// PlatformData carries the window the backend binds to.
type PlatformData struct {
	NativeWindow  uintptr
	NativeDisplay uintptr
	Surface       Surface
}

// Resolution is the back-buffer size and reset mode.
type Resolution struct {
	Width  int
	Height int
	Reset  ResetFlags
}

// Init configures Backend.Init.
type Init struct {
	Type       RendererType
	Platform   PlatformData
	Resolution Resolution
}

// Caps describes backend properties the frame loop depends on.
type Caps struct {
	Renderer RendererType
	// HomogeneousDepth is true when clip-space depth is [-1, 1] rather than [0, 1].
	HomogeneousDepth bool
}

// ErrNoPlatformData is returned by Init when the window handle or surface is missing.
var ErrNoPlatformData = errors.New("gfx: missing platform data")

// Backend is the graphics abstraction used by the frame loop.
type Backend interface {
	Init(init Init) error
	Shutdown()
	Reset(width, height int, flags ResetFlags)
	Caps() Caps

	SetViewClear(view ViewID, flags ClearFlags, rgba uint32, depth float32, stencil uint8)
	SetViewRect(view ViewID, x, y, width, height int)
	SetViewTransform(view ViewID, viewMtx, proj mgl32.Mat4)

	CreateVertexBuffer(vertices []float32, layout VertexLayout) VertexBufferHandle
	CreateIndexBuffer(indices []uint16) IndexBufferHandle
	CreateShader(code []byte, name string) (ShaderHandle, error)
	CreateProgram(vs, fs ShaderHandle, destroyShaders bool) (ProgramHandle, error)
	CreateUniform(name string, typ UniformType) UniformHandle

	DestroyVertexBuffer(h VertexBufferHandle)
	DestroyIndexBuffer(h IndexBufferHandle)
	DestroyShader(h ShaderHandle)
	DestroyProgram(h ProgramHandle)
	DestroyUniform(h UniformHandle)

	// Draw state applies to the next Submit.
	SetTransform(model mgl32.Mat4)
	SetUniform(h UniformHandle, value []float32)
	SetVertexBuffer(stream uint8, h VertexBufferHandle)
	SetIndexBuffer(h IndexBufferHandle)
	Submit(view ViewID, program ProgramHandle)

	// SubmitFunc queues fn to run inside view at Frame, after the view's
	// regular draws. Used by overlays that issue their own API calls.
	SubmitFunc(view ViewID, fn func())

	// Frame executes all queued views and presents. Returns the frame number.
	Frame() uint32
}
