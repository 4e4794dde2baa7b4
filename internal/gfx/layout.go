package gfx

// Attrib is a vertex attribute semantic. Its value is the shader location.
type Attrib uint8

const (
	AttribPosition Attrib = iota
	AttribColor0
	AttribTexCoord0
	AttribNormal
)

// AttribType is the component type of an attribute.
type AttribType uint8

const (
	AttribFloat AttribType = iota
	AttribUint8
)

func (t AttribType) size() int {
	if t == AttribUint8 {
		return 1
	}
	return 4
}

// VertexAttrib is one entry of a VertexLayout.
type VertexAttrib struct {
	Attrib     Attrib
	Num        int
	Type       AttribType
	Normalized bool
	Offset     int
}

// VertexLayout describes interleaved vertex data.
//
//	var l gfx.VertexLayout
//	l.Begin().Add(gfx.AttribPosition, 3, gfx.AttribFloat, false).End()
type VertexLayout struct {
	Attribs []VertexAttrib
	Stride  int
}

// Begin resets the layout.
func (l *VertexLayout) Begin() *VertexLayout {
	l.Attribs = l.Attribs[:0]
	l.Stride = 0
	return l
}

// Add appends an attribute at the current stride.
func (l *VertexLayout) Add(attrib Attrib, num int, typ AttribType, normalized bool) *VertexLayout {
	l.Attribs = append(l.Attribs, VertexAttrib{
		Attrib:     attrib,
		Num:        num,
		Type:       typ,
		Normalized: normalized,
		Offset:     l.Stride,
	})
	l.Stride += num * typ.size()
	return l
}

// End finishes the layout.
func (l *VertexLayout) End() {}

// FloatsPerVertex is Stride expressed in float32 units.
func (l VertexLayout) FloatsPerVertex() int {
	return l.Stride / 4
}
