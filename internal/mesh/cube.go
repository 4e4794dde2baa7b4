// Package mesh holds static geometry.
package mesh

import "cube-demo/internal/gfx"

// CubeVertices are the 8 corners of a 2x2x2 cube, xyz per vertex.
var CubeVertices = []float32{
	-1.0, 1.0, 1.0,
	1.0, 1.0, 1.0,
	-1.0, -1.0, 1.0,
	1.0, -1.0, 1.0,
	-1.0, 1.0, -1.0,
	1.0, 1.0, -1.0,
	-1.0, -1.0, -1.0,
	1.0, -1.0, -1.0,
}

// CubeIndices is the triangle list, 12 triangles.
var CubeIndices = []uint16{
	0, 1, 2, 1, 3, 2,
	4, 6, 5, 5, 6, 7,
	0, 2, 4, 4, 2, 6,
	1, 5, 3, 5, 7, 3,
	0, 4, 1, 4, 5, 1,
	2, 3, 6, 6, 3, 7,
}

// PositionLayout is a single float3 position attribute.
func PositionLayout() gfx.VertexLayout {
	var l gfx.VertexLayout
	l.Begin().Add(gfx.AttribPosition, 3, gfx.AttribFloat, false).End()
	return l
}
