// Package glrender draws heart meshes. It provides an OpenGL renderer for interactive
// use, a pure Go image renderer producing the same frame and a text overlay rasterizer.
package glrender

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gheart"
)

// Colors used by every renderer in this package. Components are in range [0,1].
var (
	ClearColor = [4]float32{1, 1, 1, 1}
	// FillColor is translucent, so overlapping faces blend in draw order.
	FillColor = [4]float32{0.9, 0.1, 0.1, 0.8}
	LineColor = [4]float32{0, 0, 0, 1}
)

// Camera provides the matrices used to draw a frame.
// It is implemented by the viewport package's Camera.
type Camera interface {
	Projection() mgl32.Mat4
	ModelView() mgl32.Mat4
}

func toNRGBA(c [4]float32) color.NRGBA {
	return color.NRGBA{
		R: uint8(c[0]*255 + 0.5),
		G: uint8(c[1]*255 + 0.5),
		B: uint8(c[2]*255 + 0.5),
		A: uint8(c[3]*255 + 0.5),
	}
}

// meshKey identifies the backing arrays of a mesh. Two meshes with equal keys share
// vertex and face storage, so an uploaded copy of one is valid for the other
// unless the storage was modified in place.
type meshKey struct {
	verts  *ms3.Vec
	faces  *[3]uint32
	nverts int
	nfaces int
}

func keyOf(m *gheart.Mesh) meshKey {
	k := meshKey{nverts: len(m.Vertices), nfaces: len(m.Faces)}
	if k.nverts > 0 {
		k.verts = &m.Vertices[0]
	}
	if k.nfaces > 0 {
		k.faces = &m.Faces[0]
	}
	return k
}
