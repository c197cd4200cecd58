package gheart

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"gonum.org/v1/gonum/floats"
)

// Mesh is an indexed triangle mesh sampled from a [Surface] on a rows×cols grid.
// Vertices are stored row major: the vertex at row i and column j is Vertices[i*Cols+j].
type Mesh struct {
	Vertices []ms3.Vec
	Faces    [][3]uint32
	Rows     int
	Cols     int
}

// DefaultMesh returns the 30×30 heart mesh.
func DefaultMesh() Mesh {
	m, err := GenerateMesh(Heart{}, DefaultRows, DefaultCols)
	if err != nil {
		panic(err) // Unreachable for the default grid.
	}
	return m
}

// GenerateMesh samples s on a uniform grid and triangulates it. Rows sample the v parameter
// and columns sample the u parameter, both including the domain endpoints.
// Each grid cell yields two triangles sharing the cell's diagonal. Vertices are not deduplicated
// so seams and poles of the surface produce repeated positions.
func GenerateMesh(s Surface, rows, cols int) (Mesh, error) {
	if s == nil {
		return Mesh{}, errors.New("nil surface")
	} else if rows < 2 || cols < 2 {
		return Mesh{}, fmt.Errorf("grid resolution must be at least 2x2, got %dx%d", rows, cols)
	} else if int64(rows)*int64(cols) > 1<<32 {
		return Mesh{}, fmt.Errorf("grid resolution %dx%d overflows uint32 indices", rows, cols)
	}
	u0, u1, v0, v1 := s.Domain()
	us := floats.Span(make([]float64, cols), u0, u1)
	vs := floats.Span(make([]float64, rows), v0, v1)
	m := Mesh{
		Vertices: make([]ms3.Vec, 0, rows*cols),
		Faces:    make([][3]uint32, 0, 2*(rows-1)*(cols-1)),
		Rows:     rows,
		Cols:     cols,
	}
	for _, v := range vs {
		for _, u := range us {
			m.Vertices = append(m.Vertices, s.Evaluate(u, v))
		}
	}
	ucols := uint32(cols)
	for i := uint32(0); i < uint32(rows-1); i++ {
		for j := uint32(0); j < ucols-1; j++ {
			idx1 := i*ucols + j
			idx2 := i*ucols + j + 1
			idx3 := (i+1)*ucols + j
			idx4 := (i+1)*ucols + j + 1
			m.Faces = append(m.Faces, [3]uint32{idx1, idx2, idx3}, [3]uint32{idx3, idx2, idx4})
		}
	}
	return m, nil
}

// Triangles returns the faces of the mesh as triangles.
func (m *Mesh) Triangles() []ms3.Triangle {
	tris := make([]ms3.Triangle, len(m.Faces))
	for i, f := range m.Faces {
		tris[i] = ms3.Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
	}
	return tris
}

// LineIndices returns vertex index pairs for every edge of every face, three per face.
// Edges shared between faces are repeated.
func (m *Mesh) LineIndices() [][2]uint32 {
	lines := make([][2]uint32, 0, 3*len(m.Faces))
	for _, f := range m.Faces {
		lines = append(lines, [2]uint32{f[0], f[1]}, [2]uint32{f[1], f[2]}, [2]uint32{f[2], f[0]})
	}
	return lines
}

// Lines returns the segments of [Mesh.LineIndices].
func (m *Mesh) Lines() [][2]ms3.Vec {
	idx := m.LineIndices()
	lines := make([][2]ms3.Vec, len(idx))
	for i, l := range idx {
		lines[i] = [2]ms3.Vec{m.Vertices[l[0]], m.Vertices[l[1]]}
	}
	return lines
}

// Bounds returns the axis aligned bounding box of the mesh vertices.
// It returns the zero Box for an empty mesh.
func (m *Mesh) Bounds() ms3.Box {
	if len(m.Vertices) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		bb.Min = ms3.MinElem(bb.Min, v)
		bb.Max = ms3.MaxElem(bb.Max, v)
	}
	return bb
}

// Validate checks the mesh is consistent: grid dimensions match the vertex count,
// all face indices are in range and no vertex is NaN or infinite.
func (m *Mesh) Validate() error {
	if m.Rows*m.Cols != len(m.Vertices) {
		return fmt.Errorf("grid %dx%d does not match %d vertices", m.Rows, m.Cols, len(m.Vertices))
	}
	for i, v := range m.Vertices {
		if badVec(v) {
			return fmt.Errorf("inf/NaN vertex %d: %v", i, v)
		}
	}
	n := uint32(len(m.Vertices))
	for i, f := range m.Faces {
		if f[0] >= n || f[1] >= n || f[2] >= n {
			return fmt.Errorf("face %d index out of range [0,%d): %v", i, n, f)
		}
	}
	return nil
}

func badVec(v ms3.Vec) bool {
	return math32.IsNaN(v.X) || math32.IsInf(v.X, 0) ||
		math32.IsNaN(v.Y) || math32.IsInf(v.Y, 0) ||
		math32.IsNaN(v.Z) || math32.IsInf(v.Z, 0)
}
