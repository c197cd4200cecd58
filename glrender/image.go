package glrender

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/nfnt/resize"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gheart"
)

// ImageConfig configures an [ImageRenderer].
type ImageConfig struct {
	Width, Height int
	// Supersample renders at Supersample times the resolution and downsamples the result
	// for antialiasing. Zero or one disables supersampling.
	Supersample int
}

// ImageRenderer draws heart meshes to images on the CPU. It performs the same
// render pass as [MeshRenderer]: clear, filled translucent faces and a wireframe overlay.
type ImageRenderer struct {
	ctx   *fauxgl.Context
	cfg   ImageConfig
	tris  []*fauxgl.Triangle
	lines []*fauxgl.Line
}

// NewImageRenderer returns a renderer for images of the configured size.
func NewImageRenderer(cfg ImageConfig) (*ImageRenderer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("image dimensions must be positive")
	} else if cfg.Supersample < 0 || cfg.Supersample > 8 {
		return nil, errors.New("supersample must be in range 0..8")
	}
	if cfg.Supersample == 0 {
		cfg.Supersample = 1
	}
	ctx := fauxgl.NewContext(cfg.Width*cfg.Supersample, cfg.Height*cfg.Supersample)
	ctx.Cull = fauxgl.CullNone
	ctx.AlphaBlend = true
	return &ImageRenderer{ctx: ctx, cfg: cfg}, nil
}

// Render draws mesh m as seen by cam and returns the resulting image.
// The returned image is only valid until the next call to Render.
func (ir *ImageRenderer) Render(cam Camera, m *gheart.Mesh) (image.Image, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	ctx := ir.ctx
	ctx.ClearColorBufferWith(fauxColor(ClearColor))
	ctx.ClearDepthBuffer()

	mvp := fauxMatrix(cam.Projection().Mul4(cam.ModelView()))
	ir.loadMesh(m)

	ctx.Shader = fauxgl.NewSolidColorShader(mvp, fauxColor(FillColor))
	ctx.DepthBias = 0
	ctx.DrawTriangles(ir.tris)

	// Pull lines slightly towards the eye so they win the depth test against their own faces.
	ctx.Shader = fauxgl.NewSolidColorShader(mvp, fauxColor(LineColor))
	ctx.LineWidth = float64(ir.cfg.Supersample)
	ctx.DepthBias = -1e-5
	ctx.DrawLines(ir.lines)

	img := ctx.Image()
	if ir.cfg.Supersample > 1 {
		img = resize.Resize(uint(ir.cfg.Width), uint(ir.cfg.Height), img, resize.Bilinear)
	}
	return img, nil
}

func (ir *ImageRenderer) loadMesh(m *gheart.Mesh) {
	ir.tris = ir.tris[:0]
	for _, f := range m.Faces {
		ir.tris = append(ir.tris, fauxgl.NewTriangleForPoints(
			fauxVec(m.Vertices[f[0]]), fauxVec(m.Vertices[f[1]]), fauxVec(m.Vertices[f[2]]),
		))
	}
	ir.lines = ir.lines[:0]
	for _, l := range m.LineIndices() {
		ir.lines = append(ir.lines, fauxgl.NewLineForPoints(fauxVec(m.Vertices[l[0]]), fauxVec(m.Vertices[l[1]])))
	}
}

func fauxVec(v ms3.Vec) fauxgl.Vector {
	return fauxgl.V(float64(v.X), float64(v.Y), float64(v.Z))
}

func fauxColor(c [4]float32) fauxgl.Color {
	return fauxgl.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}

// fauxMatrix converts a column major mgl32 matrix to fauxgl's row major representation.
func fauxMatrix(m mgl32.Mat4) fauxgl.Matrix {
	at := func(row, col int) float64 { return float64(m.At(row, col)) }
	return fauxgl.Matrix{
		X00: at(0, 0), X01: at(0, 1), X02: at(0, 2), X03: at(0, 3),
		X10: at(1, 0), X11: at(1, 1), X12: at(1, 2), X13: at(1, 3),
		X20: at(2, 0), X21: at(2, 1), X22: at(2, 2), X23: at(2, 3),
		X30: at(3, 0), X31: at(3, 1), X32: at(3, 2), X33: at(3, 3),
	}
}
