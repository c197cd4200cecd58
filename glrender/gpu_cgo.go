//go:build !tinygo && cgo

package glrender

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/soypat/gheart"
	"github.com/soypat/glgl/v4.1-core/glgl"
)

const meshVertexShader = `#version 410
in vec3 aPos;
uniform mat4 uMVP;
void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
}
` + "\x00"

const meshFragmentShader = `#version 410
uniform vec4 uColor;
out vec4 fragColor;
void main() {
	fragColor = uColor;
}
` + "\x00"

// MeshRenderer draws a heart mesh with OpenGL. It requires a current OpenGL 4.1 context
// and must only be used from the thread owning that context.
type MeshRenderer struct {
	prog     glgl.Program
	vao      uint32
	vbo      uint32
	triEBO   uint32
	lineEBO  uint32
	nTriIdx  int32
	nLineIdx int32
	mvpLoc   int32
	colorLoc int32
	posAttr  uint32
	// Storage of the uploaded mesh. Buffers are only re-uploaded when it changes.
	uploaded meshKey
}

// NewMeshRenderer compiles the mesh program and allocates GPU buffers.
func NewMeshRenderer() (*MeshRenderer, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   meshVertexShader,
		Fragment: meshFragmentShader,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling mesh program: %w", err)
	}
	mr := &MeshRenderer{prog: prog}
	mr.mvpLoc, err = prog.UniformLocation("uMVP\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	mr.colorLoc, err = prog.UniformLocation("uColor\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	mr.posAttr, err = prog.AttribLocation("aPos\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	gl.GenVertexArrays(1, &mr.vao)
	gl.GenBuffers(1, &mr.vbo)
	gl.GenBuffers(1, &mr.triEBO)
	gl.GenBuffers(1, &mr.lineEBO)
	return mr, glgl.Err()
}

// SetMesh uploads m to the GPU unless it is backed by the same vertex and face
// storage as the last uploaded mesh. Call [MeshRenderer.Invalidate] after modifying
// an uploaded mesh in place.
func (mr *MeshRenderer) SetMesh(m *gheart.Mesh) error {
	key := keyOf(m)
	if mr.nTriIdx > 0 && key == mr.uploaded {
		return nil
	}
	if err := m.Validate(); err != nil {
		return err
	} else if len(m.Faces) == 0 {
		return errors.New("mesh has no faces")
	}
	lines := m.LineIndices()
	gl.BindVertexArray(mr.vao)
	defer gl.BindVertexArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, mr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 3*4*len(m.Vertices), gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(mr.posAttr)
	gl.VertexAttribPointer(mr.posAttr, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mr.lineEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 2*4*len(lines), gl.Ptr(lines), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mr.triEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 3*4*len(m.Faces), gl.Ptr(m.Faces), gl.STATIC_DRAW)
	if err := glgl.Err(); err != nil {
		return fmt.Errorf("uploading mesh: %w", err)
	}
	mr.nTriIdx = int32(3 * len(m.Faces))
	mr.nLineIdx = int32(2 * len(lines))
	mr.uploaded = key
	return nil
}

// Invalidate forces the next [MeshRenderer.SetMesh] call to upload its mesh.
func (mr *MeshRenderer) Invalidate() { mr.uploaded = meshKey{} }

// Draw clears the framebuffer and draws the uploaded mesh filled, then its wireframe on top.
func (mr *MeshRenderer) Draw(cam Camera) error {
	if mr.nTriIdx == 0 {
		return errors.New("no mesh uploaded")
	}
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	mvp := cam.Projection().Mul4(cam.ModelView())
	mr.prog.Bind()
	defer mr.prog.Unbind()
	gl.UniformMatrix4fv(mr.mvpLoc, 1, false, &mvp[0])
	gl.BindVertexArray(mr.vao)
	defer gl.BindVertexArray(0)

	// Push faces back so the wireframe is not lost to depth fighting.
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(1, 1)
	gl.Uniform4f(mr.colorLoc, FillColor[0], FillColor[1], FillColor[2], FillColor[3])
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mr.triEBO)
	gl.DrawElements(gl.TRIANGLES, mr.nTriIdx, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.Disable(gl.POLYGON_OFFSET_FILL)

	gl.Uniform4f(mr.colorLoc, LineColor[0], LineColor[1], LineColor[2], LineColor[3])
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mr.lineEBO)
	gl.DrawElements(gl.LINES, mr.nLineIdx, gl.UNSIGNED_INT, gl.PtrOffset(0))
	return glgl.Err()
}

// Delete releases the GPU resources held by mr.
func (mr *MeshRenderer) Delete() {
	gl.DeleteBuffers(1, &mr.vbo)
	gl.DeleteBuffers(1, &mr.triEBO)
	gl.DeleteBuffers(1, &mr.lineEBO)
	gl.DeleteVertexArrays(1, &mr.vao)
	mr.prog.Delete()
	*mr = MeshRenderer{}
}

const overlayVertexShader = `#version 410
in vec2 aCorner;
uniform vec4 uRect; // x, y, width, height in pixels from the top left corner.
uniform vec2 uViewport;
out vec2 vTexCoord;
void main() {
	vTexCoord = aCorner;
	vec2 px = uRect.xy + aCorner*uRect.zw;
	vec2 ndc = vec2(2.0*px.x/uViewport.x - 1.0, 1.0 - 2.0*px.y/uViewport.y);
	gl_Position = vec4(ndc, 0.0, 1.0);
}
` + "\x00"

const overlayFragmentShader = `#version 410
in vec2 vTexCoord;
uniform sampler2D uTex;
out vec4 fragColor;
void main() {
	fragColor = texture(uTex, vTexCoord);
}
` + "\x00"

// OverlayRenderer draws an RGBA image on top of the framebuffer, used for the HUD.
type OverlayRenderer struct {
	prog        glgl.Program
	vao, vbo    uint32
	tex         uint32
	rectLoc     int32
	viewportLoc int32
	w, h        int
}

// NewOverlayRenderer compiles the overlay program. Requires a current OpenGL context.
func NewOverlayRenderer() (*OverlayRenderer, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   overlayVertexShader,
		Fragment: overlayFragmentShader,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling overlay program: %w", err)
	}
	ov := &OverlayRenderer{prog: prog}
	ov.rectLoc, err = prog.UniformLocation("uRect\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	ov.viewportLoc, err = prog.UniformLocation("uViewport\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	cornerAttr, err := prog.AttribLocation("aCorner\x00")
	if err != nil {
		prog.Delete()
		return nil, err
	}
	corners := []float32{
		0, 0,
		1, 0,
		0, 1,
		0, 1,
		1, 0,
		1, 1,
	}
	gl.GenVertexArrays(1, &ov.vao)
	gl.BindVertexArray(ov.vao)
	gl.GenBuffers(1, &ov.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, ov.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(corners), gl.Ptr(corners), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(cornerAttr)
	gl.VertexAttribPointer(cornerAttr, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	gl.GenTextures(1, &ov.tex)
	gl.BindTexture(gl.TEXTURE_2D, ov.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return ov, glgl.Err()
}

// Upload replaces the overlay texture contents with img.
func (ov *OverlayRenderer) Upload(img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return errors.New("empty overlay image")
	} else if img.Stride != 4*b.Dx() {
		return errors.New("overlay image must be contiguous")
	}
	gl.BindTexture(gl.TEXTURE_2D, ov.tex)
	defer gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	ov.w, ov.h = b.Dx(), b.Dy()
	return glgl.Err()
}

// Draw draws the uploaded image with its top left corner at pixel (x,y) of a viewport of the given size.
// Text images are not flipped: row 0 of the image is drawn at the top.
func (ov *OverlayRenderer) Draw(x, y, viewportWidth, viewportHeight int) error {
	if ov.w == 0 {
		return errors.New("no overlay uploaded")
	}
	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	// image.RGBA holds alpha premultiplied colors.
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	ov.prog.Bind()
	defer ov.prog.Unbind()
	gl.Uniform4f(ov.rectLoc, float32(x), float32(y), float32(ov.w), float32(ov.h))
	gl.Uniform2f(ov.viewportLoc, float32(viewportWidth), float32(viewportHeight))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, ov.tex)
	defer gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(ov.vao)
	defer gl.BindVertexArray(0)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	return glgl.Err()
}

// Delete releases the GPU resources held by ov.
func (ov *OverlayRenderer) Delete() {
	gl.DeleteTextures(1, &ov.tex)
	gl.DeleteBuffers(1, &ov.vbo)
	gl.DeleteVertexArrays(1, &ov.vao)
	ov.prog.Delete()
	*ov = OverlayRenderer{}
}
