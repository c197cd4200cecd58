//go:build tinygo || !cgo

package glrender

import (
	"errors"
	"image"

	"github.com/soypat/gheart"
)

var errNoCGO = errors.New("OpenGL rendering requires CGo and is not supported on TinyGo")

// MeshRenderer draws a heart mesh with OpenGL. Unavailable without CGo.
type MeshRenderer struct{}

// NewMeshRenderer returns an error since OpenGL is unavailable without CGo.
func NewMeshRenderer() (*MeshRenderer, error) { return nil, errNoCGO }

func (mr *MeshRenderer) SetMesh(m *gheart.Mesh) error { return errNoCGO }

func (mr *MeshRenderer) Draw(cam Camera) error { return errNoCGO }

func (mr *MeshRenderer) Invalidate() {}

func (mr *MeshRenderer) Delete() {}

// OverlayRenderer draws an RGBA image on top of the framebuffer. Unavailable without CGo.
type OverlayRenderer struct{}

// NewOverlayRenderer returns an error since OpenGL is unavailable without CGo.
func NewOverlayRenderer() (*OverlayRenderer, error) { return nil, errNoCGO }

func (ov *OverlayRenderer) Upload(img *image.RGBA) error { return errNoCGO }

func (ov *OverlayRenderer) Draw(x, y, viewportWidth, viewportHeight int) error { return errNoCGO }

func (ov *OverlayRenderer) Delete() {}
