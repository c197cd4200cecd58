package glrender

import (
	"image"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gheart"
	"github.com/soypat/gheart/viewport"
)

func TestImageRenderer(t *testing.T) {
	const w, h = 400, 300
	ir, err := NewImageRenderer(ImageConfig{Width: w, Height: h})
	if err != nil {
		t.Fatal(err)
	}
	cam := viewport.NewCamera()
	cam.Resize(w, h)
	cam.Scale = 0.1
	cam.RotationX = 30
	cam.RotationY = 30
	mesh := gheart.DefaultMesh()
	img, err := ir.Render(cam, &mesh)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("got image size %v, want %dx%d", img.Bounds().Size(), w, h)
	}
	reds, darks, whites := countPixels(img)
	if reds == 0 {
		t.Error("no filled face pixels rendered")
	}
	if darks == 0 {
		t.Error("no wireframe pixels rendered")
	}
	if whites == 0 {
		t.Error("no background pixels rendered")
	}
	for _, corner := range []image.Point{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}} {
		if !isWhite(img, corner.X, corner.Y) {
			t.Errorf("expected background at corner %v", corner)
		}
	}
}

func TestImageRendererSupersample(t *testing.T) {
	const w, h = 160, 120
	ir, err := NewImageRenderer(ImageConfig{Width: w, Height: h, Supersample: 2})
	if err != nil {
		t.Fatal(err)
	}
	cam := viewport.NewCamera()
	cam.Resize(w, h)
	cam.Scale = 0.1
	cam.Tick()
	mesh, err := gheart.GenerateMesh(gheart.Heart{}, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	img, err := ir.Render(cam, &mesh)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("got image size %v, want %dx%d", img.Bounds().Size(), w, h)
	}
}

func TestImageRendererBadConfig(t *testing.T) {
	if _, err := NewImageRenderer(ImageConfig{Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := NewImageRenderer(ImageConfig{Width: 10, Height: 10, Supersample: -1}); err == nil {
		t.Error("expected error for negative supersample")
	}
	ir, err := NewImageRenderer(ImageConfig{Width: 10, Height: 10})
	if err != nil {
		t.Fatal(err)
	}
	bad := gheart.Mesh{Vertices: make([]ms3.Vec, 1), Faces: [][3]uint32{{0, 1, 2}}, Rows: 1, Cols: 1}
	if _, err := ir.Render(viewport.NewCamera(), &bad); err == nil {
		t.Error("expected error for invalid mesh")
	}
}

func countPixels(img image.Image) (reds, darks, whites int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			r, g, bl = r>>8, g>>8, bl>>8
			switch {
			case r > 200 && g > 200 && bl > 200:
				whites++
			case r < 60 && g < 60 && bl < 60:
				darks++
			case r > g+60 && r > bl+60:
				reds++
			}
		}
	}
	return reds, darks, whites
}

func isWhite(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r>>8 > 250 && g>>8 > 250 && b>>8 > 250
}
