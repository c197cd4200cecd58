package glrender

import (
	"testing"
)

func TestHUD(t *testing.T) {
	hud, err := NewHUD(14)
	if err != nil {
		t.Fatal(err)
	}
	short, err := hud.Render([]string{"x"})
	if err != nil {
		t.Fatal(err)
	}
	shortBounds := short.Bounds()
	img, err := hud.Render(CameraText(12.5, -3, 1.1))
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() <= shortBounds.Dx() || b.Dy() <= shortBounds.Dy() {
		t.Errorf("three long lines %v should be larger than one short line %v", b, shortBounds)
	}
	var ink int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R < 100 && c.A > 200 {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("no text pixels drawn")
	}
	if _, err := hud.Render(nil); err == nil {
		t.Error("expected error for no lines")
	}
	if _, err := NewHUD(0); err == nil {
		t.Error("expected error for zero font size")
	}
}

func TestCameraText(t *testing.T) {
	lines := CameraText(1, 0.5, 2)
	want := []string{
		"rotation x     1.0°",
		"rotation y     0.5°",
		"scale        2.000",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}
