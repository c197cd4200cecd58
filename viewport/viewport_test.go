package viewport

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWheelZoom(t *testing.T) {
	c := NewCamera()
	for i := 0; i < 10; i++ {
		c.Wheel(120)
	}
	want := math.Pow(1.1, 10)
	if math.Abs(float64(c.Scale)-want) > 1e-4 {
		t.Errorf("scale after 10 wheel ups: got %g, want %g", c.Scale, want)
	}
	for i := 0; i < 10; i++ {
		c.Wheel(-120)
	}
	if math.Abs(float64(c.Scale)-1) > 1e-5 {
		t.Errorf("scale after zooming back: got %g, want 1", c.Scale)
	}
	// Zero delta zooms out.
	c.Wheel(0)
	if c.Scale >= 1 {
		t.Errorf("zero wheel delta should zoom out, got scale %g", c.Scale)
	}
}

func TestWheelLimits(t *testing.T) {
	c := NewCamera()
	c.Limits = Limits{MinScale: 0.5, MaxScale: 2}
	for i := 0; i < 100; i++ {
		c.Wheel(1)
	}
	if c.Scale != 2 {
		t.Errorf("expected scale clamped to 2, got %g", c.Scale)
	}
	for i := 0; i < 100; i++ {
		c.Wheel(-1)
	}
	if c.Scale != 0.5 {
		t.Errorf("expected scale clamped to 0.5, got %g", c.Scale)
	}
}

func TestDrag(t *testing.T) {
	c := NewCamera()
	if c.Move(10, 10) {
		t.Error("move without press should not redraw")
	}
	if c.RotationX != 0 || c.RotationY != 0 {
		t.Fatal("move without press changed rotation")
	}
	c.Press(100, 100)
	if !c.Dragging() {
		t.Fatal("expected drag after press")
	}
	if !c.Move(120, 90) {
		t.Error("expected redraw on drag")
	}
	if c.RotationX != -10 || c.RotationY != 20 {
		t.Errorf("got rotation (%g,%g), want (-10,20)", c.RotationX, c.RotationY)
	}
	// Anchor updated: continuing the drag accumulates from the last position.
	c.Move(125, 95)
	if c.RotationX != -5 || c.RotationY != 25 {
		t.Errorf("got rotation (%g,%g), want (-5,25)", c.RotationX, c.RotationY)
	}
	c.Release()
	c.Move(500, 500)
	if c.RotationX != -5 || c.RotationY != 25 {
		t.Error("move after release changed rotation")
	}
}

func TestTick(t *testing.T) {
	c := NewCamera()
	for i := 0; i < 4; i++ {
		c.Tick()
	}
	if c.RotationX != 4 || c.RotationY != 2 {
		t.Errorf("got rotation (%g,%g), want (4,2)", c.RotationX, c.RotationY)
	}
}

func TestTickLargeAngles(t *testing.T) {
	c := NewCamera()
	c.RotationX = 1 << 24
	c.RotationY = 1 << 23
	c.Tick()
	if c.RotationX != 1<<24+1 || c.RotationY != 1<<23+0.5 {
		t.Errorf("idle rotation stalled at (%g,%g)", c.RotationX, c.RotationY)
	}
	// The transform only depends on the angle modulo a full turn.
	ref := NewCamera()
	ref.RotationX = (1<<24)%360 + 1
	ref.RotationY = (1<<23)%360 + 0.5
	if !c.ModelView().ApproxEqualThreshold(ref.ModelView(), 1e-5) {
		t.Errorf("model view differs for equivalent angles:\n%v\n%v", c.ModelView(), ref.ModelView())
	}
}

func TestTicker(t *testing.T) {
	var tk Ticker
	if n := tk.Advance(10 * time.Millisecond); n != 0 {
		t.Errorf("got %d ticks, want 0", n)
	}
	if n := tk.Advance(25 * time.Millisecond); n != 1 {
		t.Errorf("got %d ticks, want 1", n)
	}
	if d := tk.Until(); d != 25*time.Millisecond {
		t.Errorf("got %s until next tick, want 25ms", d)
	}
	if n := tk.Advance(time.Second); n != MaxCatchUp {
		t.Errorf("got %d ticks after stall, want %d", n, MaxCatchUp)
	}
}

func TestModelView(t *testing.T) {
	const tol = 1e-5
	c := NewCamera()
	origin := c.ModelView().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !origin.ApproxEqualThreshold(mgl32.Vec4{0, 0, DefaultTranslateZ, 1}, tol) {
		t.Errorf("origin maps to %v", origin)
	}
	// Scale applies before rotation and translation.
	c.Scale = 2
	c.RotationY = 90
	p := c.ModelView().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !p.ApproxEqualThreshold(mgl32.Vec4{0, 0, DefaultTranslateZ - 2, 1}, tol) {
		t.Errorf("(1,0,0) maps to %v", p)
	}
	// X rotation applies after Y rotation.
	c = NewCamera()
	c.RotationX = 90
	c.RotationY = 90
	p = c.ModelView().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !p.ApproxEqualThreshold(mgl32.Vec4{0, 1, DefaultTranslateZ, 1}, tol) {
		t.Errorf("(1,0,0) maps to %v", p)
	}
}

func TestResize(t *testing.T) {
	c := NewCamera()
	c.Resize(1024, 512)
	if c.Aspect() != 2 {
		t.Errorf("got aspect %g, want 2", c.Aspect())
	}
	c.Resize(0, 0)
	if w, h := c.Size(); w != 1024 || h != 512 {
		t.Errorf("zero resize changed size to %dx%d", w, h)
	}
	want := mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 100)
	if !c.Projection().ApproxEqual(want) {
		t.Error("projection mismatch")
	}
}
