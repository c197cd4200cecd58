// Package viewport implements the camera state of the heart viewer and
// the input handling that mutates it.
//
// A Camera is not safe for concurrent use. It is meant to be owned by the
// thread that processes window events and issues draw calls.
package viewport

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// TickPeriod is the interval between idle rotation steps.
	TickPeriod = 30 * time.Millisecond
	// TickRotationX is the degrees added to the X axis rotation every tick.
	TickRotationX = 1
	// TickRotationY is the degrees added to the Y axis rotation every tick.
	TickRotationY = 0.5
	// ZoomFactor multiplies or divides the scale on every wheel event.
	ZoomFactor = 1.1
	// DefaultTranslateZ is the fixed depth offset of the model.
	DefaultTranslateZ = -5

	fovyDegrees = 45
	near        = 0.1
	far         = 100.0
)

// Limits optionally bounds the camera scale. The zero value places no bounds
// on scale, so repeated zooming grows or shrinks the model without limit.
type Limits struct {
	MinScale float32
	MaxScale float32
}

// Camera holds the rotation, scale and depth offset applied to the model
// along with the transient pointer drag state.
type Camera struct {
	// Rotation angles in degrees. They accumulate without wrapping and are
	// reduced modulo 360 only when building the model transform.
	RotationX float64
	RotationY float64
	Scale     float32
	// TranslateZ moves the model away from the eye along the view axis.
	TranslateZ float32
	Limits     Limits

	lastX, lastY float64
	pressed      bool
	width        int
	height       int
}

// NewCamera returns a camera at rest with unit scale.
func NewCamera() *Camera {
	return &Camera{
		Scale:      1,
		TranslateZ: DefaultTranslateZ,
		width:      800,
		height:     600,
	}
}

// Tick advances the idle rotation by one step.
func (c *Camera) Tick() {
	c.RotationX += TickRotationX
	c.RotationY += TickRotationY
}

// Press starts a drag at window coordinates (x,y).
func (c *Camera) Press(x, y float64) {
	c.pressed = true
	c.lastX = x
	c.lastY = y
}

// Move updates the rotation from a pointer move to (x,y). One pixel of motion
// rotates one degree: vertical motion rotates about X, horizontal about Y.
// It returns true if the camera changed and the scene should be redrawn.
func (c *Camera) Move(x, y float64) bool {
	if !c.pressed {
		return false
	}
	dx := x - c.lastX
	dy := y - c.lastY
	c.RotationX += dy
	c.RotationY += dx
	c.lastX = x
	c.lastY = y
	return true
}

// Release ends a drag.
func (c *Camera) Release() { c.pressed = false }

// Dragging reports whether a drag is in progress.
func (c *Camera) Dragging() bool { return c.pressed }

// Wheel zooms in for positive delta and out otherwise.
func (c *Camera) Wheel(delta float64) {
	if delta > 0 {
		c.Scale *= ZoomFactor
	} else {
		c.Scale /= ZoomFactor
	}
	if c.Limits.MinScale > 0 && c.Scale < c.Limits.MinScale {
		c.Scale = c.Limits.MinScale
	}
	if c.Limits.MaxScale > 0 && c.Scale > c.Limits.MaxScale {
		c.Scale = c.Limits.MaxScale
	}
}

// Resize sets the viewport dimensions in pixels. Non-positive dimensions are ignored,
// which happens when a window is minimized.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width = width
	c.height = height
}

// Size returns the viewport dimensions in pixels.
func (c *Camera) Size() (width, height int) { return c.width, c.height }

// Aspect returns the viewport width over height.
func (c *Camera) Aspect() float32 {
	return float32(c.width) / float32(c.height)
}

// Projection returns the perspective projection for the current viewport.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovyDegrees), c.Aspect(), near, far)
}

// ModelView returns the model transform: translation by TranslateZ, then rotation
// about X, then rotation about Y and finally a uniform scale.
// Vertices are scaled first and translated last.
func (c *Camera) ModelView() mgl32.Mat4 {
	m := mgl32.Translate3D(0, 0, c.TranslateZ)
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(float32(math.Mod(c.RotationX, 360)))))
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(float32(math.Mod(c.RotationY, 360)))))
	return m.Mul4(mgl32.Scale3D(c.Scale, c.Scale, c.Scale))
}

// MVP returns Projection()*ModelView().
func (c *Camera) MVP() mgl32.Mat4 {
	return c.Projection().Mul4(c.ModelView())
}

// Ticker accumulates elapsed time and reports how many idle rotation steps are due.
// It lets a render loop polling events advance the rotation at a fixed rate
// without a separate timer goroutine.
type Ticker struct {
	Period time.Duration
	acc    time.Duration
}

// Advance adds elapsed time and returns the amount of ticks due, at most MaxCatchUp.
// Periods missed beyond MaxCatchUp are dropped, so a stalled loop does not
// make the model spin through many steps at once.
func (t *Ticker) Advance(elapsed time.Duration) (ticks int) {
	if t.Period <= 0 {
		t.Period = TickPeriod
	}
	if elapsed > 0 {
		t.acc += elapsed
	}
	ticks = int(t.acc / t.Period)
	t.acc -= time.Duration(ticks) * t.Period
	if ticks > MaxCatchUp {
		ticks = MaxCatchUp
	}
	return ticks
}

// MaxCatchUp is the maximum amount of ticks a single [Ticker.Advance] call returns.
const MaxCatchUp = 2

// Until returns the time left until the next tick is due.
func (t *Ticker) Until() time.Duration {
	if t.Period <= 0 {
		return TickPeriod - t.acc
	}
	return t.Period - t.acc
}
