// Package gheart generates triangle meshes of parametric surfaces, the
// heart surface in particular, for interactive display.
package gheart

import (
	"math"

	"github.com/soypat/geometry/ms3"
)

const (
	// DefaultRows is the amount of v samples of the default heart mesh.
	DefaultRows = 30
	// DefaultCols is the amount of u samples of the default heart mesh.
	DefaultCols = 30
)

// Surface is a parametric surface mapping (u,v) to a point in 3D space.
type Surface interface {
	// Evaluate returns the surface point at parameters (u,v).
	Evaluate(u, v float64) ms3.Vec
	// Domain returns the closed parameter ranges u∈[u0,u1] and v∈[v0,v1].
	Domain() (u0, u1, v0, v1 float64)
}

// Heart is the heart shaped [Surface] defined by [HeartFunc] over u∈[0,2π], v∈[0,π].
type Heart struct{}

// Evaluate implements [Surface].
func (Heart) Evaluate(u, v float64) ms3.Vec {
	x, y, z := HeartFunc(u, v)
	return ms3.Vec{X: float32(x), Y: float32(y), Z: float32(z)}
}

// Domain implements [Surface].
func (Heart) Domain() (u0, u1, v0, v1 float64) {
	return 0, 2 * math.Pi, 0, math.Pi
}

// HeartFunc evaluates the heart surface. u traces the heart curve
// in the XY plane and v sweeps the depth:
//
//	x = 16·sin³(u)
//	y = 13·cos(u) − 5·cos(2u) − 2·cos(3u) − cos(4u)
//	z = 5·cos(v)·(1 + 0.5·sin(u))
func HeartFunc(u, v float64) (x, y, z float64) {
	su := math.Sin(u)
	x = 16 * su * su * su
	y = 13*math.Cos(u) - 5*math.Cos(2*u) - 2*math.Cos(3*u) - math.Cos(4*u)
	z = 5 * math.Cos(v) * (1 + 0.5*su)
	return x, y, z
}
