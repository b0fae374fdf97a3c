package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is a 2D vector. All operations return new values.
type Vec2 struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vec2{}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// FromAngle returns the vector of the given length pointing at angle
// theta (radians, counter-clockwise from +X).
func FromAngle(theta, length float64) Vec2 {
	return Vec2{X: length * math.Cos(theta), Y: length * math.Sin(theta)}
}

func (v Vec2) r2() r2.Vec { return r2.Vec(v) }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2(r2.Add(v.r2(), o.r2())) }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2(r2.Sub(v.r2(), o.r2())) }

func (v Vec2) Scale(f float64) Vec2 { return Vec2(r2.Scale(f, v.r2())) }

func (v Vec2) Dot(o Vec2) float64 { return r2.Dot(v.r2(), o.r2()) }

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 { return r2.Cross(v.r2(), o.r2()) }

func (v Vec2) Magnitude() float64 { return r2.Norm(v.r2()) }

func (v Vec2) Distance(o Vec2) float64 { return o.Sub(v).Magnitude() }

// Normalized returns the unit vector in the direction of v. The zero
// vector has no direction and normalizes to the zero vector instead of NaN.
func (v Vec2) Normalized() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Zero
	}
	return v.Scale(1 / mag)
}

// Rotated90 returns v rotated +90° (counter-clockwise).
func (v Vec2) Rotated90() Vec2 { return Vec2{X: -v.Y, Y: v.X} }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
