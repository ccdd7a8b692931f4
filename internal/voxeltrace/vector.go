package voxeltrace

import "math"

type Real = float64

// Vec3 is a point, a direction or a linear RGB color.
type Vec3 struct {
	X Real `json:"x" toml:"x" yaml:"x"`
	Y Real `json:"y" toml:"y" yaml:"y"`
	Z Real `json:"z" toml:"z" yaml:"z"`
}

// Color is a Vec3 read as linear RGB.
type Color = Vec3

// Vector functions
func (a Vec3) Add(b Vec3) Vec3      { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (v Vec3) Mul(s Real) Vec3      { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Div(s Real) Vec3      { return Vec3{v.X / s, v.Y / s, v.Z / s} }
func (v Vec3) Neg() Vec3            { return Vec3{-v.X, -v.Y, -v.Z} }
func (a Vec3) Hadamard(b Vec3) Vec3 { return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }

// Dot returns the dot product between two vectors.
func (a Vec3) Dot(b Vec3) Real {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean length of the vector.
func (v Vec3) Len() Real { return math.Sqrt(v.Dot(v)) }

// Norm returns a unit-length version of the vector.
// A zero vector is returned unchanged.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Axis returns component i (0=X, 1=Y, 2=Z).
func (v Vec3) Axis(i int) Real {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Clamp01 clamps each channel to [0,1].
func (v Vec3) Clamp01() Vec3 {
	return Vec3{saturate(v.X), saturate(v.Y), saturate(v.Z)}
}

// IsZero reports whether all components are exactly zero.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Lerp blends a toward b by k.
func Lerp(a, b Vec3, k Real) Vec3 { return a.Mul(1 - k).Add(b.Mul(k)) }
