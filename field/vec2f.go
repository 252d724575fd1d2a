// SPDX-FileCopyrightText: 2026 Duskfield Maintainers
// SPDX-License-Identifier: AGPL-3.0-or-later
package field

import (
	"math"

	"github.com/chewxy/math32"
)

// Vec2f is a 2D float32 vector used for sub-pixel particle position and
// velocity in the erosion simulator.
type Vec2f struct {
	X float32
	Y float32
}

func (vec Vec2f) Mul(factor float32) Vec2f {
	vec.X *= factor
	vec.Y *= factor
	return vec
}

func (vec Vec2f) AddScaled(otherVec Vec2f, factor float32) Vec2f {
	vec.X += otherVec.X * factor
	vec.Y += otherVec.Y * factor
	return vec
}

func (vec Vec2f) Add(otherVec Vec2f) Vec2f {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	return vec
}

func (vec Vec2f) Sub(otherVec Vec2f) Vec2f {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	return vec
}

func (vec Vec2f) Dot(otherVec Vec2f) float32 {
	return vec.X*otherVec.X + vec.Y*otherVec.Y
}

func (vec Vec2f) Length() float32 {
	return math32.Hypot(vec.X, vec.Y)
}

func (vec Vec2f) LengthSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y
}

func Lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

// Norm returns a unit vector in the same direction, or the zero vector if
// vec is (near) zero length.
func (vec Vec2f) Norm() Vec2f {
	l := vec.Length()
	if l < 1e-8 {
		return Vec2f{}
	}
	return vec.Mul(1.0 / l)
}

// Floor returns the component-wise floor, used to split a sub-pixel
// position into its integer cell and fractional offset.
func (vec Vec2f) Floor() Vec2f {
	// Use math.Floor instead of math32's because it uses assembly.
	vec.X = float32(math.Floor(float64(vec.X)))
	vec.Y = float32(math.Floor(float64(vec.Y)))
	return vec
}
