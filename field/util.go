// Package field holds the shared numeric primitives used by every stage of
// the terrain pipeline: the 2D grid type, slope/buildability derivation,
// and small generic helpers. Nothing in this package knows about zones,
// erosion, or hydrology.
package field

import "golang.org/x/exp/constraints"

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Clamp[T constraints.Ordered](val, minimum, maximum T) T {
	return Min(Max(val, minimum), maximum)
}

// MapRange affine-maps number from [oldMin,oldMax] to [newMin,newMax],
// clamping the result into the new range when clampToRange is set.
func MapRange(number, oldMin, oldMax, newMin, newMax float32, clampToRange bool) float32 {
	oldRange := oldMax - oldMin
	newRange := newMax - newMin
	normalized := (number - oldMin) / oldRange
	mapped := newMin + normalized*newRange
	if clampToRange {
		mapped = Clamp(mapped, newMin, newMax)
	}
	return mapped
}

func Square(a float32) float32 {
	return a * a
}

// Smoothstep is the cubic 3t²-2t³ blend used for C¹-continuous transitions,
// with edge0/edge1 allowed in either order (a falling smoothstep when
// edge0 > edge1, as used by the ridge enhancer's blend weight).
func Smoothstep(edge0, edge1, x float32) float32 {
	var t float32
	if edge0 == edge1 {
		if x < edge0 {
			t = 0
		} else {
			t = 1
		}
	} else {
		t = Clamp((x-edge0)/(edge1-edge0), 0, 1)
	}
	return t * t * (3 - 2*t)
}
