package erosion

import "github.com/duskfield/heightmap/field"

// particle is the transient runtime state of one simulated raindrop. It
// lives at most MaxLifetime steps and is never persisted.
type particle struct {
	pos      field.Vec2f
	vel      field.Vec2f
	water    float32
	sediment float32
	speed    float32 // |v| carried forward for the capacity formula
	lastH    float32
}

func spawn(x, y float32, h *field.Grid) particle {
	return particle{
		pos:   field.Vec2f{X: x, Y: y},
		water: 1,
		lastH: h.Sample(x, y),
	}
}

// gradientAt computes ∇H from the four corners of the cell containing
// (x,y), not a fixed 5-point stencil, so sub-pixel motion yields a
// continuous gradient.
func gradientAt(h *field.Grid, x, y float32) (gx, gy float32) {
	n := h.N
	ix := int(x)
	iy := int(y)
	ix1 := field.Min(ix+1, n-1)
	iy1 := field.Min(iy+1, n-1)

	n00 := h.At(ix, iy)
	n10 := h.At(ix1, iy)
	n01 := h.At(ix, iy1)
	n11 := h.At(ix1, iy1)

	gx = (n10 + n11) - (n00 + n01)
	gy = (n01 + n11) - (n00 + n10)
	return
}

// deposit raises the four corners of the cell containing (x,y) by amount,
// bilinearly weighted, preserving mass exactly and avoiding grid-aligned
// scarring.
func deposit(h *field.Grid, x, y, amount float32) {
	splat(h, x, y, amount)
}

// erode is deposit's mirror: it lowers the four corners by amount.
func erode(h *field.Grid, x, y, amount float32) {
	splat(h, x, y, -amount)
}

func splat(h *field.Grid, x, y, delta float32) {
	n := h.N
	cx := int(x)
	cy := int(y)
	fx := x - float32(cx)
	fy := y - float32(cy)

	x1 := field.Min(cx+1, n-1)
	y1 := field.Min(cy+1, n-1)

	h.Values[cy*n+cx] += delta * (1 - fx) * (1 - fy)
	h.Values[cy*n+x1] += delta * fx * (1 - fy)
	h.Values[y1*n+cx] += delta * (1 - fx) * fy
	h.Values[y1*n+x1] += delta * fx * fy
}
