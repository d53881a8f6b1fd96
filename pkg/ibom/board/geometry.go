package board

// Point is a position in native units (nanometres).
type Point struct {
	X, Y int64
}

// Size is a width/height pair in native units.
type Size struct {
	W, H int64
}

// Rect is an axis-aligned rectangle. Min is the top-left corner.
type Rect struct {
	Min, Max Point
}

// NewRect builds a normalized rectangle from two corners.
func NewRect(a, b Point) Rect {
	r := Rect{Min: a, Max: b}
	return r.Normalize()
}

// Normalize swaps corners so that Min <= Max on both axes.
func (r Rect) Normalize() Rect {
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Merge returns the smallest rectangle containing r and o.
func (r Rect) Merge(o Rect) Rect {
	return Rect{
		Min: Point{X: min(r.Min.X, o.Min.X), Y: min(r.Min.Y, o.Min.Y)},
		Max: Point{X: max(r.Max.X, o.Max.X), Y: max(r.Max.Y, o.Max.Y)},
	}
}

// Inflate grows the rectangle by d on every side.
func (r Rect) Inflate(d int64) Rect {
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Position returns the top-left corner.
func (r Rect) Position() Point {
	return r.Min
}

// Size returns the rectangle dimensions.
func (r Rect) Size() Size {
	return Size{W: r.Max.X - r.Min.X, H: r.Max.Y - r.Min.Y}
}
