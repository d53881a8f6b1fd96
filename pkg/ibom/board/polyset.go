package board

// PolySet is a set of polygons, each an outline with optional holes.
type PolySet struct {
	Polygons []Polygon
}

// Polygon is a closed outline plus the holes cut out of it.
type Polygon struct {
	Outline []Point
	Holes   [][]Point
}

// OutlineCount returns the number of polygons in the set.
func (ps PolySet) OutlineCount() int {
	return len(ps.Polygons)
}

// Outline returns the outline of the i-th polygon.
func (ps PolySet) Outline(i int) []Point {
	return ps.Polygons[i].Outline
}

// HasHoles reports whether any polygon has holes.
func (ps PolySet) HasHoles() bool {
	for _, p := range ps.Polygons {
		if len(p.Holes) > 0 {
			return true
		}
	}
	return false
}

// IsSelfIntersecting reports whether the outline or a hole of any polygon
// crosses itself. Polygons in the set are not tested against each other.
func (ps PolySet) IsSelfIntersecting() bool {
	for _, p := range ps.Polygons {
		if ringSelfIntersects(p.Outline) {
			return true
		}
		for _, h := range p.Holes {
			if ringSelfIntersects(h) {
				return true
			}
		}
	}
	return false
}

// ringSelfIntersects checks every pair of non-adjacent edges of a closed ring.
// The ring may or may not repeat its first point at the end.
func ringSelfIntersects(ring []Point) bool {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	n := len(ring)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := ring[i], ring[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// edges sharing a vertex are adjacent
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := ring[j], ring[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)

	if d1 != d2 && d3 != d4 && d1 != 0 && d2 != 0 && d3 != 0 && d4 != 0 {
		return true
	}

	// collinear touching cases
	if d1 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if d2 == 0 && onSegment(q1, q2, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	return false
}

// orientation returns the sign of the cross product (b-a)x(c-a).
func orientation(a, b, c Point) int {
	// float64 keeps nanometre products of large boards from overflowing
	v := float64(b.X-a.X)*float64(c.Y-a.Y) - float64(b.Y-a.Y)*float64(c.X-a.X)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func onSegment(a, b, p Point) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}
