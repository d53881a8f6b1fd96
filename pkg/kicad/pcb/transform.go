package pcb

import "math"

// Transform maps a footprint-local point to board coordinates, applying
// the footprint rotation and then its position.
func (fp *Footprint) Transform(p Point) Point {
	x, y := float64(p.X), float64(p.Y)

	// Apply footprint rotation (negate to match the y-down board system)
	if fp.Angle != 0 {
		angleRad := -fp.Angle * DecidegreesToDegrees * math.Pi / 180.0
		cos := math.Cos(angleRad)
		sin := math.Sin(angleRad)
		newX := x*cos - y*sin
		newY := x*sin + y*cos
		x = newX
		y = newY
	}

	return Point{
		X: int64(math.Round(x)) + fp.Position.X,
		Y: int64(math.Round(y)) + fp.Position.Y,
	}
}

// Rotate rotates a vector by angle decidegrees using the same convention
// as Transform, without translation.
func Rotate(p Point, angle float64) Point {
	if angle == 0 {
		return p
	}
	fp := Footprint{Angle: angle}
	return fp.Transform(p)
}
