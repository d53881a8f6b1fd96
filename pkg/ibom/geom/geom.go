// Package geom converts native board units into document units.
package geom

import (
	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/ibom/pcbdata"
)

// Scale converts nanometres to millimetres.
const Scale = 1e-6

// AngleScale converts decidegrees to degrees.
const AngleScale = 0.1

// Normalize converts a native length or coordinate to millimetres.
func Normalize(v int64) float64 {
	return float64(v) * Scale
}

// Point converts a native point, keeping the axis order.
func Point(p board.Point) pcbdata.Point {
	return pcbdata.Point{Normalize(p.X), Normalize(p.Y)}
}

// Size converts a native size to a [w, h] pair.
func Size(s board.Size) pcbdata.Point {
	return pcbdata.Point{Normalize(s.W), Normalize(s.H)}
}

// Angle converts decidegrees to degrees.
func Angle(decideg float64) float64 {
	return decideg * AngleScale
}

// Outlines converts every outline of a polygon set.
func Outlines(ps board.PolySet) [][]pcbdata.Point {
	result := make([][]pcbdata.Point, 0, ps.OutlineCount())
	for i := 0; i < ps.OutlineCount(); i++ {
		outline := ps.Outline(i)
		points := make([]pcbdata.Point, len(outline))
		for j, p := range outline {
			points[j] = Point(p)
		}
		result = append(result, points)
	}
	return result
}
