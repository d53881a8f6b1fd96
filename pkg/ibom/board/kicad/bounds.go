package kicad

import (
	"math"

	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/kicad/pcb"
)

// footprintMinSize is the half size of the box around the placement point
// that a footprint's bounding box always contains.
const footprintMinSize = 250_000

// footprintRect returns the bounding box of a footprint's drawings and
// pads, excluding texts.
func footprintRect(fp *board.Footprint) board.Rect {
	bbox := board.NewRect(fp.Position, fp.Position).Inflate(footprintMinSize)

	for _, d := range fp.Graphics {
		if d.Class != board.ClassModuleGraphic {
			continue
		}
		bbox = bbox.Merge(d.BBox)
	}

	for _, pad := range fp.Pads {
		bbox = bbox.Merge(padRect(pad))
	}

	return bbox
}

// padRect returns the board-space bounding box of a pad's copper shape.
func padRect(pad *board.Pad) board.Rect {
	hw, hh := pad.Size.W/2, pad.Size.H/2
	local := []board.Point{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	for _, poly := range pad.CustomShape.Polygons {
		local = append(local, poly.Outline...)
	}

	placed := make([]board.Point, len(local))
	for i, p := range local {
		shifted := pcb.Point{X: p.X + pad.Offset.X, Y: p.Y + pad.Offset.Y}
		r := pcb.Rotate(shifted, pad.Orientation)
		placed[i] = board.Point{X: pad.Position.X + r.X, Y: pad.Position.Y + r.Y}
	}
	return pointsRect(placed)
}

func segmentRect(a, b board.Point, width int64) board.Rect {
	return board.NewRect(a, b).Inflate(width / 2)
}

// pointsRect returns the bounding box of a point list. An empty list
// yields the empty rectangle at the origin.
func pointsRect(points []board.Point) board.Rect {
	if len(points) == 0 {
		return board.Rect{}
	}
	bbox := board.NewRect(points[0], points[0])
	for _, p := range points[1:] {
		bbox = bbox.Merge(board.NewRect(p, p))
	}
	return bbox
}

func distance(a, b board.Point) int64 {
	return int64(math.Round(math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))))
}

// angleOf returns the direction from center to p in decidegrees within
// [0, 3600), measured in the y-down board system.
func angleOf(center, p board.Point) float64 {
	a := math.Atan2(float64(p.Y-center.Y), float64(p.X-center.X)) * 1800 / math.Pi
	if a < 0 {
		a += 3600
	}
	return a
}

// arcRect returns the bounding box of an arc given by centre, radius,
// start direction and sweep, all angles in decidegrees.
func arcRect(center board.Point, radius int64, start, sweep float64) board.Rect {
	at := func(decideg float64) board.Point {
		rad := decideg * math.Pi / 1800
		return board.Point{
			X: center.X + int64(math.Round(float64(radius)*math.Cos(rad))),
			Y: center.Y + int64(math.Round(float64(radius)*math.Sin(rad))),
		}
	}

	lo, hi := start, start+sweep
	if lo > hi {
		lo, hi = hi, lo
	}

	points := []board.Point{at(lo), at(hi)}
	// Axis extremes the arc passes through
	for q := math.Ceil(lo/900) * 900; q <= hi; q += 900 {
		points = append(points, at(q))
	}
	return pointsRect(points)
}
