package kicad

import (
	"math"

	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/kicad/pcb"
)

// circleSegments is the number of sides used to approximate circles in
// custom pad outlines.
const circleSegments = 32

// customShape builds the pad-local outlines of a custom pad: the anchor
// shape followed by one outline per primitive.
func customShape(p *pcb.Pad) board.PolySet {
	var ps board.PolySet
	add := func(outline []board.Point) {
		if len(outline) >= 3 {
			ps.Polygons = append(ps.Polygons, board.Polygon{Outline: outline})
		}
	}

	if p.Anchor == "rect" {
		add(rectOutline(pcb.Point{X: -p.Size.W / 2, Y: -p.Size.H / 2}, pcb.Point{X: p.Size.W / 2, Y: p.Size.H / 2}))
	} else {
		add(circleOutline(pcb.Point{}, p.Size.W/2))
	}

	for i := range p.Primitives {
		prim := &p.Primitives[i]
		switch prim.Kind {
		case pcb.GraphicPoly:
			outline := make([]board.Point, len(prim.Points))
			for j, pt := range prim.Points {
				outline[j] = point(pt)
			}
			add(outline)

		case pcb.GraphicCircle:
			r := distance(point(prim.Start), point(prim.End))
			add(circleOutline(prim.Start, r+prim.Width/2))

		case pcb.GraphicRect:
			add(rectOutline(prim.Start, prim.End))

		case pcb.GraphicLine:
			add(thickSegment(prim.Start, prim.End, prim.Width))

		case pcb.GraphicArc:
			add(thickArc(prim.Start, prim.End, prim.Angle, prim.Width))
		}
	}

	return ps
}

func rectOutline(a, b pcb.Point) []board.Point {
	return []board.Point{
		{X: a.X, Y: a.Y},
		{X: b.X, Y: a.Y},
		{X: b.X, Y: b.Y},
		{X: a.X, Y: b.Y},
	}
}

func circleOutline(center pcb.Point, radius int64) []board.Point {
	if radius <= 0 {
		return nil
	}
	outline := make([]board.Point, circleSegments)
	for i := range outline {
		a := 2 * math.Pi * float64(i) / circleSegments
		outline[i] = board.Point{
			X: center.X + int64(math.Round(float64(radius)*math.Cos(a))),
			Y: center.Y + int64(math.Round(float64(radius)*math.Sin(a))),
		}
	}
	return outline
}

// thickSegment returns the rectangle covered by a line of the given width.
func thickSegment(a, b pcb.Point, width int64) []board.Point {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return nil
	}
	nx := int64(math.Round(-dy / length * float64(width) / 2))
	ny := int64(math.Round(dx / length * float64(width) / 2))
	return []board.Point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}
}

// thickArc returns the ring sector covered by an arc of the given width.
func thickArc(center, start pcb.Point, sweep float64, width int64) []board.Point {
	c, s := point(center), point(start)
	r := float64(distance(c, s))
	if r == 0 || width <= 0 {
		return nil
	}
	a0 := angleOf(c, s) * math.Pi / 1800
	span := sweep * math.Pi / 1800
	steps := max(2, int(math.Ceil(math.Abs(sweep)/3600*circleSegments)))

	ring := func(radius float64, reverse bool) []board.Point {
		pts := make([]board.Point, steps+1)
		for i := 0; i <= steps; i++ {
			k := i
			if reverse {
				k = steps - i
			}
			a := a0 + span*float64(k)/float64(steps)
			pts[i] = board.Point{
				X: c.X + int64(math.Round(radius*math.Cos(a))),
				Y: c.Y + int64(math.Round(radius*math.Sin(a))),
			}
		}
		return pts
	}

	half := float64(width) / 2
	outline := ring(r+half, false)
	return append(outline, ring(math.Max(r-half, 0), true)...)
}
