package kicad

import (
	"math"

	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/kicad/pcb"
)

type converter struct {
	caps board.Capabilities
	vars map[string]string
}

func point(p pcb.Point) board.Point {
	return board.Point{X: p.X, Y: p.Y}
}

func size(s pcb.Size) board.Size {
	return board.Size{W: s.W, H: s.H}
}

// attribute maps (attr ...) keywords to the native attribute code.
func attribute(fp *pcb.Footprint) board.Attribute {
	switch {
	case fp.HasAttribute("virtual"), fp.HasAttribute("board_only"), fp.HasAttribute("exclude_from_bom"):
		return board.AttrVirtual
	case fp.HasAttribute("smd"):
		return board.AttrNormalInsert
	}
	return board.AttrNormal
}

func (c *converter) footprint(fp *pcb.Footprint) *board.Footprint {
	out := &board.Footprint{
		Reference:   fp.Reference,
		Value:       fp.Value,
		FPID:        board.FPID{Library: fp.Library, Name: fp.Name},
		Attribute:   attribute(fp),
		Layer:       layerOf(fp.Layer),
		Position:    point(fp.Position),
		Orientation: fp.Angle,
	}

	vars := footprintVars(c.vars, fp)
	if fp.ReferenceText != nil {
		out.ReferenceText = c.text(fp.ReferenceText, fp, out, vars)
	}
	if fp.ValueText != nil {
		out.ValueText = c.text(fp.ValueText, fp, out, vars)
	}

	for i := range fp.Graphics {
		g := &fp.Graphics[i]
		if g.Kind == pcb.GraphicText {
			out.Graphics = append(out.Graphics, c.text(g.Text, fp, out, vars))
			continue
		}
		out.Graphics = append(out.Graphics, c.drawings(g, fp, out)...)
	}

	for i := range fp.Pads {
		out.Pads = append(out.Pads, c.pad(&fp.Pads[i], fp))
	}

	out.BBox = footprintRect(out)
	return out
}

var padShapes = map[string]board.PadShape{
	"circle":    board.PadShapeCircle,
	"rect":      board.PadShapeRect,
	"oval":      board.PadShapeOval,
	"trapezoid": board.PadShapeTrapezoid,
	"roundrect": board.PadShapeRoundRect,
	"custom":    board.PadShapeCustom,
}

var padAttributes = map[string]board.PadAttribute{
	"thru_hole":    board.PadAttribStandard,
	"smd":          board.PadAttribSMD,
	"connect":      board.PadAttribConn,
	"np_thru_hole": board.PadAttribHoleNotPlated,
}

func (c *converter) pad(p *pcb.Pad, fp *pcb.Footprint) *board.Pad {
	out := &board.Pad{
		Name:        p.Number,
		Layers:      copperLayers(p.Layers),
		Position:    point(fp.Transform(p.Position)),
		Size:        size(p.Size),
		Orientation: p.Angle,
		Shape:       board.PadShape(-1),
		Attribute:   padAttributes[p.Type],
		DrillSize:   size(p.Drill.Size),
	}

	if shape, ok := padShapes[p.Shape]; ok {
		out.Shape = shape
	}
	if out.Shape == board.PadShapeRoundRect && p.Chamfered {
		out.Shape = board.PadShapeChamferedRect
	}

	if p.Drill.Oval {
		out.DrillShape = board.DrillShapeOblong
	}

	if c.caps.PadOffset {
		out.Offset = point(p.Drill.Offset)
	}
	if c.caps.RoundRectPads && (out.Shape == board.PadShapeRoundRect || out.Shape == board.PadShapeChamferedRect) {
		out.RoundRectRadius = int64(math.Round(p.RoundRectRatio * float64(min(p.Size.W, p.Size.H))))
	}
	if c.caps.CustomPads && out.Shape == board.PadShapeCustom {
		out.CustomShape = customShape(p)
	}

	return out
}

// drawings converts one graphic. Rectangles are presented as their four
// sides. fp and parent are nil for board-level graphics.
func (c *converter) drawings(g *pcb.Graphic, fp *pcb.Footprint, parent *board.Footprint) []*board.Drawing {
	xf := func(p pcb.Point) board.Point {
		if fp == nil {
			return point(p)
		}
		return point(fp.Transform(p))
	}

	class := board.ClassDrawSegment
	if parent != nil {
		class = board.ClassModuleGraphic
	}

	base := board.Drawing{
		Class:  class,
		Layer:  layerOf(g.Layer),
		Parent: parent,
		Width:  g.Width,
	}

	switch g.Kind {
	case pcb.GraphicLine:
		d := base
		d.Shape = board.ShapeSegment
		d.Start, d.End = xf(g.Start), xf(g.End)
		d.BBox = segmentRect(d.Start, d.End, d.Width)
		return []*board.Drawing{&d}

	case pcb.GraphicRect:
		corners := [4]pcb.Point{
			g.Start,
			{X: g.End.X, Y: g.Start.Y},
			g.End,
			{X: g.Start.X, Y: g.End.Y},
		}
		sides := make([]*board.Drawing, 0, 4)
		for i := range corners {
			d := base
			d.Shape = board.ShapeSegment
			d.Start, d.End = xf(corners[i]), xf(corners[(i+1)%4])
			d.BBox = segmentRect(d.Start, d.End, d.Width)
			sides = append(sides, &d)
		}
		return sides

	case pcb.GraphicCircle:
		d := base
		d.Shape = board.ShapeCircle
		d.Start, d.End = xf(g.Start), xf(g.End)
		d.Radius = distance(d.Start, d.End)
		d.BBox = board.NewRect(d.Start, d.Start).Inflate(d.Radius + d.Width/2)
		return []*board.Drawing{&d}

	case pcb.GraphicArc:
		d := base
		d.Shape = board.ShapeArc
		d.Start, d.End = xf(g.Start), xf(g.End)
		d.Radius = distance(d.Start, d.End)
		d.ArcAngleStart = angleOf(d.Start, d.End)
		d.Angle = g.Angle
		d.BBox = arcRect(d.Start, d.Radius, d.ArcAngleStart, d.Angle).Inflate(d.Width / 2)
		return []*board.Drawing{&d}

	case pcb.GraphicPoly:
		d := base
		d.Shape = board.ShapePolygon
		// Footprint polygons keep local outlines, positioned and rotated
		// by the footprint when drawn.
		if fp != nil {
			d.Start = point(fp.Position)
		}
		outline := make([]board.Point, len(g.Points))
		placed := make([]board.Point, len(g.Points))
		for i, p := range g.Points {
			outline[i] = point(p)
			placed[i] = xf(p)
		}
		if c.caps.PolygonOutlines {
			d.PolyShape = board.PolySet{Polygons: []board.Polygon{{Outline: outline}}}
		}
		d.BBox = pointsRect(placed).Inflate(d.Width / 2)
		return []*board.Drawing{&d}

	case pcb.GraphicCurve:
		d := base
		d.Shape = board.ShapeCurve
		placed := make([]board.Point, len(g.Points))
		for i, p := range g.Points {
			placed[i] = xf(p)
		}
		if len(placed) > 0 {
			d.Start, d.End = placed[0], placed[len(placed)-1]
		}
		d.BBox = pointsRect(placed).Inflate(d.Width / 2)
		return []*board.Drawing{&d}

	case pcb.GraphicText:
		return []*board.Drawing{c.text(g.Text, nil, nil, c.vars)}

	case pcb.GraphicDimension:
		d := base
		d.Class = board.ClassOther
		d.RawClass = "DIMENSION"
		return []*board.Drawing{&d}
	}

	return nil
}

// drawRotation is the angle a footprint text is drawn at. Upright texts
// never read upside down, so their rotation stays within -90 to 90 degrees.
func drawRotation(angle float64, keepUpright bool) float64 {
	if !keepUpright {
		angle = math.Mod(angle, 3600)
		if angle < 0 {
			angle += 3600
		}
		return angle
	}
	for angle > 900 {
		angle -= 1800
	}
	for angle < -900 {
		angle += 1800
	}
	return angle
}

// text converts a board text (fp nil) or a footprint text. File angles are
// absolute, the orientation of footprint texts is kept relative to the
// footprint the way the board model stores it.
func (c *converter) text(t *pcb.Text, fp *pcb.Footprint, parent *board.Footprint, vars map[string]string) *board.Drawing {
	d := &board.Drawing{
		Class:        board.ClassBoardText,
		Layer:        layerOf(t.Layer),
		Parent:       parent,
		Visible:      !t.Hidden,
		Position:     point(t.Position),
		Text:         t.Text,
		Orientation:  t.Angle,
		DrawRotation: t.Angle,
		Size:         board.Size{W: t.Width, H: t.Height},
		HorizJustify: t.Justify,
		Width:        t.Thickness,
	}

	if fp != nil {
		d.Class = board.ClassModuleText
		d.Position = point(fp.Transform(t.Position))
		d.Orientation = t.Angle - fp.Angle
		d.DrawRotation = drawRotation(t.Angle, t.KeepUpright)
	}

	if c.caps.TextAngle {
		d.TextAngle = d.Orientation
	}
	if c.caps.TextSize {
		d.TextSize = d.Size
	}
	if c.caps.ShownText {
		d.ShownText = shownText(t.Text, vars)
	}

	d.BBox = board.NewRect(d.Position, d.Position).Inflate(t.Height / 2)
	return d
}
