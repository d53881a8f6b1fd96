package extract

import (
	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/ibom/geom"
	"github.com/OpenTraceLab/ibom/pkg/ibom/pcbdata"
)

// ParseDrawing converts a drawing or text. It returns nil when the
// primitive is skipped: unsupported class or shape, polygons without
// outline support, and invisible texts.
func (e *Extractor) ParseDrawing(d *board.Drawing) pcbdata.Drawing {
	switch d.Class {
	case board.ClassDrawSegment, board.ClassModuleGraphic:
		return e.parseShape(d)
	case board.ClassBoardText, board.ClassModuleText:
		return e.parseText(d)
	}

	class := d.RawClass
	if class == "" {
		class = d.Class.String()
	}
	e.logger.Info("Unsupported drawing class, skipping", "class", class, "layer", d.Layer)
	return nil
}

func (e *Extractor) parseShape(d *board.Drawing) pcbdata.Drawing {
	switch d.Shape {
	case board.ShapeSegment:
		return pcbdata.Segment{
			Start: geom.Point(d.Start),
			End:   geom.Point(d.End),
			Width: geom.Normalize(d.Width),
		}

	case board.ShapeCircle:
		return pcbdata.Circle{
			Start:  geom.Point(d.Start),
			Radius: geom.Normalize(d.Radius),
			Width:  geom.Normalize(d.Width),
		}

	case board.ShapeArc:
		a1 := geom.Angle(d.ArcAngleStart)
		a2 := geom.Angle(d.ArcAngleStart + d.Angle)
		// Only the angular interval is kept, not the sweep direction
		if d.Angle < 0 {
			a1, a2 = a2, a1
		}
		return pcbdata.Arc{
			Start:      geom.Point(d.Start),
			Radius:     geom.Normalize(d.Radius),
			StartAngle: a1,
			EndAngle:   a2,
			Width:      geom.Normalize(d.Width),
		}

	case board.ShapePolygon:
		if !e.caps.PolygonOutlines {
			e.logger.Info("Polygons not supported by this board model, skipping", "layer", d.Layer)
			return nil
		}
		var angle float64
		if d.Parent != nil {
			angle = geom.Angle(d.Parent.Orientation)
		}
		return pcbdata.Polygon{
			Pos:      geom.Point(d.Start),
			Angle:    angle,
			Polygons: geom.Outlines(d.PolyShape),
		}
	}

	e.logger.Info("Unsupported shape, skipping", "shape", d.Shape, "layer", d.Layer)
	return nil
}

func (e *Extractor) parseText(d *board.Drawing) pcbdata.Drawing {
	if !d.Visible {
		return nil
	}

	var angle float64
	switch {
	case d.Class == board.ClassModuleText:
		angle = geom.Angle(d.DrawRotation)
	case e.caps.TextAngle:
		angle = geom.Angle(d.TextAngle)
	default:
		angle = geom.Angle(d.Orientation)
	}

	size := d.Size
	if e.caps.TextSize {
		size = d.TextSize
	}

	text := d.Text
	if e.caps.ShownText {
		text = d.ShownText
	}

	return pcbdata.Text{
		Pos:          geom.Point(d.Position),
		Text:         text,
		Height:       geom.Normalize(size.H),
		Width:        geom.Normalize(size.W),
		HorizJustify: d.HorizJustify,
		Angle:        angle,
	}
}
