package extract

import (
	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/ibom/geom"
	"github.com/OpenTraceLab/ibom/pkg/ibom/pcbdata"
)

var drillShapes = map[board.DrillShape]string{
	board.DrillShapeCircle: "circle",
	board.DrillShapeOblong: "oblong",
}

// ParsePad converts a pad. It returns nil for shapes the board-model API
// does not support.
func (e *Extractor) ParsePad(p *board.Pad) *pcbdata.Pad {
	shape, ok := e.padShapes[p.Shape]
	if !ok {
		e.logger.Info("Unsupported pad shape, skipping", "shape", p.Shape, "pad", p.Name)
		return nil
	}

	layers := []pcbdata.Side{}
	if p.Layers.Contains(board.FCu) {
		layers = append(layers, pcbdata.Front)
	}
	if p.Layers.Contains(board.BCu) {
		layers = append(layers, pcbdata.Back)
	}

	// Pads rotate the opposite way to drawings
	angle := -geom.Angle(p.Orientation)
	if angle == 0 {
		angle = 0 // no negative zero
	}

	pad := &pcbdata.Pad{
		Layers: layers,
		Pos:    geom.Point(p.Position),
		Size:   geom.Size(p.Size),
		Angle:  angle,
		Shape:  shape,
	}

	if p.Name == "1" || p.Name == "A1" {
		pad.Pin1 = 1
	}

	switch shape {
	case "custom":
		if p.CustomShape.HasHoles() {
			e.logger.Warn("Detected holes in custom pad polygons", "pad", p.Name)
		}
		if p.CustomShape.IsSelfIntersecting() {
			e.logger.Warn("Detected self intersecting polygons in custom pad", "pad", p.Name)
		}
		pad.Polygons = geom.Outlines(p.CustomShape)
	case "roundrect":
		radius := geom.Normalize(p.RoundRectRadius)
		pad.Radius = &radius
	}

	if p.Attribute == board.PadAttribStandard || p.Attribute == board.PadAttribHoleNotPlated {
		pad.Type = pcbdata.PadThroughHole
		pad.DrillShape = drillShapes[p.DrillShape]
		drill := geom.Size(p.DrillSize)
		pad.DrillSize = &drill
	} else {
		pad.Type = pcbdata.PadSMD
	}

	if e.caps.PadOffset {
		offset := geom.Point(p.Offset)
		pad.Offset = &offset
	}

	return pad
}
