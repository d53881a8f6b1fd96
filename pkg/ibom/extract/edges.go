package extract

import (
	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/ibom/geom"
	"github.com/OpenTraceLab/ibom/pkg/ibom/pcbdata"
)

// Edges collects the board outline from board drawings and footprint
// graphics on the Edge.Cuts layer, along with its bounding box. It returns
// ErrNoOutline when nothing on that layer parses.
func (e *Extractor) Edges(b board.Board) ([]pcbdata.Drawing, pcbdata.BBox, error) {
	var (
		edges []pcbdata.Drawing
		bbox  board.Rect
		found bool
	)

	for _, d := range boardAndFootprintGraphics(b) {
		if d.Layer != board.EdgeCuts {
			continue
		}
		parsed := e.ParseDrawing(d)
		if parsed == nil {
			continue
		}
		edges = append(edges, parsed)
		if !found {
			bbox = d.BBox
			found = true
		} else {
			bbox = bbox.Merge(d.BBox)
		}
	}

	if !found {
		return nil, pcbdata.BBox{}, ErrNoOutline
	}

	bbox = bbox.Normalize()
	return edges, pcbdata.BBox{
		MinX: geom.Normalize(bbox.Min.X),
		MinY: geom.Normalize(bbox.Min.Y),
		MaxX: geom.Normalize(bbox.Max.X),
		MaxY: geom.Normalize(bbox.Max.Y),
	}, nil
}

// boardAndFootprintGraphics returns the board drawings followed by the
// graphics of every footprint.
func boardAndFootprintGraphics(b board.Board) []*board.Drawing {
	drawings := append([]*board.Drawing(nil), b.Drawings()...)
	for _, fp := range b.Footprints() {
		drawings = append(drawings, fp.Graphics...)
	}
	return drawings
}
