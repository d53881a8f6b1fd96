package extract

import (
	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/ibom/geom"
	"github.com/OpenTraceLab/ibom/pkg/ibom/pcbdata"
)

var copperSides = map[board.Layer]pcbdata.Side{
	board.FCu: pcbdata.Front,
	board.BCu: pcbdata.Back,
}

// Footprints converts every footprint, keyed by reference designator.
// When references repeat, the footprint that comes last wins.
func (e *Extractor) Footprints(b board.Board) map[string]*pcbdata.Module {
	modules := make(map[string]*pcbdata.Module)

	for _, fp := range b.Footprints() {
		m := e.footprint(fp)
		if _, dup := modules[fp.Reference]; dup {
			e.logger.Debug("Duplicate reference, keeping the later footprint", "ref", fp.Reference)
		}
		modules[fp.Reference] = m
	}

	return modules
}

func (e *Extractor) footprint(fp *board.Footprint) *pcbdata.Module {
	m := &pcbdata.Module{
		Ref:    fp.Reference,
		Center: geom.Point(fp.Center()),
		BBox: pcbdata.ModuleBBox{
			Pos:  geom.Point(fp.BBox.Position()),
			Size: geom.Size(fp.BBox.Size()),
		},
		Pads:     []pcbdata.Pad{},
		Drawings: []pcbdata.ModuleDrawing{},
		Layer:    copperSides[fp.Layer],
	}

	// Copper drawings only, silkscreen is collected separately
	for _, d := range fp.Graphics {
		side, ok := copperSides[d.Layer]
		if !ok {
			continue
		}
		parsed := e.ParseDrawing(d)
		if parsed == nil {
			continue
		}
		m.Drawings = append(m.Drawings, pcbdata.ModuleDrawing{Layer: side, Drawing: parsed})
	}

	for _, p := range fp.Pads {
		if pad := e.ParsePad(p); pad != nil {
			m.Pads = append(m.Pads, *pad)
		}
	}

	return m
}
