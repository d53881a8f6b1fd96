package extract

import (
	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/ibom/pcbdata"
)

// Silkscreen collects the front and back silkscreen drawings: board
// drawings, then each footprint's reference, value and graphics.
func (e *Extractor) Silkscreen(b board.Board) pcbdata.Silkscreen {
	drawings := append([]*board.Drawing(nil), b.Drawings()...)
	for _, fp := range b.Footprints() {
		if fp.ReferenceText != nil {
			drawings = append(drawings, fp.ReferenceText)
		}
		if fp.ValueText != nil {
			drawings = append(drawings, fp.ValueText)
		}
		drawings = append(drawings, fp.Graphics...)
	}

	silk := pcbdata.Silkscreen{
		Front: []pcbdata.Drawing{},
		Back:  []pcbdata.Drawing{},
	}
	for _, d := range drawings {
		if d.Layer != board.FSilkS && d.Layer != board.BSilkS {
			continue
		}
		parsed := e.ParseDrawing(d)
		if parsed == nil {
			continue
		}
		if d.Layer == board.FSilkS {
			silk.Front = append(silk.Front, parsed)
		} else {
			silk.Back = append(silk.Back, parsed)
		}
	}
	return silk
}
