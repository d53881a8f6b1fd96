package kicad

import (
	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
	"github.com/OpenTraceLab/ibom/pkg/kicad/pcb"
)

// layerByName maps file layer names, including the long names newer
// releases display, to board layers.
var layerByName = map[string]board.Layer{
	pcb.LayerFrontCopper: board.FCu,
	pcb.LayerBackCopper:  board.BCu,
	pcb.LayerFrontSilk:   board.FSilkS,
	pcb.LayerBackSilk:    board.BSilkS,
	"F.Silkscreen":       board.FSilkS,
	"B.Silkscreen":       board.BSilkS,
	pcb.LayerEdgeCuts:    board.EdgeCuts,
}

func layerOf(name string) board.Layer {
	if l, ok := layerByName[name]; ok {
		return l
	}
	return board.LayerOther
}

// copperLayers returns the outer copper layers a pad is present on.
func copperLayers(set pcb.LayerSet) board.LayerSet {
	layers := board.LayerSet{}
	if set.Contains(pcb.LayerFrontCopper) {
		layers = append(layers, board.FCu)
	}
	if set.Contains(pcb.LayerBackCopper) {
		layers = append(layers, board.BCu)
	}
	return layers
}
