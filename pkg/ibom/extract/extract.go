// Package extract converts board drawings, texts, pads and footprints into
// render-ready document records.
//
// Unsupported primitives are skipped and logged, never treated as errors.
// The only fatal condition is a board without any outline geometry.
package extract

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/ibom/pkg/ibom/board"
)

// ErrNoOutline is returned when no drawing on the board outline layer
// could be parsed.
var ErrNoOutline = errors.New("board has no outline on the Edge.Cuts layer")

// Extractor parses the primitives of one board. The capabilities decide
// which optional shapes and accessors are used.
type Extractor struct {
	caps      board.Capabilities
	logger    *log.Logger
	padShapes map[board.PadShape]string
}

// New returns an extractor for a board with the given capabilities. A nil
// logger discards all diagnostics.
func New(caps board.Capabilities, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Extractor{
		caps:      caps,
		logger:    logger,
		padShapes: padShapeTable(caps),
	}
}

// padShapeTable builds the pad shape lookup. Shapes the board-model API
// cannot represent are left out so they resolve as unsupported.
func padShapeTable(caps board.Capabilities) map[board.PadShape]string {
	shapes := map[board.PadShape]string{
		board.PadShapeRect:   "rect",
		board.PadShapeOval:   "oval",
		board.PadShapeCircle: "circle",
	}
	if caps.RoundRectPads {
		shapes[board.PadShapeRoundRect] = "roundrect"
	}
	if caps.CustomPads {
		shapes[board.PadShapeCustom] = "custom"
	}
	return shapes
}
