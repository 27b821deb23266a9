package styles

import (
	"bytes"
	"fmt"
)

// Print is the paper template style: black geometry on white, filled
// opaque segments, colored phase markers for the cutting sequence.
type Print struct{}

func (Print) Name() string { return StylePrint }

const printCSS = `
    text { font-family: Helvetica, Arial, sans-serif; fill: #111; }
    .outline { fill: none; stroke: #111; stroke-width: 0.6; }
    .hole { fill: #fff; stroke: #111; stroke-width: 0.6; }
    .guide { fill: none; stroke: #36c; stroke-width: 0.25; }
    .opaque { fill: #111; stroke: none; }
    .phase1 { fill: #c33; stroke: #111; stroke-width: 0.15; }
    .phase2 { fill: #36c; stroke: #111; stroke-width: 0.15; }
    .phase3 { fill: #e90; stroke: #111; stroke-width: 0.15; }
    .tick { stroke: #c33; stroke-width: 0.2; fill: #111; }
    .crosshair { stroke: #999; stroke-width: 0.2; }
    .sensor { fill: #c33; fill-opacity: 0.7; stroke: #811; stroke-width: 0.3; }
    .dimension { fill: #c33; stroke: none; }
    .note { fill: #111; }
    .title { fill: #111; }`

// RenderDefs writes the white page background and the print palette.
func (Print) RenderDefs(buf *bytes.Buffer, frameWidth, frameHeight float64) {
	fmt.Fprintf(buf, `  <rect width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", frameWidth, frameHeight)
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", printCSS)
}
