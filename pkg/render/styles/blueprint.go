package styles

import (
	"bytes"
	"fmt"
)

// Blueprint is the working-drawing style: light lines on drawing-office
// blue. Useful on screen and for review printouts; the opaque segments
// are hatched light so the slot pattern stays legible on the dark ground.
type Blueprint struct{}

func (Blueprint) Name() string { return StyleBlueprint }

const blueprintCSS = `
    text { font-family: Helvetica, Arial, sans-serif; fill: #e8f0ff; }
    .outline { fill: none; stroke: #e8f0ff; stroke-width: 0.6; }
    .hole { fill: none; stroke: #e8f0ff; stroke-width: 0.6; }
    .guide { fill: none; stroke: #9db8e8; stroke-width: 0.25; }
    .opaque { fill: #e8f0ff; fill-opacity: 0.85; stroke: none; }
    .phase1 { fill: #ff8a80; fill-opacity: 0.9; stroke: none; }
    .phase2 { fill: #80d8ff; fill-opacity: 0.9; stroke: none; }
    .phase3 { fill: #ffd180; fill-opacity: 0.9; stroke: none; }
    .tick { stroke: #9db8e8; stroke-width: 0.2; fill: #e8f0ff; }
    .crosshair { stroke: #5c7fb8; stroke-width: 0.2; }
    .sensor { fill: #ff8a80; fill-opacity: 0.8; stroke: #e8f0ff; stroke-width: 0.3; }
    .dimension { fill: #ffd180; stroke: none; }
    .note { fill: #e8f0ff; }
    .title { fill: #ffffff; }`

// RenderDefs writes the blue page background and the blueprint palette.
func (Blueprint) RenderDefs(buf *bytes.Buffer, frameWidth, frameHeight float64) {
	fmt.Fprintf(buf, `  <rect width="%.1f" height="%.1f" fill="#123a6d"/>`+"\n", frameWidth, frameHeight)
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", blueprintCSS)
}
