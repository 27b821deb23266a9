// Package styles defines the visual treatments for rendered sheets.
//
// A Style contributes the CSS class definitions and page background for an
// SVG sheet; the sink writes geometry tagged with plan element classes and
// leaves all color and stroke decisions to the style. Two styles ship:
// print (black on white, for paper templates) and blueprint (light lines
// on a drawing-office blue).
package styles

import (
	"bytes"

	"github.com/diskforge/diskforge/pkg/errors"
)

// Style supplies the palette for a rendered sheet.
type Style interface {
	// Name returns the style identifier used on the command line.
	Name() string
	// RenderDefs writes the <style> block and background rect for a
	// sheet of the given frame size.
	RenderDefs(buf *bytes.Buffer, frameWidth, frameHeight float64)
}

// Style names.
const (
	StylePrint     = "print"
	StyleBlueprint = "blueprint"
)

// ByName returns the style with the given name.
func ByName(name string) (Style, error) {
	switch name {
	case StylePrint:
		return Print{}, nil
	case StyleBlueprint:
		return Blueprint{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "invalid style %q (must be 'print' or 'blueprint')", name)
}
