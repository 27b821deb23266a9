// Package render turns drawing plans into printable artifacts.
//
// SVG is the native output: the sink subpackage writes plan primitives
// directly, with a Style supplying the palette. PDF and high-resolution
// PNG are produced by converting the SVG with rsvg-convert; when librsvg
// is not installed, PNG falls back to a pure-Go rasterizer.
package render
