// Package plan converts a disk specification into a renderer-agnostic
// drawing plan.
//
// A [Plan] holds typed primitives (circles, annular wedges, lines, labels)
// in millimeter page coordinates, plus the free-text annotations of a
// fabrication drawing. Building a plan is pure computation; the render
// sinks turn plans into SVG, PNG, or PDF without re-deriving any geometry.
//
// Three plan kinds cover the printable drawings of a fabrication kit:
// the actual-size cutting template, the phase-by-phase cutting sequence,
// and the sensor placement diagram.
package plan
