// Package disk defines the encoder disk specification and the pure
// geometric calculations derived from it.
//
// A [Spec] is the single source of truth for a disk's geometry: diameter,
// center hole, slot count and width, the radial band the slots occupy, and
// the pulley the disk is coupled to. Everything else (the angular slot
// layout, the measurement resolution, arc lengths at a given radius) is
// derived on demand and never stored.
//
// All computations are pure functions over an immutable Spec: no I/O, no
// hidden state, deterministic for identical input. Rendering and document
// assembly live in separate packages and consume the values produced here.
package disk
